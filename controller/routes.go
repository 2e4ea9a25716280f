package controller

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the API. strict guards the expensive analysis routes.
func RegisterRoutes(router gin.IRouter, ac *AnalysisController, rc *RulesController, strict gin.HandlerFunc) {
	router.GET("/health", ac.Health)

	router.POST("/analyze", strict, ac.Analyze)
	router.POST("/upload", strict, ac.Upload)
	router.POST("/classify", ac.Classify)

	router.GET("/document-types", rc.DocumentTypes)
	router.GET("/statutes", rc.Statutes)
	router.GET("/statutes/search", rc.SearchStatutes)
	router.GET("/notice-period", rc.NoticePeriod)
}
