package initializers

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/Itish41/ClauseGuard/analyzer"
)

type Config struct {
	Port     string
	LogLevel string

	RiskThresholdHigh      float64
	RiskThresholdMedium    float64
	ContextWindowSize      int
	IncludeRecommendations bool
	MaxFindings            int

	MaxUploadBytes int64

	RulebookSource string
	RulebookPath   string
	RulebookSeed   bool

	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string

	DatabaseURL string

	ElasticsearchURL string
	OCRSpaceAPIKey   string

	RateLimitRPS   float64
	RateLimitBurst int
}

func LoadConfig() Config {
	defaults := analyzer.DefaultConfig()

	cfg := Config{
		Port:     mustEnv("PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		RiskThresholdHigh:      mustEnvFloat("RISK_THRESHOLD_HIGH", defaults.RiskThresholdHigh),
		RiskThresholdMedium:    mustEnvFloat("RISK_THRESHOLD_MEDIUM", defaults.RiskThresholdMedium),
		ContextWindowSize:      mustEnvInt("CONTEXT_WINDOW_SIZE", defaults.ContextWindowSize),
		IncludeRecommendations: mustEnvBool("INCLUDE_RECOMMENDATIONS", defaults.IncludeRecommendations),
		MaxFindings:            mustEnvInt("MAX_FINDINGS", defaults.MaxFindings),

		MaxUploadBytes: int64(mustEnvInt("MAX_UPLOAD_BYTES", 10<<20)),

		RulebookSource: strings.ToLower(mustEnv("RULEBOOK_SOURCE", "builtin")),
		RulebookPath:   mustEnv("RULEBOOK_PATH", "rules.yaml"),
		RulebookSeed:   mustEnvBool("RULEBOOK_SEED", false),

		S3Region:    mustEnv("S3_REGION", ""),
		S3Endpoint:  mustEnv("S3_ENDPOINT", ""),
		S3AccessKey: mustEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: mustEnv("S3_SECRET_KEY", ""),
		S3Bucket:    mustEnv("S3_BUCKET", ""),

		DatabaseURL: mustEnv("DIRECT_URL", ""),

		ElasticsearchURL: mustEnv("ELASTICSEARCH_URL", ""),
		OCRSpaceAPIKey:   mustEnv("OCR_SPACE_API_KEY", ""),

		RateLimitRPS:   mustEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: mustEnvInt("RATE_LIMIT_BURST", 20),
	}

	if cfg.RiskThresholdMedium < 0 || cfg.RiskThresholdMedium >= cfg.RiskThresholdHigh {
		log.Printf("WARNING: risk thresholds medium=%.2f high=%.2f are not ordered, using defaults",
			cfg.RiskThresholdMedium, cfg.RiskThresholdHigh)
		cfg.RiskThresholdHigh = defaults.RiskThresholdHigh
		cfg.RiskThresholdMedium = defaults.RiskThresholdMedium
	}
	if cfg.ContextWindowSize < 0 {
		cfg.ContextWindowSize = defaults.ContextWindowSize
	}
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 5
	}

	return cfg
}

// AnalyzerConfig returns the analysis settings.
func (c Config) AnalyzerConfig() analyzer.Config {
	return analyzer.Config{
		RiskThresholdHigh:      c.RiskThresholdHigh,
		RiskThresholdMedium:    c.RiskThresholdMedium,
		ContextWindowSize:      c.ContextWindowSize,
		IncludeRecommendations: c.IncludeRecommendations,
		MaxFindings:            c.MaxFindings,
	}
}

func mustEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := mustEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := mustEnv(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := mustEnv(key, "")
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
