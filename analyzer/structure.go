package analyzer

import (
	"errors"
	"regexp"
	"strings"

	"github.com/Itish41/ClauseGuard/models"
)

var (
	headerPattern    = regexp.MustCompile(`^[A-Z\s]+$`)
	signaturePattern = regexp.MustCompile(`sign|signature|dated`)
)

// AnalyzeStructure splits the text into blank-line separated sections and
// reports simple layout signals.
func AnalyzeStructure(text string) models.DocumentStructure {
	if strings.TrimSpace(text) == "" {
		return models.DocumentStructure{}
	}

	sections := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n")
	total := 0
	for _, s := range sections {
		total += len([]rune(s))
	}

	return models.DocumentStructure{
		SectionCount:         len(sections),
		AverageSectionLength: float64(total) / float64(len(sections)),
		HasHeader:            headerPattern.MatchString(strings.TrimSpace(sections[0])),
		HasSignatureSection:  signaturePattern.MatchString(strings.ToLower(text)),
	}
}

var ErrNegativeService = errors.New("years of service cannot be negative")

// NoticePeriod returns the statutory minimum notice an employer must give for
// the given length of continuous service.
func NoticePeriod(yearsOfService float64) (string, error) {
	switch {
	case yearsOfService < 0:
		return "", ErrNegativeService
	case yearsOfService < 2:
		return "1 week", nil
	case yearsOfService < 5:
		return "2 weeks", nil
	case yearsOfService < 10:
		return "4 weeks", nil
	case yearsOfService < 15:
		return "6 weeks", nil
	default:
		return "8 weeks", nil
	}
}
