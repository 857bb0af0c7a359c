package insight

import (
	"math"
	"strings"

	"github.com/brieflab/briefsight/internal/core/domain"
)

const doctypeHead = 500

// ClassifyDocumentType scores a fixed label set against the first 500
// characters by keyword count. Confidence normalizes the winning score
// against three keyword hits; no-keyword documents fall back to
// "Other" with middling confidence.
func (e *Engine) ClassifyDocumentType(text string) domain.DocumentType {
	sample := strings.ToLower(head(text, doctypeHead))

	scores := make(map[string]int, len(e.docTypes))
	best := ""
	bestScore := 0
	for _, rule := range e.docTypes {
		score := 0
		for _, keyword := range rule.keywords {
			if strings.Contains(sample, keyword) {
				score++
			}
		}
		scores[rule.label] = score
		if score > bestScore {
			best = rule.label
			bestScore = score
		}
	}

	if bestScore == 0 {
		return domain.DocumentType{Label: "Other", Confidence: 0.5, Scores: scores}
	}

	confidence := math.Min(1.0, float64(bestScore)/3.0)
	confidence = math.Round(confidence*100) / 100
	return domain.DocumentType{Label: best, Confidence: confidence, Scores: scores}
}
