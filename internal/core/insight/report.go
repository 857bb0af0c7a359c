package insight

import (
	"strings"

	"github.com/brieflab/briefsight/internal/core/domain"
)

const extractionMethod = "pattern matching + keyword classification"

// Analyze is the full text-to-record transform: raw extraction,
// classification, then structured artifacts, composed into one record.
// Empty or whitespace-only input short-circuits to the placeholder
// record without running the pattern pass.
func (e *Engine) Analyze(text string) domain.Insights {
	if strings.TrimSpace(text) == "" {
		return emptyInsights()
	}

	lower := strings.ToLower(text)
	ex := e.ExtractAll(text)

	return domain.Insights{
		DocumentType:         e.ClassifyDocumentType(text),
		TechnicalSpecs:       ex.TechnicalSpecs,
		Deadlines:            ex.Deadlines,
		KPIs:                 ex.KPIs,
		BrandGuidelines:      ex.BrandGuidelines,
		ActionItems:          ex.ActionItems,
		Warnings:             ex.Warnings,
		Summary:              e.summarize(text, lower, ex),
		CreativeRequirements: e.creativeRequirements(ex, lower),
		Placements:           e.placements(ex, lower),
		Guidelines:           e.guidelineCategories(ex.Warnings, lower),
		StructuredActions:    e.structuredActions(ex, lower),
		Metadata: domain.Metadata{
			TextLength:       len(text),
			WordCount:        len(strings.Fields(text)),
			ExtractionMethod: extractionMethod,
		},
	}
}

func emptyInsights() domain.Insights {
	ex := emptyExtraction()
	return domain.Insights{
		DocumentType:    domain.DocumentType{Label: "Unknown", Confidence: 0},
		TechnicalSpecs:  ex.TechnicalSpecs,
		Deadlines:       ex.Deadlines,
		KPIs:            ex.KPIs,
		BrandGuidelines: ex.BrandGuidelines,
		ActionItems:     ex.ActionItems,
		Warnings:        ex.Warnings,
		Summary: domain.Summary{
			Dates:       fallbackDates,
			Channels:    fallbackChannels,
			Success:     fallbackTargets,
			MustInclude: fallbackMust,
			Avoid:       fallbackAvoid,
		},
		CreativeRequirements: domain.CreativeRequirements{
			MustHave: []string{},
			Optional: []string{},
		},
		Placements: []domain.PlacementSpec{},
		Guidelines: domain.GuidelineCategories{
			CopyRules:          []string{},
			DesignRules:        []string{},
			AccessibilityRules: []string{},
			LegalRules:         []string{},
		},
		StructuredActions: []string{},
		Metadata:          domain.Metadata{ExtractionMethod: extractionMethod},
	}
}
