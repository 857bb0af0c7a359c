package insight

import (
	"strings"

	"github.com/brieflab/briefsight/internal/core/domain"
)

const (
	maxPlacements        = 5
	maxPlacementFormats  = 3
	maxStructuredActions = 5
	maxGuidelineLength   = 150
	maxWarningActionLen  = 100
	minWarningActionLen  = 20
	defaultMinFontSize   = "20 px"
)

func (e *Engine) creativeRequirements(ex domain.Extraction, lower string) domain.CreativeRequirements {
	mustHave := []string{}
	optional := []string{}

	if strings.Contains(lower, "logo") {
		mustHave = append(mustHave, "Include brand logo")
	}
	if strings.Contains(lower, "tesco tag") || strings.Contains(lower, "must include tesco") {
		mustHave = append(mustHave, "Include Tesco tag/branding")
	}
	if strings.Contains(lower, "packshot") {
		mustHave = append(mustHave, "Include product packshot")
	}
	if len(ex.BrandGuidelines.Colors) > 0 {
		mustHave = append(mustHave, "Use specified brand colors")
	}
	if len(ex.BrandGuidelines.Fonts) > 0 {
		mustHave = append(mustHave, "Use specified fonts/typography")
	}
	if formats := ex.TechnicalSpecs.Formats; len(formats) > 0 {
		mustHave = append(mustHave, "Use file formats: "+strings.Join(capList(formats, maxPlacementFormats), ", "))
	}

	if strings.Contains(lower, "suggested") || strings.Contains(lower, "optional") {
		optional = append(optional, "Consider optional elements as suggested in document")
	}

	return domain.CreativeRequirements{
		MustHave: Dedup(mustHave),
		Optional: Dedup(optional),
	}
}

// placements pairs each detected dimension with a named placement. The
// placement-name match runs against the whole document, not the text
// around the dimension, so several dimensions can share one label; that
// mirrors the source behavior and is flagged as a known limitation.
func (e *Engine) placements(ex domain.Extraction, lower string) []domain.PlacementSpec {
	formats := capList(ex.TechnicalSpecs.Formats, maxPlacementFormats)
	if len(formats) == 0 {
		formats = []string{"JPG", "PNG"}
	}

	notes := []string{}
	if strings.Contains(lower, "safe zone") {
		notes = append(notes, "Respect safe zones")
	}
	if strings.Contains(lower, "cta") && strings.Contains(lower, "packshot") {
		notes = append(notes, "Packshot must be closest to CTA")
	}

	dims := ex.TechnicalSpecs.Dimensions
	if len(dims) > maxPlacements {
		dims = dims[:maxPlacements]
	}

	if len(dims) == 0 {
		return []domain.PlacementSpec{{
			Placement:   "Standard Placement",
			Size:        "Various",
			FileFormats: formats,
			MinFontSize: defaultMinFontSize,
			Notes:       []string{},
		}}
	}

	specs := make([]domain.PlacementSpec, 0, len(dims))
	for _, dim := range dims {
		name := "Creative Placement"
		for _, rule := range e.placementRules {
			if rule.pattern.MatchString(lower) {
				name = rule.name
				break
			}
		}

		size := dim
		if !strings.Contains(dim, "x") {
			size = dim + " px"
		}

		specs = append(specs, domain.PlacementSpec{
			Placement:   name,
			Size:        size,
			FileFormats: append([]string(nil), formats...),
			MinFontSize: defaultMinFontSize,
			Notes:       append([]string{}, notes...),
		})
	}
	return specs
}

func (e *Engine) guidelineCategories(warnings []domain.Warning, lower string) domain.GuidelineCategories {
	copyRules := applyFlagRules(e.guidelineFlags.copy, lower)
	designRules := applyFlagRules(e.guidelineFlags.design, lower)
	accessibilityRules := applyFlagRules(e.guidelineFlags.accessibility, lower)
	legalRules := applyFlagRules(e.guidelineFlags.legal, lower)

	for _, warning := range warnings {
		clean := strings.TrimSpace(warning.Text)
		if clean == "" {
			continue
		}
		if len(clean) > maxGuidelineLength {
			clean = clean[:maxGuidelineLength]
		}

		bucket := "legal" // default bucket for uncategorizable warnings
		wordSpace := strings.ToLower(warning.Text)
		for _, candidate := range e.warningBuckets {
			if containsAny(wordSpace, candidate.keywords...) {
				bucket = candidate.name
				break
			}
		}

		switch bucket {
		case "copy":
			copyRules = append(copyRules, clean)
		case "design":
			designRules = append(designRules, clean)
		case "accessibility":
			accessibilityRules = append(accessibilityRules, clean)
		default:
			legalRules = append(legalRules, clean)
		}
	}

	return domain.GuidelineCategories{
		CopyRules:          Dedup(copyRules),
		DesignRules:        Dedup(designRules),
		AccessibilityRules: Dedup(accessibilityRules),
		LegalRules:         Dedup(legalRules),
	}
}

func applyFlagRules(rules []flagRule, lower string) []string {
	out := []string{}
	for _, rule := range rules {
		matched := true
		for _, group := range rule.anyOf {
			if !containsAny(lower, group...) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, rule.advice)
		}
	}
	return out
}

// structuredActions composes at most five imperative next steps in a
// fixed priority: delivery deadline, file formats, up to two warnings,
// then a tag or T&C reminder.
func (e *Engine) structuredActions(ex domain.Extraction, lower string) []string {
	var items []string

	if len(ex.Deadlines) > 0 {
		first := ex.Deadlines[0]
		context := strings.ToLower(first.Context)
		if containsAny(context, "deliver", "deadline", "due") {
			items = append(items, "Deliver final assets by "+first.Date+".")
		}
	}

	if formats := ex.TechnicalSpecs.Formats; len(formats) > 0 {
		items = append(items, "Use only "+strings.Join(capList(formats, maxPlacementFormats), "/")+" files in the required sizes.")
	}

	warnings := ex.Warnings
	if len(warnings) > 2 {
		warnings = warnings[:2]
	}
	for _, warning := range warnings {
		text := strings.TrimSpace(warning.Text)
		if len(text) > maxWarningActionLen {
			text = text[:maxWarningActionLen]
		}
		if len(text) > minWarningActionLen {
			items = append(items, text)
		}
	}

	switch {
	case strings.Contains(lower, "tag") && strings.Contains(lower, "tesco"):
		items = append(items, "Include required tags/value tiles as specified.")
	case strings.Contains(lower, "t&c") || strings.Contains(lower, "terms and conditions"):
		items = append(items, "Avoid any T&Cs, competition, or sustainability text in creative.")
	}

	items = Dedup(items)
	if len(items) > maxStructuredActions {
		items = items[:maxStructuredActions]
	}
	return items
}

func capList(items []string, n int) []string {
	if len(items) > n {
		items = items[:n]
	}
	return append([]string(nil), items...)
}
