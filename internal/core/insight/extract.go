package insight

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/brieflab/briefsight/internal/core/domain"
)

const (
	deadlineWindow  = 100
	contextWindow   = 50
	toneWindow      = 30
	maxActionItems  = 20
	minActionLength = 10
	maxActionLength = 200
)

// ExtractAll runs every field rule over the text and returns the raw
// per-category record. It is total: any input, including the empty
// string, yields a record with all containers present.
func (e *Engine) ExtractAll(text string) domain.Extraction {
	out := emptyExtraction()
	lower := strings.ToLower(text)
	for _, rule := range e.fields {
		rule.apply(e, text, lower, &out)
	}
	return out
}

func emptyExtraction() domain.Extraction {
	return domain.Extraction{
		TechnicalSpecs: domain.TechnicalSpecs{
			Dimensions: []string{},
			Formats:    []string{},
			FileSizes:  []string{},
		},
		Deadlines: []domain.Deadline{},
		KPIs:      map[string][]float64{},
		BrandGuidelines: domain.BrandGuidelines{
			Colors: []string{},
			Fonts:  []string{},
			Tone:   []string{},
		},
		ActionItems: []string{},
		Warnings:    []domain.Warning{},
	}
}

func (e *Engine) extractTechnicalSpecs(text, _ string, out *domain.Extraction) {
	specs := &out.TechnicalSpecs

	for _, m := range e.dimension.FindAllStringSubmatch(text, -1) {
		specs.Dimensions = append(specs.Dimensions, m[1]+"x"+m[2])
	}

	for _, m := range e.formatLabel.FindAllStringSubmatch(text, -1) {
		specs.Formats = append(specs.Formats, strings.ToUpper(m[1]))
	}
	// Supplementary whole-word scan over the fixed whitelist; added only
	// when the label pass did not already find the token.
	for _, fw := range e.formatWords {
		if containsString(specs.Formats, fw.token) {
			continue
		}
		if fw.word.MatchString(text) {
			specs.Formats = append(specs.Formats, fw.token)
		}
	}

	for _, m := range e.fileSize.FindAllStringSubmatch(text, -1) {
		specs.FileSizes = append(specs.FileSizes, m[1]+" "+strings.ToUpper(m[2]))
	}
}

func (e *Engine) extractDeadlines(text, lower string, out *domain.Extraction) {
	var pooled []string
	for _, pattern := range e.datePatterns {
		pooled = append(pooled, pattern.FindAllString(text, -1)...)
	}

	for _, dateStr := range pooled {
		idx := strings.Index(lower, strings.ToLower(dateStr))
		if idx < 0 {
			continue
		}
		window := lower[clampLow(idx-deadlineWindow):clampHigh(idx+len(dateStr)+deadlineWindow, len(lower))]

		isDeadline := false
		for _, kw := range e.deadlineKeywords {
			if strings.Contains(window, kw) {
				isDeadline = true
				break
			}
		}

		// The first date found is always recorded, even without a
		// deadline keyword nearby.
		if !isDeadline && len(out.Deadlines) > 0 {
			continue
		}
		kind := domain.DeadlineTypeMentioned
		if isDeadline {
			kind = domain.DeadlineTypeDeadline
		}
		out.Deadlines = append(out.Deadlines, domain.Deadline{
			Date:    dateStr,
			Type:    kind,
			Context: strings.TrimSpace(text[clampLow(idx-contextWindow):clampHigh(idx+len(dateStr)+contextWindow, len(text))]),
		})
	}
}

func (e *Engine) extractKPIs(text, _ string, out *domain.Extraction) {
	for _, rule := range e.kpiRules {
		for _, m := range rule.pattern.FindAllStringSubmatch(text, -1) {
			raw := strings.ReplaceAll(m[1], ",", "")
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			out.KPIs[rule.name] = append(out.KPIs[rule.name], value)
		}
	}
}

func (e *Engine) extractBrandGuidelines(text, lower string, out *domain.Extraction) {
	bg := &out.BrandGuidelines

	for _, m := range e.hexColor.FindAllStringSubmatch(text, -1) {
		bg.Colors = append(bg.Colors, "#"+m[1])
	}
	for _, m := range e.rgbColor.FindAllStringSubmatch(text, -1) {
		bg.Colors = append(bg.Colors, "RGB("+m[1]+", "+m[2]+", "+m[3]+")")
	}
	for _, m := range e.namedColor.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		if name != "" && len(name) < 30 {
			bg.Colors = append(bg.Colors, name)
		}
	}

	for _, m := range e.fontFamily.FindAllStringSubmatch(text, -1) {
		family := strings.TrimSpace(m[1])
		if family != "" && len(family) < 50 {
			bg.Fonts = append(bg.Fonts, family)
		}
	}
	for _, m := range e.fontSize.FindAllStringSubmatch(text, -1) {
		bg.Fonts = append(bg.Fonts, m[1]+"pt")
	}

	// A tone word counts only when a tone-context keyword sits within a
	// short window of its first occurrence.
	for _, word := range e.toneWords {
		idx := strings.Index(lower, word)
		if idx < 0 {
			continue
		}
		window := lower[clampLow(idx-toneWindow):clampHigh(idx+len(word)+toneWindow, len(lower))]
		for _, ctx := range e.toneContext {
			if strings.Contains(window, ctx) {
				if !containsString(bg.Tone, word) {
					bg.Tone = append(bg.Tone, word)
				}
				break
			}
		}
	}
}

func (e *Engine) extractActionItems(text, _ string, out *domain.Extraction) {
	for _, pattern := range []*regexp.Regexp{e.actionLabel, e.bulletLine} {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			item := strings.TrimSpace(m[1])
			if len(item) <= minActionLength || len(item) >= maxActionLength {
				continue
			}
			item = e.leadingBullet.ReplaceAllString(item, "")
			item = e.whitespace.ReplaceAllString(item, " ")
			if !containsString(out.ActionItems, item) {
				out.ActionItems = append(out.ActionItems, item)
			}
		}
	}
	if len(out.ActionItems) > maxActionItems {
		out.ActionItems = out.ActionItems[:maxActionItems]
	}
}

func (e *Engine) extractWarnings(text, _ string, out *domain.Extraction) {
	for _, sentence := range e.sentenceBound.Split(text, -1) {
		sentenceLower := strings.ToLower(sentence)
		for _, keyword := range e.warningKeywords {
			if !strings.Contains(sentenceLower, keyword) {
				continue
			}
			kind := domain.WarningTypeWarning
			if strings.Contains(sentenceLower, "compliance") || strings.Contains(sentenceLower, "legal") {
				kind = domain.WarningTypeCompliance
			}
			out.Warnings = append(out.Warnings, domain.Warning{
				Type:    kind,
				Text:    strings.TrimSpace(sentence),
				Keyword: keyword,
			})
			break // first matching keyword wins per sentence
		}
	}
}

func containsString(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}

func clampLow(i int) int {
	if i < 0 {
		return 0
	}
	return i
}

func clampHigh(i, limit int) int {
	if i > limit {
		return limit
	}
	return i
}
