package insight

import (
	"math"
	"strconv"
	"strings"

	"github.com/brieflab/briefsight/internal/core/domain"
)

// Fallback lines emitted when a summary facet finds no data. These are
// part of the output contract, not placeholders to be localized.
const (
	fallbackDates    = "Dates not specified."
	fallbackChannels = "Channels not specified."
	fallbackTargets  = "Targets: Not specified."
	fallbackMust     = "Required elements not specified."
	fallbackAvoid    = "No specific restrictions specified."
)

const (
	goalHeadProduct   = 2000
	goalHeadObjective = 1500
	datesHead         = 3000
	maxChannels       = 4
	maxTargetPhrases  = 3
	maxDontCategories = 4
)

func (e *Engine) summarize(text, lower string, ex domain.Extraction) domain.Summary {
	return domain.Summary{
		Goal:        e.goalLine(text, lower),
		Dates:       e.datesLine(text, ex.Deadlines),
		Channels:    e.channelsLine(lower),
		Success:     e.targetsLine(ex.KPIs),
		MustInclude: e.mustIncludeLine(text, lower),
		Avoid:       e.avoidLine(lower),
	}
}

// goalLine tries progressively weaker strategies until one produces a
// line; the hard-truncate strategy always succeeds.
func (e *Engine) goalLine(text, lower string) string {
	strategies := []func(string, string) (string, bool){
		e.goalFromLaunchPhrase,
		e.goalFromFirstSentence,
		e.goalFromTruncation,
	}
	for _, strategy := range strategies {
		if line, ok := strategy(text, lower); ok {
			return line
		}
	}
	return ""
}

func (e *Engine) goalFromLaunchPhrase(text, lower string) (string, bool) {
	productHead := head(text, goalHeadProduct)

	var product string
	for _, pattern := range e.productPatterns {
		if m := pattern.FindStringSubmatch(productHead); m != nil {
			product = strings.TrimSpace(m[1])
			if len(product) > 50 {
				words := strings.Fields(product)
				if len(words) > 5 {
					words = words[:5]
				}
				product = strings.Join(words, " ")
			}
			break
		}
	}

	var retailer string
	for _, pattern := range e.retailerPatterns {
		if m := pattern.FindStringSubmatch(productHead); m != nil {
			retailer = strings.TrimSpace(m[1])
			break
		}
	}

	if product == "" || retailer == "" {
		return "", false
	}

	sample := head(lower, goalHeadObjective)
	var goal strings.Builder
	goal.WriteString("Launch " + product + " at " + retailer)
	for _, objective := range e.objectiveKeywords {
		if strings.Contains(sample, objective) {
			goal.WriteString(", building " + objective)
			break
		}
	}
	for _, season := range e.seasons {
		if strings.Contains(sample, season) {
			goal.WriteString(" during " + season)
			break
		}
	}
	goal.WriteString(".")
	return goal.String(), true
}

func (e *Engine) goalFromFirstSentence(text, _ string) (string, bool) {
	sentences := e.sentenceBound.Split(text, -1)
	if len(sentences) > 3 {
		sentences = sentences[:3]
	}
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) > 30 && len(sentence) < 150 {
			if len(sentence) > 147 {
				return sentence[:147] + "...", true
			}
			return sentence + ".", true
		}
	}
	return "", false
}

func (e *Engine) goalFromTruncation(text, _ string) (string, bool) {
	goal := strings.TrimSpace(head(text, 147))
	if len(text) > 147 {
		return goal + "...", true
	}
	return goal + ".", true
}

// datesLine renders "<start> – <end> (assets due <date>)." from the raw
// deadline list, degrading gracefully as components are missing.
func (e *Engine) datesLine(text string, deadlines []domain.Deadline) string {
	norm := e.whitespace.ReplaceAllString(e.dashVariants.ReplaceAllString(text, "-"), " ")

	var start, end, asset string
	scan := deadlines
	if len(scan) > 10 {
		scan = scan[:10]
	}
	for _, deadline := range scan {
		dateStr := e.dashVariants.ReplaceAllString(deadline.Date, "-")
		context := strings.ToLower(deadline.Context)

		// An embedded dash means the matched string is itself a range.
		if strings.Contains(dateStr, "-") {
			parts := strings.SplitN(dateStr, "-", 2)
			if start == "" {
				start = strings.TrimSpace(parts[0])
			}
			if end == "" {
				end = strings.TrimSpace(parts[1])
			}
			continue
		}

		switch {
		case containsAny(context, "start", "begin", "launch", "live", "campaign window"):
			if start == "" {
				start = dateStr
			}
		case containsAny(context, "end", "finish", "conclusion"):
			if end == "" {
				end = dateStr
			}
		case containsAny(context, "deadline", "deliver", "due", "asset", "delivery"):
			if asset == "" {
				asset = dateStr
			}
		}
	}

	if start == "" && end == "" {
		if m := e.longDateRange.FindStringSubmatch(head(norm, datesHead)); m != nil {
			start = strings.TrimSpace(m[1])
			end = strings.TrimSpace(m[2])
		}
	}
	if asset == "" {
		if m := e.assetDuePhase.FindStringSubmatch(head(norm, datesHead)); m != nil {
			asset = strings.TrimSpace(m[1])
		}
	}

	var parts []string
	switch {
	case start != "" && end != "":
		parts = append(parts, e.monthShort.Replace(start)+" – "+e.monthShort.Replace(end))
	case start != "":
		parts = append(parts, e.monthShort.Replace(start))
	case end != "":
		parts = append(parts, e.monthShort.Replace(end))
	}
	if asset != "" {
		parts = append(parts, "(assets due "+e.monthShort.Replace(asset)+")")
	}

	if len(parts) == 0 {
		return fallbackDates
	}
	return strings.Join(parts, " ") + "."
}

func (e *Engine) channelsLine(lower string) string {
	var channels []string
	for _, rule := range e.channelRules {
		if containsAny(lower, rule.keywords...) {
			channels = append(channels, rule.label)
			if len(channels) >= maxChannels {
				break
			}
		}
	}
	if len(channels) == 0 {
		return fallbackChannels
	}
	return strings.Join(channels, ", ") + "."
}

func (e *Engine) targetsLine(kpis map[string][]float64) string {
	var phrases []string
	for _, rule := range e.kpiLineRules {
		values := kpis[rule.name]
		if len(values) == 0 {
			continue
		}
		phrases = append(phrases, rule.phrase(formatKPIValue(values[0])))
		if len(phrases) >= maxTargetPhrases {
			break
		}
	}
	if len(phrases) == 0 {
		return fallbackTargets
	}
	return "Targets: " + strings.Join(phrases, ", ") + "."
}

func (e *Engine) mustIncludeLine(text, lower string) string {
	var elements []string

	if strings.Contains(lower, "logo") {
		if m := e.brandLogo.FindStringSubmatch(head(text, 1000)); m != nil {
			elements = append(elements, m[1]+" logo")
		} else {
			elements = append(elements, "logo")
		}
	}

	if strings.Contains(lower, "packshot") {
		if m := e.packshotQty.FindStringSubmatch(lower); m != nil {
			elements = append(elements, "packshots ("+m[1]+" max)")
		} else {
			elements = append(elements, "packshots")
		}
	}

	for _, pattern := range e.tescoTag {
		if pattern.MatchString(lower) {
			elements = append(elements, "Tesco 'Only at Tesco' tag")
			break
		}
	}

	if len(elements) == 0 {
		return fallbackMust
	}
	return strings.Join(elements, " + ") + "."
}

func (e *Engine) avoidLine(lower string) string {
	var donts []string
	for _, rule := range e.dontRules {
		if containsAny(lower, rule.keywords...) {
			donts = append(donts, rule.label)
		}
	}
	if len(donts) > maxDontCategories {
		donts = donts[:maxDontCategories]
	}
	if len(donts) == 0 {
		return fallbackAvoid
	}
	return "Don't mention " + strings.Join(donts, ", ") + "."
}

// Whole-number values keep one decimal place, so a 9% conversion
// target reads "9.0" and stays distinguishable from an integer count.
func formatKPIValue(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func head(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
