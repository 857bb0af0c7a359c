// Package insight turns free-form brief text into a normalized,
// deduplicated record of business-relevant facts and compresses that
// record into short UI-ready summary lines. Everything here is a pure
// transform over the input text: no I/O, no shared mutable state.
package insight

import (
	"regexp"
	"strings"

	"github.com/brieflab/briefsight/internal/core/domain"
)

// Engine holds every compiled pattern and keyword table used by the
// extraction pipeline. Construct once with New and share freely: the
// engine is never mutated after construction, so concurrent Analyze
// calls need no coordination.
type Engine struct {
	fields []fieldRule

	dimension   *regexp.Regexp
	formatLabel *regexp.Regexp
	formatWords []formatWord
	fileSize    *regexp.Regexp

	// Four independent date families, pooled in this order. The numeric
	// family matches both D/M/Y and M/D/Y without disambiguation; that
	// ambiguity is deliberate and documented, not resolved here.
	datePatterns     []*regexp.Regexp
	deadlineKeywords []string

	kpiRules []kpiRule

	hexColor   *regexp.Regexp
	rgbColor   *regexp.Regexp
	namedColor *regexp.Regexp
	fontFamily *regexp.Regexp
	fontSize   *regexp.Regexp

	toneWords       []string
	toneContext     []string
	actionLabel     *regexp.Regexp
	bulletLine      *regexp.Regexp
	leadingBullet   *regexp.Regexp
	whitespace      *regexp.Regexp
	sentenceBound   *regexp.Regexp
	warningKeywords []string

	// Structurer tables.
	productPatterns   []*regexp.Regexp
	retailerPatterns  []*regexp.Regexp
	objectiveKeywords []string
	seasons           []string

	dashVariants  *regexp.Regexp
	longDateRange *regexp.Regexp
	assetDuePhase *regexp.Regexp
	monthShort    *strings.Replacer

	channelRules   []channelRule
	kpiLineRules   []kpiLineRule
	brandLogo      *regexp.Regexp
	packshotQty    *regexp.Regexp
	tescoTag       []*regexp.Regexp
	dontRules      []dontRule
	placementRules []placementRule
	guidelineFlags guidelineFlagRules
	warningBuckets []warningBucket
	docTypes       []docTypeRule
}

// fieldRule is one category of the raw extraction pass. ExtractAll runs
// the rules in declaration order; each writes its own slice of the
// output and never faults on any input. Arguments are the original text
// and its lower-cased form, computed once per call.
type fieldRule struct {
	category string
	apply    func(e *Engine, text, lower string, out *domain.Extraction)
}

type formatWord struct {
	token string
	word  *regexp.Regexp
}

type kpiRule struct {
	name    string
	pattern *regexp.Regexp
}

type channelRule struct {
	label    string
	keywords []string
}

type kpiLineRule struct {
	name   string
	phrase func(value string) string
}

type dontRule struct {
	label    string
	keywords []string
}

type placementRule struct {
	pattern *regexp.Regexp
	name    string
}

type guidelineFlagRules struct {
	copy          []flagRule
	design        []flagRule
	accessibility []flagRule
	legal         []flagRule
}

// flagRule emits a canned rule line when the keyword condition holds.
// Keywords within a group are OR; groups are AND.
type flagRule struct {
	anyOf  [][]string
	advice string
}

type warningBucket struct {
	name     string
	keywords []string
}

type docTypeRule struct {
	label    string
	keywords []string
}

// New compiles the full rule set. The returned engine is immutable.
func New() *Engine {
	e := &Engine{
		dimension:   regexp.MustCompile(`\b(\d{3,5})\s*[x×]\s*(\d{3,5})\b`),
		formatLabel: regexp.MustCompile(`(?i)\b(?:format|file type|extension):\s*([A-Z0-9]{2,5})\b`),
		fileSize:    regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(MB|KB|GB)\b`),

		datePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}\b`),
			regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
			regexp.MustCompile(`\b\d{4}[/-]\d{1,2}[/-]\d{1,2}\b`),
			regexp.MustCompile(`(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?\s+\d{1,2},?\s+\d{4}\b`),
		},
		deadlineKeywords: []string{
			"deadline", "due by", "due date", "submit before", "submit by",
			"deliver by", "delivery date", "must be received by", "needed by",
			"required by", "final date", "cutoff date", "closing date",
		},

		kpiRules: []kpiRule{
			{"CTR", regexp.MustCompile(`(?i)\b(?:CTR|Click-Through Rate|click through rate):\s*(\d+(?:\.\d+)?)\s*%?`)},
			{"CPC", regexp.MustCompile(`(?i)\b(?:CPC|Cost Per Click):\s*\$?(\d+(?:\.\d+)?)`)},
			{"CPM", regexp.MustCompile(`(?i)\b(?:CPM|Cost Per Mille|Cost Per Thousand):\s*\$?(\d+(?:\.\d+)?)`)},
			{"conversion_rate", regexp.MustCompile(`(?i)\b(?:conversion rate|conversion):\s*(\d+(?:\.\d+)?)\s*%?`)},
			{"ROAS", regexp.MustCompile(`(?i)\b(?:ROAS|Return on Ad Spend):\s*(\d+(?:\.\d+)?)`)},
			{"CPA", regexp.MustCompile(`(?i)\b(?:CPA|Cost Per Acquisition):\s*\$?(\d+(?:\.\d+)?)`)},
			{"impressions", regexp.MustCompile(`(?i)\b(?:impressions|impression count):\s*(\d+(?:,\d{3})*(?:\.\d+)?)`)},
			{"clicks", regexp.MustCompile(`(?i)\b(?:clicks|click count):\s*(\d+(?:,\d{3})*(?:\.\d+)?)`)},
		},

		hexColor:   regexp.MustCompile(`#([0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`),
		rgbColor:   regexp.MustCompile(`(?i)\bRGB\((\d+),\s*(\d+),\s*(\d+)\)`),
		namedColor: regexp.MustCompile(`(?i)\b(?:color|primary color|brand color):\s*([A-Za-z]+(?:\s+[A-Za-z]+)?)\b`),
		fontFamily: regexp.MustCompile(`(?i)\b(?:font|typeface|font family):\s*([A-Za-z\s]+(?:,\s*[A-Za-z\s]+)?)\b`),
		fontSize:   regexp.MustCompile(`(?i)\b(?:font size|font-size|text size):\s*(\d+(?:pt|px)?)\b`),

		toneWords: []string{
			"professional", "casual", "friendly", "formal", "playful", "serious",
			"energetic", "calm", "bold", "subtle", "modern", "traditional",
			"innovative", "trustworthy", "luxury", "affordable",
		},
		toneContext: []string{"tone", "voice", "style", "brand", "guideline"},

		actionLabel:   regexp.MustCompile(`(?i)\b(?:action|task|todo|to do|must|should|need to|required to):\s*(.+?)(?:\.|$)`),
		bulletLine:    regexp.MustCompile(`(?m)^\s*[-•*]\s*(.+?)(?:\.|$)`),
		leadingBullet: regexp.MustCompile(`^\s*[-•*]\s*`),
		whitespace:    regexp.MustCompile(`\s+`),
		sentenceBound: regexp.MustCompile(`[.!?]\s+`),
		warningKeywords: []string{
			"warning", "compliance", "must comply", "required by law",
			"legal requirement", "regulatory", "prohibited", "not allowed",
			"violation", "penalty", "fine", "restriction", "mandatory",
		},

		productPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)launch\s+([A-Z][A-Za-z\s]+?)(?:\s+(?:at|in|on|via)|[.,;])`),
			regexp.MustCompile(`(?i)campaign\s+for\s+([A-Z][A-Za-z\s]+?)(?:\s+(?:at|in|on)|[.,;])`),
			regexp.MustCompile(`(?i)promote\s+([A-Z][A-Za-z\s]+?)(?:\s+(?:at|in|on)|[.,;])`),
		},
		retailerPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)at\s+([A-Z][A-Za-z]+)`),
			regexp.MustCompile(`(?i)via\s+([A-Z][A-Za-z]+)`),
			regexp.MustCompile(`(?i)([A-Z][A-Za-z]+)\s+website`),
		},
		objectiveKeywords: []string{"awareness", "trial", "sales", "engagement", "conversion"},
		seasons:           []string{"summer", "winter", "spring", "autumn"},

		dashVariants:  regexp.MustCompile(`[–—]`),
		longDateRange: regexp.MustCompile(`(?i)\b(\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4})\s*[–—-]\s*(\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4})\b`),
		assetDuePhase: regexp.MustCompile(`(?is)(?:asset\s+delivery\s+deadline|assets\s+due|deliver.*?by|deadline.*?deliver).*?(\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4})`),

		channelRules: []channelRule{
			{"Tesco website banners", []string{"website", "onsite", "site brand"}},
			{"Checkout ads", []string{"checkout"}},
			{"Instagram/Facebook Stories", []string{"instagram", "facebook", "stories", "social"}},
			{"Display ads", []string{"display", "banner"}},
			{"Video ads", []string{"video"}},
			{"Email campaigns", []string{"email"}},
			{"Mobile ads", []string{"mobile ad", "mobile banner", "mobile creative"}},
			{"Desktop ads", []string{"desktop ad", "desktop banner", "desktop creative"}},
		},
		kpiLineRules: []kpiLineRule{
			{"CTR", func(v string) string { return "CTR ≥ " + v + "%" }},
			{"conversion_rate", func(v string) string { return "conversion ≥ " + v + "%" }},
			{"sales_uplift", func(v string) string { return "+" + v + "% sales uplift" }},
			{"add-to-basket", func(v string) string { return "add-to-basket ≥ " + v + "%" }},
			{"ROAS", func(v string) string { return "ROAS ≥ " + v }},
		},

		brandLogo:   regexp.MustCompile(`(?i)([A-Z][A-Za-z]+)\s+logo`),
		packshotQty: regexp.MustCompile(`(\d+)\s*(?:flavours?|variants?|products?)\s*(?:max|maximum)`),
		tescoTag: []*regexp.Regexp{
			regexp.MustCompile(`tesco['\s]+(?:tag|branding)`),
			regexp.MustCompile(`only at tesco`),
			regexp.MustCompile(`must include tesco`),
		},
		dontRules: []dontRule{
			{"prices", []string{"no price", "no pricing", "avoid price", "don't mention price"}},
			{"discounts", []string{"no discount", "no offer", "avoid discount"}},
			{"competitions", []string{"no competition", "no prize", "no giveaway"}},
			{"health/sustainability claims", []string{"no health claim", "no sustainability", "no environmental claim"}},
			{"T&Cs", []string{"no t&cs", "no terms and conditions"}},
		},
		placementRules: []placementRule{
			{regexp.MustCompile(`onsite[\s\w]*brand[\s\w]*desktop`), "Onsite Brand – Desktop"},
			{regexp.MustCompile(`onsite[\s\w]*brand[\s\w]*mobile`), "Onsite Brand – Mobile"},
			{regexp.MustCompile(`checkout[\s\w]*double[\s\w]*density`), "Checkout Double Density"},
			{regexp.MustCompile(`checkout[\s\w]*single[\s\w]*density`), "Checkout Single Density"},
			{regexp.MustCompile(`display[\s\w]*banner`), "Display Banner"},
			{regexp.MustCompile(`social[\s\w]*banner`), "Social Banner"},
		},
		guidelineFlags: guidelineFlagRules{
			copy: []flagRule{
				{[][]string{{"no t&cs", "no terms and conditions"}}, "No T&Cs allowed in creative."},
				{[][]string{{"no competition", "no prize draw"}}, "No competitions or charity messages."},
				{[][]string{{"no sustainability claim"}}, "No sustainability claims if not allowed."},
			},
			design: []flagRule{
				{[][]string{{"tesco tag"}, {"overlap", "cover"}}, "Nothing can overlap Tesco tags or value tiles."},
				{[][]string{{"flat background", "solid background"}}, "Use flat background colour if specified."},
			},
			accessibility: []flagRule{
				{[][]string{{"minimum font", "font size"}}, "Respect minimum font sizes."},
				{[][]string{{"contrast", "wcag"}}, "Text and CTA must meet WCAG AA contrast."},
			},
			legal: []flagRule{
				{[][]string{{"unverified claim", "verified claim"}}, "No unverified claims or money-back guarantees."},
				{[][]string{{"alcohol"}, {"requirement", "guideline"}}, "Follow any alcohol-specific requirements if present."},
			},
		},
		warningBuckets: []warningBucket{
			{"copy", []string{"t&c", "terms", "condition", "competition", "charity", "sustainability"}},
			{"design", []string{"overlap", "tag", "tile", "background", "design", "layout"}},
			{"accessibility", []string{"font", "contrast", "accessibility", "wcag", "readable"}},
			{"legal", []string{"legal", "claim", "guarantee", "alcohol", "regulatory", "compliance"}},
		},
		docTypes: []docTypeRule{
			{"Creative Brief", []string{"creative brief", "brief", "campaign brief", "advertising brief", "creative direction"}},
			{"Ad Specs", []string{"ad specs", "ad specifications", "ad requirements", "ad format", "ad dimensions", "ad size"}},
			{"Brand Guidelines", []string{"brand guidelines", "brand guide", "brand standards", "brand identity", "brand manual"}},
			{"Campaign Plan", []string{"campaign plan", "campaign strategy", "marketing plan", "campaign overview"}},
			{"Media Plan", []string{"media plan", "media strategy", "media buy", "media schedule"}},
			{"Performance Report", []string{"performance report", "analytics", "metrics", "kpi", "results", "report"}},
			{"Compliance Document", []string{"compliance", "legal", "regulatory", "policy", "terms", "guidelines"}},
		},
	}

	e.monthShort = strings.NewReplacer(
		"January", "Jan", "january", "jan",
		"February", "Feb", "february", "feb",
		"March", "Mar", "march", "mar",
		"April", "Apr", "april", "apr",
		"June", "Jun", "june", "jun",
		"July", "Jul", "july", "jul",
		"August", "Aug", "august", "aug",
		"September", "Sep", "september", "sep",
		"October", "Oct", "october", "oct",
		"November", "Nov", "november", "nov",
		"December", "Dec", "december", "dec",
	)

	commonFormats := []string{"JPG", "JPEG", "PNG", "PDF", "MP4", "MOV", "GIF", "SVG", "WEBP"}
	for _, token := range commonFormats {
		e.formatWords = append(e.formatWords, formatWord{
			token: token,
			word:  regexp.MustCompile(`(?i)\b` + token + `\b`),
		})
	}

	e.fields = []fieldRule{
		{"technical_specs", (*Engine).extractTechnicalSpecs},
		{"deadlines", (*Engine).extractDeadlines},
		{"kpis", (*Engine).extractKPIs},
		{"brand_guidelines", (*Engine).extractBrandGuidelines},
		{"action_items", (*Engine).extractActionItems},
		{"warnings", (*Engine).extractWarnings},
	}

	return e
}
