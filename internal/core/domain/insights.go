package domain

// TechnicalSpecs holds raw per-category matches for creative file
// requirements. All three lists are always present, possibly empty.
type TechnicalSpecs struct {
	Dimensions []string `json:"dimensions"`
	Formats    []string `json:"formats"`
	FileSizes  []string `json:"file_sizes"`
}

const (
	DeadlineTypeDeadline  = "deadline"
	DeadlineTypeMentioned = "mentioned_date"
)

// Deadline is one date found in the text, classified by the keywords
// in a character window around its first occurrence.
type Deadline struct {
	Date    string `json:"date"`
	Type    string `json:"type"`
	Context string `json:"context"`
}

// BrandGuidelines holds colors, fonts and tone words in first-seen order.
type BrandGuidelines struct {
	Colors []string `json:"colors"`
	Fonts  []string `json:"fonts"`
	Tone   []string `json:"tone"`
}

const (
	WarningTypeCompliance = "compliance"
	WarningTypeWarning    = "warning"
)

// Warning is one flagged sentence. Keyword is the first taxonomy term
// that matched inside the sentence.
type Warning struct {
	Type    string `json:"type"`
	Text    string `json:"text"`
	Keyword string `json:"keyword"`
}

// Extraction is the raw, unstructured output of the pattern pass.
type Extraction struct {
	TechnicalSpecs  TechnicalSpecs       `json:"technical_specs"`
	Deadlines       []Deadline           `json:"deadlines"`
	KPIs            map[string][]float64 `json:"kpis"`
	BrandGuidelines BrandGuidelines      `json:"brand_guidelines"`
	ActionItems     []string             `json:"action_items"`
	Warnings        []Warning            `json:"warnings"`
}

// Summary is the tweet-level view of a brief: one short line per facet,
// each with an explicit fallback string when nothing was found.
type Summary struct {
	Goal        string `json:"goal"`
	Dates       string `json:"dates"`
	Channels    string `json:"channels"`
	Success     string `json:"success"`
	MustInclude string `json:"must_include"`
	Avoid       string `json:"avoid"`
}

// CreativeRequirements splits detected creative obligations into
// mandatory and suggested elements.
type CreativeRequirements struct {
	MustHave []string `json:"must_have"`
	Optional []string `json:"optional"`
}

// PlacementSpec pairs one detected dimension with a named placement and
// its file constraints.
type PlacementSpec struct {
	Placement   string   `json:"placement"`
	Size        string   `json:"size"`
	FileFormats []string `json:"file_formats"`
	MinFontSize string   `json:"min_font_size"`
	Notes       []string `json:"notes"`
}

// GuidelineCategories buckets rules and warnings. A warning matching no
// category lands in LegalRules.
type GuidelineCategories struct {
	CopyRules          []string `json:"copy_rules"`
	DesignRules        []string `json:"design_rules"`
	AccessibilityRules []string `json:"accessibility_rules"`
	LegalRules         []string `json:"legal_rules"`
}

// DocumentType is the keyword-scored label for the brief as a whole.
type DocumentType struct {
	Label      string         `json:"document_type"`
	Confidence float64        `json:"confidence"`
	Scores     map[string]int `json:"scores,omitempty"`
}

// Metadata describes the analyzed text itself.
type Metadata struct {
	TextLength       int    `json:"text_length"`
	WordCount        int    `json:"word_count"`
	ExtractionMethod string `json:"extraction_method"`
}

// Insights is the complete analysis record for one brief: the raw
// extraction plus all structured artifacts built from it.
type Insights struct {
	DocumentType         DocumentType         `json:"document_type"`
	TechnicalSpecs       TechnicalSpecs       `json:"technical_specs"`
	Deadlines            []Deadline           `json:"deadlines"`
	KPIs                 map[string][]float64 `json:"kpis"`
	BrandGuidelines      BrandGuidelines      `json:"brand_guidelines"`
	ActionItems          []string             `json:"action_items"`
	Warnings             []Warning            `json:"warnings"`
	Summary              Summary              `json:"summary"`
	CreativeRequirements CreativeRequirements `json:"creative_requirements"`
	Placements           []PlacementSpec      `json:"technical_specs_structured"`
	Guidelines           GuidelineCategories  `json:"guidelines"`
	StructuredActions    []string             `json:"action_items_structured"`
	Metadata             Metadata             `json:"metadata"`
}
