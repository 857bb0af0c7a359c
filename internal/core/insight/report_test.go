package insight

import (
	"reflect"
	"strings"
	"testing"

	"github.com/brieflab/briefsight/internal/core/domain"
)

const adSpecsBrief = `Ad Specs for the CrunchJoy campaign.

Launch CrunchJoy Crisps at Tesco to build awareness during summer.
Banner ad size: 1200x628 and 300x250. Format: JPG files under 2.5 MB.
Campaign window: 10 June 2026 – 31 July 2026. Assets due 27 May 2026.
Deadline: June 10, 2026 for all display banner deliveries.
CTR: 2.5% target. Conversion rate: 9%. ROAS: 4.2.
Primary color: #FF5733. Font: Helvetica Neue. Tone of voice: playful.
The CrunchJoy logo must appear with packshots (3 flavours max) and the Only at Tesco tag.
- Deliver final files to the portal.
No pricing and no T&Cs. All claims must comply with compliance requirements.
`

func TestAnalyzeFullBrief(t *testing.T) {
	got := New().Analyze(adSpecsBrief)

	if got.DocumentType.Label != "Ad Specs" {
		t.Errorf("document type = %q, want %q", got.DocumentType.Label, "Ad Specs")
	}

	wantDims := []string{"1200x628", "300x250"}
	if !reflect.DeepEqual(got.TechnicalSpecs.Dimensions, wantDims) {
		t.Errorf("dimensions = %v, want %v", got.TechnicalSpecs.Dimensions, wantDims)
	}
	if !reflect.DeepEqual(got.TechnicalSpecs.Formats, []string{"JPG"}) {
		t.Errorf("formats = %v, want [JPG]", got.TechnicalSpecs.Formats)
	}
	if !reflect.DeepEqual(got.TechnicalSpecs.FileSizes, []string{"2.5 MB"}) {
		t.Errorf("file sizes = %v, want [2.5 MB]", got.TechnicalSpecs.FileSizes)
	}

	if len(got.Deadlines) != 1 {
		t.Fatalf("deadlines = %v, want one entry", got.Deadlines)
	}
	if d := got.Deadlines[0]; d.Date != "June 10, 2026" || d.Type != domain.DeadlineTypeDeadline {
		t.Errorf("deadline = %+v, want June 10, 2026 typed deadline", d)
	}

	if !reflect.DeepEqual(got.KPIs["CTR"], []float64{2.5}) {
		t.Errorf("CTR = %v, want [2.5]", got.KPIs["CTR"])
	}

	if !reflect.DeepEqual(got.BrandGuidelines.Colors, []string{"#FF5733"}) {
		t.Errorf("colors = %v, want [#FF5733]", got.BrandGuidelines.Colors)
	}
	if !reflect.DeepEqual(got.BrandGuidelines.Tone, []string{"playful"}) {
		t.Errorf("tone = %v, want [playful]", got.BrandGuidelines.Tone)
	}

	if !reflect.DeepEqual(got.ActionItems, []string{"Deliver final files to the portal"}) {
		t.Errorf("action items = %v, want the bullet item", got.ActionItems)
	}

	if len(got.Warnings) != 1 {
		t.Fatalf("warnings = %v, want one compliance entry", got.Warnings)
	}
	if w := got.Warnings[0]; w.Type != domain.WarningTypeCompliance || w.Keyword != "compliance" {
		t.Errorf("warning = %+v, want compliance keyword match", w)
	}

	wantSummary := domain.Summary{
		Goal:        "Launch CrunchJoy Crisps at Tesco, building awareness during summer.",
		Dates:       "Jun 10, 2026 (assets due 27 May 2026).",
		Channels:    "Display ads.",
		Success:     "Targets: CTR ≥ 2.5%, conversion ≥ 9.0%, ROAS ≥ 4.2.",
		MustInclude: "CrunchJoy logo + packshots (3 max) + Tesco 'Only at Tesco' tag.",
		Avoid:       "Don't mention prices, T&Cs.",
	}
	if got.Summary != wantSummary {
		t.Errorf("summary = %+v, want %+v", got.Summary, wantSummary)
	}

	if len(got.Placements) != 2 {
		t.Fatalf("placements = %v, want one per dimension", got.Placements)
	}
	for i, spec := range got.Placements {
		if spec.Placement != "Display Banner" {
			t.Errorf("placement[%d] = %q, want Display Banner", i, spec.Placement)
		}
	}

	if !containsString(got.CreativeRequirements.MustHave, "Use file formats: JPG") {
		t.Errorf("must-have = %v, missing format requirement", got.CreativeRequirements.MustHave)
	}

	if !containsString(got.Guidelines.CopyRules, "No T&Cs allowed in creative.") {
		t.Errorf("copy rules = %v, missing T&C advice", got.Guidelines.CopyRules)
	}
	if !containsString(got.Guidelines.LegalRules, "All claims must comply with compliance requirements") {
		t.Errorf("legal rules = %v, missing bucketed compliance warning", got.Guidelines.LegalRules)
	}

	wantActions := []string{
		"Deliver final assets by June 10, 2026.",
		"Use only JPG files in the required sizes.",
		"All claims must comply with compliance requirements",
		"Include required tags/value tiles as specified.",
	}
	if !reflect.DeepEqual(got.StructuredActions, wantActions) {
		t.Errorf("structured actions = %v, want %v", got.StructuredActions, wantActions)
	}

	if got.Metadata.TextLength != len(adSpecsBrief) {
		t.Errorf("text length = %d, want %d", got.Metadata.TextLength, len(adSpecsBrief))
	}
	if want := len(strings.Fields(adSpecsBrief)); got.Metadata.WordCount != want {
		t.Errorf("word count = %d, want %d", got.Metadata.WordCount, want)
	}
	if got.Metadata.ExtractionMethod != extractionMethod {
		t.Errorf("extraction method = %q, want %q", got.Metadata.ExtractionMethod, extractionMethod)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	e := New()
	first := e.Analyze(adSpecsBrief)
	second := e.Analyze(adSpecsBrief)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated analysis of identical text produced different records")
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t  \n"} {
		got := New().Analyze(text)

		if got.DocumentType.Label != "Unknown" {
			t.Errorf("Analyze(%q) label = %q, want Unknown", text, got.DocumentType.Label)
		}
		if got.Summary.Goal != "" {
			t.Errorf("Analyze(%q) goal = %q, want empty", text, got.Summary.Goal)
		}
		if got.Summary.Dates != fallbackDates || got.Summary.Channels != fallbackChannels ||
			got.Summary.Success != fallbackTargets || got.Summary.MustInclude != fallbackMust ||
			got.Summary.Avoid != fallbackAvoid {
			t.Errorf("Analyze(%q) summary = %+v, want fallback lines", text, got.Summary)
		}
		if got.TechnicalSpecs.Dimensions == nil || got.Deadlines == nil || got.KPIs == nil {
			t.Errorf("Analyze(%q) returned nil containers", text)
		}
		if len(got.Placements) != 0 || got.Placements == nil {
			t.Errorf("Analyze(%q) placements = %v, want empty non-nil", text, got.Placements)
		}
		if got.Metadata.TextLength != 0 || got.Metadata.WordCount != 0 {
			t.Errorf("Analyze(%q) metadata = %+v, want zeroed counters", text, got.Metadata)
		}
		if got.Metadata.ExtractionMethod != extractionMethod {
			t.Errorf("Analyze(%q) method = %q, want %q", text, got.Metadata.ExtractionMethod, extractionMethod)
		}
	}
}
