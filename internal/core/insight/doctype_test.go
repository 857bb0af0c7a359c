package insight

import (
	"strings"
	"testing"
)

func TestClassifyDocumentType(t *testing.T) {
	e := New()
	tests := []struct {
		name           string
		text           string
		wantLabel      string
		wantConfidence float64
	}{
		{
			name:           "strong creative brief signal saturates confidence",
			text:           "This creative brief is the campaign brief and sets the creative direction.",
			wantLabel:      "Creative Brief",
			wantConfidence: 1.0,
		},
		{
			name:           "single keyword",
			text:           "Review the media schedule before the buy is locked.",
			wantLabel:      "Media Plan",
			wantConfidence: 0.33,
		},
		{
			name:           "two keywords",
			text:           "Ad specs follow. Every ad size is fixed by the template.",
			wantLabel:      "Ad Specs",
			wantConfidence: 0.67,
		},
		{
			name:           "tie keeps earlier label",
			text:           "One brief and one report.",
			wantLabel:      "Creative Brief",
			wantConfidence: 0.33,
		},
		{
			name:           "no keywords falls back to Other",
			text:           "Zebra crossings were repainted overnight.",
			wantLabel:      "Other",
			wantConfidence: 0.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ClassifyDocumentType(tt.text)
			if got.Label != tt.wantLabel {
				t.Errorf("label = %q, want %q", got.Label, tt.wantLabel)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
			if got.Scores == nil {
				t.Error("scores map is nil, want populated")
			}
		})
	}
}

func TestClassifyDocumentTypeIgnoresTextBeyondHead(t *testing.T) {
	e := New()
	text := strings.Repeat("x", doctypeHead) + " performance report with analytics and metrics"

	got := e.ClassifyDocumentType(text)

	if got.Label != "Other" {
		t.Fatalf("label = %q, want Other for keywords past the scan window", got.Label)
	}
}
