package insight

import (
	"reflect"
	"testing"
)

func TestDedup(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "keeps first seen casing and trims",
			in:   []string{"  CrunchJoy  ", "crunchjoy", "Tesco", "TESCO "},
			want: []string{"CrunchJoy", "Tesco"},
		},
		{
			name: "drops whitespace-only entries",
			in:   []string{"", "   ", "one"},
			want: []string{"one"},
		},
		{
			name: "preserves relative order",
			in:   []string{"b", "a", "B", "c"},
			want: []string{"b", "a", "c"},
		},
		{
			name: "empty input",
			in:   nil,
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dedup(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Dedup(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDedupIsIdempotent(t *testing.T) {
	once := Dedup([]string{"Alpha", "beta", "ALPHA", " beta "})
	twice := Dedup(once)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("second pass changed result: %v vs %v", once, twice)
	}
}
