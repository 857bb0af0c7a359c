package insight

import "strings"

// Dedup removes duplicates from a string list. Entries compare equal
// when their trimmed, case-folded forms match; the trimmed original
// casing of the first occurrence is kept and relative order preserved.
// Idempotent: Dedup(Dedup(x)) == Dedup(x).
func Dedup(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(strings.TrimSpace(item))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(item))
	}
	return out
}
