package utils

import "strings"

// SlotRange is one parsed token of an availability declaration.
type SlotRange struct {
	Start string
	End   string
}

// ParseSlots splits text like "9-10, 11-12" into ranges. Empty tokens are
// skipped. A token that is not exactly "start-end" is kept whole as both
// start and end, so "14" yields {14, 14} and "9-10-11" yields
// {"9-10-11", "9-10-11"}.
func ParseSlots(text string) []SlotRange {
	var out []SlotRange
	for _, tok := range strings.Split(text, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		parts := strings.Split(tok, "-")
		if len(parts) == 2 {
			out = append(out, SlotRange{
				Start: strings.TrimSpace(parts[0]),
				End:   strings.TrimSpace(parts[1]),
			})
			continue
		}
		out = append(out, SlotRange{Start: tok, End: tok})
	}
	return out
}
