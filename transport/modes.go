package transport

import (
	"sort"
	"strings"
)

// ModeSet is a sorted, deduplicated, lower-cased set of transport-mode
// tags used as an allowed-mode filter. A nil ModeSet means "no filter".
// The sorted representation keeps membership O(log k) and iteration
// order deterministic.
type ModeSet []string

// NewModeSet normalizes the given tags (lower-case, drop blanks,
// deduplicate, sort). An empty input yields a nil set, i.e. no filter.
func NewModeSet(modes ...string) ModeSet {
	normalized := normalizeModes(modes)
	if len(normalized) == 0 {
		return nil
	}
	sort.Strings(normalized)

	// Deduplicate in place on the sorted slice.
	out := normalized[:1]
	for _, m := range normalized[1:] {
		if m != out[len(out)-1] {
			out = append(out, m)
		}
	}

	return ModeSet(out)
}

// Has reports whether mode (already lower-cased) is in the set.
func (s ModeSet) Has(mode string) bool {
	i := sort.SearchStrings([]string(s), mode)

	return i < len(s) && s[i] == mode
}

// Intersect returns the modes present in both sets. A nil receiver
// acts as the universe: the other set is returned unchanged.
func (s ModeSet) Intersect(other ModeSet) ModeSet {
	if s == nil {
		return other
	}
	if other == nil {
		return s
	}

	var out ModeSet
	for _, m := range s {
		if other.Has(m) {
			out = append(out, m)
		}
	}

	return out
}

// Empty reports whether the set contains no modes. Note that a nil set
// is "no filter", not an empty filter; Empty is meant for the result
// of an Intersect between two non-nil sets.
func (s ModeSet) Empty() bool { return len(s) == 0 }

// normalizeModes lower-cases the tags and drops blanks, preserving
// declaration order. Shared by edge construction (order matters) and
// NewModeSet (which sorts afterwards).
func normalizeModes(modes []string) []string {
	out := make([]string, 0, len(modes))
	for _, m := range modes {
		m = strings.ToLower(strings.TrimSpace(m))
		if m == "" {
			continue
		}
		out = append(out, m)
	}

	return out
}
