package content

import (
	"slices"
	"strings"
)

// Filter selects a subset of the writing collection.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterPost   Filter = "post"
	FilterReview Filter = "review"
)

// ParseFilter maps a query or attribute value to a Filter. Unknown values
// select everything.
func ParseFilter(s string) Filter {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterPost:
		return FilterPost
	case FilterReview:
		return FilterReview
	default:
		return FilterAll
	}
}

// SortedByNewest returns a new slice ordered by date, most recent first.
// Entries sharing a date keep their original relative order. The input is
// not modified.
func SortedByNewest(entries []WritingEntry) []WritingEntry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b WritingEntry) int {
		// ISO dates order lexically.
		return strings.Compare(b.Date, a.Date)
	})
	return out
}

// FilterKind keeps the entries matching f, preserving order.
func FilterKind(entries []WritingEntry, f Filter) []WritingEntry {
	if f == FilterAll {
		return slices.Clone(entries)
	}
	var out []WritingEntry
	for _, e := range entries {
		if string(e.Kind) == string(f) {
			out = append(out, e)
		}
	}
	return out
}

// Select returns the writing collection filtered by f and sorted newest first.
func Select(f Filter) []WritingEntry {
	return SortedByNewest(FilterKind(writingEntries, f))
}

// Take returns at most n leading elements. It never fails on short input.
func Take[T any](entries []T, n int) []T {
	if n <= 0 {
		return nil
	}
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}
