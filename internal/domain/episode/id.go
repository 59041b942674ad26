package episode

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
)

var numericID = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// CompareIDs orders episode identifiers. Numeric identifiers compare by value, so "2"
// sorts before "10", and come before non-numeric ones, which compare as strings.
// Equal numeric values ("7", "07") fall back to string order to keep the order total.
func CompareIDs(a, b string) int {
	na, aok := parseNumericID(a)
	nb, bok := parseNumericID(b)

	switch {
	case aok && bok:
		if c := cmp.Compare(na, nb); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	case aok:
		return -1
	case bok:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}

// SortIDs sorts identifiers in place with CompareIDs.
func SortIDs(ids []string) {
	slices.SortFunc(ids, CompareIDs)
}

func parseNumericID(s string) (float64, bool) {
	if !numericID.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
