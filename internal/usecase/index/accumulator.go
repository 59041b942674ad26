package index

import (
	"maps"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/kailas-cloud/episearch/internal/domain/episode"
	"github.com/kailas-cloud/episearch/internal/domain/token"
)

// accumulator collects postings and filter values for a slice of records.
// Postings hold record positions, not identifiers, so a bucket is a bitmap and
// partial accumulators merge with a union.
type accumulator struct {
	postings      map[string]*roaring.Bitmap
	industries    map[string]struct{}
	subcategories map[string]struct{}
}

func newAccumulator() *accumulator {
	return &accumulator{
		postings:      make(map[string]*roaring.Bitmap),
		industries:    make(map[string]struct{}),
		subcategories: make(map[string]struct{}),
	}
}

// add indexes the record at position pos. Each distinct token is inserted once.
func (a *accumulator) add(pos uint32, rec *episode.Record) {
	for _, t := range token.Unique(token.Tokenize(rec.SearchableText())) {
		bm, ok := a.postings[t]
		if !ok {
			bm = roaring.New()
			a.postings[t] = bm
		}
		bm.Add(pos)
	}

	for _, v := range rec.Industries() {
		a.industries[v] = struct{}{}
	}
	for _, v := range rec.Subcategories() {
		a.subcategories[v] = struct{}{}
	}
}

// merge unions other into a. other must not be used afterwards.
func (a *accumulator) merge(other *accumulator) {
	for t, bm := range other.postings {
		if mine, ok := a.postings[t]; ok {
			mine.Or(bm)
			continue
		}
		a.postings[t] = bm
	}
	for v := range other.industries {
		a.industries[v] = struct{}{}
	}
	for v := range other.subcategories {
		a.subcategories[v] = struct{}{}
	}
}

// index resolves positions to identifiers. Records sharing an identifier collapse
// into one entry; each posting list is sorted with episode.CompareIDs.
func (a *accumulator) index(ids []string) map[string][]string {
	out := make(map[string][]string, len(a.postings))
	for t, bm := range a.postings {
		list := make([]string, 0, bm.GetCardinality())
		seen := make(map[string]struct{}, bm.GetCardinality())
		it := bm.Iterator()
		for it.HasNext() {
			id := ids[it.Next()]
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			list = append(list, id)
		}
		episode.SortIDs(list)
		out[t] = list
	}
	return out
}

// sortedValues returns the set as a sorted, non-nil slice.
func sortedValues(set map[string]struct{}) []string {
	if len(set) == 0 {
		return []string{}
	}
	return slices.Sorted(maps.Keys(set))
}
