package tags

import (
	"cmp"
	"slices"
	"strings"

	"github.com/kailas-cloud/episearch/internal/domain/episode"
)

// SampleSize bounds the dropped-tag sample and the top-tag list.
const SampleSize = 20

// TagCount is a tag with the number of episodes carrying it.
type TagCount struct {
	Tag   string
	Count int
}

// Report describes what a cleanup changed.
type Report struct {
	MinOccurrences int

	// Frequency analysis over normalized tags.
	UniqueTags    int
	KeptTags      int
	DroppedTags   int
	DroppedSample []string

	EpisodesModified int
	TagsBefore       int
	TagsAfter        int
	TagsRemoved      int
	TagsConsolidated int
	FormatFixes      int

	TaggedEpisodes int
	Top            []TagCount
}

// Reduction returns the share of tags removed, in percent.
func (r Report) Reduction() float64 {
	if r.TagsBefore == 0 {
		return 0
	}
	return float64(r.TagsBefore-r.TagsAfter) / float64(r.TagsBefore) * 100
}

// Cleanup rewrites the Tags field of every row in place. Normalized tags occurring fewer
// than minOccurrences times across the export are removed; the rest are de-duplicated,
// sorted and joined with ", ". Rows without tags are left untouched.
func (n *Normalizer) Cleanup(rows []episode.Raw, minOccurrences int) Report {
	if minOccurrences < 1 {
		minOccurrences = 1
	}
	report := Report{MinOccurrences: minOccurrences}

	freq := make(map[string]int)
	for _, row := range rows {
		for _, tag := range Split(row.Text(episode.KeyTags)) {
			if normalized, ok := n.Normalize(tag); ok {
				freq[normalized]++
			}
		}
	}

	report.UniqueTags = len(freq)
	dropped := make([]string, 0)
	for tag, count := range freq {
		if count >= minOccurrences {
			report.KeptTags++
		} else {
			dropped = append(dropped, tag)
		}
	}
	slices.Sort(dropped)
	report.DroppedTags = len(dropped)
	report.DroppedSample = dropped[:min(len(dropped), SampleSize)]

	final := make(map[string]int)
	for _, row := range rows {
		value := row.Text(episode.KeyTags)
		if value == "" {
			continue
		}

		original := Split(value)
		report.TagsBefore += len(original)

		kept := make([]string, 0, len(original))
		changed := false
		for _, tag := range original {
			normalized, ok := n.Normalize(tag)
			if !ok {
				report.TagsRemoved++
				changed = true
				continue
			}

			if normalized != strings.ToLower(strings.TrimSpace(tag)) {
				switch {
				case n.IsCanonical(normalized):
					report.TagsConsolidated++
				case strings.Contains(tag, " "):
					report.FormatFixes++
				}
				changed = true
			}

			if freq[normalized] < minOccurrences {
				report.TagsRemoved++
				changed = true
				continue
			}
			if !slices.Contains(kept, normalized) {
				kept = append(kept, normalized)
			}
		}

		if changed {
			report.EpisodesModified++
		}

		slices.Sort(kept)
		row.SetText(episode.KeyTags, strings.Join(kept, ", "))
		report.TagsAfter += len(kept)

		if len(kept) > 0 {
			report.TaggedEpisodes++
		}
		for _, tag := range kept {
			final[tag]++
		}
	}

	report.Top = topTags(final, SampleSize)
	return report
}

// topTags orders tags by count, most frequent first, ties alphabetical.
func topTags(freq map[string]int, n int) []TagCount {
	out := make([]TagCount, 0, len(freq))
	for tag, count := range freq {
		out = append(out, TagCount{Tag: tag, Count: count})
	}
	slices.SortFunc(out, func(a, b TagCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Tag, b.Tag)
	})
	return out[:min(len(out), n)]
}
