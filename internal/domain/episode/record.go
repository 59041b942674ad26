// Package episode models rows of the podcast episode metadata export and their
// search-facing projections.
package episode

import (
	"bytes"
	"encoding/json"
	"strings"
)

// NotApplicable is the placeholder the metadata export uses for unknown categories.
const NotApplicable = "N/A"

// Text is a record field value. JSON strings are taken verbatim, numbers and booleans
// keep their literal text, and null, objects or arrays decode to the empty string.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*t = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err //nolint:wrapcheck // decoder adds context
		}
		*t = Text(s)
	case 'n', '{', '[':
		*t = ""
	default:
		*t = Text(data)
	}
	return nil
}

// String returns the field value.
func (t Text) String() string { return string(t) }

// Record is one row of the episode metadata export.
// Every field is optional; a missing field reads as "".
type Record struct {
	ID                  Text `json:"Episode #"`
	Title               Text `json:"Episode Title"`
	Summary             Text `json:"Episode Summary"`
	Guest               Text `json:"Guest Name"`
	BusinessName        Text `json:"Business Name"`
	Topics              Text `json:"Topics"`
	Tags                Text `json:"Tags"`
	BusinessActivity    Text `json:"Business Activity"`
	IndustryCategory    Text `json:"Industry Category"`
	IndustrySubcategory Text `json:"Industry Subcategory"`
	KeyTakeaways        Text `json:"Key Takeaways"`
	Date                Text `json:"Episode Date"`
	Duration            Text `json:"Episode Duration"`
	Revenue             Text `json:"Revenue"`
	YouTubeURL          Text `json:"youtube_url"`
	SpotifyURL          Text `json:"spotify_url"`
	AppleURL            Text `json:"apple_url"`
}

// EpisodeID returns the trimmed identifier; "" means the record cannot be indexed.
func (r *Record) EpisodeID() string {
	return strings.TrimSpace(string(r.ID))
}

// SearchableText joins the indexed fields with single spaces, skipping empty ones.
// Field order: title, summary, guest, business name, topics, tags, business activity,
// industry category, industry subcategory, key takeaways.
func (r *Record) SearchableText() string {
	fields := [...]Text{
		r.Title,
		r.Summary,
		r.Guest,
		r.BusinessName,
		r.Topics,
		r.Tags,
		r.BusinessActivity,
		r.IndustryCategory,
		r.IndustrySubcategory,
		r.KeyTakeaways,
	}

	var b strings.Builder
	for _, f := range fields {
		if f == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(f))
	}
	return b.String()
}

// Industries returns the comma-separated industry categories, N/A excluded.
func (r *Record) Industries() []string { return FilterValues(string(r.IndustryCategory)) }

// Subcategories returns the comma-separated industry subcategories, N/A excluded.
func (r *Record) Subcategories() []string { return FilterValues(string(r.IndustrySubcategory)) }

// SplitList splits a comma-joined field, trimming pieces and dropping empty ones.
// The result is never nil.
func SplitList(s string) []string {
	out := []string{}
	if s == "" {
		return out
	}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FilterValues splits a category field into filter values.
// The N/A placeholder never becomes a value, whether alone or inside a list.
func FilterValues(s string) []string {
	if strings.TrimSpace(s) == NotApplicable {
		return nil
	}
	var out []string
	for _, v := range SplitList(s) {
		if v != NotApplicable {
			out = append(out, v)
		}
	}
	return out
}
