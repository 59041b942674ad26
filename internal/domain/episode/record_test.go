package episode

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Text
	}{
		{"string", `"Scaling SaaS"`, "Scaling SaaS"},
		{"escaped string", `"café \"quoted\""`, `café "quoted"`},
		{"integer", `42`, "42"},
		{"float", `3.5`, "3.5"},
		{"bool", `true`, "true"},
		{"null", `null`, ""},
		{"object", `{"a":1}`, ""},
		{"array", `["a","b"]`, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got Text
			if err := json.Unmarshal([]byte(tc.json), &got); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRecord_DecodeHeterogeneous(t *testing.T) {
	data := `{
		"Episode #": 12,
		"Episode Title": "Buying a Laundromat",
		"Guest Name": null,
		"Topics": ["not", "a", "string"],
		"Revenue": "$2M",
		"Unknown Field": {"ignored": true}
	}`

	var r Record
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.EpisodeID() != "12" {
		t.Errorf("EpisodeID() = %q, want 12", r.EpisodeID())
	}
	if r.Guest != "" {
		t.Errorf("Guest = %q, want empty", r.Guest)
	}
	if r.Topics != "" {
		t.Errorf("Topics = %q, want empty", r.Topics)
	}
	if r.Revenue != "$2M" {
		t.Errorf("Revenue = %q", r.Revenue)
	}
	if r.Summary != "" {
		t.Errorf("missing Summary = %q, want empty", r.Summary)
	}
}

func TestRecord_EpisodeID(t *testing.T) {
	tests := []struct {
		id   Text
		want string
	}{
		{"7", "7"},
		{"  7 ", "7"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range tests {
		r := Record{ID: tc.id}
		if got := r.EpisodeID(); got != tc.want {
			t.Errorf("EpisodeID(%q) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestRecord_SearchableText(t *testing.T) {
	r := Record{
		ID:                  "1",
		Title:               "Title",
		Summary:             "Summary",
		Guest:               "Guest",
		BusinessName:        "Biz",
		Topics:              "t1, t2",
		Tags:                "tag",
		BusinessActivity:    "Activity",
		IndustryCategory:    "Cat",
		IndustrySubcategory: "Sub",
		KeyTakeaways:        "Takeaways",
		Date:                "2024-01-01",
		Revenue:             "$1M",
		YouTubeURL:          "https://youtube.example/x",
	}

	want := "Title Summary Guest Biz t1, t2 tag Activity Cat Sub Takeaways"
	if got := r.SearchableText(); got != want {
		t.Errorf("SearchableText() = %q, want %q", got, want)
	}
}

func TestRecord_SearchableText_SkipsEmpty(t *testing.T) {
	r := Record{ID: "1", Title: "Title", Tags: "saas, growth"}
	if got := r.SearchableText(); got != "Title saas, growth" {
		t.Errorf("SearchableText() = %q", got)
	}

	empty := Record{ID: "2"}
	if got := empty.SearchableText(); got != "" {
		t.Errorf("SearchableText() = %q, want empty", got)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"saas", []string{"saas"}},
		{" saas , growth ,, ", []string{"saas", "growth"}},
		{",,,", []string{}},
	}
	for _, tc := range tests {
		got := SplitList(tc.in)
		if got == nil {
			t.Fatalf("SplitList(%q) returned nil", tc.in)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("SplitList(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFilterValues(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"N/A", nil},
		{" N/A ", nil},
		{"Retail", []string{"Retail"}},
		{"Retail, Services", []string{"Retail", "Services"}},
		{"Retail, N/A", []string{"Retail"}},
		{" , Food ,", []string{"Food"}},
	}
	for _, tc := range tests {
		got := FilterValues(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("FilterValues(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRecord_Project(t *testing.T) {
	r := Record{
		ID:                  " 5 ",
		Title:               "Title",
		Guest:               "Jane",
		Summary:             "A long summary that is carried in full.",
		Date:                "2024-03-01",
		Duration:            "3600",
		BusinessName:        "Acme",
		IndustryCategory:    "Retail",
		IndustrySubcategory: "Grocery",
		BusinessActivity:    "Sells food",
		Topics:              "pricing, , hiring",
		KeyTakeaways:        "Hire slow",
		Revenue:             "$3M",
		YouTubeURL:          "yt",
		SpotifyURL:          "sp",
		AppleURL:            "ap",
	}

	got := r.Project()
	want := Searchable{
		ID:                  "5",
		Title:               "Title",
		Guest:               "Jane",
		Summary:             "A long summary that is carried in full.",
		Date:                "2024-03-01",
		Duration:            "3600",
		BusinessName:        "Acme",
		IndustryCategory:    "Retail",
		IndustrySubcategory: "Grocery",
		BusinessActivity:    "Sells food",
		Topics:              []string{"pricing", "hiring"},
		Tags:                []string{},
		KeyTakeaways:        "Hire slow",
		Revenue:             "$3M",
		YouTube:             "yt",
		Spotify:             "sp",
		Apple:               "ap",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Project() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestSearchable_WireNames(t *testing.T) {
	data, err := json.Marshal(Searchable{ID: "1", Topics: []string{}, Tags: []string{}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{
		"id", "title", "guest", "summary", "date", "duration", "business_name",
		"industry_category", "industry_subcategory", "business_activity", "topics", "tags",
		"Key Takeaways", "Revenue", "youtube", "spotify", "apple",
	} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if len(m) != 17 {
		t.Errorf("expected 17 keys, got %d", len(m))
	}
	if topics, ok := m["topics"].([]any); !ok || len(topics) != 0 {
		t.Errorf("topics = %#v, want empty array", m["topics"])
	}
}

func TestRaw_TextAndSetText(t *testing.T) {
	var r Raw
	if err := json.Unmarshal([]byte(`{"Tags":"a, b","Episode #":3,"Guest Name":null}`), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := r.Text(KeyTags); got != "a, b" {
		t.Errorf("Text(Tags) = %q", got)
	}
	if got := r.Text("Episode #"); got != "3" {
		t.Errorf("Text(Episode #) = %q", got)
	}
	if got := r.Text("Guest Name"); got != "" {
		t.Errorf("Text(Guest Name) = %q", got)
	}
	if got := r.Text("missing"); got != "" {
		t.Errorf("Text(missing) = %q", got)
	}

	r.SetText(KeyTags, "growth-strategy, saas")
	if got := r.Text(KeyTags); got != "growth-strategy, saas" {
		t.Errorf("after SetText, Text(Tags) = %q", got)
	}

	r.SetText(KeyTags, "r&d, <b2b>")
	if got := string(r[KeyTags]); got != `"r&d, <b2b>"` {
		t.Errorf("raw Tags = %s, want unescaped", got)
	}
	if got := r.Text(KeyTags); got != "r&d, <b2b>" {
		t.Errorf("Text(Tags) = %q", got)
	}
}
