package episode

// Searchable is the display projection of a record shipped to the browser.
// The takeaways and revenue keys keep the spelling the episode pages read.
type Searchable struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Guest               string   `json:"guest"`
	Summary             string   `json:"summary"`
	Date                string   `json:"date"`
	Duration            string   `json:"duration"`
	BusinessName        string   `json:"business_name"`
	IndustryCategory    string   `json:"industry_category"`
	IndustrySubcategory string   `json:"industry_subcategory"`
	BusinessActivity    string   `json:"business_activity"`
	Topics              []string `json:"topics"`
	Tags                []string `json:"tags"`
	KeyTakeaways        string   `json:"Key Takeaways"`
	Revenue             string   `json:"Revenue"`
	YouTube             string   `json:"youtube"`
	Spotify             string   `json:"spotify"`
	Apple               string   `json:"apple"`
}

// Project builds the display projection. The summary is carried in full.
func (r *Record) Project() Searchable {
	return Searchable{
		ID:                  r.EpisodeID(),
		Title:               string(r.Title),
		Guest:               string(r.Guest),
		Summary:             string(r.Summary),
		Date:                string(r.Date),
		Duration:            string(r.Duration),
		BusinessName:        string(r.BusinessName),
		IndustryCategory:    string(r.IndustryCategory),
		IndustrySubcategory: string(r.IndustrySubcategory),
		BusinessActivity:    string(r.BusinessActivity),
		Topics:              SplitList(string(r.Topics)),
		Tags:                SplitList(string(r.Tags)),
		KeyTakeaways:        string(r.KeyTakeaways),
		Revenue:             string(r.Revenue),
		YouTube:             string(r.YouTubeURL),
		Spotify:             string(r.SpotifyURL),
		Apple:               string(r.AppleURL),
	}
}
