package domain

import "time"

// PubDateLayout is the canonical publication-date format. Dates are stored
// as strings in this layout so that lexicographic order equals time order.
const PubDateLayout = "2006-01-02 15:04:05"

// KST is the fixed display timezone; all publication dates are normalized
// into it before formatting.
var KST = time.FixedZone("KST", 9*60*60)

// TierUnset marks a record that has not been classified yet. Valid tiers
// after classification are 1 (highest priority) through TierOther.
const (
	TierUnset = 99
	TierOther = 6
)

// Record is the unit flowing through the scraping pipeline.
type Record struct {
	Title       string
	Link        string
	Description string
	PubDate     string
	Source      string
	Tier        int
	FullText    string
}

// Category groups the records produced for one labelled keyword group.
type Category struct {
	Label   string
	Records []Record
}

// SavedArticle is a hand-curated article persisted in the local store,
// keyed by its position in the list the user was viewing.
type SavedArticle struct {
	Index   int
	Title   string
	Link    string
	PubDate string
	Source  string
	Body    string
	SavedAt string
}
