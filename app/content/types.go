package content

// ItemType discriminates the ContentItem variants.
type ItemType string

const (
	ItemTypeVideo ItemType = "video"
	ItemTypePost  ItemType = "post"
)

// Source type values as they appear in the spreadsheet "type" column
const (
	SourceTypeVideo = "video-platform"
	SourceTypePost  = "social-post"
)

// Item is a single embeddable unit. Only the field matching Type is set.
type Item struct {
	Type     ItemType `json:"type" yaml:"type"`
	VideoURL string   `json:"url,omitempty" yaml:"url,omitempty"`
	PostID   string   `json:"id,omitempty" yaml:"id,omitempty"`
}

func NewVideo(url string) Item {
	return Item{Type: ItemTypeVideo, VideoURL: url}
}

func NewPost(id string) Item {
	return Item{Type: ItemTypePost, PostID: id}
}

type DatedCollection struct {
	Date  string `json:"date" yaml:"date"`
	Items []Item `json:"items" yaml:"items"`
}

// Sequence is ordered most recent first with unique dates.
type Sequence []DatedCollection

func (s Sequence) Dates() []string {
	dates := make([]string, len(s))
	for i, c := range s {
		dates[i] = c.Date
	}
	return dates
}

// IndexOf returns the position of date in the sequence or -1.
func (s Sequence) IndexOf(date string) int {
	for i, c := range s {
		if c.Date == date {
			return i
		}
	}
	return -1
}

func (s Sequence) ItemCount() int {
	total := 0
	for _, c := range s {
		total += len(c.Items)
	}
	return total
}
