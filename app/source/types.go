package source

import (
	"context"
	"time"

	"github.com/lysyi3m/day-reel/app/content"
)

// Source produces dated collections from one upstream.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (content.Sequence, error)
}

// Channel feed configuration types

type FeedConfig struct {
	Name     string             // Derived from filename (without .yml extension)
	URL      string             `yaml:"url"`
	Settings FeedConfigSettings `yaml:"settings"`
	Filters  []FeedConfigFilter `yaml:"filters"`
}

type FeedConfigSettings struct {
	Enabled  bool   `yaml:"enabled"`
	MaxItems int    `yaml:"max_items"`
	Timeout  int    `yaml:"timeout"`   // seconds
	ItemType string `yaml:"item_type"` // video or post
}

type FeedConfigFilter struct {
	Field    string   `yaml:"field"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// Entry is a normalized channel feed entry.
type Entry struct {
	Title       string
	Link        string
	Description string
	Categories  []string
	PublishedAt *time.Time
}
