package source

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lysyi3m/day-reel/app/content"
)

// DefaultFallback is shown whenever no live data is available.
func DefaultFallback() content.Sequence {
	return content.Sequence{
		{
			Date: "2025-06-17",
			Items: []content.Item{
				content.NewVideo("https://www.youtube.com/watch?v=pOsFdlStD7U"),
				content.NewVideo("https://youtu.be/dQw4w9WgXcQ"),
				content.NewVideo("https://www.youtube.com/watch?v=jNQXAC9IVRw"),
			},
		},
	}
}

type fallbackEntry struct {
	Date  string         `yaml:"date"`
	Items []fallbackItem `yaml:"items"`
}

type fallbackItem struct {
	Type string `yaml:"type"`
	URL  string `yaml:"url"`
	ID   string `yaml:"id"`
}

// LoadFallback reads a YAML list of dated collections. Repeated dates are
// merged and the result is sorted newest first.
func LoadFallback(path string) (content.Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var entries []fallbackEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	grouper := content.NewGrouper()
	for i, entry := range entries {
		if entry.Date == "" {
			return nil, fmt.Errorf("entry at index %d has no date", i)
		}
		for j, raw := range entry.Items {
			item, err := raw.toItem()
			if err != nil {
				return nil, fmt.Errorf("entry %s item %d: %w", entry.Date, j, err)
			}
			grouper.Add(entry.Date, item)
		}
	}

	if grouper.Len() == 0 {
		return nil, fmt.Errorf("fallback file %s has no collections", path)
	}

	return grouper.Sequence(), nil
}

func (i fallbackItem) toItem() (content.Item, error) {
	switch i.Type {
	case string(content.ItemTypeVideo), content.SourceTypeVideo:
		if i.URL == "" {
			return content.Item{}, fmt.Errorf("video item requires url")
		}
		return content.NewVideo(i.URL), nil
	case string(content.ItemTypePost), content.SourceTypePost:
		if i.ID == "" {
			return content.Item{}, fmt.Errorf("post item requires id")
		}
		return content.NewPost(i.ID), nil
	default:
		return content.Item{}, fmt.Errorf("unknown item type %q", i.Type)
	}
}
