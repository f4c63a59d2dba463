package source

import (
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
)

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run returns the entries that pass every filter, in their original order.
func (f *Filterer) Run(entries []Entry, feedConfig *FeedConfig) []Entry {
	if len(feedConfig.Filters) == 0 {
		return entries
	}

	fold := cases.Fold()
	kept := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if reason, excluded := f.applyFilters(fold, entry, feedConfig.Filters); excluded {
			slog.Debug("Feed entry filtered", "feed", feedConfig.Name, "link", entry.Link, "reason", reason)
			continue
		}
		kept = append(kept, entry)
	}

	return kept
}

func (f *Filterer) applyFilters(fold cases.Caser, entry Entry, filters []FeedConfigFilter) (string, bool) {
	for _, filter := range filters {
		value := fold.String(f.getFieldValue(entry, filter.Field))

		for _, exclude := range filter.Excludes {
			if strings.Contains(value, fold.String(exclude)) {
				return filter.Field + " contains '" + exclude + "'", true
			}
		}

		if len(filter.Includes) > 0 {
			matched := false
			for _, include := range filter.Includes {
				if strings.Contains(value, fold.String(include)) {
					matched = true
					break
				}
			}
			if !matched {
				return filter.Field + " matches no include rule", true
			}
		}
	}

	return "", false
}

func (f *Filterer) getFieldValue(entry Entry, field string) string {
	switch field {
	case "title":
		return entry.Title
	case "description":
		return entry.Description
	case "link":
		return entry.Link
	case "categories":
		return strings.Join(entry.Categories, " ")
	default:
		return ""
	}
}
