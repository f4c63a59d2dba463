package source

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/lysyi3m/day-reel/app/content"
)

// FeedSource turns an RSS/Atom channel feed into dated collections.
type FeedSource struct {
	config       *FeedConfig
	fetcher      *Fetcher
	filterer     *Filterer
	gofeedParser *gofeed.Parser
}

func NewFeedSource(feedConfig *FeedConfig, fetcher *Fetcher, filterer *Filterer) *FeedSource {
	return &FeedSource{
		config:       feedConfig,
		fetcher:      fetcher,
		filterer:     filterer,
		gofeedParser: gofeed.NewParser(),
	}
}

func (s *FeedSource) Name() string {
	return "feed:" + s.config.Name
}

func (s *FeedSource) Timeout() time.Duration {
	return time.Duration(s.config.Settings.Timeout) * time.Second
}

func (s *FeedSource) Fetch(ctx context.Context) (content.Sequence, error) {
	data, err := s.fetcher.Run(ctx, s.config.URL, s.Timeout())
	if err != nil {
		return nil, err
	}

	entries, err := s.Parse(data)
	if err != nil {
		return nil, err
	}

	entries = s.filterer.Run(entries, s.config)

	if limit := s.config.Settings.MaxItems; limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return s.group(entries), nil
}

// Parse normalizes the feed document into entries.
func (s *FeedSource) Parse(data []byte) ([]Entry, error) {
	feed, err := s.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		entry := Entry{
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			Categories:  item.Categories,
			PublishedAt: cmp.Or(item.PublishedParsed, item.UpdatedParsed),
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (s *FeedSource) group(entries []Entry) content.Sequence {
	grouper := content.NewGrouper()
	skipped := 0

	for _, entry := range entries {
		if entry.PublishedAt == nil || entry.Link == "" {
			skipped++
			continue
		}

		item, ok := s.toItem(entry)
		if !ok {
			skipped++
			continue
		}

		grouper.Add(entry.PublishedAt.In(time.Local).Format("2006-01-02"), item)
	}

	if skipped > 0 {
		slog.Debug("Feed entries skipped", "feed", s.config.Name, "count", skipped)
	}

	return grouper.Sequence()
}

func (s *FeedSource) toItem(entry Entry) (content.Item, bool) {
	if content.ItemType(s.config.Settings.ItemType) == content.ItemTypePost {
		id, ok := PostIDFromURL(entry.Link)
		if !ok {
			return content.Item{}, false
		}
		return content.NewPost(id), true
	}
	return content.NewVideo(entry.Link), true
}

// PostIDFromURL returns the trailing numeric path segment of a status link.
func PostIDFromURL(link string) (string, bool) {
	u, err := url.Parse(link)
	if err != nil {
		return "", false
	}

	id := path.Base(strings.TrimRight(u.Path, "/"))
	if id == "" || id == "." || id == "/" {
		return "", false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return id, true
}
