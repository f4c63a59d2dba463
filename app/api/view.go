package api

import (
	"time"

	"github.com/lysyi3m/day-reel/app/browser"
	"github.com/lysyi3m/day-reel/app/content"
)

const emptyTitle = "No videos"

type EmbedView struct {
	Number   int
	Kind     content.ItemType
	EmbedURL string
	PostID   string
	PostURL  string

	// LoadWidget is set on the first post of a page only.
	LoadWidget bool
}

type StatusView struct {
	Loading  bool
	Fallback bool
	Synced   bool
	LastSync string
	Message  string
}

type PageView struct {
	Title       string
	Date        string
	HasPrevious bool
	HasNext     bool
	Items       []EmbedView
	Status      StatusView
	Version     string
}

// widgetGuard records whether the post widget script has been emitted for
// the page being rendered. It is never reset during a render.
type widgetGuard struct {
	loaded bool
}

func (g *widgetGuard) claim() bool {
	if g.loaded {
		return false
	}
	g.loaded = true
	return true
}

func buildPageView(snapshot browser.Snapshot, version string) PageView {
	view := PageView{
		Title:       emptyTitle,
		HasPrevious: snapshot.HasPrevious(),
		HasNext:     snapshot.HasNext(),
		Status:      buildStatusView(snapshot),
		Version:     version,
	}

	current, ok := snapshot.Current()
	if !ok {
		return view
	}

	view.Title = content.FormatLongDate(current.Date)
	view.Date = current.Date
	view.Items = buildEmbeds(current.Items)

	return view
}

func buildEmbeds(items []content.Item) []EmbedView {
	guard := &widgetGuard{}
	embeds := make([]EmbedView, 0, len(items))

	for _, item := range items {
		switch item.Type {
		case content.ItemTypeVideo:
			id, ok := content.ExtractVideoID(item.VideoURL)
			if !ok {
				continue
			}
			embeds = append(embeds, EmbedView{
				Number:   len(embeds) + 1,
				Kind:     content.ItemTypeVideo,
				EmbedURL: content.VideoEmbedURL(id),
			})
		case content.ItemTypePost:
			embeds = append(embeds, EmbedView{
				Number:     len(embeds) + 1,
				Kind:       content.ItemTypePost,
				PostID:     item.PostID,
				PostURL:    content.PostURL(item.PostID),
				LoadWidget: guard.claim(),
			})
		}
	}

	return embeds
}

func buildStatusView(snapshot browser.Snapshot) StatusView {
	status := StatusView{
		Loading:  snapshot.Loading,
		Fallback: snapshot.UsingFallback,
	}

	if snapshot.LastSyncTime != nil {
		status.LastSync = snapshot.LastSyncTime.In(time.Local).Format(time.RFC3339)
	}

	switch {
	case snapshot.UsingFallback:
		status.Message = "Live data unavailable, showing saved collection"
		if snapshot.LastError != "" {
			status.Message += ": " + snapshot.LastError
		}
	case snapshot.LastSyncTime != nil:
		status.Synced = true
		status.Message = "Synced " + snapshot.LastSyncTime.In(time.Local).Format("15:04")
	case snapshot.Loading:
		status.Message = "Loading…"
	}

	return status
}
