package source

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/lysyi3m/day-reel/app/content"
)

// NewAdapterFromConfig assembles the spreadsheet source, every enabled
// channel feed in configCache and the fallback list.
func NewAdapterFromConfig(sourceURL string, timeout time.Duration, configCache *ConfigCache,
	fallback content.Sequence, httpClient *http.Client, userAgent string) *Adapter {
	fetcher := NewFetcher(httpClient, userAgent)

	var sources []Source
	if sourceURL != "" {
		sources = append(sources, NewCSVSource(sourceURL, timeout, fetcher))
	}

	if configCache != nil {
		feedConfigs := configCache.GetEnabledConfigs()
		names := make([]string, 0, len(feedConfigs))
		for name := range feedConfigs {
			names = append(names, name)
		}
		sort.Strings(names)

		filterer := NewFilterer()
		for _, name := range names {
			sources = append(sources, NewFeedSource(feedConfigs[name], fetcher, filterer))
		}
	}

	slog.Debug("Content sources configured", "count", len(sources))

	return NewAdapter(fallback, sources...)
}
