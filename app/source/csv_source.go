package source

import (
	"context"
	"log/slog"
	"time"

	"github.com/lysyi3m/day-reel/app/content"
)

// CSVSource reads the published spreadsheet export.
type CSVSource struct {
	url     string
	timeout time.Duration
	fetcher *Fetcher
	parser  *content.CSVParser
}

func NewCSVSource(url string, timeout time.Duration, fetcher *Fetcher) *CSVSource {
	return &CSVSource{
		url:     url,
		timeout: timeout,
		fetcher: fetcher,
		parser:  content.NewCSVParser(),
	}
}

func (s *CSVSource) Name() string {
	return "spreadsheet"
}

func (s *CSVSource) Timeout() time.Duration {
	return s.timeout
}

func (s *CSVSource) Fetch(ctx context.Context) (content.Sequence, error) {
	data, err := s.fetcher.Run(ctx, s.url, s.timeout)
	if err != nil {
		return nil, err
	}

	seq, stats := s.parser.Run(data)

	slog.Debug("Spreadsheet parsed",
		"rows", stats.Rows,
		"kept", stats.Kept,
		"skipped", stats.Skipped,
		"days", len(seq))

	return seq, nil
}
