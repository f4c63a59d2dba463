package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

// DefaultSourceURL is the published collections sheet. It has to match the
// source-url default tag below.
const DefaultSourceURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vR_day-reel_collections/pub?output=csv"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Content sources
	SourceURL    string `long:"source-url" env:"SOURCE_URL" default:"https://docs.google.com/spreadsheets/d/e/2PACX-1vR_day-reel_collections/pub?output=csv" description:"Published spreadsheet CSV export URL (empty disables the spreadsheet)"`
	FeedsDir     string `long:"feeds-dir" env:"FEEDS_DIR" default:"./feeds" description:"Directory containing channel feed configuration files"`
	FallbackFile string `long:"fallback-file" env:"FALLBACK_FILE" description:"YAML file with collections shown when no live data is available"`

	// Application configuration
	Port                   string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	WorkerCount            int    `long:"worker-count" env:"WORKER_COUNT" default:"1" description:"Number of background workers for refresh tasks"`
	RefreshInterval        int    `long:"refresh-interval" env:"REFRESH_INTERVAL" default:"300" description:"Refresh interval in seconds"`
	FetchTimeout           int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"Spreadsheet fetch timeout in seconds"`
	ManualRefreshPerMinute int    `long:"manual-refresh-per-minute" env:"MANUAL_REFRESH_PER_MINUTE" default:"2" description:"Allowed manual refresh requests per minute"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Day Reel/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for feed entry dates (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	return LoadArgs(nil)
}

// LoadArgs parses args instead of os.Args when args is non-nil.
func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		SourceURL:              raw.SourceURL,
		FeedsDir:               raw.FeedsDir,
		FallbackFile:           raw.FallbackFile,
		Port:                   raw.Port,
		WorkerCount:            max(raw.WorkerCount, 1),
		RefreshInterval:        raw.RefreshInterval,
		FetchTimeout:           raw.FetchTimeout,
		ManualRefreshPerMinute: raw.ManualRefreshPerMinute,
		UserAgent:              raw.UserAgent,
		Timezone:               raw.Timezone,
		Debug:                  raw.Debug,
		Version:                GetVersion(),
	}

	if cfg.RefreshInterval <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive, got %d", cfg.RefreshInterval)
	}
	if cfg.FetchTimeout < 0 {
		return nil, fmt.Errorf("fetch timeout must be non-negative, got %d", cfg.FetchTimeout)
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func (c *Cfg) GetRefreshInterval() time.Duration {
	return time.Duration(c.RefreshInterval) * time.Second
}

func (c *Cfg) GetFetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeout) * time.Second
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
