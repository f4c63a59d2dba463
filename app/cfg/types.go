package cfg

type Cfg struct {
	// Content sources
	SourceURL    string
	FeedsDir     string
	FallbackFile string

	// Application configuration
	Port                   string
	WorkerCount            int
	RefreshInterval        int // seconds
	FetchTimeout           int // seconds
	ManualRefreshPerMinute int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
