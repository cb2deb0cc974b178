package constants

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	ConfigFileName = ".env"

	//nolint:gosec // False positive.
	// Bearer token of the Twitter API v2 application.
	TwitterBearerToken = "X_BEARER_TOKEN"

	// Base URL of the Twitter API v2.
	TwitterAPIURL = "TWITTER_API_URL"

	// Number of tweets retrieved per call, [5, 100].
	TwitterTweetCount = "TWEET_COUNT"

	// Either "multi" (several handles, one page each) or "single" (one account, paginated).
	ScanMode = "SCAN_MODE"

	// Comma-separated handles scanned in multi mode.
	Handles = "HANDLES"

	// Handle scanned in single mode.
	Account = "ACCOUNT"

	// Trailing window scanned. Duration type.
	ScanWindow = "SCAN_WINDOW"

	// Bounds of the wait applied on a rate limited response. Duration type.
	RateLimitMinWait = "RATE_LIMIT_MIN_WAIT"
	RateLimitMaxWait = "RATE_LIMIT_MAX_WAIT"

	// Cron tab to scan. Empty means one scan then exit.
	ScanCronTab = "SCAN_CRON_TAB"

	// Cron tab to health.
	HealthCronTab = "HEALTH_CRON_TAB"

	// Probe port, 0 disables probes.
	ProbePort = "PROBE_PORT"

	// Lifetime of the latest report kept in memory. Duration type.
	ReportCacheTTL = "REPORT_CACHE_TTL"

	// Zerolog values from [trace, debug, info, warn, error, fatal, panic].
	LogLevel = "LOG_LEVEL"

	defaultTwitterBearerToken = ""
	defaultTwitterAPIURL      = "https://api.twitter.com"
	defaultTwitterTweetCount  = 100
	defaultScanMode           = ScanModeMulti
	defaultHandles            = "buzztickr,allday_stocks,AltindexApp,thinknum"
	defaultAccount            = "unusual_whales"
	defaultScanWindow         = 24 * time.Hour
	defaultRateLimitMinWait   = 5 * time.Second
	defaultRateLimitMaxWait   = 60 * time.Second
	defaultScanCronTab        = ""
	defaultHealthCrontab      = "*/15 * * * *"
	defaultProbePort          = 0
	defaultReportCacheTTL     = 24 * time.Hour
	defaultLogLevel           = zerolog.InfoLevel
)

func GetDefaultConfigValues() map[string]any {
	return map[string]any{
		TwitterBearerToken: defaultTwitterBearerToken,
		TwitterAPIURL:      defaultTwitterAPIURL,
		TwitterTweetCount:  defaultTwitterTweetCount,
		ScanMode:           defaultScanMode,
		Handles:            defaultHandles,
		Account:            defaultAccount,
		ScanWindow:         defaultScanWindow,
		RateLimitMinWait:   defaultRateLimitMinWait,
		RateLimitMaxWait:   defaultRateLimitMaxWait,
		ScanCronTab:        defaultScanCronTab,
		HealthCronTab:      defaultHealthCrontab,
		ProbePort:          defaultProbePort,
		ReportCacheTTL:     defaultReportCacheTTL,
		LogLevel:           defaultLogLevel.String(),
	}
}
