package entities

import "time"

// TimeWindow is the half-open interval [Start, End) of a scan.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// TickerCount maps an uppercase ticker symbol to its number of mentions.
type TickerCount map[string]int

type TickerMention struct {
	Ticker   string `json:"ticker"`
	Mentions int    `json:"mentions"`
}

// Report is the document printed at the end of a scan. Account is only set in
// single mode and Handles only in multi mode.
type Report struct {
	Account        string          `json:"account,omitempty"`
	WindowStartUTC string          `json:"window_start_utc"`
	WindowEndUTC   string          `json:"window_end_utc"`
	Handles        []string        `json:"handles,omitempty"`
	PostsScanned   int             `json:"tweets_scanned"`
	Tickers        []TickerMention `json:"tickers"`
}
