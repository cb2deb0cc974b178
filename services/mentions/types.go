package mentions

import (
	"cashtag-mentions/models/entities"
	"cashtag-mentions/pkg/observer"
	"cashtag-mentions/repositories/reports"
	"cashtag-mentions/services/twitter"
	"context"
	"errors"
	"time"
)

var (
	ErrUnknownScanMode = errors.New("unknown scan mode")
	ErrNoAccounts      = errors.New("no account to scan")
)

type Config struct {
	Mode    string
	Handles []string
	Account string
	Window  time.Duration
}

type Service interface {
	Scan(ctx context.Context) (*entities.Report, error)
	RegisterObserver(o observer.Observer)
}

type Impl struct {
	twitterService twitter.Service
	repository     reports.Repository
	mode           string
	handles        []string
	window         time.Duration
	now            func() time.Time
	observers      map[observer.Observer]struct{}
}

// Aggregator accumulates ticker mentions over posts. A ticker counts at most
// once per post.
type Aggregator struct {
	counts  entities.TickerCount
	scanned int
}
