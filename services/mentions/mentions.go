package mentions

import (
	"cashtag-mentions/models/constants"
	"cashtag-mentions/models/entities"
	"cashtag-mentions/pkg/observer"
	"cashtag-mentions/repositories/reports"
	"cashtag-mentions/services/report"
	"cashtag-mentions/services/twitter"
	"cashtag-mentions/utils/dates"
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func New(twitterService twitter.Service, repository reports.Repository, cfg Config) (*Impl, error) {
	var handles []string
	switch cfg.Mode {
	case constants.ScanModeMulti:
		for _, handle := range cfg.Handles {
			if handle = constants.NormalizeHandle(handle); handle != "" {
				handles = append(handles, handle)
			}
		}
	case constants.ScanModeSingle:
		if handle := constants.NormalizeHandle(cfg.Account); handle != "" {
			handles = append(handles, handle)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScanMode, cfg.Mode)
	}

	if len(handles) == 0 {
		return nil, ErrNoAccounts
	}

	window := cfg.Window
	if window <= 0 {
		window = dates.DefaultWindow
	}

	return &Impl{
		twitterService: twitterService,
		repository:     repository,
		mode:           cfg.Mode,
		handles:        handles,
		window:         window,
		now:            time.Now,
		observers:      map[observer.Observer]struct{}{},
	}, nil
}

func (service *Impl) RegisterObserver(o observer.Observer) {
	service.observers[o] = struct{}{}
}

func (service *Impl) notify(e observer.Event) {
	for o := range service.observers {
		o.OnNotify(e)
	}
}

// Scan reads every configured account over the trailing window and builds the
// ranked report. An account that fails is logged and contributes nothing; the
// scan itself only fails when ctx is done.
func (service *Impl) Scan(ctx context.Context) (*entities.Report, error) {
	logger := log.With().
		Str(constants.LogRunID, uuid.NewString()).
		Str(constants.LogScanMode, service.mode).
		Logger()

	window := dates.TrailingWindow(service.now(), service.window)
	logger.Info().
		Str(constants.LogWindowStart, dates.ToWireTimestamp(window.Start)).
		Str(constants.LogWindowEnd, dates.ToWireTimestamp(window.End)).
		Msg("Start scanning accounts")

	total := NewAggregator()
	for _, handle := range service.handles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		accountAgg, err := service.scanAccount(ctx, logger, handle, window)
		if err != nil {
			logger.Error().Err(err).
				Str(constants.LogTwitterName, handle).
				Msg("Cannot retrieve tweets from account, ignored")
			continue
		}
		total.Merge(accountAgg)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	meta := report.Meta{Window: window, PostsScanned: total.Scanned()}
	if service.mode == constants.ScanModeSingle {
		meta.Account = service.handles[0]
	} else {
		meta.Handles = service.handles
	}
	result := report.Build(total.Counts(), meta)

	logger.Info().
		Int(constants.LogTweetNumber, result.PostsScanned).
		Int(constants.LogTickerNumber, len(result.Tickers)).
		Msgf("End scanning accounts, %s tweet(s) scanned", humanize.Comma(int64(result.PostsScanned)))

	if err := service.repository.Save(result); err != nil {
		logger.Error().Err(err).Msg("Cannot save report, continuing...")
	}
	service.notify(observer.NewReportEvent(&result))

	return &result, nil
}

// scanAccount aggregates one account on its own so that a failure halfway
// through its timeline leaves the run totals untouched.
func (service *Impl) scanAccount(ctx context.Context, logger zerolog.Logger, handle string, window entities.TimeWindow) (*Aggregator, error) {
	logger.Info().
		Str(constants.LogTwitterName, handle).
		Msg("Reading tweets...")

	userID, err := service.twitterService.ResolveAccount(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve @%s: %w", handle, err)
	}

	posts := service.twitterService.FetchPosts(ctx, userID, window)
	if service.mode == constants.ScanModeSingle {
		posts = service.twitterService.FetchAllPosts(ctx, userID, window)
	}

	agg := NewAggregator()
	if err := agg.Consume(posts); err != nil {
		return nil, fmt.Errorf("failed to fetch tweets of @%s: %w", handle, err)
	}

	logger.Info().
		Str(constants.LogTwitterName, handle).
		Str(constants.LogTwitterID, userID).
		Int(constants.LogTweetNumber, agg.Scanned()).
		Msg("Tweets read")

	return agg, nil
}
