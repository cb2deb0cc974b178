package application

import (
	"cashtag-mentions/models/constants"
	reportsRepo "cashtag-mentions/repositories/reports"
	"cashtag-mentions/services/health"
	"cashtag-mentions/services/mentions"
	"cashtag-mentions/services/report"
	"cashtag-mentions/services/twitter"
	"cashtag-mentions/utils/insights"
	"context"
	"io"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// New wires the application from viper. Reports are written to out.
func New(out io.Writer) (*Impl, error) {
	twitterService, errTwitter := twitter.New(twitter.Config{
		BearerToken: viper.GetString(constants.TwitterBearerToken),
		BaseURL:     viper.GetString(constants.TwitterAPIURL),
		MaxResults:  viper.GetInt(constants.TwitterTweetCount),
		Backoff: twitter.Backoff{
			Min: viper.GetDuration(constants.RateLimitMinWait),
			Max: viper.GetDuration(constants.RateLimitMaxWait),
		},
	})
	if errTwitter != nil {
		return nil, errTwitter
	}

	// Repositories
	repo := reportsRepo.New(viper.GetDuration(constants.ReportCacheTTL))

	mentionsService, errMentions := mentions.New(twitterService, repo, mentions.Config{
		Mode:    strings.ToLower(strings.TrimSpace(viper.GetString(constants.ScanMode))),
		Handles: constants.ParseHandles(viper.GetString(constants.Handles)),
		Account: viper.GetString(constants.Account),
		Window:  viper.GetDuration(constants.ScanWindow),
	})
	if errMentions != nil {
		return nil, errMentions
	}

	reportService := report.New(out)
	mentionsService.RegisterObserver(reportService)

	app := &Impl{
		ctx:             context.Background(),
		mentionsService: mentionsService,
		reportService:   reportService,
		reportsRepo:     repo,
	}

	crontab := viper.GetString(constants.ScanCronTab)
	if crontab == "" {
		return app, nil
	}

	scheduler, errScheduler := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if errScheduler != nil {
		return nil, errScheduler
	}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(crontab, false),
		gocron.NewTask(func() { app.scan() }),
		gocron.WithName(scanJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if errJob != nil {
		return nil, errJob
	}

	if _, errHealth := health.New(scheduler, viper.GetString(constants.HealthCronTab), repo); errHealth != nil {
		return nil, errHealth
	}

	if port := viper.GetInt(constants.ProbePort); port > 0 {
		app.probes = insights.NewProbes(port, repo.GetLatest)
	}
	app.scheduler = scheduler

	return app, nil
}

// Run scans once and returns, or when a scan cron tab is configured, keeps
// scanning on schedule until ctx is done.
func (app *Impl) Run(ctx context.Context) error {
	if app.scheduler == nil {
		_, err := app.mentionsService.Scan(ctx)
		return err
	}

	app.ctx = ctx
	app.scheduler.Start()
	for _, job := range app.scheduler.Jobs() {
		scheduledTime, err := job.NextRun()
		if err == nil {
			log.Info().Msgf("%v scheduled at %v", job.Name(), scheduledTime)
		}
	}

	if app.probes != nil {
		app.probes.ListenAndServe()
	}

	log.Info().Msgf("%s v%s is now running. Press CTRL-C to exit.", constants.ExternalName, constants.Version)
	<-ctx.Done()

	log.Info().Msgf("Gracefully shutting down %s...", constants.ExternalName)
	app.Shutdown()
	return nil
}

func (app *Impl) Shutdown() {
	if app.scheduler != nil {
		if err := app.scheduler.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Cannot shutdown scheduler, continuing...")
		}
	}
	if app.probes != nil {
		app.probes.Shutdown()
	}
	log.Info().Msgf("Application is no longer running")
}

func (app *Impl) scan() {
	if _, err := app.mentionsService.Scan(app.ctx); err != nil {
		log.Error().Err(err).Msg("Scan interrupted")
	}
}
