package health

import (
	"cashtag-mentions/repositories/reports"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

type Impl struct {
	repository reports.Repository
}

func New(scheduler gocron.Scheduler, crontab string, repository reports.Repository) (*Impl, error) {
	service := Impl{repository: repository}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(crontab, false),
		gocron.NewTask(func() { service.echo() }),
		gocron.WithName("Check app running"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return &service, nil
}

func (service *Impl) echo() {
	log.Info().Int64("reports", service.repository.Count()).Msgf("Application is running")
}
