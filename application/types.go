package application

import (
	reportsRepo "cashtag-mentions/repositories/reports"
	"cashtag-mentions/services/mentions"
	"cashtag-mentions/services/report"
	"cashtag-mentions/utils/insights"
	"context"

	"github.com/go-co-op/gocron/v2"
)

const scanJobName = "Scan cashtag mentions"

type Application interface {
	Run(ctx context.Context) error
	Shutdown()
}

type Impl struct {
	ctx             context.Context
	scheduler       gocron.Scheduler
	probes          insights.Probes
	mentionsService mentions.Service
	reportService   report.Service
	reportsRepo     reportsRepo.Repository
}
