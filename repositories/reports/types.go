package reports

import (
	"cashtag-mentions/models/entities"
	"errors"
	"sync/atomic"

	"github.com/patrickmn/go-cache"
)

const latestReportKey = "latestReport"

var ErrNoReport = errors.New("no report available")

type Repository interface {
	Save(report entities.Report) error
	GetLatest() (entities.Report, error)
	Count() int64
}

type Impl struct {
	cache *cache.Cache
	saved atomic.Int64
}
