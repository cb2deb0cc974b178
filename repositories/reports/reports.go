package reports

import (
	"cashtag-mentions/models/entities"
	"time"

	"github.com/patrickmn/go-cache"
)

// New keeps the latest report in process memory for ttl. Nothing survives a restart.
func New(ttl time.Duration) *Impl {
	return &Impl{cache: cache.New(ttl, 2*ttl)}
}

func (repo *Impl) Save(report entities.Report) error {
	repo.cache.SetDefault(latestReportKey, report)
	repo.saved.Add(1)

	return nil
}

func (repo *Impl) GetLatest() (entities.Report, error) {
	if x, found := repo.cache.Get(latestReportKey); found {
		return x.(entities.Report), nil
	}

	return entities.Report{}, ErrNoReport
}

// Count is the number of reports saved since startup.
func (repo *Impl) Count() int64 {
	return repo.saved.Load()
}
