package insights

import (
	"cashtag-mentions/models/entities"
	"net/http"
	"time"
)

const (
	readHeaderTimeout = 5 * time.Second
	healthPath        = "GET /health"
	readyPath         = "GET /ready"
	reportPath        = "GET /report"
)

type Probes interface {
	ListenAndServe()
	Shutdown()
	Handler() http.Handler
}

type probesImpl struct {
	server  *http.Server
	mux     *http.ServeMux
	latest  func() (entities.Report, error)
	isReady func() bool
}
