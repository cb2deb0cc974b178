package insights

import (
	"cashtag-mentions/models/entities"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// NewProbes exposes liveness, readiness and the latest report on port.
func NewProbes(port int, latest func() (entities.Report, error)) Probes {
	probes := &probesImpl{
		mux:    http.NewServeMux(),
		latest: latest,
		isReady: func() bool {
			_, err := latest()
			return err == nil
		},
	}

	probes.mux.HandleFunc(healthPath, probes.health)
	probes.mux.HandleFunc(readyPath, probes.ready)
	probes.mux.HandleFunc(reportPath, probes.report)
	probes.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           probes.mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return probes
}

func (probes *probesImpl) Handler() http.Handler {
	return probes.mux
}

func (probes *probesImpl) ListenAndServe() {
	go func() {
		log.Info().Msgf("Probes listening on %s", probes.server.Addr)
		err := probes.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Probes stopped unexpectedly")
		}
	}()
}

func (probes *probesImpl) Shutdown() {
	if err := probes.server.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Cannot shutdown probes, continuing...")
	}
}

func (probes *probesImpl) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (probes *probesImpl) ready(w http.ResponseWriter, _ *http.Request) {
	if !probes.isReady() {
		http.Error(w, "no report yet", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (probes *probesImpl) report(w http.ResponseWriter, _ *http.Request) {
	report, err := probes.latest()
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if errEncode := json.NewEncoder(w).Encode(report); errEncode != nil {
		log.Error().Err(errEncode).Msg("Cannot write report probe")
	}
}
