// Package health provides handler for health checks.
package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"golang.org/x/sync/errgroup"

	"github.com/Decentr-net/go-api"
	logging "github.com/Decentr-net/logrus/context"
)

const pingTimeout = 5 * time.Second

// nolint:gochecknoglobals
var (
	version = "dev"
	commit  = "unknown"
)

// GetVersion returns service's version and commit.
func GetVersion() string {
	return fmt.Sprintf("%s-%s", version, commit)
}

// VersionResponse ...
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

// ErrorResponse is returned when one of pingers failed.
type ErrorResponse struct {
	api.Error
	VersionResponse
}

// Pinger pings external service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc is wrapper for raw func.
type PingFunc func(ctx context.Context) error

// Ping ...
func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// SetupRouter setups all pingers to /health.
func SetupRouter(r chi.Router, p ...Pinger) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		gr, ctx := errgroup.WithContext(ctx)

		for i := range p {
			v := p[i]
			gr.Go(func() error {
				if err := v.Ping(ctx); err != nil {
					logging.GetLogger(r.Context()).WithError(err).Error("health check failed")
					return err
				}
				return nil
			})
		}

		vr := VersionResponse{Version: version, Commit: commit}

		if err := gr.Wait(); err != nil {
			api.WriteOK(w, http.StatusInternalServerError, ErrorResponse{
				Error:           api.Error{Error: err.Error()},
				VersionResponse: vr,
			})
			return
		}

		api.WriteOK(w, http.StatusOK, vr)
	})
}
