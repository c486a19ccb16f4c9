// Package health serves the liveness endpoint.
package health

import (
	"net/http"

	module "github.com/louisbranch/showcase/internal/services/web/module"
	"github.com/louisbranch/showcase/internal/services/web/platform/httpx"
	"github.com/louisbranch/showcase/internal/services/web/routepath"
)

// Module reports healthy when every reporter does.
type Module struct {
	reporters []module.HealthReporter
}

// New returns a health module over reporters.
func New(reporters ...module.HealthReporter) Module {
	return Module{reporters: reporters}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "health"
}

// Mount wires the health route. The prefix is the exact path.
func (m Module) Mount() (module.Mount, error) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		status, body := http.StatusOK, "ok"
		for _, reporter := range m.reporters {
			if reporter != nil && !reporter.Healthy() {
				status, body = http.StatusServiceUnavailable, "unavailable"
				break
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
	return module.Mount{
		Prefix:  routepath.Health,
		Handler: httpx.Chain(handler, httpx.AllowMethods(http.MethodGet, http.MethodHead)),
	}, nil
}
