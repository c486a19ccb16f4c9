// Package site serves full documents for every declared page path.
package site

import (
	"net/http"
	"strings"

	module "github.com/louisbranch/showcase/internal/services/web/module"
	"github.com/louisbranch/showcase/internal/services/web/platform/httpx"
	"github.com/louisbranch/showcase/internal/services/web/routepath"
)

// Module provides the page document routes.
type Module struct {
	deps   module.Dependencies
	id     string
	prefix string
}

// New returns the site module.
func New(deps module.Dependencies) Module {
	return Module{deps: deps, id: "site", prefix: routepath.Root}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (m Module) ID() string {
	id := strings.TrimSpace(m.id)
	if id == "" {
		return "site"
	}
	return id
}

// Healthy reports whether the document shell is mounted.
func (m Module) Healthy() bool {
	return m.deps.Shell != nil && m.deps.Table != nil
}

// Mount wires page routes under the root prefix.
func (m Module) Mount() (module.Mount, error) {
	h, err := newHandlers(m.deps)
	if err != nil {
		return module.Mount{}, err
	}
	mux := http.NewServeMux()
	mux.Handle(routepath.Root, httpx.Chain(
		http.HandlerFunc(h.handlePage),
		httpx.AllowMethods(http.MethodGet, http.MethodHead),
	))
	prefix := strings.TrimSpace(m.prefix)
	if prefix == "" {
		prefix = routepath.Root
	}
	return module.Mount{Prefix: prefix, Handler: mux}, nil
}
