// Package navigation serves the JSON endpoints behind in-app navigation.
//
// The visitor cookie selects a store session and the tab id sent in each
// request selects one router within it, so every browser tab walks its own
// history. Requests for one tab are serialized by the tab.
package navigation

import (
	"net/http"
	"strings"

	module "github.com/louisbranch/showcase/internal/services/web/module"
	"github.com/louisbranch/showcase/internal/services/web/routepath"
)

// Module provides the navigation endpoints.
type Module struct {
	deps   module.Dependencies
	id     string
	prefix string
}

// New returns the navigation module.
func New(deps module.Dependencies) Module {
	return Module{deps: deps, id: "navigation", prefix: routepath.RouterPrefix}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (m Module) ID() string {
	id := strings.TrimSpace(m.id)
	if id == "" {
		return "navigation"
	}
	return id
}

// Healthy reports whether visitor sessions can be opened.
func (m Module) Healthy() bool {
	return m.deps.Store != nil && m.deps.Table != nil
}

// Mount wires navigation routes under the router prefix.
func (m Module) Mount() (module.Mount, error) {
	h, err := newHandlers(m.deps)
	if err != nil {
		return module.Mount{}, err
	}
	mux := http.NewServeMux()
	registerRoutes(mux, h)
	prefix := strings.TrimSpace(m.prefix)
	if prefix == "" {
		prefix = routepath.RouterPrefix
	}
	return module.Mount{Prefix: prefix, Handler: mux}, nil
}

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc(http.MethodPost+" "+routepath.RouterStart, h.handleStart)
	mux.HandleFunc(http.MethodPost+" "+routepath.RouterPush, h.handlePush)
	mux.HandleFunc(http.MethodPost+" "+routepath.RouterBack, h.handleBack)
	mux.HandleFunc(http.MethodPost+" "+routepath.RouterForward, h.handleForward)
	mux.HandleFunc(http.MethodPost+" "+routepath.RouterGo, h.handleGo)
}
