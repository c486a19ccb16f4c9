// Package module defines the feature contract used by web composition.
package module

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	apperrors "github.com/louisbranch/showcase/internal/services/web/platform/errors"
	"github.com/louisbranch/showcase/internal/services/web/platform/pagerender"
	"github.com/louisbranch/showcase/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/showcase/internal/services/web/router"
	"github.com/louisbranch/showcase/internal/services/web/store"
	"github.com/louisbranch/showcase/internal/services/web/ui"
)

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// HealthReporter is an optional interface for modules that can report their
// operational availability.
type HealthReporter interface {
	Healthy() bool
}

// Dependencies carries what the installed plugins contribute to modules.
type Dependencies struct {
	// Root renders the site layout around a page passed as templ children.
	Root    templ.Component
	Shell   *pagerender.Shell
	Library *ui.Library
	Table   *router.Table
	Store   *store.Store
	// ScrollBehavior is handed to every visitor router.
	ScrollBehavior router.ScrollBehavior
	RequestMeta    requestmeta.SchemePolicy
}

// RenderContext returns ctx carrying the UI library and the rendered
// location.
func (d Dependencies) RenderContext(ctx context.Context, location router.Location) context.Context {
	ctx = ui.WithLibrary(ctx, d.Library)
	return router.WithLocation(ctx, location)
}

// NewRouter returns a visitor router over the shared table.
func (d Dependencies) NewRouter() (*router.Router, error) {
	return router.New(router.Options{Table: d.Table, ScrollBehavior: d.ScrollBehavior})
}

// LoadStatus maps a component load failure to an HTTP status. Loaders that
// report an unavailable kind get 503; everything else is a server error.
func LoadStatus(err error) int {
	if status := apperrors.HTTPStatus(err); status >= http.StatusInternalServerError {
		return status
	}
	return http.StatusInternalServerError
}
