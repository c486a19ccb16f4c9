package site

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/a-h/templ"

	module "github.com/louisbranch/showcase/internal/services/web/module"
	"github.com/louisbranch/showcase/internal/services/web/platform/httpx"
	"github.com/louisbranch/showcase/internal/services/web/platform/pagerender"
	"github.com/louisbranch/showcase/internal/services/web/router"
	"github.com/louisbranch/showcase/internal/services/web/ui"
)

type handlers struct {
	deps module.Dependencies
}

func newHandlers(deps module.Dependencies) (handlers, error) {
	switch {
	case deps.Shell == nil:
		return handlers{}, errors.New("site: document shell is required")
	case deps.Table == nil:
		return handlers{}, errors.New("site: route table is required")
	case deps.Library == nil:
		return handlers{}, errors.New("site: ui library is required")
	case deps.Root == nil:
		return handlers{}, errors.New("site: root component is required")
	}
	return handlers{deps: deps}, nil
}

func (h handlers) handlePage(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.RequestContext(r)
	route, ok := h.deps.Table.Resolve(r.URL.Path)
	if !ok {
		location := router.Location{Path: r.URL.Path}
		h.writeDocument(w, r, http.StatusNotFound, location, ui.WithTitle(ui.NotFound(r.URL.Path), "not_found_title"))
		return
	}
	component, err := route.Component.Resolve(ctx)
	if err != nil {
		log.Printf("page load failed path=%s route=%s request_id=%s err=%v", r.URL.Path, route.Name, r.Header.Get(httpx.RequestIDHeader), err)
		h.writeDocument(w, r, module.LoadStatus(err), route.Location(), ui.WithTitle(ui.LoadError(), "error_title"))
		return
	}
	h.writeDocument(w, r, http.StatusOK, route.Location(), component)
}

func (h handlers) writeDocument(w http.ResponseWriter, r *http.Request, status int, location router.Location, page templ.Component) {
	ctx := h.deps.RenderContext(httpx.RequestContext(r), location)
	title := ui.DocumentTitle(page, h.deps.Library)
	if err := pagerender.WriteDocument(ctx, w, h.deps.Shell, status, title, h.withRoot(page)); err != nil {
		log.Printf("page render failed path=%s request_id=%s err=%v", r.URL.Path, r.Header.Get(httpx.RequestIDHeader), err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// withRoot renders the root component with page as its children.
func (h handlers) withRoot(page templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return h.deps.Root.Render(templ.WithChildren(ctx, page), w)
	})
}
