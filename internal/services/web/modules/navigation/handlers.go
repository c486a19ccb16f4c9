package navigation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	module "github.com/louisbranch/showcase/internal/services/web/module"
	apperrors "github.com/louisbranch/showcase/internal/services/web/platform/errors"
	"github.com/louisbranch/showcase/internal/services/web/platform/httpx"
	"github.com/louisbranch/showcase/internal/services/web/platform/pagerender"
	"github.com/louisbranch/showcase/internal/services/web/platform/visitorcookie"
	"github.com/louisbranch/showcase/internal/services/web/routepath"
	"github.com/louisbranch/showcase/internal/services/web/router"
	"github.com/louisbranch/showcase/internal/services/web/store"
	"github.com/louisbranch/showcase/internal/services/web/ui"
)

const maxRequestBytes = 16 << 10

type navigationRequest struct {
	// To is the target path; Name selects a route by name instead.
	To   string `json:"to"`
	Name string `json:"name"`
	// Tab is the browser tab id returned by a previous response.
	Tab string `json:"tab"`
	// Index is the tab's history position, sent by start after a reload.
	Index  *int            `json:"index"`
	Delta  int             `json:"delta"`
	Scroll router.Position `json:"scroll"`
}

type navigationResponse struct {
	Tab      string           `json:"tab"`
	Index    int              `json:"index"`
	Location router.Location  `json:"location"`
	From     *router.Location `json:"from,omitempty"`
	Title    string           `json:"title"`
	HTML     string           `json:"html"`
	Scroll   router.Position  `json:"scroll"`
}

type navigateFunc func(ctx context.Context, rt *router.Router, req navigationRequest) (router.Navigation, error)

type handlers struct {
	deps module.Dependencies
}

func newHandlers(deps module.Dependencies) (handlers, error) {
	switch {
	case deps.Store == nil:
		return handlers{}, errors.New("navigation: store is required")
	case deps.Table == nil:
		return handlers{}, errors.New("navigation: route table is required")
	case deps.Library == nil:
		return handlers{}, errors.New("navigation: ui library is required")
	}
	return handlers{deps: deps}, nil
}

func (h handlers) handleStart(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, func(ctx context.Context, rt *router.Router, req navigationRequest) (router.Navigation, error) {
		path, err := h.target(req, true)
		if err != nil {
			return router.Navigation{}, err
		}
		if req.Index != nil {
			return rt.Resume(ctx, path, *req.Index)
		}
		return rt.Start(ctx, path)
	})
}

func (h handlers) handlePush(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, func(ctx context.Context, rt *router.Router, req navigationRequest) (router.Navigation, error) {
		path, err := h.target(req, true)
		if err != nil {
			return router.Navigation{}, err
		}
		return rt.Push(ctx, path, req.Scroll)
	})
}

func (h handlers) handleBack(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, func(ctx context.Context, rt *router.Router, req navigationRequest) (router.Navigation, error) {
		return rt.Back(ctx, req.Scroll)
	})
}

func (h handlers) handleForward(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, func(ctx context.Context, rt *router.Router, req navigationRequest) (router.Navigation, error) {
		return rt.Forward(ctx, req.Scroll)
	})
}

// handleGo moves through history. When the request names the path the
// browser landed on, the move is checked against it.
func (h handlers) handleGo(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, func(ctx context.Context, rt *router.Router, req navigationRequest) (router.Navigation, error) {
		path, err := h.target(req, false)
		if err != nil {
			return router.Navigation{}, err
		}
		return rt.GoTo(ctx, req.Delta, path, req.Scroll)
	})
}

// target returns the requested page path from To or Name.
func (h handlers) target(req navigationRequest, required bool) (string, error) {
	path := strings.TrimSpace(req.To)
	if path == "" {
		if name := strings.TrimSpace(req.Name); name != "" {
			route, ok := h.deps.Table.Lookup(name)
			if !ok {
				return "", apperrors.EK(apperrors.KindNotFound, "navigation_unknown_route", "no route has that name")
			}
			return route.Path, nil
		}
		if required {
			return "", apperrors.EK(apperrors.KindInvalidInput, "navigation_to_required", "to is required")
		}
		return "", nil
	}
	if routepath.IsInternal(path) {
		return "", apperrors.EK(apperrors.KindInvalidInput, "navigation_internal_path", "to is not a page path")
	}
	return path, nil
}

func (h handlers) navigate(w http.ResponseWriter, r *http.Request, fn navigateFunc) {
	if !h.deps.RequestMeta.SameOrigin(r) {
		h.writeJSONError(w, apperrors.EK(apperrors.KindForbidden, "navigation_forbidden", "cross-origin request rejected"))
		return
	}
	req, err := decodeRequest(w, r)
	if err != nil {
		h.writeJSONError(w, err)
		return
	}
	tab, err := h.tab(w, r, req.Tab)
	if err != nil {
		log.Printf("navigation session failed path=%s err=%v", r.URL.Path, err)
		h.writeJSONError(w, apperrors.EK(apperrors.KindUnavailable, "navigation_unavailable", "navigation unavailable"))
		return
	}

	ctx := httpx.RequestContext(r)
	var (
		nav   router.Navigation
		index int
	)
	err = tab.Do(func(rt *router.Router) error {
		var navErr error
		nav, navErr = fn(ctx, rt, req)
		index = rt.Index()
		return navErr
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp, err := h.response(ctx, nav)
	if err != nil {
		log.Printf("navigation render failed path=%s to=%s err=%v", r.URL.Path, nav.To.Path, err)
		h.writeJSONError(w, apperrors.EK(apperrors.KindUnknown, "navigation_load_failed", "navigation render failed"))
		return
	}
	resp.Tab = tab.ID
	resp.Index = index
	_ = httpx.WriteJSON(w, http.StatusOK, resp)
}

// tab returns the browser tab named by tabID within the visitor session.
// A missing or expired visitor cookie opens a new session; an unknown tab
// id opens a new tab with empty history.
func (h handlers) tab(w http.ResponseWriter, r *http.Request, tabID string) (*store.Tab, error) {
	session, err := h.session(w, r)
	if err != nil {
		return nil, err
	}
	if tab, ok := session.Tab(tabID); ok {
		return tab, nil
	}
	rt, err := h.deps.NewRouter()
	if err != nil {
		return nil, err
	}
	return session.OpenTab(rt)
}

func (h handlers) session(w http.ResponseWriter, r *http.Request) (*store.Session, error) {
	if id, ok := visitorcookie.Read(r); ok {
		if session, ok := h.deps.Store.Session(id); ok {
			return session, nil
		}
	}
	session, err := h.deps.Store.Open()
	if err != nil {
		return nil, err
	}
	visitorcookie.Write(w, r, session.ID, h.deps.RequestMeta)
	return session, nil
}

func (h handlers) response(ctx context.Context, nav router.Navigation) (navigationResponse, error) {
	renderCtx := h.deps.RenderContext(ctx, nav.To)
	html, err := pagerender.RenderFragment(renderCtx, nav.Component)
	if err != nil {
		return navigationResponse{}, err
	}
	resp := navigationResponse{
		Location: nav.To,
		Title:    ui.DocumentTitle(nav.Component, h.deps.Library),
		HTML:     html,
		Scroll:   nav.Scroll,
	}
	if nav.From.Path != "" {
		from := nav.From
		resp.From = &from
	}
	return resp, nil
}

func (h handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, router.ErrDuplicated):
		w.WriteHeader(http.StatusNoContent)
		return
	case errors.Is(err, router.ErrNotFound):
		err = apperrors.EK(apperrors.KindNotFound, "navigation_not_found", "no route matches path")
	case errors.Is(err, router.ErrNoHistory):
		err = apperrors.EK(apperrors.KindConflict, "navigation_no_history", "no history entry in that direction")
	case apperrors.KindOf(err) == apperrors.KindInvalidInput, apperrors.KindOf(err) == apperrors.KindNotFound:
	default:
		log.Printf("navigation load failed path=%s request_id=%s err=%v", r.URL.Path, r.Header.Get(httpx.RequestIDHeader), err)
		kind := apperrors.KindUnknown
		if apperrors.KindOf(err) == apperrors.KindUnavailable {
			kind = apperrors.KindUnavailable
		}
		err = apperrors.EK(kind, "navigation_load_failed", "page failed to load")
	}
	h.writeJSONError(w, err)
}

// writeJSONError writes err with its catalog message when it carries a key.
func (h handlers) writeJSONError(w http.ResponseWriter, err error) {
	message := err.Error()
	if key := apperrors.LocalizationKey(err); key != "" {
		message = h.deps.Library.T(key, nil)
	}
	_ = httpx.WriteJSONError(w, err, message)
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (navigationRequest, error) {
	var req navigationRequest
	if r.Body == nil {
		return req, nil
	}
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return navigationRequest{}, nil
		}
		return navigationRequest{}, apperrors.EK(apperrors.KindInvalidInput, "navigation_invalid_request", "invalid navigation request")
	}
	return req, nil
}
