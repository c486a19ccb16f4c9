package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/louisbranch/showcase/internal/platform/i18n/catalog"
	"github.com/louisbranch/showcase/internal/services/web/pages"
	"github.com/louisbranch/showcase/internal/services/web/platform/httpx"
	"github.com/louisbranch/showcase/internal/services/web/router"
	"github.com/louisbranch/showcase/internal/services/web/store"
	"github.com/louisbranch/showcase/internal/services/web/ui"
)

func testLibrary(t *testing.T) *ui.Library {
	t.Helper()
	bundle, err := catalog.LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded() error = %v", err)
	}
	lib, err := ui.NewLibrary(bundle)
	if err != nil {
		t.Fatalf("NewLibrary() error = %v", err)
	}
	return lib
}

func testTable(t *testing.T) *router.Table {
	t.Helper()
	table, err := pages.NewTable()
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return table
}

func TestBootstrapInstallsPluginsInOrderAndMounts(t *testing.T) {
	t.Parallel()

	a, err := Bootstrap(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	if got, want := a.Installed(), []string{"store", "ui", "router"}; !slices.Equal(got, want) {
		t.Fatalf("Installed() = %v, want %v", got, want)
	}
	rr := httptest.NewRecorder()
	a.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/up", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("GET /up status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestBootstrapServesSite(t *testing.T) {
	t.Parallel()

	a, err := Bootstrap(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{path: "/", status: http.StatusOK, want: `<html lang="zh-CN">`},
		{path: "/about", status: http.StatusOK, want: `data-page="About"`},
		{path: "/missing", status: http.StatusNotFound, want: `<html lang="zh-CN">`},
		{path: "/static/router.js", status: http.StatusOK, want: "/_router/push"},
		{path: "/up", status: http.StatusOK, want: "ok"},
	}
	for _, tc := range tests {
		rr := httptest.NewRecorder()
		a.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rr.Code != tc.status {
			t.Fatalf("%s status = %d, want %d", tc.path, rr.Code, tc.status)
		}
		if !strings.Contains(rr.Body.String(), tc.want) {
			t.Fatalf("%s body missing %q", tc.path, tc.want)
		}
		if rr.Header().Get(httpx.RequestIDHeader) == "" {
			t.Fatalf("%s missing request id header", tc.path)
		}
	}
}

func TestBootstrapBackRestoresScroll(t *testing.T) {
	t.Parallel()

	a, err := Bootstrap(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	var cookies []*http.Cookie
	post := func(path string, body string) map[string]any {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Origin", "http://example.com")
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rr := httptest.NewRecorder()
		a.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status = %d: %s", path, rr.Code, rr.Body.String())
		}
		if set := rr.Result().Cookies(); len(set) > 0 {
			cookies = set
		}
		var payload map[string]any
		if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return payload
	}

	post("/_router/start", `{"to":"/"}`)
	post("/_router/push", `{"to":"/products","scroll":{"left":0,"top":340}}`)
	back := post("/_router/back", `{"scroll":{"left":0,"top":0}}`)
	scroll, _ := back["scroll"].(map[string]any)
	if scroll["top"] != float64(340) || scroll["left"] != float64(0) {
		t.Fatalf("back scroll = %v, want left 0 top 340", back["scroll"])
	}
}

func TestRouterPluginRequiresStoreAndUI(t *testing.T) {
	t.Parallel()

	table := testTable(t)
	a := New(pages.Root())
	if err := a.Use(RouterPlugin(table, nil)); !errors.Is(err, ErrPluginOrder) {
		t.Fatalf("Use(router) error = %v, want ErrPluginOrder", err)
	}
	if err := a.Use(StorePlugin(store.New(store.Options{}))); err != nil {
		t.Fatalf("Use(store) error = %v", err)
	}
	if err := a.Use(RouterPlugin(table, nil)); !errors.Is(err, ErrPluginOrder) {
		t.Fatalf("Use(router) without ui error = %v, want ErrPluginOrder", err)
	}
	if err := a.Use(UIPlugin(testLibrary(t))); err != nil {
		t.Fatalf("Use(ui) error = %v", err)
	}
	if err := a.Use(RouterPlugin(table, nil)); err != nil {
		t.Fatalf("Use(router) error = %v", err)
	}
	if err := a.Use(StorePlugin(store.New(store.Options{}))); !errors.Is(err, ErrPluginOrder) {
		t.Fatalf("second Use(store) error = %v, want ErrPluginOrder", err)
	}
}

func TestMountRequiresRouterPlugin(t *testing.T) {
	t.Parallel()

	a := New(pages.Root())
	doc := &Document{FS: fstest.MapFS{"index.html": {Data: []byte(`<div id="app"></div>`)}}, Shell: "index.html"}
	if err := a.Mount(doc, "app"); !errors.Is(err, ErrPluginOrder) {
		t.Fatalf("Mount() error = %v, want ErrPluginOrder", err)
	}
}

func TestMountMissingAnchorIsFatal(t *testing.T) {
	t.Parallel()

	doc := &Document{
		FS:    fstest.MapFS{"index.html": {Data: []byte(`<html><head></head><body><div id="root"></div></body></html>`)}},
		Shell: "index.html",
	}
	_, err := Bootstrap(context.Background(), Options{Document: doc})
	if !errors.Is(err, ErrMountAnchorMissing) {
		t.Fatalf("Bootstrap() error = %v, want ErrMountAnchorMissing", err)
	}
}

func TestMountTwiceFails(t *testing.T) {
	t.Parallel()

	a, err := Bootstrap(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	doc := &Document{FS: fstest.MapFS{"index.html": {Data: []byte(`<div id="app"></div>`)}}, Shell: "index.html"}
	if err := a.Mount(doc, "app"); !errors.Is(err, ErrAlreadyMounted) {
		t.Fatalf("Mount() error = %v, want ErrAlreadyMounted", err)
	}
	if err := a.Use(UIPlugin(testLibrary(t))); !errors.Is(err, ErrAlreadyMounted) {
		t.Fatalf("Use() after mount error = %v, want ErrAlreadyMounted", err)
	}
}

func TestServeBeforeMountIsUnavailable(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	New(pages.Root()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}
