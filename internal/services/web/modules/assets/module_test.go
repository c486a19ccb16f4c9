package assets

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

func TestMountServesFiles(t *testing.T) {
	t.Parallel()

	mount, err := New(fstest.MapFS{"site.css": {Data: []byte("body{}")}}).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != "/static/" {
		t.Fatalf("prefix = %q, want %q", mount.Prefix, "/static/")
	}

	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Body.String(); got != "body{}" {
		t.Fatalf("body = %q, want %q", got, "body{}")
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/css") {
		t.Fatalf("Content-Type = %q, want text/css", got)
	}
	if rr.Header().Get("Cache-Control") == "" {
		t.Fatal("expected Cache-Control header")
	}

	rr = httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/static/site.css", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}

func TestMountRequiresFiles(t *testing.T) {
	t.Parallel()

	if _, err := New(nil).Mount(); err == nil {
		t.Fatal("expected missing files error")
	}
}
