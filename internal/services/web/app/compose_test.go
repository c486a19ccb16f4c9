package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	module "github.com/louisbranch/showcase/internal/services/web/module"
)

type stubModule struct {
	id    string
	mount module.Mount
	err   error
}

func (m stubModule) ID() string { return m.id }

func (m stubModule) Mount() (module.Mount, error) { return m.mount, m.err }

func statusHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	})
}

func TestComposeRoutesByPrefix(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{Modules: []module.Module{
		stubModule{id: "root", mount: module.Mount{Prefix: "/", Handler: statusHandler(http.StatusOK)}},
		stubModule{id: "api", mount: module.Mount{Prefix: "/api/", Handler: statusHandler(http.StatusAccepted)}},
		stubModule{id: "health", mount: module.Mount{Prefix: "/up", Handler: statusHandler(http.StatusNoContent)}},
	}})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	tests := []struct {
		path   string
		status int
	}{
		{path: "/anything", status: http.StatusOK},
		{path: "/api/x", status: http.StatusAccepted},
		{path: "/up", status: http.StatusNoContent},
		{path: "/up/more", status: http.StatusOK},
	}
	for _, tc := range tests {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rr.Code != tc.status {
			t.Fatalf("%s status = %d, want %d", tc.path, rr.Code, tc.status)
		}
	}
}

func TestComposeRejectsDuplicateModulePrefix(t *testing.T) {
	t.Parallel()

	_, err := Compose(ComposeInput{
		Modules: []module.Module{
			stubModule{id: "one", mount: module.Mount{Prefix: "/one/", Handler: statusHandler(http.StatusOK)}},
			stubModule{id: "two", mount: module.Mount{Prefix: "/one/", Handler: statusHandler(http.StatusOK)}},
		},
	})
	if err == nil {
		t.Fatalf("expected duplicate prefix error")
	}
}

func TestComposeRejectsInvalidModulePrefixes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
	}{
		{name: "missing leading slash", prefix: "app/x"},
		{name: "empty", prefix: ""},
		{name: "contains surrounding whitespace", prefix: "/app/x "},
		{name: "pattern wildcard", prefix: "/app/{id}"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Compose(ComposeInput{
				Modules: []module.Module{
					stubModule{id: "bad", mount: module.Mount{Prefix: tc.prefix, Handler: statusHandler(http.StatusOK)}},
				},
			})
			if err == nil {
				t.Fatalf("expected invalid prefix error")
			}
			if got := err.Error(); !strings.Contains(got, "invalid prefix") || !strings.Contains(got, "bad") {
				t.Fatalf("unexpected error = %q", got)
			}
		})
	}
}

func TestComposeRejectsNilModuleAndHandler(t *testing.T) {
	t.Parallel()

	if _, err := Compose(ComposeInput{Modules: []module.Module{nil}}); err == nil {
		t.Fatalf("expected nil module error")
	}
	if _, err := Compose(ComposeInput{Modules: []module.Module{stubModule{id: "x", mount: module.Mount{Prefix: "/x/"}}}}); err == nil {
		t.Fatalf("expected nil handler error")
	}
}

func TestComposeWrapsMountError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	_, err := Compose(ComposeInput{Modules: []module.Module{stubModule{id: "x", err: cause}}})
	if !errors.Is(err, cause) {
		t.Fatalf("Compose() error = %v, want wrapped %v", err, cause)
	}
}
