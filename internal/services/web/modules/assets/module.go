// Package assets serves the embedded browser assets.
package assets

import (
	"io/fs"
	"net/http"
	"strings"

	module "github.com/louisbranch/showcase/internal/services/web/module"
	"github.com/louisbranch/showcase/internal/services/web/platform/httpx"
	"github.com/louisbranch/showcase/internal/services/web/routepath"
)

const cacheControl = "public, max-age=300"

// Module provides static asset routes.
type Module struct {
	files  fs.FS
	prefix string
}

// New returns an assets module serving files.
func New(files fs.FS) Module {
	return Module{files: files, prefix: routepath.StaticPrefix}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "assets"
}

// Mount wires the file server under the static prefix.
func (m Module) Mount() (module.Mount, error) {
	if m.files == nil {
		return module.Mount{}, fs.ErrInvalid
	}
	prefix := strings.TrimSpace(m.prefix)
	if prefix == "" {
		prefix = routepath.StaticPrefix
	}
	fileServer := http.StripPrefix(prefix, http.FileServerFS(m.files))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", cacheControl)
		fileServer.ServeHTTP(w, r)
	})
	return module.Mount{
		Prefix:  prefix,
		Handler: httpx.Chain(handler, httpx.AllowMethods(http.MethodGet, http.MethodHead)),
	}, nil
}
