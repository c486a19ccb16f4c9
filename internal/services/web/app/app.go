// Package app is the application root: it installs the store, the UI
// library and the router as plugins, then mounts onto the document anchor
// and serves the composed modules.
package app

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/a-h/templ"

	module "github.com/louisbranch/showcase/internal/services/web/module"
	"github.com/louisbranch/showcase/internal/services/web/modules"
	"github.com/louisbranch/showcase/internal/services/web/platform/httpx"
	"github.com/louisbranch/showcase/internal/services/web/platform/observability"
	"github.com/louisbranch/showcase/internal/services/web/platform/pagerender"
	"github.com/louisbranch/showcase/internal/services/web/platform/requestmeta"
)

var (
	// ErrPluginOrder reports a plugin installed before its prerequisites or
	// installed twice.
	ErrPluginOrder = errors.New("app: plugin installed out of order")
	// ErrAlreadyMounted reports a second Mount or a Use after Mount.
	ErrAlreadyMounted = errors.New("app: already mounted")
	// ErrMountAnchorMissing reports a shell without the mount anchor.
	ErrMountAnchorMissing = errors.New("app: mount anchor missing")
)

// DefaultAnchorID is the id of the element the app mounts onto.
const DefaultAnchorID = "app"

// Plugin extends the app before it is mounted.
type Plugin interface {
	Name() string
	Install(*App) error
}

// Document is the page shell and the assets served next to it.
type Document struct {
	// FS holds the shell and the assets.
	FS fs.FS
	// Shell is the shell file name within FS.
	Shell string
}

// App is the application root.
type App struct {
	mu        sync.RWMutex
	deps      module.Dependencies
	installed []string
	handler   http.Handler
}

// New returns an app that renders root around every page.
func New(root templ.Component) *App {
	return &App{deps: module.Dependencies{Root: root}}
}

// SetSchemePolicy sets how request schemes are derived for cookies and
// origin checks. It has no effect after Mount.
func (a *App) SetSchemePolicy(policy requestmeta.SchemePolicy) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.handler == nil {
		a.deps.RequestMeta = policy
	}
}

// Use installs p.
func (a *App) Use(p Plugin) error {
	if p == nil {
		return errors.New("app: plugin is nil")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.handler != nil {
		return fmt.Errorf("%w: cannot install %q", ErrAlreadyMounted, p.Name())
	}
	name := strings.TrimSpace(p.Name())
	if a.hasLocked(name) {
		return fmt.Errorf("%w: %q is already installed", ErrPluginOrder, name)
	}
	if err := p.Install(a); err != nil {
		return fmt.Errorf("install %q: %w", name, err)
	}
	a.installed = append(a.installed, name)
	return nil
}

// Installed returns plugin names in installation order.
func (a *App) Installed() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.installed)
}

// Mount parses the document shell, finds the element with id anchorID and
// starts serving. The router plugin must be installed.
func (a *App) Mount(doc *Document, anchorID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.handler != nil {
		return ErrAlreadyMounted
	}
	if !a.hasLocked(routerPluginName) {
		return fmt.Errorf("%w: mount requires the %q plugin", ErrPluginOrder, routerPluginName)
	}
	if doc == nil || doc.FS == nil {
		return errors.New("app: document is required")
	}
	if a.deps.Root == nil {
		return errors.New("app: root component is required")
	}

	file, err := doc.FS.Open(doc.Shell)
	if err != nil {
		return fmt.Errorf("open document shell: %w", err)
	}
	defer file.Close()
	shell, err := pagerender.ParseShell(file, anchorID, a.deps.Library.Locale())
	if err != nil {
		if errors.Is(err, pagerender.ErrAnchorMissing) {
			return fmt.Errorf("%w: %w", ErrMountAnchorMissing, err)
		}
		return fmt.Errorf("mount: %w", err)
	}

	deps := a.deps
	deps.Shell = shell
	handler, err := Compose(ComposeInput{Modules: modules.DefaultModules(deps, doc.FS)})
	if err != nil {
		return fmt.Errorf("compose modules: %w", err)
	}
	a.deps = deps
	a.handler = httpx.Chain(handler,
		httpx.RequestID(),
		observability.Trace(nil),
		observability.RequestLogger(nil),
		httpx.RecoverPanic(),
	)
	return nil
}

// ServeHTTP serves the mounted modules, or 503 before Mount.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	handler := a.handler
	a.mu.RUnlock()
	if handler == nil {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	handler.ServeHTTP(w, r)
}

func (a *App) hasLocked(name string) bool {
	return slices.Contains(a.installed, name)
}
