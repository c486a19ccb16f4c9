package app

import (
	"errors"
	"fmt"

	"github.com/louisbranch/showcase/internal/services/web/router"
	"github.com/louisbranch/showcase/internal/services/web/store"
	"github.com/louisbranch/showcase/internal/services/web/ui"
)

const (
	storePluginName  = "store"
	uiPluginName     = "ui"
	routerPluginName = "router"
)

type plugin struct {
	name    string
	install func(*App) error
}

func (p plugin) Name() string { return p.name }

func (p plugin) Install(a *App) error { return p.install(a) }

// StorePlugin installs the process-wide state store.
func StorePlugin(st *store.Store) Plugin {
	return plugin{name: storePluginName, install: func(a *App) error {
		if st == nil {
			return errors.New("store is required")
		}
		a.deps.Store = st
		return nil
	}}
}

// UIPlugin installs the component library.
func UIPlugin(lib *ui.Library) Plugin {
	return plugin{name: uiPluginName, install: func(a *App) error {
		if lib == nil {
			return errors.New("ui library is required")
		}
		a.deps.Library = lib
		return nil
	}}
}

// RouterPlugin installs the route table and scroll behavior. The store and
// UI library must already be installed.
func RouterPlugin(table *router.Table, scroll router.ScrollBehavior) Plugin {
	return plugin{name: routerPluginName, install: func(a *App) error {
		for _, required := range []string{storePluginName, uiPluginName} {
			if !a.hasLocked(required) {
				return fmt.Errorf("%w: router requires the %q plugin", ErrPluginOrder, required)
			}
		}
		if table == nil {
			return errors.New("route table is required")
		}
		if scroll == nil {
			scroll = router.RestoreOrTop
		}
		a.deps.Table = table
		a.deps.ScrollBehavior = scroll
		return nil
	}}
}
