package router

import (
	"fmt"
	"strings"
)

// Route binds a path and a symbolic name to a page component.
type Route struct {
	Path      string
	Name      string
	Component Provider
}

// Location is the resolved target of a navigation.
type Location struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// Location returns the location a navigation to r resolves to.
func (r Route) Location() Location {
	return Location{Path: r.Path, Name: r.Name}
}

// Table is an ordered, immutable route list.
type Table struct {
	routes []Route
	keys   []string
}

// NewTable validates routes and returns a table preserving their order.
func NewTable(routes ...Route) (*Table, error) {
	table := &Table{
		routes: make([]Route, 0, len(routes)),
		keys:   make([]string, 0, len(routes)),
	}
	paths := make(map[string]string, len(routes))
	names := make(map[string]string, len(routes))
	for idx, route := range routes {
		path := strings.TrimSpace(route.Path)
		name := strings.TrimSpace(route.Name)
		if path == "" || !strings.HasPrefix(path, "/") {
			return nil, fmt.Errorf("route %d: path %q must begin with /", idx, route.Path)
		}
		if name == "" {
			return nil, fmt.Errorf("route %d: name is required", idx)
		}
		if route.Component == nil {
			return nil, fmt.Errorf("route %q: component is required", name)
		}
		key := matchKey(path)
		if owner, ok := paths[key]; ok {
			return nil, fmt.Errorf("route %q duplicates path %q owned by route %q", name, path, owner)
		}
		if _, ok := names[name]; ok {
			return nil, fmt.Errorf("route name %q is declared twice", name)
		}
		paths[key] = name
		names[name] = path
		route.Path = path
		route.Name = name
		table.routes = append(table.routes, route)
		table.keys = append(table.keys, key)
	}
	return table, nil
}

// Resolve returns the first route matching path.
//
// Query strings and fragments are ignored; a trailing slash and letter case
// do not affect matching.
func (t *Table) Resolve(path string) (Route, bool) {
	if t == nil {
		return Route{}, false
	}
	key := matchKey(path)
	for idx, candidate := range t.keys {
		if candidate == key {
			return t.routes[idx], true
		}
	}
	return Route{}, false
}

// Lookup returns the route declared with name.
func (t *Table) Lookup(name string) (Route, bool) {
	if t == nil {
		return Route{}, false
	}
	name = strings.TrimSpace(name)
	for _, route := range t.routes {
		if route.Name == name {
			return route, true
		}
	}
	return Route{}, false
}

// Routes returns a copy of the routes in declaration order.
func (t *Table) Routes() []Route {
	if t == nil {
		return nil
	}
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Len returns the number of routes.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.routes)
}

func matchKey(path string) string {
	path = strings.TrimSpace(path)
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return strings.ToLower(path)
}
