// Package routepath stores canonical HTTP paths for the site.
package routepath

import "strings"

const (
	Root     = "/"
	Products = "/products"
	Services = "/services"
	About    = "/about"
	Contact  = "/contact"
	Health   = "/up"

	StaticPrefix = "/static/"

	RouterPrefix  = "/_router/"
	RouterStart   = "/_router/start"
	RouterPush    = "/_router/push"
	RouterBack    = "/_router/back"
	RouterForward = "/_router/forward"
	RouterGo      = "/_router/go"
)

// IsInternal reports whether path belongs to a non-page surface.
func IsInternal(path string) bool {
	path = strings.TrimSpace(path)
	return strings.HasPrefix(path, StaticPrefix) ||
		strings.HasPrefix(path, RouterPrefix) ||
		path == Health
}
