// Package pages declares the site's route table and page components.
package pages

import (
	"context"
	"embed"
	"io"
	"io/fs"

	"github.com/a-h/templ"

	"github.com/louisbranch/showcase/internal/services/web/routepath"
	"github.com/louisbranch/showcase/internal/services/web/router"
	"github.com/louisbranch/showcase/internal/services/web/ui"
)

//go:embed content/*.yaml
var contentFS embed.FS

// Content returns the embedded page content filesystem.
func Content() fs.FS {
	return contentFS
}

// Nav lists navigation links in display order.
var Nav = []ui.NavLink{
	{Path: routepath.Root, LabelID: "nav_home"},
	{Path: routepath.Products, LabelID: "nav_products"},
	{Path: routepath.Services, LabelID: "nav_services"},
	{Path: routepath.About, LabelID: "nav_about"},
	{Path: routepath.Contact, LabelID: "nav_contact"},
}

// Home is the landing view. It is bound eagerly.
func Home() templ.Component {
	return ui.View{
		Name:    "Home",
		TitleID: "site_name",
		Body:    homeHero{},
	}
}

type homeHero struct{}

func (homeHero) Render(ctx context.Context, w io.Writer) error {
	lib, ok := ui.FromContext(ctx)
	if !ok {
		return ui.ErrLibraryMissing
	}
	return ui.Hero(
		lib.T("home_title", nil),
		lib.T("home_lead", nil),
		lib.T("home_cta", nil),
		routepath.Products,
	).Render(ctx, w)
}

// Routes returns the site routes. Every page but Home loads its content
// from contentFS on first navigation.
func Routes(contentFS fs.FS) []router.Route {
	return []router.Route{
		{Path: routepath.Root, Name: "Home", Component: router.Eager(Home())},
		{Path: routepath.Products, Name: "Products", Component: router.Lazy("Products", ContentLoader(contentFS, "Products", "content/products.yaml"))},
		{Path: routepath.Services, Name: "Services", Component: router.Lazy("Services", ContentLoader(contentFS, "Services", "content/services.yaml"))},
		{Path: routepath.About, Name: "About", Component: router.Lazy("About", ContentLoader(contentFS, "About", "content/about.yaml"))},
		{Path: routepath.Contact, Name: "Contact", Component: router.Lazy("Contact", ContentLoader(contentFS, "Contact", "content/contact.yaml"))},
	}
}

// NewTable builds the route table over the embedded content.
func NewTable() (*router.Table, error) {
	return router.NewTable(Routes(contentFS)...)
}
