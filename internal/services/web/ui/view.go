package ui

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// View is a titled page component.
type View struct {
	Name string
	// Title is used as is; TitleID is looked up in the catalog when Title
	// is empty.
	Title   string
	TitleID string
	Body    templ.Component
}

// Render renders the view body wrapped in a page element.
func (v View) Render(ctx context.Context, w io.Writer) error {
	return Page(v.Name, v.Body).Render(ctx, w)
}

// PageTitle returns the localized view title.
func (v View) PageTitle(lib *Library) string {
	if v.Title != "" {
		return v.Title
	}
	if v.TitleID != "" {
		return lib.T(v.TitleID, nil)
	}
	return lib.T("site_name", nil)
}

// Titled is implemented by components that carry a page title.
type Titled interface {
	PageTitle(lib *Library) string
}

// TitleOf returns the title of c, or the site name.
func TitleOf(c templ.Component, lib *Library) string {
	if titled, ok := c.(Titled); ok {
		return titled.PageTitle(lib)
	}
	return lib.T("site_name", nil)
}

// WithTitle returns c titled by the catalog message titleID.
func WithTitle(c templ.Component, titleID string) templ.Component {
	return titledComponent{Component: c, titleID: titleID}
}

type titledComponent struct {
	templ.Component
	titleID string
}

func (c titledComponent) PageTitle(lib *Library) string {
	return lib.T(c.titleID, nil)
}

// DocumentTitle returns the browser title for c: its page title followed by
// the site name, or the site name alone.
func DocumentTitle(c templ.Component, lib *Library) string {
	siteName := lib.T("site_name", nil)
	title := TitleOf(c, lib)
	if title == "" || title == siteName {
		return siteName
	}
	return title + " | " + siteName
}
