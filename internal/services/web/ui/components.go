package ui

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// NavLink is one entry of the site navigation.
type NavLink struct {
	Path string
	// LabelID is a catalog message id.
	LabelID string
}

// Card is a titled block of copy.
type Card struct {
	Title string
	Body  string
}

// Section is a heading with paragraphs and optional cards.
type Section struct {
	Heading    string
	Paragraphs []string
	Cards      []Card
}

// requireLibrary renders the component build returns for the context
// Library, and fails when none is installed.
func requireLibrary(build func(lib *Library) templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lib, ok := FromContext(ctx)
		if !ok {
			return ErrLibraryMissing
		}
		return build(lib).Render(ctx, w)
	})
}

func isActive(path string, activePath string) bool {
	return strings.EqualFold(path, activePath)
}

// Nav renders the primary navigation with activePath highlighted.
func Nav(links []NavLink, activePath string) templ.Component {
	return requireLibrary(func(lib *Library) templ.Component {
		return navView(lib, links, activePath)
	})
}

// Hero renders a page heading with a lead paragraph and an optional call to
// action link.
func Hero(title string, lead string, ctaLabel string, ctaPath string) templ.Component {
	return requireLibrary(func(*Library) templ.Component {
		return heroView(title, lead, ctaLabel, ctaPath)
	})
}

// Sections renders content sections in order.
func Sections(sections []Section) templ.Component {
	return requireLibrary(func(*Library) templ.Component {
		return sectionsView(sections)
	})
}

// Page renders a page body: the children in a main element.
func Page(name string, children ...templ.Component) templ.Component {
	return requireLibrary(func(*Library) templ.Component {
		return pageView(name, children)
	})
}

// NotFound renders the unmatched path view.
func NotFound(path string) templ.Component {
	return requireLibrary(func(lib *Library) templ.Component {
		return notFoundView(lib, path)
	})
}

// LoadError renders the view shown when a page fails to load.
func LoadError() templ.Component {
	return requireLibrary(loadErrorView)
}

// Footer renders the site footer for year.
func Footer(year int) templ.Component {
	return requireLibrary(func(lib *Library) templ.Component {
		return footerView(lib, year)
	})
}

// ViewID is the id of the element in-app navigation swaps.
const ViewID = "router-view"

// Layout renders the site chrome around the children of the render
// context: navigation, the swappable view element and the footer.
func Layout(links []NavLink, activePath string, year int) templ.Component {
	return requireLibrary(func(lib *Library) templ.Component {
		return layoutView(lib, links, activePath, year)
	})
}
