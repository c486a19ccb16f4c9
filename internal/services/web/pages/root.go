package pages

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/louisbranch/showcase/internal/services/web/router"
	"github.com/louisbranch/showcase/internal/services/web/ui"
)

// Root returns the application root component. It renders the site layout
// around its children and highlights the location in the render context.
func Root() templ.Component {
	return rootComponent{now: time.Now}
}

type rootComponent struct {
	now func() time.Time
}

func (c rootComponent) Render(ctx context.Context, w io.Writer) error {
	active := ""
	if location, ok := router.LocationFromContext(ctx); ok {
		active = location.Path
	}
	return ui.Layout(Nav, active, c.now().Year()).Render(ctx, w)
}
