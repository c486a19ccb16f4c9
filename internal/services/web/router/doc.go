// Package router resolves site paths to page components and owns the
// navigation history used to restore scroll positions.
//
// A Table is an ordered, immutable list of routes. Each route binds a path
// and a name to a Provider: Eager providers hold a component already, Lazy
// providers load it on first resolution and reuse the result.
//
// A Router walks one visitor's history:
//
//	table, err := router.NewTable(
//	    router.Route{Path: "/", Name: "Home", Component: router.Eager(home)},
//	    router.Route{Path: "/about", Name: "About", Component: router.Lazy("About", loadAbout)},
//	)
//	r, err := router.New(router.Options{Table: table})
//	nav, err := r.Start(ctx, "/")
//	nav, err = r.Push(ctx, "/about", router.Position{Top: 340})
//	nav, err = r.Back(ctx, router.Position{})
//	// nav.Scroll == router.Position{Top: 340}
//
// Leaving a history entry records the scroll position it was left at. When a
// later Back, Forward or Go returns to that entry the recorded position is
// passed to the ScrollBehavior, which by default restores it.
package router
