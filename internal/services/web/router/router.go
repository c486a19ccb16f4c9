package router

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/a-h/templ"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrNotFound reports a path that matches no route.
	ErrNotFound = errors.New("router: no route matches path")
	// ErrNoHistory reports a history move past either end.
	ErrNoHistory = errors.New("router: no history entry in that direction")
	// ErrDuplicated reports a push to the current location.
	ErrDuplicated = errors.New("router: already at location")
)

// Options configures a Router.
type Options struct {
	Table *Table
	// ScrollBehavior defaults to RestoreOrTop.
	ScrollBehavior ScrollBehavior
}

// Navigation is the outcome of a committed navigation.
type Navigation struct {
	To        Location
	From      Location
	Component templ.Component
	Scroll    Position
}

// Router walks one visitor's navigation history over a shared table.
// It is not safe for concurrent use.
type Router struct {
	table   *Table
	scroll  ScrollBehavior
	history *History
}

// New returns a router with an empty history.
func New(opts Options) (*Router, error) {
	if opts.Table == nil {
		return nil, errors.New("route table is required")
	}
	scroll := opts.ScrollBehavior
	if scroll == nil {
		scroll = RestoreOrTop
	}
	return &Router{
		table:   opts.Table,
		scroll:  scroll,
		history: NewHistory(),
	}, nil
}

// Table returns the route table.
func (r *Router) Table() *Table {
	return r.table
}

// Current returns the current location.
func (r *Router) Current() (Location, bool) {
	entry, ok := r.history.Current()
	return entry.Location, ok
}

// Index returns the history cursor, or -1 before the first navigation.
func (r *Router) Index() int {
	return r.history.Index()
}

// History returns the number of entries and the cursor position.
func (r *Router) History() (length int, index int) {
	return r.history.Len(), r.history.Index()
}

// Start resets history to the entry for path.
func (r *Router) Start(ctx context.Context, path string) (Navigation, error) {
	ctx, span := r.startSpan(ctx, "start", path)
	defer span.End()

	route, component, err := r.resolve(ctx, path)
	if err != nil {
		return Navigation{}, recordSpanError(span, err)
	}
	from, _ := r.Current()
	r.history.Reset(route.Location())
	return r.commit(NavigationEvent{To: route.Location(), From: from}, component), nil
}

// Resume returns to the entry at index when it still holds path, handing
// its saved position to the scroll behavior. Otherwise it behaves as Start.
// Reloading a page resumes the history the browser tab already walked.
func (r *Router) Resume(ctx context.Context, path string, index int) (Navigation, error) {
	route, ok := r.table.Resolve(path)
	if !ok {
		return Navigation{}, fmt.Errorf("%w: %q", ErrNotFound, path)
	}
	target, ok := r.history.Peek(index - r.history.Index())
	if !ok || target.Location != route.Location() {
		return r.Start(ctx, path)
	}

	ctx, span := r.startSpan(ctx, "resume", path)
	defer span.End()
	span.SetAttributes(attribute.Int("router.index", index))

	_, component, err := r.resolve(ctx, path)
	if err != nil {
		return Navigation{}, recordSpanError(span, err)
	}
	from, _ := r.Current()
	r.history.Seek(index)
	return r.commit(NavigationEvent{
		To:            route.Location(),
		From:          from,
		SavedPosition: target.Saved,
	}, component), nil
}

// Push navigates to path as a new history entry, recording current as the
// position the previous entry was left at.
func (r *Router) Push(ctx context.Context, path string, current Position) (Navigation, error) {
	ctx, span := r.startSpan(ctx, "push", path)
	defer span.End()

	route, component, err := r.resolve(ctx, path)
	if err != nil {
		return Navigation{}, recordSpanError(span, err)
	}
	from, hasFrom := r.Current()
	if hasFrom && from == route.Location() {
		return Navigation{}, recordSpanError(span, ErrDuplicated)
	}
	r.history.Save(current)
	r.history.Push(route.Location())
	return r.commit(NavigationEvent{To: route.Location(), From: from}, component), nil
}

// Back returns to the previous history entry.
func (r *Router) Back(ctx context.Context, current Position) (Navigation, error) {
	return r.Go(ctx, -1, current)
}

// Forward returns to the next history entry.
func (r *Router) Forward(ctx context.Context, current Position) (Navigation, error) {
	return r.Go(ctx, 1, current)
}

// Go moves delta entries through history. The target's saved position, if
// any, is handed to the scroll behavior.
func (r *Router) Go(ctx context.Context, delta int, current Position) (Navigation, error) {
	ctx, span := r.startSpan(ctx, "go", "")
	defer span.End()
	span.SetAttributes(attribute.Int("router.delta", delta))

	if delta == 0 {
		return Navigation{}, recordSpanError(span, fmt.Errorf("%w: delta must not be zero", ErrNoHistory))
	}
	target, ok := r.history.Peek(delta)
	if !ok {
		return Navigation{}, recordSpanError(span, ErrNoHistory)
	}
	route, component, err := r.resolve(ctx, target.Location.Path)
	if err != nil {
		return Navigation{}, recordSpanError(span, err)
	}
	from, _ := r.Current()
	r.history.Save(current)
	r.history.Move(delta)
	return r.commit(NavigationEvent{
		To:            route.Location(),
		From:          from,
		SavedPosition: target.Saved,
	}, component), nil
}

// GoTo moves delta entries when the target entry holds path. When it does
// not, the history no longer matches the caller's, and GoTo restarts it at
// path. An empty path behaves as Go.
func (r *Router) GoTo(ctx context.Context, delta int, path string, current Position) (Navigation, error) {
	if strings.TrimSpace(path) == "" {
		return r.Go(ctx, delta, current)
	}
	route, ok := r.table.Resolve(path)
	if !ok {
		return Navigation{}, fmt.Errorf("%w: %q", ErrNotFound, path)
	}
	if delta != 0 {
		if target, ok := r.history.Peek(delta); ok && target.Location == route.Location() {
			return r.Go(ctx, delta, current)
		}
	}
	if at, ok := r.Current(); ok && at == route.Location() {
		return Navigation{}, ErrDuplicated
	}
	return r.Start(ctx, path)
}

func (r *Router) resolve(ctx context.Context, path string) (Route, templ.Component, error) {
	route, ok := r.table.Resolve(path)
	if !ok {
		return Route{}, nil, fmt.Errorf("%w: %q", ErrNotFound, path)
	}
	component, err := route.Component.Resolve(ctx)
	if err != nil {
		return Route{}, nil, fmt.Errorf("resolve route %q: %w", route.Name, err)
	}
	return route, component, nil
}

func (r *Router) commit(event NavigationEvent, component templ.Component) Navigation {
	return Navigation{
		To:        event.To,
		From:      event.From,
		Component: component,
		Scroll:    r.scroll(event),
	}
}

func (r *Router) startSpan(ctx context.Context, kind string, path string) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return otel.Tracer(tracerName).Start(ctx, "router.navigate",
		trace.WithAttributes(
			attribute.String("router.kind", kind),
			attribute.String("router.path", path),
		))
}

func recordSpanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
