package router

import "context"

type locationKey struct{}

// WithLocation returns ctx carrying the location being rendered.
func WithLocation(ctx context.Context, location Location) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, locationKey{}, location)
}

// LocationFromContext returns the location being rendered, if any.
func LocationFromContext(ctx context.Context) (Location, bool) {
	if ctx == nil {
		return Location{}, false
	}
	location, ok := ctx.Value(locationKey{}).(Location)
	return location, ok
}
