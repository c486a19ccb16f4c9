package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"
)

const tracerName = "github.com/louisbranch/showcase/internal/services/web/router"

// Provider resolves the page component bound to a route.
type Provider interface {
	Resolve(ctx context.Context) (templ.Component, error)
}

// Loader fetches a deferred page component.
type Loader func(ctx context.Context) (templ.Component, error)

// EagerProvider holds an already resolved component.
type EagerProvider struct {
	component templ.Component
}

// Eager returns a provider that always resolves to component.
func Eager(component templ.Component) EagerProvider {
	return EagerProvider{component: component}
}

// Resolve returns the held component.
func (p EagerProvider) Resolve(context.Context) (templ.Component, error) {
	if p.component == nil {
		return nil, errors.New("eager component is nil")
	}
	return p.component, nil
}

// LazyProvider loads its component on first resolution and caches it.
//
// Concurrent resolutions share one in-flight load. A failed load is not
// cached, so the next resolution tries again. A caller that gives up through
// its context does not cancel the shared load.
type LazyProvider struct {
	name   string
	loader Loader
	group  singleflight.Group
	loads  atomic.Int64

	mu     sync.RWMutex
	loaded templ.Component
}

// Lazy returns a provider that defers loader until the first resolution.
func Lazy(name string, loader Loader) *LazyProvider {
	return &LazyProvider{name: strings.TrimSpace(name), loader: loader}
}

// Resolve returns the cached component or loads it.
func (p *LazyProvider) Resolve(ctx context.Context) (templ.Component, error) {
	if p == nil || p.loader == nil {
		return nil, errors.New("lazy loader is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if component := p.cached(); component != nil {
		return component, nil
	}

	result := p.group.DoChan(p.name, func() (any, error) {
		if component := p.cached(); component != nil {
			return component, nil
		}
		return p.load(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return nil, fmt.Errorf("load component %q: %w", p.name, res.Err)
		}
		return res.Val.(templ.Component), nil
	}
}

// Loaded reports whether the component is cached.
func (p *LazyProvider) Loaded() bool {
	return p.cached() != nil
}

// Loads returns how many times the loader ran.
func (p *LazyProvider) Loads() int64 {
	return p.loads.Load()
}

func (p *LazyProvider) cached() templ.Component {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loaded
}

func (p *LazyProvider) load(ctx context.Context) (templ.Component, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "router.lazy_load",
		trace.WithAttributes(attribute.String("route.component", p.name)))
	defer span.End()

	p.loads.Inc()
	component, err := p.loader(ctx)
	if err == nil && component == nil {
		err = errors.New("loader returned nil component")
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	p.mu.Lock()
	p.loaded = component
	p.mu.Unlock()
	return component, nil
}
