package router

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/a-h/templ"
)

func TestEagerResolve(t *testing.T) {
	t.Parallel()

	component := namedComponent("home")
	got, err := Eager(component).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got == nil {
		t.Fatal("Resolve() returned nil component")
	}
	if _, err := Eager(nil).Resolve(context.Background()); err == nil {
		t.Fatal("expected nil component error")
	}
}

func TestLazyLoadsOnceAcrossConcurrentResolves(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	provider := Lazy("Products", func(context.Context) (templ.Component, error) {
		<-release
		return namedComponent("products"), nil
	})
	if provider.Loaded() {
		t.Fatal("Loaded() = true before first resolve")
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := provider.Resolve(context.Background())
			errs <- err
		}()
	}
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
	}
	if _, err := provider.Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := provider.Loads(); got != 1 {
		t.Fatalf("Loads() = %d, want 1", got)
	}
	if !provider.Loaded() {
		t.Fatal("Loaded() = false after resolve")
	}
}

func TestLazyRetriesAfterFailure(t *testing.T) {
	t.Parallel()

	attempts := 0
	provider := Lazy("Contact", func(context.Context) (templ.Component, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("network down")
		}
		return namedComponent("contact"), nil
	})
	if _, err := provider.Resolve(context.Background()); err == nil {
		t.Fatal("expected first load to fail")
	}
	if provider.Loaded() {
		t.Fatal("failed load must not be cached")
	}
	if _, err := provider.Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve() retry error = %v", err)
	}
	if got := provider.Loads(); got != 2 {
		t.Fatalf("Loads() = %d, want 2", got)
	}
}

func TestLazyCancelledCallerDoesNotCancelLoad(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	provider := Lazy("About", func(ctx context.Context) (templ.Component, error) {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return namedComponent("about"), nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := provider.Resolve(ctx)
		done <- err
	}()
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Resolve() error = %v, want context.Canceled", err)
	}

	close(release)
	if _, err := provider.Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := provider.Loads(); got != 1 {
		t.Fatalf("Loads() = %d, want 1", got)
	}
}

func TestLazyRejectsNilComponent(t *testing.T) {
	t.Parallel()

	provider := Lazy("Services", func(context.Context) (templ.Component, error) {
		return nil, nil
	})
	if _, err := provider.Resolve(context.Background()); err == nil {
		t.Fatal("expected nil component error")
	}
}
