package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/louisbranch/showcase/internal/platform/i18n/catalog"
	"github.com/louisbranch/showcase/internal/services/web/pages"
	"github.com/louisbranch/showcase/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/showcase/internal/services/web/router"
	"github.com/louisbranch/showcase/internal/services/web/static"
	"github.com/louisbranch/showcase/internal/services/web/store"
	"github.com/louisbranch/showcase/internal/services/web/ui"
)

const tracerName = "github.com/louisbranch/showcase/internal/services/web/app"

// Options configures Bootstrap. Zero values select the embedded site.
type Options struct {
	SessionTTL time.Duration
	// MaxSessions caps live visitor sessions; zero selects the store default.
	MaxSessions int
	Bundle      *i18n.Bundle
	Table       *router.Table
	Scroll      router.ScrollBehavior
	Document    *Document
	AnchorID    string
	// SchemePolicy controls secure cookies and origin checks.
	SchemePolicy requestmeta.SchemePolicy
}

// Bootstrap builds the mounted app: store, app root, store plugin, UI
// plugin, router plugin, then mount.
func Bootstrap(ctx context.Context, opts Options) (_ *App, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	_, span := otel.Tracer(tracerName).Start(ctx, "app.bootstrap")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	bundle := opts.Bundle
	if bundle == nil {
		if bundle, err = catalog.LoadEmbedded(); err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	}
	lib, err := ui.NewLibrary(bundle)
	if err != nil {
		return nil, err
	}
	table := opts.Table
	if table == nil {
		if table, err = pages.NewTable(); err != nil {
			return nil, fmt.Errorf("build route table: %w", err)
		}
	}
	doc := opts.Document
	if doc == nil {
		doc = &Document{FS: static.FS, Shell: static.Shell}
	}
	anchorID := strings.TrimSpace(opts.AnchorID)
	if anchorID == "" {
		anchorID = DefaultAnchorID
	}

	st := store.New(store.Options{SessionTTL: opts.SessionTTL, MaxSessions: opts.MaxSessions})
	a := New(pages.Root())
	a.SetSchemePolicy(opts.SchemePolicy)
	for _, p := range []Plugin{
		StorePlugin(st),
		UIPlugin(lib),
		RouterPlugin(table, opts.Scroll),
	} {
		if err := a.Use(p); err != nil {
			return nil, err
		}
	}
	if err := a.Mount(doc, anchorID); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("app.locale", lib.Locale()),
		attribute.Int("app.routes", table.Len()),
	)
	log.Printf("app mounted anchor=%s locale=%s routes=%d", anchorID, lib.Locale(), table.Len())
	return a, nil
}
