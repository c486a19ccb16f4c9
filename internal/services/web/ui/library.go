// Package ui is the site's component library.
//
// Components render through templ and read the Library from the render
// context, so every component on a page shares one locale.
package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/louisbranch/showcase/internal/platform/i18n/catalog"
)

// ErrLibraryMissing reports a render without a Library in the context.
var ErrLibraryMissing = errors.New("ui library is not installed in render context")

// Library carries the fixed locale and its message localizer.
type Library struct {
	locale    string
	localizer *i18n.Localizer
}

// NewLibrary returns a library localized to catalog.Locale.
func NewLibrary(bundle *i18n.Bundle) (*Library, error) {
	if bundle == nil {
		return nil, errors.New("message bundle is required")
	}
	return &Library{
		locale:    catalog.Locale,
		localizer: i18n.NewLocalizer(bundle, catalog.Locale),
	}, nil
}

// Locale returns the library locale.
func (l *Library) Locale() string {
	if l == nil {
		return catalog.Locale
	}
	return l.locale
}

// T returns the localized message for id, or id when no message exists.
func (l *Library) T(id string, data map[string]any) string {
	if l == nil || l.localizer == nil {
		return id
	}
	message, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil || strings.TrimSpace(message) == "" {
		return id
	}
	return message
}

type libraryKey struct{}

// WithLibrary returns ctx carrying lib.
func WithLibrary(ctx context.Context, lib *Library) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, libraryKey{}, lib)
}

// FromContext returns the library installed in ctx.
func FromContext(ctx context.Context) (*Library, bool) {
	if ctx == nil {
		return nil, false
	}
	lib, ok := ctx.Value(libraryKey{}).(*Library)
	return lib, ok && lib != nil
}
