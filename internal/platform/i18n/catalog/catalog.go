// Package catalog loads the site's message catalog.
//
// The site ships one locale. Catalog files live under locales/ as
// active.<locale>.toml and are embedded into the binary.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Locale is the single locale the site renders in.
const Locale = "zh-CN"

// Tag is the parsed Locale.
var Tag = language.MustParse(Locale)

//go:embed locales/*.toml
var embeddedCatalogFS embed.FS

// LoadEmbedded loads the catalog files embedded in this package.
func LoadEmbedded() (*i18n.Bundle, error) {
	return LoadFromFS(embeddedCatalogFS)
}

// LoadFromFS loads active.*.toml catalog files from catalogFS.
func LoadFromFS(catalogFS fs.FS) (*i18n.Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/active.*.toml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	bundle := i18n.NewBundle(Tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	hasLocale := false
	for _, p := range paths {
		file, err := bundle.LoadMessageFileFS(catalogFS, p)
		if err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", p, err)
		}
		if len(file.Messages) == 0 {
			return nil, fmt.Errorf("catalog %s: no messages", p)
		}
		if FileLocale(p) == Locale {
			hasLocale = true
		}
	}
	if !hasLocale {
		return nil, fmt.Errorf("locale %s is not defined in catalogs", Locale)
	}
	return bundle, nil
}

// FileLocale returns the locale encoded in a catalog file name.
func FileLocale(name string) string {
	base := path.Base(name)
	base = strings.TrimSuffix(base, path.Ext(base))
	return strings.TrimPrefix(base, "active.")
}
