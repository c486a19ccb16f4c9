package modules

import (
	"io/fs"

	module "github.com/louisbranch/showcase/internal/services/web/module"
	"github.com/louisbranch/showcase/internal/services/web/modules/assets"
	"github.com/louisbranch/showcase/internal/services/web/modules/health"
	"github.com/louisbranch/showcase/internal/services/web/modules/navigation"
	"github.com/louisbranch/showcase/internal/services/web/modules/site"
)

// DefaultModules returns the site's modules: pages, navigation, assets and
// a health endpoint over the first two.
func DefaultModules(deps Dependencies, files fs.FS) []Module {
	pages := site.New(deps)
	nav := navigation.New(deps)
	return []Module{
		pages,
		nav,
		assets.New(files),
		health.New([]module.HealthReporter{pages, nav}...),
	}
}
