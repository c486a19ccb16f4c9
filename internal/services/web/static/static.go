// Package static holds the document shell and browser assets.
package static

import "embed"

// FS exposes the shell and assets for HTTP serving.
//
//go:embed index.html *.css *.js
var FS embed.FS

// Shell is the document shell file name inside FS.
const Shell = "index.html"
