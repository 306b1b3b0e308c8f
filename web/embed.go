// Package web holds the HTML templates, embedded into the binary.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
