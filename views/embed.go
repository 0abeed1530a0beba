// Package views carries the server-rendered site templates, embedded so the
// binary ships self-contained.
package views

import "embed"

//go:embed *.html layouts/*.html
var FS embed.FS
