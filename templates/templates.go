// Package templates bundles the LaTeX resume templates.
package templates

import "embed"

// FS holds template1.tex through template4.tex.
//
//go:embed *.tex
var FS embed.FS
