package config

import (
	"sync"
	"time"
)

// RenderConfig controls LaTeX compilation. An empty TemplatesDir uses the
// templates bundled into the binary.
type RenderConfig struct {
	TemplatesDir string
	PDFLatexBin  string
	WorkDir      string
	OutDir       string
	Timeout      time.Duration
}

var (
	renderConfig *RenderConfig
	renderOnce   sync.Once
)

func LoadRenderConfig() *RenderConfig {
	renderOnce.Do(func() {
		renderConfig = &RenderConfig{
			TemplatesDir: getEnv("TEMPLATES_DIR", ""),
			PDFLatexBin:  getEnv("PDFLATEX_PATH", "pdflatex"),
			WorkDir:      getEnv("LATEX_WORK_DIR", ""),
			OutDir:       getEnv("RENDER_OUT_DIR", "tmp/render"),
			Timeout:      getDuration("LATEX_TIMEOUT", 60*time.Second),
		}
	})
	return renderConfig
}
