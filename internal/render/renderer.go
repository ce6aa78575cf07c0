// Package render fills LaTeX templates with resume content and compiles
// them to PDF.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"resume-builder/internal/model"
)

// ErrTemplateNotFound is returned when the resolved template has no file.
var ErrTemplateNotFound = errors.New("template not found")

// CompileError wraps a failed compiler run. Err carries the compiler output.
type CompileError struct {
	Template model.TemplateID
	Err      error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("latex compile (%s): %v", e.Template, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Compiler turns a complete LaTeX document into PDF bytes written to out.
type Compiler interface {
	Compile(ctx context.Context, source string, out io.Writer) error
}

// Artifact is a compiled PDF on local disk.
type Artifact struct {
	Path     string
	Filename string
	Template model.TemplateID
	// Coerced reports that the requested template was replaced by the default.
	Coerced bool
}

type Renderer struct {
	templates fs.FS
	compiler  Compiler
	outDir    string
	now       func() time.Time
	log       *slog.Logger
}

// New builds a Renderer reading "<id>.tex" files from templates and writing
// PDFs under outDir.
func New(templates fs.FS, compiler Compiler, outDir string, log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{
		templates: templates,
		compiler:  compiler,
		outDir:    outDir,
		now:       time.Now,
		log:       log,
	}
}

// Source returns the filled document for the requested template along with
// the template actually used.
func (r *Renderer) Source(resume model.Resume, requested string) (string, model.TemplateID, error) {
	id, coerced := model.ResolveTemplate(requested)
	if coerced && requested != "" {
		r.log.Warn("unknown template, using default", "requested", requested, "template", id)
	}
	tpl, err := fs.ReadFile(r.templates, string(id)+".tex")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", id, fmt.Errorf("%w: %s.tex", ErrTemplateNotFound, id)
		}
		return "", id, fmt.Errorf("read template %s: %w", id, err)
	}
	return substitute(string(tpl), resume.Normalize()), id, nil
}

// Render compiles the filled template into "<outDir>/<Name>_<unixms>_<key>.pdf".
// key keeps concurrent renders for the same name apart; an empty key drops
// the suffix. An existing file is never overwritten, and a failed compile
// leaves no file behind.
func (r *Renderer) Render(ctx context.Context, resume model.Resume, requested, key string) (*Artifact, error) {
	src, id, err := r.Source(resume, requested)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	filename := artifactName(resume.Name, r.now(), key)
	path := filepath.Join(r.outDir, filename)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create pdf: %w", err)
	}

	start := time.Now()
	err = r.compiler.Compile(ctx, src, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, &CompileError{Template: id, Err: err}
	}
	r.log.Info("pdf rendered", "template", id, "file", filename, "took", time.Since(start))

	_, coerced := model.ResolveTemplate(requested)
	return &Artifact{Path: path, Filename: filename, Template: id, Coerced: coerced}, nil
}

func artifactName(name string, at time.Time, key string) string {
	base := SafeName(name) + "_" + strconv.FormatInt(at.UnixMilli(), 10)
	if strings.TrimSpace(key) != "" {
		base += "_" + SafeName(key)
	}
	return base + ".pdf"
}
