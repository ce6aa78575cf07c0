package infrastructure

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// PDFLatexCompiler runs pdflatex on a document in a scratch directory.
type PDFLatexCompiler struct {
	Bin     string
	WorkDir string
	Timeout time.Duration
}

func NewPDFLatexCompiler(bin, workDir string, timeout time.Duration) *PDFLatexCompiler {
	if bin == "" {
		bin = "pdflatex"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &PDFLatexCompiler{Bin: bin, WorkDir: workDir, Timeout: timeout}
}

func (c *PDFLatexCompiler) Compile(ctx context.Context, source string, out io.Writer) error {
	if c.WorkDir != "" {
		if err := os.MkdirAll(c.WorkDir, 0o755); err != nil {
			return err
		}
	}
	tmpDir, err := os.MkdirTemp(c.WorkDir, "resume-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	texPath := filepath.Join(tmpDir, "resume.tex")
	if err := os.WriteFile(texPath, []byte(source), 0o644); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.Bin,
		"-interaction=nonstopmode",
		"-halt-on-error",
		"-output-directory", tmpDir,
		texPath,
	)
	cmd.Dir = tmpDir
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w\n%s", c.Bin, err, tail(output, 2048))
	}

	pdf, err := os.Open(filepath.Join(tmpDir, "resume.pdf"))
	if err != nil {
		return fmt.Errorf("%s produced no pdf: %w", c.Bin, err)
	}
	defer pdf.Close()
	_, err = io.Copy(out, pdf)
	return err
}

// tail keeps the last n bytes of the compiler log, where the error usually is.
func tail(b []byte, n int) string {
	if len(b) > n {
		b = b[len(b)-n:]
	}
	return string(b)
}
