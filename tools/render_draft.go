//go:build ignore

// render_draft prints the filled LaTeX document for a resume JSON file
// without compiling it:
//
//	go run tools/render_draft.go -template template3 draft.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"resume-builder/internal/model"
	"resume-builder/internal/render"
	"resume-builder/templates"
)

type nopCompiler struct{}

func (nopCompiler) Compile(context.Context, string, io.Writer) error { return nil }

func main() {
	tpl := flag.String("template", string(model.DefaultTemplate), "template id")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: render_draft [-template id] resume.json")
		os.Exit(2)
	}

	b, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "read draft: %v\n", err)
		os.Exit(2)
	}
	var r model.Resume
	if err := json.Unmarshal(b, &r); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal: %v\n", err)
		os.Exit(2)
	}
	if err := model.Validate(r.Normalize()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	src, id, err := render.New(templates.FS, nopCompiler{}, os.TempDir(), nil).Source(r, *tpl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "template: %s\n", id)
	fmt.Print(src)
}
