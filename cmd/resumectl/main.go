// Command resumectl fills a resume form from a JSON file, optionally
// enhances sections through the API, and submits it for rendering.
//
//	resumectl -form ada.json -enhance summary,skills -template template2
//	resumectl -history -user u1
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"resume-builder/internal/model"
	"resume-builder/internal/parser"
	"resume-builder/internal/preview"
	"resume-builder/pkg/client"
	"resume-builder/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Setup("development")

	var (
		api      = flag.String("api", envOr("RESUME_API_URL", "http://localhost:5000"), "API base URL")
		formPath = flag.String("form", "", "form JSON file")
		user     = flag.String("user", envOr("RESUME_USER_ID", "cli"), "user id")
		tpl      = flag.String("template", string(model.DefaultTemplate), "template id")
		useAI    = flag.Bool("ai", false, "enrich the whole resume before rendering")
		enhance  = flag.String("enhance", "", "comma separated sections to enhance and apply before submitting")
		history  = flag.Bool("history", false, "list the user's resumes and exit")
	)
	flag.Parse()

	ctx := context.Background()
	c := client.New(*api)

	if *history {
		printJSON(c.History(ctx, *user))
		return
	}
	if *formPath == "" {
		fmt.Fprintln(os.Stderr, "usage: resumectl -form file.json [-enhance sections] [-template id] [-ai]")
		os.Exit(2)
	}

	form, err := readForm(*formPath)
	if err != nil {
		slog.Error("read form", "error", err)
		os.Exit(1)
	}

	board := preview.NewBoard()
	for _, name := range strings.Split(*enhance, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		section, ok := model.ParseSection(name)
		if !ok {
			slog.Error("unknown section", "section", name)
			os.Exit(2)
		}
		if err := board.Enhance(ctx, section, form, c.EnhanceSection); err != nil {
			slog.Warn("enhance failed, keeping original text", "section", section, "error", err)
			continue
		}
		for _, line := range preview.Lines(board.Get(section).Result) {
			fmt.Printf("  %s: %s\n", section, line)
		}
		if err := board.Apply(section, form); err != nil {
			slog.Error("apply", "section", section, "error", err)
			os.Exit(1)
		}
	}

	start := time.Now()
	res, err := c.Generate(ctx, *user, form.Resume(), model.TemplateID(*tpl), *useAI)
	if err != nil {
		slog.Error("generate failed", "error", err)
		os.Exit(1)
	}
	slog.Info("resume generated", "took", time.Since(start))
	printJSON(res)
}

func readForm(path string) (*parser.Form, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f parser.Form
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
