package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/steel-compendium/internal/config"
	"github.com/KirkDiggler/steel-compendium/internal/errors"
	"github.com/KirkDiggler/steel-compendium/internal/orchestrators/compendium"
	"github.com/KirkDiggler/steel-compendium/internal/pkg/clock"
	"github.com/KirkDiggler/steel-compendium/internal/pkg/idgen"
	"github.com/KirkDiggler/steel-compendium/internal/pkg/watch"
)

var (
	rulesDir string
	outDir   string
	progress bool
	watching bool
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a rules directory into abilities.json and features.json",
	Long: `Parse walks every markdown file under --rules, writes the parsed
abilities and features to --out and prints a summary. With a store
configured the records are also saved to it. With --watch the directory
is parsed again whenever a markdown file changes.`,
	Args: cobra.NoArgs,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&rulesDir, "rules", "", "rules markdown directory")
	parseCmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	parseCmd.Flags().StringVar(&storeFlag, "store", config.StoreNone, "catalog store (none, redis, sqlite)")
	parseCmd.Flags().IntVar(&workersFlag, "workers", compendium.DefaultWorkers, "documents parsed at once")
	parseCmd.Flags().BoolVar(&progress, "progress", false, "print each document as it is processed")
	parseCmd.Flags().BoolVar(&watching, "watch", false, "parse again when markdown files change")
	_ = parseCmd.MarkFlagRequired("rules")
}

func runParse(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	p, err := newParser()
	if err != nil {
		return err
	}

	repo, release, err := openRepository()
	if err != nil {
		return err
	}
	defer release()

	bus := events.NewBus()
	if progress {
		watchProgress(bus, cmd.ErrOrStderr())
	}

	svc, err := compendium.New(&compendium.Config{
		Parser:     p,
		EventBus:   bus,
		Repository: repo,
		IDGen:      idgen.NewUUID("run"),
		Clock:      clock.New(),
		Workers:    cfg.Workers,
	})
	if err != nil {
		return err
	}

	run := func(ctx context.Context) error {
		return parseOnce(ctx, svc, repo != nil, cmd.OutOrStdout())
	}
	if err := run(ctx); err != nil {
		return err
	}
	if !watching {
		return nil
	}

	w, err := watch.New(&watch.Config{
		Root: rulesDir,
		OnChange: func(ctx context.Context, paths []string) {
			slog.InfoContext(ctx, "rules changed, parsing again", "changed", len(paths))
			if err := run(ctx); err != nil {
				slog.ErrorContext(ctx, "parse failed", "error", err)
			}
		},
	})
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

// parseOnce runs one parse of the rules directory and writes its outputs
func parseOnce(ctx context.Context, svc compendium.Service, persist bool, w io.Writer) error {
	out, err := svc.ParseTree(ctx, &compendium.ParseTreeInput{
		FS:      os.DirFS(rulesDir),
		Persist: persist,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s", outDir)
	}
	if err := writeJSON(filepath.Join(outDir, "abilities.json"), out.Abilities); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(outDir, "features.json"), out.Features); err != nil {
		return err
	}

	printSummary(w, out)
	return nil
}

// watchProgress prints one line per processed document
func watchProgress(bus events.EventBus, w io.Writer) {
	bus.SubscribeFunc(compendium.EventDocumentParsed, 0, func(_ context.Context, e events.Event) error {
		_, err := fmt.Fprintf(w, "ok    %s\n", e.Target().GetID())
		return err
	})
	bus.SubscribeFunc(compendium.EventDocumentSkipped, 0, func(_ context.Context, e events.Event) error {
		_, err := fmt.Fprintf(w, "skip  %s\n", e.Target().GetID())
		return err
	})
}

// writeJSON writes v indented, leaving non-ASCII and HTML characters as is
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrapf(err, "failed to encode %s", path)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

func printSummary(w io.Writer, out *compendium.ParseTreeOutput) {
	s := out.Summary

	fmt.Fprintf(w, "Run %s\n", out.RunID)
	fmt.Fprintf(w, "Parsed %d documents: %d abilities, %d features (%d embedded abilities)\n",
		s.Parsed, len(out.Abilities), len(out.Features), s.Embedded)

	classes := make([]string, 0, len(s.ByClass))
	for class := range s.ByClass {
		classes = append(classes, class)
	}
	slices.Sort(classes)
	for _, class := range classes {
		fmt.Fprintf(w, "  %-12s %d\n", class, s.ByClass[class])
	}

	if s.Saved > 0 {
		fmt.Fprintf(w, "Saved %d records\n", s.Saved)
	}

	if s.Skipped > 0 {
		fmt.Fprintf(w, "Skipped %d documents\n", s.Skipped)
		for _, sk := range out.Skipped {
			fmt.Fprintf(w, "  %s: %s\n", sk.Path, sk.Reason)
		}
	}
}
