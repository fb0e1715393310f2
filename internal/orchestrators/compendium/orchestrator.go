// Package compendium runs the parser over a rules tree: it walks the markdown
// files, parses them in a bounded worker pool, accounts for skipped documents
// and optionally persists the records to the catalog.
package compendium

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
	"github.com/KirkDiggler/steel-compendium/internal/errors"
	"github.com/KirkDiggler/steel-compendium/internal/parser"
	"github.com/KirkDiggler/steel-compendium/internal/pkg/clock"
	"github.com/KirkDiggler/steel-compendium/internal/pkg/idgen"
	"github.com/KirkDiggler/steel-compendium/internal/repositories/catalog"
)

// DefaultWorkers is the pool size used when Config.Workers is zero
const DefaultWorkers = 4

// Service defines the batch parsing operations
type Service interface {
	// ParseTree parses every *.md file under the input root. Document-level
	// failures are reported in Skipped and never fail the run.
	// Returns errors.InvalidArgument when the input has no FS
	// Returns errors.Canceled when ctx is done before the run completes
	ParseTree(ctx context.Context, input *ParseTreeInput) (*ParseTreeOutput, error)

	// ParseFile parses a single document
	// Returns a skippable error when the document produced no record
	ParseFile(ctx context.Context, input *ParseFileInput) (*ParseFileOutput, error)
}

// Config holds the dependencies for the compendium orchestrator
type Config struct {
	Parser *parser.Parser
	// EventBus receives document and run events. Optional.
	EventBus events.EventBus
	// Repository stores records when a run asks to persist. Optional.
	Repository catalog.Repository
	IDGen      idgen.Generator
	Clock      clock.Clock
	// Workers bounds the number of documents parsed at once
	Workers int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Parser == nil {
		vb.RequiredField("Parser")
	}
	if c.IDGen == nil {
		vb.RequiredField("IDGen")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.Workers < 0 {
		vb.InvalidField("Workers", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	parser   *parser.Parser
	eventBus events.EventBus
	repo     catalog.Repository
	idGen    idgen.Generator
	clock    clock.Clock
	workers  int
}

// New creates a compendium orchestrator
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = DefaultWorkers
	}

	return &orchestrator{
		parser:   cfg.Parser,
		eventBus: cfg.EventBus,
		repo:     cfg.Repository,
		idGen:    cfg.IDGen,
		clock:    cfg.Clock,
		workers:  workers,
	}, nil
}

// result is the outcome of one document, written by exactly one worker
type result struct {
	doc *parser.Document
	err error
}

func (o *orchestrator) ParseTree(ctx context.Context, input *ParseTreeInput) (*ParseTreeOutput, error) {
	if input == nil || input.FS == nil {
		return nil, errors.InvalidArgument("input with a file system is required")
	}
	if input.Persist && o.repo == nil {
		return nil, errors.FailedPrecondition("no repository configured to persist records")
	}

	root := input.Root
	if root == "" {
		root = "."
	}

	out := &ParseTreeOutput{
		RunID:     o.idGen.Generate(),
		StartedAt: o.clock.Now(),
		Summary:   &Summary{ByClass: make(map[string]int)},
	}

	paths, err := markdownFiles(input.FS, root)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "parsing rules tree",
		"run_id", out.RunID,
		"root", root,
		"documents", len(paths),
		"workers", o.workers,
	)

	results := make([]result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = o.parsePath(input.FS, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "parse run canceled")
	}

	run := runEntity(out.RunID)
	for i, p := range paths {
		o.collect(ctx, run, p, results[i], out)
	}

	drawsteel.SortAbilities(out.Abilities)
	drawsteel.SortFeatures(out.Features)

	if input.Persist {
		saved, err := o.persist(ctx, out)
		if err != nil {
			return nil, err
		}
		out.Summary.Saved = saved
	}

	out.FinishedAt = o.clock.Now()

	o.publish(ctx, EventRunCompleted, run, nil, map[string]any{
		KeySummary: out.Summary,
	})

	slog.InfoContext(ctx, "parsed rules tree",
		"run_id", out.RunID,
		"parsed", out.Summary.Parsed,
		"skipped", out.Summary.Skipped,
		"embedded", out.Summary.Embedded,
		"saved", out.Summary.Saved,
		"duration", out.FinishedAt.Sub(out.StartedAt),
	)

	return out, nil
}

func (o *orchestrator) ParseFile(ctx context.Context, input *ParseFileInput) (*ParseFileOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	res := o.parseBytes(input.Path, input.Data)
	if res.err != nil {
		slog.WarnContext(ctx, "document skipped",
			"path", input.Path,
			"reason", errors.GetMessage(res.err),
		)
		return nil, res.err
	}

	return &ParseFileOutput{Document: res.doc}, nil
}

// collect folds one document outcome into the run. It runs on the calling
// goroutine so events are published in path order.
func (o *orchestrator) collect(ctx context.Context, run core.Entity, p string, res result, out *ParseTreeOutput) {
	doc := documentEntity(p)

	if res.err != nil {
		skipped := &Skipped{
			Path:   p,
			Reason: errors.GetMessage(res.err),
			Code:   errors.GetCode(res.err),
		}
		out.Skipped = append(out.Skipped, skipped)
		out.Summary.Skipped++

		slog.WarnContext(ctx, "document skipped",
			"path", p,
			"reason", skipped.Reason,
			"code", skipped.Code,
		)
		o.publish(ctx, EventDocumentSkipped, run, doc, map[string]any{
			KeyPath:   p,
			KeyReason: skipped.Reason,
			KeyCode:   string(skipped.Code),
		})
		return
	}

	out.Summary.Parsed++

	var record any
	switch {
	case res.doc.Ability != nil:
		out.Abilities = append(out.Abilities, res.doc.Ability)
		out.Summary.ByClass[classKey(res.doc.Ability.Class)]++
		record = res.doc.Ability
	case res.doc.Feature != nil:
		out.Features = append(out.Features, res.doc.Feature)
		out.Summary.ByClass[classKey(res.doc.Feature.Class)]++
		out.Summary.Embedded += len(res.doc.Feature.Abilities)
		record = res.doc.Feature
	}

	slog.DebugContext(ctx, "document parsed",
		"path", p,
		"kind", res.doc.Kind,
	)
	o.publish(ctx, EventDocumentParsed, run, doc, map[string]any{
		KeyPath:   p,
		KeyRecord: record,
	})
}

func (o *orchestrator) persist(ctx context.Context, out *ParseTreeOutput) (int, error) {
	abilities := make([]*drawsteel.AbilityRecord, 0, len(out.Abilities)+out.Summary.Embedded)
	abilities = append(abilities, out.Abilities...)
	for _, f := range out.Features {
		abilities = append(abilities, f.Abilities...)
	}

	savedAbilities, err := o.repo.SaveAbilities(ctx, catalog.SaveAbilitiesInput{Abilities: abilities})
	if err != nil {
		return 0, errors.Wrap(err, "failed to save abilities")
	}

	savedFeatures, err := o.repo.SaveFeatures(ctx, catalog.SaveFeaturesInput{Features: out.Features})
	if err != nil {
		return 0, errors.Wrap(err, "failed to save features")
	}

	return savedAbilities.Saved + savedFeatures.Saved, nil
}

func (o *orchestrator) parsePath(fsys fs.FS, p string) result {
	raw, err := fs.ReadFile(fsys, p)
	if err != nil {
		return result{err: errors.Unreadable(p, err)}
	}
	return o.parseBytes(p, raw)
}

// parseBytes turns a panic inside the parser into a document-level failure
func (o *orchestrator) parseBytes(p string, raw []byte) (res result) {
	defer func() {
		if r := recover(); r != nil {
			res = result{err: errors.Internalf("parser panic: %v", r).WithMeta("path", p)}
		}
	}()

	doc, err := o.parser.ParseDocument(p, raw)
	return result{doc: doc, err: err}
}

// markdownFiles lists the *.md files under root in lexical order
func markdownFiles(fsys fs.FS, root string) ([]string, error) {
	var paths []string
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.EqualFold(path.Ext(p), ".md") {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, fmt.Sprintf("failed to walk %s", root))
	}
	return paths, nil
}

func classKey(class string) string {
	if class == "" {
		return "none"
	}
	return class
}
