// Package ingest parses a whole provider document into a puzzle.Set,
// fanning the pure single-puzzle parse out over a bounded worker pool.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/xword-parse/internal/config"
	"github.com/heartmarshall/xword-parse/internal/domain"
	"github.com/heartmarshall/xword-parse/internal/puzzle"
	"github.com/heartmarshall/xword-parse/pkg/ctxutil"
)

// Report holds the outcome of one Run.
type Report struct {
	RunID    uuid.UUID
	Parsed   int
	Failed   int
	Warnings []domain.Warning
	Errors   []error
	Duration time.Duration
}

// HasErrors returns true if any puzzle failed structurally.
func (r Report) HasErrors() bool {
	return r.Failed > 0
}

// Pipeline parses puzzle sets.
type Pipeline struct {
	log     *slog.Logger
	cfg     config.ParserConfig
	metrics *Metrics
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMetrics records every run in m.
func WithMetrics(m *Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, cfg config.ParserConfig, opts ...Option) *Pipeline {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	p := &Pipeline{log: log, cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// outcome is the result of parsing one puzzle.
type outcome struct {
	puzzle   *puzzle.Puzzle
	warnings []domain.Warning
	err      error
}

// ParseReader decodes a provider document from r and runs it.
func (p *Pipeline) ParseReader(ctx context.Context, r io.Reader) (*puzzle.Set, Report, error) {
	raws, err := puzzle.DecodeSet(r)
	if err != nil {
		return nil, Report{}, err
	}
	return p.Run(ctx, raws)
}

// Run parses every puzzle in raws. Warnings never stop the batch. A puzzle
// with a structural error is left out of the set and its error is returned,
// joined with the others, next to the partial set; with FailFast the first
// such error aborts the run instead.
//
// Every log line carries the run ID from ctx (a fresh one if ctx has none)
// and the source name set with ctxutil.WithSource.
func (p *Pipeline) Run(ctx context.Context, raws map[string]puzzle.RawPuzzle) (*puzzle.Set, Report, error) {
	start := time.Now()
	ctx, runID := ctxutil.EnsureRunID(ctx)
	log := p.log.With(slog.String("run_id", runID.String()))
	if src := ctxutil.SourceFromCtx(ctx); src != "" {
		log = log.With(slog.String("source", src))
	}

	keys := make([]string, 0, len(raws))
	for k := range raws {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	log.Info("parsing puzzles",
		slog.Int("puzzles", len(keys)),
		slog.Int("workers", p.cfg.Workers),
		slog.Bool("strict_grid", p.cfg.StrictGrid),
	)

	opts := puzzle.Options{StrictGrid: p.cfg.StrictGrid}
	results := make([]outcome, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)
	for i, key := range keys {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pz, warnings, err := puzzle.Parse(key, raws[key], opts)
			results[i] = outcome{puzzle: pz, warnings: warnings, err: err}
			if err != nil && p.cfg.FailFast {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("parsing aborted", slog.String("error", err.Error()))
		report := Report{RunID: runID}
		for _, res := range results {
			if res.err != nil {
				report.Failed++
				report.Errors = append(report.Errors, res.err)
			}
		}
		report.Duration = time.Since(start)
		p.metrics.observe(report)
		return nil, report, fmt.Errorf("parse puzzles: %w", err)
	}

	report := Report{RunID: runID}
	puzzles := make([]*puzzle.Puzzle, 0, len(keys))
	seen := make(map[string]string, len(keys))
	for i, res := range results {
		report.Warnings = append(report.Warnings, res.warnings...)

		err := res.err
		if err == nil {
			if other, dup := seen[res.puzzle.ID()]; dup {
				err = domain.NewStructuralError(res.puzzle.ID(), "", fmt.Errorf("%w: keys %q and %q", domain.ErrDuplicatePuzzle, other, keys[i]))
			}
		}
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, err)
			log.Warn("puzzle failed", slog.String("key", keys[i]), slog.String("error", err.Error()))
			continue
		}

		seen[res.puzzle.ID()] = keys[i]
		puzzles = append(puzzles, res.puzzle)
	}

	for _, w := range report.Warnings {
		log.Debug("parse warning",
			slog.String("puzzle", w.PuzzleID),
			slog.String("entry", w.EntryID),
			slog.String("message", w.Message),
		)
	}

	set, err := puzzle.NewSet(puzzles...)
	if err != nil {
		return nil, report, fmt.Errorf("collect puzzles: %w", err)
	}

	report.Parsed = set.Len()
	report.Duration = time.Since(start)
	p.metrics.observe(report)

	log.Info("parsing completed",
		slog.Int("parsed", report.Parsed),
		slog.Int("failed", report.Failed),
		slog.Int("warnings", len(report.Warnings)),
		slog.Duration("duration", report.Duration),
	)

	return set, report, errors.Join(report.Errors...)
}
