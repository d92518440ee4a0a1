package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/heartmarshall/xword-parse/internal/app/ingest"
	"github.com/heartmarshall/xword-parse/internal/config"
	"github.com/heartmarshall/xword-parse/internal/puzzle"
)

// Run is the library entry point. It loads configuration, initializes the
// logger and parses the provider document read from r. Batch metrics are
// registered with reg unless it is nil.
func Run(ctx context.Context, r io.Reader, reg prometheus.Registerer) (*puzzle.Set, ingest.Report, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, ingest.Report{}, err
	}

	logger := NewLogger(cfg.Log, nil)
	logger.Debug("configuration loaded",
		slog.String("log_level", cfg.Log.Level),
		slog.Int("workers", cfg.Parser.Workers),
	)

	var opts []ingest.Option
	if reg != nil {
		metrics, err := ingest.NewMetrics(reg)
		if err != nil {
			return nil, ingest.Report{}, err
		}
		opts = append(opts, ingest.WithMetrics(metrics))
	}

	return ingest.NewPipeline(logger, cfg.Parser, opts...).ParseReader(ctx, r)
}
