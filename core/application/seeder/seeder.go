package seeder

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/hyperterse/seeder/core/domain/interfaces"
	"github.com/hyperterse/seeder/core/generator"
	"github.com/hyperterse/seeder/core/logger"
	"github.com/hyperterse/seeder/core/observability"
	ctxutil "github.com/hyperterse/seeder/core/shared/context"
	apperrors "github.com/hyperterse/seeder/core/shared/errors"
)

// Stage names.
const (
	StageCore       = "core"
	StageDependents = "dependents"
	StageIndexes    = "indexes"
)

// Report is the outcome of one stage.
type Report struct {
	Stage    string
	RunID    string
	Skipped  bool
	Reason   string
	Duration time.Duration

	// Inserted counts documents written by this stage per collection.
	Inserted map[string]int
	// Counts are collection sizes observed by this stage.
	Counts map[string]int64

	IndexesCreated  int
	IndexesVerified int
	// Indexes lists every index per collection after the index stage.
	Indexes map[string][]string

	Stats *Stats
}

// Total sums Inserted.
func (r *Report) Total() int {
	total := 0
	for _, n := range r.Inserted {
		total += n
	}
	return total
}

// Seeder runs the three stages against one store. All store calls are
// sequential and each is awaited before the next starts.
type Seeder struct {
	store     interfaces.StoreGateway
	assembler *generator.Assembler
	database  string
	runID     string
	metrics   *observability.RunMetrics
}

// New builds a Seeder. The assembler, and so its random stream, is shared
// by every stage the Seeder runs.
func New(store interfaces.StoreGateway, opts generator.Options, database string) (*Seeder, error) {
	assembler, err := generator.NewAssembler(opts)
	if err != nil {
		return nil, err
	}
	runID := ctxutil.GenerateRunID()
	return &Seeder{
		store:     store,
		assembler: assembler,
		database:  database,
		runID:     runID,
		metrics:   observability.NewRunMetrics(runID),
	}, nil
}

// RunID identifies this Seeder's run in logs and metrics.
func (s *Seeder) RunID() string {
	return s.runID
}

// Metrics returns the run gauges collected so far.
func (s *Seeder) Metrics() *observability.RunMetrics {
	return s.metrics
}

// RunAll runs the core, dependents and index stages in order and stops at
// the first error.
func (s *Seeder) RunAll(ctx context.Context) ([]*Report, error) {
	stages := []func(context.Context) (*Report, error){s.SeedCore, s.SeedDependents, s.VerifyIndexes}
	reports := make([]*Report, 0, len(stages))
	for _, run := range stages {
		report, err := run(ctx)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// runStage wraps body with a span, timing and metrics. An unmet
// precondition is reported as a skipped stage rather than an error.
func (s *Seeder) runStage(ctx context.Context, stage string, log *logger.Logger, body func(context.Context, *Report) error) (*Report, error) {
	ctx = ctxutil.WithStage(ctxutil.WithRunID(ctx, s.runID), stage)
	ctx, span := observability.StartSpan(ctx, "seeder."+stage,
		attribute.String(observability.AttrStage, stage),
		attribute.String(observability.AttrRunID, s.runID),
	)

	report := &Report{
		Stage:    stage,
		RunID:    s.runID,
		Inserted: map[string]int{},
		Counts:   map[string]int64{},
	}
	start := time.Now()
	log.Debugf("Run %s", s.runID)
	log.Infof("Database: %s (%s)", s.database, s.store.Name())

	err := body(ctx, report)
	if apperrors.IsPreconditionNotMet(err) {
		report.Skipped = true
		report.Reason = err.Error()
		log.Warnf("Skipping stage: %s", apperrors.MessageOf(err))
		err = nil
	}
	report.Duration = time.Since(start)

	observability.RecordStage(ctx, stage, report.Skipped, float64(report.Duration.Milliseconds()))
	s.metrics.ObserveStage(stage, report.Duration, report.Skipped)
	for collection, n := range report.Inserted {
		s.metrics.SetInserted(collection, n)
	}
	for collection, n := range report.Counts {
		s.metrics.SetCount(collection, n)
	}
	observability.EndSpan(span, err)

	if err != nil {
		return nil, log.Errorf("stage %s failed: %w", stage, err)
	}
	return report, nil
}

func (s *Seeder) insert(ctx context.Context, log *logger.Logger, report *Report, collection string, records []any) error {
	n, err := s.store.InsertMany(ctx, collection, records)
	if err != nil {
		return err
	}
	report.Inserted[collection] = n
	report.Counts[collection] = int64(n)
	log.Successf("Inserted %d %s", n, collection)
	return nil
}

func (s *Seeder) clear(ctx context.Context, log *logger.Logger, collections ...string) error {
	for _, c := range collections {
		if err := s.store.Clear(ctx, c); err != nil {
			return err
		}
	}
	log.Infof("Cleared %v", collections)
	return nil
}
