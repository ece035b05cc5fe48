package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.opentelemetry.io/otel/attribute"

	"github.com/hyperterse/seeder/core/domain"
	"github.com/hyperterse/seeder/core/domain/interfaces"
	"github.com/hyperterse/seeder/core/observability"
)

// Instrumented wraps a gateway with spans and store-operation metrics.
type Instrumented struct {
	next interfaces.StoreGateway
}

// Instrument decorates next.
func Instrument(next interfaces.StoreGateway) *Instrumented {
	return &Instrumented{next: next}
}

// observe opens a span for op and returns the callback that ends it and records the outcome.
func (s *Instrumented) observe(ctx context.Context, op, collection string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, "store."+op,
		attribute.String(observability.AttrStoreName, s.next.Name()),
		attribute.String(observability.AttrCollection, collection),
		attribute.String(observability.AttrOperation, op),
	)
	return ctx, func(err error) {
		observability.RecordStoreOperation(ctx, s.next.Name(), collection, op, err == nil,
			float64(time.Since(start).Microseconds())/1000)
		observability.EndSpan(span, err)
	}
}

// Name reports the wrapped gateway's name.
func (s *Instrumented) Name() string {
	return s.next.Name()
}

// Clear implements StoreGateway.
func (s *Instrumented) Clear(ctx context.Context, collection string) (err error) {
	ctx, done := s.observe(ctx, "clear", collection)
	defer func() { done(err) }()
	return s.next.Clear(ctx, collection)
}

// InsertMany implements StoreGateway and counts inserted documents on success.
func (s *Instrumented) InsertMany(ctx context.Context, collection string, records []any) (n int, err error) {
	ctx, done := s.observe(ctx, "insert_many", collection)
	defer func() { done(err) }()
	n, err = s.next.InsertMany(ctx, collection, records)
	if err == nil {
		observability.RecordDocumentsInserted(ctx, s.next.Name(), collection, n)
	}
	return n, err
}

// Count implements StoreGateway.
func (s *Instrumented) Count(ctx context.Context, collection string) (n int64, err error) {
	ctx, done := s.observe(ctx, "count", collection)
	defer func() { done(err) }()
	return s.next.Count(ctx, collection)
}

// FindAll implements StoreGateway.
func (s *Instrumented) FindAll(ctx context.Context, collection string) (docs []bson.Raw, err error) {
	ctx, done := s.observe(ctx, "find", collection)
	defer func() { done(err) }()
	return s.next.FindAll(ctx, collection)
}

// CreateIndex implements StoreGateway.
func (s *Instrumented) CreateIndex(ctx context.Context, spec domain.IndexSpec) (created bool, err error) {
	ctx, done := s.observe(ctx, "create_index", spec.Collection)
	defer func() { done(err) }()
	return s.next.CreateIndex(ctx, spec)
}

// ListIndexes implements StoreGateway.
func (s *Instrumented) ListIndexes(ctx context.Context, collection string) (infos []domain.IndexInfo, err error) {
	ctx, done := s.observe(ctx, "list_indexes", collection)
	defer func() { done(err) }()
	return s.next.ListIndexes(ctx, collection)
}

// ListCollections implements StoreGateway.
func (s *Instrumented) ListCollections(ctx context.Context) (names []string, err error) {
	ctx, done := s.observe(ctx, "list_collections", "")
	defer func() { done(err) }()
	return s.next.ListCollections(ctx)
}

// Close closes the wrapped gateway. It is not traced.
func (s *Instrumented) Close() error {
	return s.next.Close()
}
