package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hyperterse/seeder/core/domain"
)

// StoreGateway is the document store the seeder writes to. Every call is a
// single attempt; failures come back as *errors.AppError values.
type StoreGateway interface {
	// Clear removes every document in the collection.
	Clear(ctx context.Context, collection string) error

	// InsertMany writes records in one bulk call and returns how many were inserted.
	InsertMany(ctx context.Context, collection string, records []any) (int, error)

	// Count returns the number of documents in the collection.
	Count(ctx context.Context, collection string) (int64, error)

	// FindAll returns every document in the collection in natural order.
	FindAll(ctx context.Context, collection string) ([]bson.Raw, error)

	// CreateIndex declares an index. An existing index is not an error;
	// created is false when the index was already present.
	CreateIndex(ctx context.Context, spec domain.IndexSpec) (created bool, err error)

	// ListIndexes reports the collection's indexes.
	ListIndexes(ctx context.Context, collection string) ([]domain.IndexInfo, error)

	// ListCollections returns the collection names in the database.
	ListCollections(ctx context.Context) ([]string, error)

	// Name identifies the backing store in log lines.
	Name() string

	// Close releases the connection.
	Close() error
}
