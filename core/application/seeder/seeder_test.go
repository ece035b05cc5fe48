package seeder_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hyperterse/seeder/core/application/seeder"
	"github.com/hyperterse/seeder/core/domain"
	"github.com/hyperterse/seeder/core/generator"
	"github.com/hyperterse/seeder/core/infrastructure/store"
	apperrors "github.com/hyperterse/seeder/core/shared/errors"
)

func testOptions(seed uint64) generator.Options {
	opts := generator.DefaultOptions()
	opts.Seed = seed
	opts.Now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }
	return opts
}

func newSeeder(t *testing.T, gw *store.MemoryStore, seed uint64) *seeder.Seeder {
	t.Helper()
	s, err := seeder.New(gw, testOptions(seed), "ecommerce")
	require.NoError(t, err)
	return s
}

func decodeAll[T any](t *testing.T, gw *store.MemoryStore, collection string) []T {
	t.Helper()
	docs, err := gw.FindAll(context.Background(), collection)
	require.NoError(t, err)
	out := make([]T, len(docs))
	for i, doc := range docs {
		require.NoError(t, bson.Unmarshal(doc, &out[i]))
	}
	return out
}

func TestSeedCore_PopulatesUsersAndProducts(t *testing.T) {
	gw := store.NewMemoryStore()
	report, err := newSeeder(t, gw, 1).SeedCore(context.Background())
	require.NoError(t, err)

	assert.False(t, report.Skipped)
	assert.Equal(t, seeder.StageCore, report.Stage)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 30, report.Inserted[domain.CollectionUsers])
	assert.Equal(t, 10, report.Inserted[domain.CollectionProducts])
	assert.Equal(t, 40, report.Total())

	infos, err := gw.ListIndexes(context.Background(), domain.CollectionUsers)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.True(t, infos[1].Unique)

	users := decodeAll[domain.User](t, gw, domain.CollectionUsers)
	assert.Empty(t, generator.DuplicateEmails(users))
}

func TestSeedDependents_SkipsWhenCoreMissing(t *testing.T) {
	gw := store.NewMemoryStore()
	report, err := newSeeder(t, gw, 1).SeedDependents(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Skipped)
	assert.Contains(t, report.Reason, "users")
	assert.Nil(t, report.Stats)

	n, err := gw.Count(context.Background(), domain.CollectionReviews)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestVerifyIndexes_SkipsWithoutDependents(t *testing.T) {
	gw := store.NewMemoryStore()
	s := newSeeder(t, gw, 1)
	_, err := s.SeedCore(context.Background())
	require.NoError(t, err)

	report, err := s.VerifyIndexes(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Skipped)
	assert.Contains(t, report.Reason, "orders")
	assert.Zero(t, report.IndexesCreated)
}

func TestRunAll_ReferentialIntegrity(t *testing.T) {
	gw := store.NewMemoryStore()
	reports, err := newSeeder(t, gw, 42).RunAll(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 3)

	users := decodeAll[domain.User](t, gw, domain.CollectionUsers)
	products := decodeAll[domain.Product](t, gw, domain.CollectionProducts)
	reviews := decodeAll[domain.Review](t, gw, domain.CollectionReviews)
	orders := decodeAll[domain.Order](t, gw, domain.CollectionOrders)

	require.NoError(t, generator.ValidateReferences(users, products, reviews, orders))
	assert.Len(t, orders, 50)

	perProduct := map[bson.ObjectID]int{}
	for _, r := range reviews {
		perProduct[r.ProductID]++
	}
	require.Len(t, perProduct, len(products))
	for _, n := range perProduct {
		assert.GreaterOrEqual(t, n, 3)
		assert.LessOrEqual(t, n, 15)
	}

	deps := reports[1]
	require.NotNil(t, deps.Stats)
	assert.Equal(t, len(reviews), deps.Stats.TotalReviews)
	assert.InDelta(t, deps.Stats.TotalRevenue/50, deps.Stats.AvgOrderValue, 1e-9)
	assert.GreaterOrEqual(t, deps.Stats.AvgRating, 1.0)
	assert.LessOrEqual(t, deps.Stats.AvgRating, 5.0)

	idx := reports[2]
	assert.Equal(t, 5, idx.IndexesCreated)
	assert.Equal(t, 9, idx.IndexesVerified)
	assert.Contains(t, idx.Indexes[domain.CollectionUsers], "email_1: email [UNIQUE]")
	assert.Contains(t, idx.Indexes[domain.CollectionProducts], "name_text_description_text: _fts, _ftsx [TEXT]")
	assert.Len(t, idx.Indexes[domain.CollectionOrders], 6)
}

func TestRunAll_ReseedIsIdempotent(t *testing.T) {
	gw := store.NewMemoryStore()
	ctx := context.Background()

	counts := func() map[string]int64 {
		out := map[string]int64{}
		for _, c := range domain.AllCollections {
			n, err := gw.Count(ctx, c)
			require.NoError(t, err)
			out[c] = n
		}
		return out
	}

	_, err := newSeeder(t, gw, 7).RunAll(ctx)
	require.NoError(t, err)
	first := counts()

	reports, err := newSeeder(t, gw, 7).RunAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, counts())
	assert.Zero(t, reports[2].IndexesCreated)
	assert.Equal(t, 14, reports[2].IndexesVerified)
}

// failingStore injects an error into inserts for one collection.
type failingStore struct {
	*store.MemoryStore
	collection string
	err        error
}

func (f *failingStore) InsertMany(ctx context.Context, collection string, records []any) (int, error) {
	if collection == f.collection {
		return 0, f.err
	}
	return f.MemoryStore.InsertMany(ctx, collection, records)
}

func TestSeedCore_ConstraintViolationAborts(t *testing.T) {
	gw := &failingStore{
		MemoryStore: store.NewMemoryStore(),
		collection:  domain.CollectionUsers,
		err:         apperrors.NewAppError(apperrors.ErrCodeConstraintViolation, "E11000 duplicate key error", nil),
	}
	s, err := seeder.New(gw, testOptions(1), "ecommerce")
	require.NoError(t, err)

	report, err := s.SeedCore(context.Background())
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, apperrors.IsConstraintViolation(err))
	assert.Equal(t, 4, apperrors.ExitCode(err))

	n, err := gw.Count(context.Background(), domain.CollectionProducts)
	require.NoError(t, err)
	assert.Zero(t, n, "products are not inserted after users fail")
}

func TestSeedDependents_ConnectivityFailureIsNotSkipped(t *testing.T) {
	gw := &failingStore{
		MemoryStore: store.NewMemoryStore(),
		collection:  domain.CollectionReviews,
		err:         apperrors.NewAppError(apperrors.ErrCodeConnectivity, "connection reset", nil),
	}
	s, err := seeder.New(gw, testOptions(1), "ecommerce")
	require.NoError(t, err)
	_, err = s.SeedCore(context.Background())
	require.NoError(t, err)

	_, err = s.SeedDependents(context.Background())
	assert.True(t, apperrors.IsConnectivity(err))
}

func TestNew_RejectsInvalidOptions(t *testing.T) {
	opts := testOptions(1)
	opts.ReviewsMin, opts.ReviewsMax = 5, 2
	_, err := seeder.New(store.NewMemoryStore(), opts, "ecommerce")
	assert.True(t, apperrors.IsInvalidRange(err))
}

func TestSeeder_MetricsTextfile(t *testing.T) {
	gw := store.NewMemoryStore()
	s := newSeeder(t, gw, 3)
	_, err := s.RunAll(context.Background())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "seeder.prom")
	require.NoError(t, s.Metrics().WriteTextfile(path, time.Now()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `seeder_documents_inserted{collection="orders",run_id="`+s.RunID()+`"} 50`)
	assert.Contains(t, string(data), `seeder_indexes{run_id="`+s.RunID()+`",state="created"} 5`)
}

func TestCheckPreconditions(t *testing.T) {
	gw := store.NewMemoryStore()
	ctx := context.Background()
	_, err := gw.InsertMany(ctx, domain.CollectionUsers, []any{bson.D{{Key: "_id", Value: bson.NewObjectID()}}})
	require.NoError(t, err)

	counts, err := seeder.CheckPreconditions(ctx, gw, "the core stage", domain.CollectionUsers, domain.CollectionProducts)
	require.Error(t, err)
	assert.True(t, apperrors.IsPreconditionNotMet(err))
	assert.Contains(t, err.Error(), "products")
	assert.Equal(t, int64(1), counts[domain.CollectionUsers])

	_, err = seeder.CheckPreconditions(ctx, gw, "the core stage", domain.CollectionUsers)
	assert.NoError(t, err)
}

func TestComputeStats(t *testing.T) {
	empty := seeder.ComputeStats(nil, nil, nil)
	assert.Zero(t, empty.AvgOrderValue)
	assert.Zero(t, empty.AvgRating)

	users := []domain.User{{Role: domain.RoleCustomer}, {Role: domain.RoleAdmin}, {Role: domain.RoleCustomer}}
	reviews := []domain.Review{{Rating: 5}, {Rating: 2}}
	orders := []domain.Order{{Total: 10}, {Total: 30}}

	stats := seeder.ComputeStats(users, reviews, orders)
	assert.Equal(t, 2, stats.Customers)
	assert.Equal(t, 40.0, stats.TotalRevenue)
	assert.Equal(t, 20.0, stats.AvgOrderValue)
	assert.Equal(t, 3.5, stats.AvgRating)
}
