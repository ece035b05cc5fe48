package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperterse/seeder/core/domain"
	"github.com/hyperterse/seeder/core/infrastructure/store"
	apperrors "github.com/hyperterse/seeder/core/shared/errors"
)

// These tests talk to a live server and run only when MONGODB_URI is set.
func openMongo(t *testing.T) *store.MongoStore {
	t.Helper()
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	s, err := store.NewMongoStore(ctx, uri, "seeder_test_"+time.Now().Format("150405"), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		for _, c := range domain.AllCollections {
			_ = s.Clear(context.Background(), c)
		}
		_ = s.Close()
	})
	return s
}

func TestMongoStore_RoundTrip(t *testing.T) {
	s := openMongo(t)
	ctx := context.Background()

	created, err := s.CreateIndex(ctx, emailIndex())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.CreateIndex(ctx, emailIndex())
	require.NoError(t, err)
	assert.False(t, created)

	n, err := s.InsertMany(ctx, "users", people("a@x.com", "b@x.com"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = s.InsertMany(ctx, "users", people("a@x.com"))
	assert.True(t, apperrors.IsConstraintViolation(err))

	docs, err := s.FindAll(ctx, "users")
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	infos, err := s.ListIndexes(ctx, "users")
	require.NoError(t, err)
	assert.Len(t, infos, 2)
}

func TestNewMongoStore_Unreachable(t *testing.T) {
	if os.Getenv("MONGODB_URI") == "" {
		t.Skip("MONGODB_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := store.NewMongoStore(ctx, "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=500", "x", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsConnectivity(err))
}
