package context_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ctxutil "github.com/hyperterse/seeder/core/shared/context"
)

func TestWithRunID(t *testing.T) {
	ctx := ctxutil.WithRunID(context.Background(), "run-1")
	assert.Equal(t, "run-1", ctxutil.GetRunID(ctx))
}

func TestGetRunID_NotSet(t *testing.T) {
	assert.Empty(t, ctxutil.GetRunID(context.Background()))
}

func TestWithStage(t *testing.T) {
	ctx := ctxutil.WithStage(context.Background(), "core")
	assert.Equal(t, "core", ctxutil.GetStage(ctx))
	assert.Empty(t, ctxutil.GetRunID(ctx))
}

func TestGenerateRunID(t *testing.T) {
	a := ctxutil.GenerateRunID()
	b := ctxutil.GenerateRunID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	require.NoError(t, err)
}
