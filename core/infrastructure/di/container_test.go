package di_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperterse/seeder/core/config"
	"github.com/hyperterse/seeder/core/infrastructure/di"
	apperrors "github.com/hyperterse/seeder/core/shared/errors"
)

func TestNewContainer_DryRun(t *testing.T) {
	cfg := config.Default()
	cfg.DryRun = true
	cfg.MetricsFile = filepath.Join(t.TempDir(), "seeder.prom")

	c, err := di.NewContainer(context.Background(), cfg, "test")
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, "memory", c.Store.Name())

	reports, err := c.Seeder.RunAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, reports, 3)

	require.NoError(t, c.WriteMetrics())
	_, err = os.Stat(cfg.MetricsFile)
	assert.NoError(t, err)
}

func TestNewContainer_BadCatalog(t *testing.T) {
	cfg := config.Default()
	cfg.DryRun = true
	cfg.Catalog = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := di.NewContainer(context.Background(), cfg, "test")
	assert.True(t, apperrors.IsConfiguration(err))
}

func TestContainer_WriteMetricsDisabled(t *testing.T) {
	c := &di.Container{Config: config.Default()}
	assert.NoError(t, c.WriteMetrics())
	assert.NoError(t, c.Close())
}
