package infrastructure_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/config"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/infrastructure"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/jsonstore"
)

func newConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Chdir(t.TempDir())
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := infrastructure.NewLogger(&config.LoggingConfig{Level: "warn", Format: config.LogFormatJSON}, &buf)

	logger.Info("hidden")
	logger.Warn("shown", "id", "G100")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"id":"G100"`)
}

func TestStartRegistersReadinessCheck(t *testing.T) {
	cfg := newConfig(t)

	infra, err := infrastructure.New(cfg)
	require.NoError(t, err)
	require.NoError(t, infra.Start())

	infra.Lifecycle.WaitForStartup()

	assert.Empty(t, infra.Lifecycle.Readiness(context.Background()), "a missing store is an empty catalogue")

	path := cfg.Store.RecordsPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	failures := infra.Lifecycle.Readiness(context.Background())
	assert.Contains(t, failures, "records")
}

func TestNewBuildsStores(t *testing.T) {
	cfg := newConfig(t)

	infra, err := infrastructure.New(cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.Store.RecordsPath(), infra.Records.Path())
	assert.Equal(t, cfg.Store.LedgerPath(), infra.Ledger.Path())

	cfg.Store.Dir, cfg.Store.RecordsFile = "", ""
	_, err = infrastructure.New(cfg)
	assert.ErrorIs(t, err, jsonstore.ErrEmptyPath)
}
