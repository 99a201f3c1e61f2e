package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/nikto-adapter/pkg/config"
	"github.com/user/nikto-adapter/pkg/logging"
	"github.com/user/nikto-adapter/pkg/model"
	"github.com/user/nikto-adapter/pkg/plugin"
)

func TestImportReadyKeepsUnfinishedReports(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	log := logging.Discard()
	p, err := plugin.NewNikto(cfg, log)
	require.NoError(t, err)

	full, err := os.ReadFile(filepath.Join("..", "pkg", "nikto", "testdata", "report.xml"))
	require.NoError(t, err)

	writing := filepath.Join(cfg.DataDir, "writing.xml")
	notStarted := filepath.Join(cfg.DataDir, "not-started.xml")
	foreign := filepath.Join(cfg.DataDir, "foreign.xml")
	require.NoError(t, os.WriteFile(writing, full[:len(full)/2], 0644))
	require.NoError(t, os.WriteFile(foreign, []byte("<nmaprun/>"), 0644))

	ctx := context.Background()
	store := model.NewStore()
	pending := []string{writing, notStarted, foreign}

	done, left := importReady(ctx, p, pending, store, log)
	assert.Empty(t, done)
	assert.Equal(t, []string{writing, notStarted}, left)
	assert.Equal(t, model.Summary{}, store.Summary())

	require.NoError(t, os.WriteFile(writing, full, 0644))
	done, left = importReady(ctx, p, left, store, log)
	assert.Equal(t, []string{writing}, done)
	assert.Equal(t, []string{notStarted}, left)
	assert.Equal(t, model.Summary{Hosts: 2, Services: 2, Notes: 4, Vulns: 3}, store.Summary())
}
