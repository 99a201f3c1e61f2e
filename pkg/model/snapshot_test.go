package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotOperations(t *testing.T) {
	// Baseline: two findings, one of which disappears in the next scan.
	baseline := NewStore()
	h, svc := seed(t, baseline, "10.0.0.1", "web.local", "80")
	_, err := baseline.CreateWebVuln(h, svc, WebVuln{Name: "Finding 1", Method: "GET", Path: "/a"})
	require.NoError(t, err)
	_, err = baseline.CreateWebVuln(h, svc, WebVuln{Name: "Finding 2", Method: "GET", Path: "/b"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, baseline.SaveSnapshot(path))

	current := NewStore()
	h, svc = seed(t, current, "10.0.0.1", "web.local", "80")
	_, err = current.CreateWebVuln(h, svc, WebVuln{Name: "Finding 1", Method: "GET", Path: "/a"})
	require.NoError(t, err)
	_, err = current.CreateWebVuln(h, svc, WebVuln{Name: "Finding 3", Method: "GET", Path: "/c"})
	require.NoError(t, err)

	loaded := NewStore()
	require.NoError(t, loaded.LoadSnapshot(path))
	assert.Equal(t, baseline.Summary(), loaded.Summary())

	diff := current.CompareSnapshot(loaded)

	require.Len(t, diff.Unchanged, 1)
	assert.Equal(t, "Finding 1", diff.Unchanged[0].Name)
	require.Len(t, diff.New, 1)
	assert.Equal(t, "Finding 3", diff.New[0].Name)
	require.Len(t, diff.Fixed, 1)
	assert.Equal(t, "Finding 2", diff.Fixed[0].Name)
	assert.Equal(t, "10.0.0.1", diff.Fixed[0].HostIP)
	assert.Equal(t, []string{"80"}, diff.Fixed[0].Ports)
}

func TestLoadSnapshotRebuildsIndexes(t *testing.T) {
	original := NewStore()
	h, svc := seed(t, original, "10.0.0.1", "", "80")
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, original.SaveSnapshot(path))

	loaded := NewStore()
	require.NoError(t, loaded.LoadSnapshot(path))

	// Ids from the snapshot must resolve after loading.
	id, err := loaded.CreateHost("10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, h, id)
	_, err = loaded.CreateNote(h, svc, "website", "")
	assert.NoError(t, err)
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	assert.Error(t, NewStore().LoadSnapshot(filepath.Join(t.TempDir(), "missing.json")))
}
