package build

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/history"
	"git.home.luguber.info/inful/docsite/internal/vcs"
)

func TestRun_RecordsHistory(t *testing.T) {
	cfg := writeProject(t)
	store, err := history.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	svc := newTestService(&fakeGenerator{}, newTestRecorder()).WithHistory(store, 1)
	_, err = svc.Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)
	_, err = svc.Run(context.Background(), BuildRequest{Config: cfg, Profile: "missing"})
	require.Error(t, err)

	entries, err := store.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1, "pruned to the newest entry")
	assert.Equal(t, "failed", entries[0].Status)
	assert.Equal(t, "missing", entries[0].Profile)
	assert.NotEmpty(t, entries[0].Error)
	assert.Equal(t, "0123456789abcdef0123456789abcdef01234567", entries[0].Revision)
}

func TestRun_HistoryEntryCarriesEmit(t *testing.T) {
	cfg := writeProject(t)
	store, err := history.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	svc := newTestService(&fakeGenerator{}, newTestRecorder()).WithHistory(store, 10)
	res, err := svc.Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)

	entries, err := store.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "build-1", e.BuildID)
	assert.Equal(t, "success", e.Status)
	assert.Equal(t, "astro", e.Target)
	assert.Equal(t, res.Emit.Path, e.OutputPath)
	assert.Equal(t, res.Emit.Fingerprint, e.Fingerprint)
	assert.True(t, e.Changed)
	assert.True(t, e.Generated)
}

func TestRun_Notifies(t *testing.T) {
	cfg := writeProject(t)
	n := &fakeNotifier{}
	svc := newTestService(&fakeGenerator{}, newTestRecorder()).WithNotifier(n)

	res, err := svc.Run(context.Background(), BuildRequest{Config: cfg, Profile: "public"})
	require.NoError(t, err)

	require.Len(t, n.events, 1)
	e := n.events[0]
	assert.Equal(t, "build-1", e.BuildID)
	assert.Equal(t, "success", e.Status)
	assert.Equal(t, "public", e.Profile)
	assert.Equal(t, "Data Science Orchestrator", e.Title)
	assert.Equal(t, res.Emit.Path, e.OutputPath)
	assert.Equal(t, "0123456789abcdef0123456789abcdef01234567", e.Revision)
	assert.Empty(t, e.Error)
}

func TestRun_NotifyFailureDoesNotFailBuild(t *testing.T) {
	cfg := writeProject(t)
	n := &fakeNotifier{err: errors.New("nats down")}
	svc := newTestService(&fakeGenerator{}, newTestRecorder()).WithNotifier(n)

	res, err := svc.Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, BuildStatusSuccess, res.Status)
	assert.Len(t, n.events, 1)
}

func TestRun_NotifiesOnFailure(t *testing.T) {
	cfg := writeProject(t)
	n := &fakeNotifier{}
	svc := newTestService(&fakeGenerator{err: errors.New("exit 1")}, newTestRecorder()).WithNotifier(n)

	_, err := svc.Run(context.Background(), BuildRequest{Config: cfg})
	require.Error(t, err)
	require.Len(t, n.events, 1)
	assert.Equal(t, "failed", n.events[0].Status)
	assert.Contains(t, n.events[0].Error, "exit 1")
	assert.False(t, n.events[0].Generated)
}

func TestRun_Revision(t *testing.T) {
	cfg := writeProject(t)
	svc := newTestService(&fakeGenerator{}, newTestRecorder())
	res, err := svc.Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, "main", res.Revision.Branch)

	svc.revision = func(string) (vcs.Revision, error) { return vcs.Revision{}, vcs.ErrNotRepository }
	res, err = svc.Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)
	assert.True(t, res.Revision.IsZero())
}
