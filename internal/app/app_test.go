package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/leadboard/internal/config"
	"github.com/thenoetrevino/leadboard/internal/logging"
	"github.com/thenoetrevino/leadboard/internal/models"
	"github.com/thenoetrevino/leadboard/internal/testutil"
)

func TestNewWiresServices(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Database = ":memory:"
	cfg.User = "alice"

	a, err := New(ctx, cfg, WithLogger(logging.Discard()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	require.NoError(t, a.Board.Load(ctx))
	assert.Len(t, a.Board.Snapshot().Columns, len(models.DefaultColumns))
	assert.Nil(t, a.Events())

	_, err = a.Repo.CreateUser(ctx, "alice", models.RoleAdmin)
	require.NoError(t, err)
	sess, err := a.Sessions.Current(ctx)
	require.NoError(t, err)
	assert.True(t, sess.IsAdmin())

	_, err = a.Board.AddColumn(ctx, sess, "Lost", "")
	require.NoError(t, err)
	a.Activity.Wait()
	records, err := a.Activity.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	// standalone apps have nothing to sync with
	assert.NoError(t, a.Sync(ctx, nil))
}

func TestSyncReloadsOnRemoteChange(t *testing.T) {
	ctx := context.Background()
	_, socketPath := testutil.SetupTestDaemon(t)

	cfg := config.Default()
	cfg.Database = filepath.Join(t.TempDir(), "leadboard.db")
	cfg.User = "alice"

	writer, err := New(ctx, cfg, WithLogger(logging.Discard()),
		WithEventPublisher(testutil.SetupTestClient(t, socketPath)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = writer.Close() })

	reader, err := New(ctx, cfg, WithLogger(logging.Discard()),
		WithEventPublisher(testutil.SetupTestClient(t, socketPath)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = reader.Close() })

	require.NoError(t, writer.Board.Load(ctx))
	require.NoError(t, reader.Board.Load(ctx))

	reloaded := make(chan error, 4)
	syncCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)
	require.NoError(t, reader.Sync(syncCtx, func(err error) { reloaded <- err }))

	_, err = writer.Repo.CreateUser(ctx, "alice", models.RoleAdmin)
	require.NoError(t, err)
	sess, err := writer.Sessions.Current(ctx)
	require.NoError(t, err)
	_, err = writer.Board.AddColumn(ctx, sess, "Lost", "")
	require.NoError(t, err)

	select {
	case err := <-reloaded:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("reader never reloaded")
	}
	_, ok := reader.Board.Snapshot().Column("lost")
	assert.True(t, ok)
}
