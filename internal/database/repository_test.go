package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/leadboard/internal/models"
)

func TestActivityLogNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	for _, action := range []models.Action{models.ActionAdd, models.ActionEdit, models.ActionDelete} {
		_, err := repo.InsertActivity(ctx, models.Activity{
			Activity:   "lead: Acme",
			Action:     action,
			UserID:     1,
			ActivityBy: "alice",
			Date:       "2026-10-15",
			Time:       "09:30:00",
		})
		require.NoError(t, err)
	}

	all, err := repo.ListActivity(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, models.ActionDelete, all[0].Action)
	assert.Equal(t, "alice", all[0].ActivityBy)

	limited, err := repo.ListActivity(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestActivityRejectsUnknownAction(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	_, err := repo.InsertActivity(context.Background(), models.Activity{
		Activity: "x", Action: "Move", Date: "2026-10-15", Time: "09:30:00",
	})
	assert.Error(t, err)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	admin, err := repo.CreateUser(ctx, "alice", models.RoleAdmin)
	require.NoError(t, err)
	_, err = repo.CreateUser(ctx, "bob", models.RoleStaff)
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, "alice", models.RoleStaff)
	assert.ErrorIs(t, err, models.ErrDuplicateKey)

	byID, err := repo.GetUserByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, byID.Role)

	byName, err := repo.GetUserByName(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, byName.Role)

	_, err = repo.GetUserByName(ctx, "carol")
	assert.ErrorIs(t, err, models.ErrNotFound)

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestListEncodingRoundTrip(t *testing.T) {
	raw, err := encodeList(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)

	values, err := decodeList("")
	require.NoError(t, err)
	assert.Empty(t, values)

	_, err = decodeList("not json")
	assert.Error(t, err)
}
