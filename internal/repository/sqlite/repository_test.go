package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vicbrooke/cyber-kittens/internal/domain"
	"github.com/vicbrooke/cyber-kittens/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, NewUserRepository(db).Init(ctx))
	require.NoError(t, NewKittenRepository(db).Init(ctx))
	return db
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	id, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "hash"})
	require.NoError(t, err)
	require.NotZero(t, id)

	byName, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)
	assert.Equal(t, "hash", byName.PasswordHash)

	byID, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	_, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "hash"})
	require.NoError(t, err)

	_, err = users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "other"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserRepository_NotFound(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)

	_, err := users.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestKittenRepository_GetJoinsOwner(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	kittens := NewKittenRepository(db)
	ctx := context.Background()

	ownerID, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "hash"})
	require.NoError(t, err)

	id, err := kittens.Create(ctx, &domain.Kitten{Name: "Tom", Age: 2, Color: "black", OwnerID: ownerID})
	require.NoError(t, err)

	got, err := kittens.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Tom", got.Name)
	assert.Equal(t, 2, got.Age)
	assert.Equal(t, "black", got.Color)
	assert.Equal(t, ownerID, got.OwnerID)
	assert.Equal(t, "alice", got.OwnerUsername)
}

func TestKittenRepository_ListByOwner(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	kittens := NewKittenRepository(db)
	ctx := context.Background()

	aliceID, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "hash"})
	require.NoError(t, err)
	bobID, err := users.Create(ctx, &domain.User{Username: "bob", PasswordHash: "hash"})
	require.NoError(t, err)

	_, err = kittens.Create(ctx, &domain.Kitten{Name: "Tom", Age: 2, Color: "black", OwnerID: aliceID})
	require.NoError(t, err)
	_, err = kittens.Create(ctx, &domain.Kitten{Name: "Jerry", Age: 1, Color: "gray", OwnerID: bobID})
	require.NoError(t, err)

	got, err := kittens.ListByOwner(ctx, aliceID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Tom", got[0].Name)
}

func TestKittenRepository_Delete(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	kittens := NewKittenRepository(db)
	ctx := context.Background()

	ownerID, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "hash"})
	require.NoError(t, err)
	id, err := kittens.Create(ctx, &domain.Kitten{Name: "Tom", Age: 2, Color: "black", OwnerID: ownerID})
	require.NoError(t, err)

	require.NoError(t, kittens.Delete(ctx, id))

	_, err = kittens.Get(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, kittens.Delete(ctx, id), repository.ErrNotFound)
}
