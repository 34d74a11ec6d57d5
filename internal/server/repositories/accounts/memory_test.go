package accounts

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	require.NoError(t, repo.Create(ctx, &models.Account{ID: "a-1", Name: "Alice", Email: "alice@example.com", PasswordHash: []byte("h"), SessionToken: ptr("t1")}))

	got, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "a-1", got.ID)

	got, err = repo.FindBySessionToken(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	require.NoError(t, repo.UpdateSessionToken(ctx, "a-1", ptr("t2")))

	_, err = repo.FindBySessionToken(ctx, "t1")
	assert.ErrorIs(t, err, common.ErrorNotFound, "old token must be invalidated")

	got, err = repo.FindBySessionToken(ctx, "t2")
	require.NoError(t, err)
	assert.Equal(t, "a-1", got.ID)

	require.NoError(t, repo.UpdateSessionToken(ctx, "a-1", nil))
	_, err = repo.FindBySessionToken(ctx, "t2")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	require.NoError(t, repo.Create(ctx, &models.Account{ID: "a-1", Email: "alice@example.com"}))
	err := repo.Create(ctx, &models.Account{ID: "a-2", Email: "alice@example.com"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestMemoryRepository_UnknownAccount(t *testing.T) {
	repo := NewMemoryRepository()

	assert.ErrorIs(t, repo.UpdateSessionToken(context.Background(), "ghost", ptr("t")), common.ErrorNotFound)
	_, err := repo.FindByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.Create(ctx, &models.Account{ID: "a-1", Email: "alice@example.com", SessionToken: ptr("t1")}))

	got, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	*got.SessionToken = "tampered"
	got.Name = "Mallory"

	again, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "t1", *again.SessionToken)
	assert.Empty(t, again.Name)
}
