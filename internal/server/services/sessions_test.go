package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/server/models"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	ctx := context.Background()
	rm := repomanager.NewMemoryRepositoryManager()
	token := "tok-1"
	require.NoError(t, rm.Accounts(nil).Create(ctx, &models.Account{ID: "u-1", Email: "a@b.io", SessionToken: &token}))

	r := NewSessionResolver(nil, rm)

	acc, err := r.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", acc.ID)

	_, err = r.Resolve(ctx, "")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = r.Resolve(ctx, "unknown")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestResolve_StoreFailure(t *testing.T) {
	r := NewSessionResolver(nil, &fakeRepoManager{a: &fakeAccountsRepo{findErr: errStoreDown}})

	_, err := r.Resolve(context.Background(), "tok")
	assert.ErrorIs(t, err, common.ErrorStore)
	assert.NotErrorIs(t, err, common.ErrorUnauthorized)
}
