package memory

import (
	"context"
	"fmt"
	"testing"

	"olympia-api/internal/adapters/persistence/repositories"
	"olympia-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("id-%03d", i)
	}
	return out
}

func TestStore_InQueryLimit(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()

	_, err := repos.Persons.ListByApplicationIDs(ctx, ids(repositories.MaxInQueryValues))
	require.NoError(t, err)

	_, err = repos.Persons.ListByApplicationIDs(ctx, ids(repositories.MaxInQueryValues+1))
	assert.ErrorIs(t, err, domain.ErrQueryLimitExceeded)
}

func TestStore_GetAllLimit(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()

	_, err := repos.Users.GetMany(ctx, ids(repositories.MaxGetAllKeys))
	require.NoError(t, err)

	_, err = repos.Users.GetMany(ctx, ids(repositories.MaxGetAllKeys+1))
	assert.ErrorIs(t, err, domain.ErrGetAllLimitExceeded)
}

func TestStore_WriteBatchLimit(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()

	assert.NoError(t, repos.Applications.DeleteBatch(ctx, ids(repositories.MaxWriteBatch)))
	assert.ErrorIs(t, repos.Persons.DeleteBatch(ctx, ids(repositories.MaxWriteBatch+1)), domain.ErrWriteBatchTooLarge)
	assert.ErrorIs(t, repos.Users.DeleteBatch(ctx, ids(repositories.MaxWriteBatch+1)), domain.ErrWriteBatchTooLarge)

	persons := make([]*domain.Person, repositories.MaxWriteBatch+1)
	for i := range persons {
		persons[i] = &domain.Person{ApplicationID: "a"}
	}
	assert.ErrorIs(t, repos.Persons.CreateBatch(ctx, persons), domain.ErrWriteBatchTooLarge)
}

func TestStore_FindByApplicationNoKeepsRepresentations(t *testing.T) {
	store := NewStore()
	repos := store.Repositories()
	ctx := context.Background()

	require.NoError(t, repos.Persons.CreateBatch(ctx, []*domain.Person{
		{ApplicationID: "a", ApplicationNo: domain.FlexInt(7)},
		{ApplicationID: "a", ApplicationNo: domain.FlexString("7")},
		{ApplicationID: "a", ApplicationNo: domain.FlexInt(8)},
	}))

	byText, err := repos.Persons.FindByApplicationNoText(ctx, "7", 0)
	require.NoError(t, err)
	assert.Len(t, byText, 1)

	byInt, err := repos.Persons.FindByApplicationNoInt(ctx, 7, 0)
	require.NoError(t, err)
	assert.Len(t, byInt, 1)

	maxNo, found, err := repos.Persons.MaxApplicationNo(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(8), maxNo)
}

func TestStore_PersonCount(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()

	require.NoError(t, repos.Persons.CreateBatch(ctx, []*domain.Person{
		{ApplicationID: "a", FeeConfirmed: domain.CodeYes},
		{ApplicationID: "a", FeeConfirmed: domain.CodeNo},
	}))

	n, err := repos.Persons.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repos.Persons.Count(ctx, domain.FieldSet{"feeConfirmed": domain.CodeYes})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repos.Persons.Count(ctx, domain.FieldSet{"nope": "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_DeleteHookAndStats(t *testing.T) {
	store := NewStore()
	repos := store.Repositories()
	ctx := context.Background()

	store.DeleteHook = func(collection string, ids []string) error {
		if collection == "bo_users" {
			return fmt.Errorf("unavailable")
		}
		return nil
	}

	assert.NoError(t, repos.Applications.DeleteBatch(ctx, []string{"x"}))
	assert.Error(t, repos.Users.DeleteBatch(ctx, []string{"x"}))
	assert.Equal(t, 1, store.Stats().DeleteBatches)
}
