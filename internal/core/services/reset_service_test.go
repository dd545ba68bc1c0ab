package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"olympia-api/internal/adapters/persistence/repositories"
	"olympia-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUsers(t *testing.T, repos *repositories.Store, idp *fakeIdentity, userType string, uids ...string) {
	t.Helper()
	for _, uid := range uids {
		idp.add(uid, userType == domain.UserTypeAdmin, false)
		require.NoError(t, repos.Users.Create(context.Background(), &domain.User{ID: uid, Name: uid, UserType: userType}))
	}
}

func TestResetService_KeepsOnlyAdministrators(t *testing.T) {
	ctx := context.Background()
	_, repos := newMemoryRepos()
	idp := newFakeIdentity()
	seedUsers(t, repos, idp, domain.UserTypeAdmin, "admin-1")
	seedUsers(t, repos, idp, domain.UserTypeApplicant, "user-1", "user-2", "user-3")
	seedUsers(t, repos, idp, "", "user-4")
	seedApplication(t, repos, "user-1", "은혜교회", 3)
	seedApplication(t, repos, "user-2", "소망교회", 0)
	idp.failDelete["user-2"] = true

	result, err := NewResetService(repos, idp, nil).Reset(ctx)
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, ResetMessage, result.Message)
	assert.Equal(t, 2, result.ApplicationsDeleted)
	assert.Equal(t, 3, result.PersonsDeleted)
	assert.Equal(t, 4, result.UsersDeleted)
	assert.Equal(t, 3, result.PrincipalsDeleted)
	assert.Equal(t, 1, result.PrincipalFailures)

	users, err := repos.Users.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin-1", users[0].ID)

	appIDs, err := repos.Applications.ListIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, appIDs)
	personIDs, err := repos.Persons.ListIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, personIDs)

	assert.True(t, idp.has("admin-1"))
	assert.False(t, idp.has("user-1"))
	// failed principal deletion is skipped, the record is still removed
	assert.True(t, idp.has("user-2"))
}

func TestResetService_DeletesInWriteBatches(t *testing.T) {
	ctx := context.Background()
	store, repos := newMemoryRepos()
	seedApplication(t, repos, "owner", "대형교회", 0)
	for batch := 0; batch < 2; batch++ {
		persons := make([]*domain.Person, 300)
		for i := range persons {
			persons[i] = &domain.Person{ApplicationID: "a"}
		}
		require.NoError(t, repos.Persons.CreateBatch(ctx, persons))
	}

	var sizes []int
	store.DeleteHook = func(collection string, ids []string) error {
		if collection == "bo_person" {
			sizes = append(sizes, len(ids))
		}
		return nil
	}

	result, err := NewResetService(repos, newFakeIdentity(), nil).Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 600, result.PersonsDeleted)
	assert.Equal(t, []int{repositories.MaxWriteBatch, 100}, sizes)
}

func TestResetService_StopsAtFailedBatch(t *testing.T) {
	ctx := context.Background()
	store, repos := newMemoryRepos()
	idp := newFakeIdentity()
	seedUsers(t, repos, idp, domain.UserTypeApplicant, "user-1")

	persons := make([]*domain.Person, 600)
	for i := range persons {
		persons[i] = &domain.Person{ApplicationID: fmt.Sprintf("app-%d", i%7)}
	}
	require.NoError(t, repos.Persons.CreateBatch(ctx, persons[:500]))
	require.NoError(t, repos.Persons.CreateBatch(ctx, persons[500:]))

	batches := 0
	store.DeleteHook = func(collection string, ids []string) error {
		if collection != "bo_person" {
			return nil
		}
		batches++
		if batches == 2 {
			return errors.New("write quota exceeded")
		}
		return nil
	}

	result, err := NewResetService(repos, idp, nil).Reset(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete persons")
	assert.False(t, result.OK)
	assert.Equal(t, 500, result.PersonsDeleted)

	remaining, err := repos.Persons.ListIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 100)

	// users are untouched once the reset stopped
	assert.True(t, idp.has("user-1"))
	users, err := repos.Users.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestResetService_EmptyStore(t *testing.T) {
	result, err := NewResetService(newMemoryReposOnly(), newFakeIdentity(), nil).Reset(context.Background())
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Zero(t, result.ApplicationsDeleted+result.PersonsDeleted+result.UsersDeleted)
}

func newMemoryReposOnly() *repositories.Store {
	_, repos := newMemoryRepos()
	return repos
}
