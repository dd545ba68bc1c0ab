package services

import (
	"context"
	"testing"

	"olympia-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func commonCodeKeys(codes []*domain.CommonCode) []string {
	keys := make([]string, len(codes))
	for i, c := range codes {
		keys[i] = c.Group + ":" + c.Code
	}
	return keys
}

func TestCommonCodeService(t *testing.T) {
	ctx := context.Background()
	_, repos := newMemoryRepos()
	svc := NewCommonCodeService(repos.CommonCodes)

	t.Run("group and code are required", func(t *testing.T) {
		_, err := svc.Create(ctx, &CommonCodeInput{Code: strPtr("A")})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = svc.Create(ctx, &CommonCodeInput{Group: strPtr("region"), Code: strPtr(" ")})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	for _, in := range []CommonCodeInput{
		{Group: strPtr("region"), Code: strPtr("B"), Name: strPtr("부산"), Order: intPtr(2)},
		{Group: strPtr("region"), Code: strPtr("A"), Name: strPtr("서울"), Order: intPtr(2)},
		{Group: strPtr("region"), Code: strPtr("C"), Name: strPtr("대구"), Order: intPtr(1)},
		{Group: strPtr("church"), Code: strPtr("Z"), Name: strPtr(" 장로교 ")},
	} {
		_, err := svc.Create(ctx, &in)
		require.NoError(t, err)
	}

	t.Run("public list orders by order then code", func(t *testing.T) {
		codes, err := svc.ListPublic(ctx, "region")
		require.NoError(t, err)
		assert.Equal(t, []string{"region:C", "region:A", "region:B"}, commonCodeKeys(codes))
	})

	t.Run("public list without group", func(t *testing.T) {
		codes, err := svc.ListPublic(ctx, " ")
		require.NoError(t, err)
		assert.Equal(t, []string{"church:Z", "region:C", "region:A", "region:B"}, commonCodeKeys(codes))
		assert.Equal(t, "장로교", codes[0].Name)
	})

	t.Run("admin list orders by group first", func(t *testing.T) {
		codes, err := svc.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"church:Z", "region:C", "region:A", "region:B"}, commonCodeKeys(codes))
	})

	codes, err := svc.ListPublic(ctx, "church")
	require.NoError(t, err)
	require.Len(t, codes, 1)
	id := codes[0].ID

	t.Run("update keeps untouched fields", func(t *testing.T) {
		updated, err := svc.Update(ctx, id, &CommonCodeInput{Order: intPtr(7)})
		require.NoError(t, err)
		assert.Equal(t, 7, updated.Order)
		assert.Equal(t, "Z", updated.Code)
		assert.Equal(t, "장로교", updated.Name)

		_, err = svc.Update(ctx, id, &CommonCodeInput{Group: strPtr("")})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, id))
		assert.ErrorIs(t, svc.Delete(ctx, id), domain.ErrCommonCodeNotFound)
		_, err := svc.Update(ctx, id, &CommonCodeInput{})
		assert.ErrorIs(t, err, domain.ErrCommonCodeNotFound)

		remaining, err := svc.ListPublic(ctx, "church")
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})
}
