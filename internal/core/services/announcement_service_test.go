package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"olympia-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAnnouncementService(t *testing.T) {
	ctx := context.Background()
	_, repos := newMemoryRepos()
	svc := NewAnnouncementService(repos.Announcements)

	tick := time.Date(2024, time.May, 1, 9, 0, 0, 0, seoul)
	svc.now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}

	t.Run("title is required", func(t *testing.T) {
		_, err := svc.Create(ctx, "admin", &AnnouncementInput{Title: strPtr("  ")})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = svc.Create(ctx, "admin", &AnnouncementInput{})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	first, err := svc.Create(ctx, "admin", &AnnouncementInput{Title: strPtr(" 접수 안내 "), Content: strPtr("6월 30일 마감")})
	require.NoError(t, err)
	assert.Equal(t, "접수 안내", first.Title)
	assert.Equal(t, "admin", first.CreatedBy)

	second, err := svc.Create(ctx, "admin", &AnnouncementInput{Title: strPtr("시험장 안내")})
	require.NoError(t, err)

	t.Run("newest first", func(t *testing.T) {
		all, err := svc.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, second.ID, all[0].ID)
	})

	t.Run("update keeps untouched fields", func(t *testing.T) {
		updated, err := svc.Update(ctx, first.ID, &AnnouncementInput{Title: strPtr("접수 연장")})
		require.NoError(t, err)
		assert.Equal(t, "접수 연장", updated.Title)
		assert.Equal(t, "6월 30일 마감", updated.Content)
		require.NotNil(t, updated.UpdatedAt)
		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, second.ID))
		assert.ErrorIs(t, svc.Delete(ctx, second.ID), domain.ErrAnnouncementNotFound)
		_, err := svc.Update(ctx, second.ID, &AnnouncementInput{})
		assert.ErrorIs(t, err, domain.ErrAnnouncementNotFound)
	})

	t.Run("public list is capped", func(t *testing.T) {
		for i := 0; i < PublicAnnouncementLimit+5; i++ {
			_, err := svc.Create(ctx, "admin", &AnnouncementInput{Title: strPtr(fmt.Sprintf("공지 %d", i))})
			require.NoError(t, err)
		}
		public, err := svc.ListPublic(ctx)
		require.NoError(t, err)
		assert.Len(t, public, PublicAnnouncementLimit)
	})
}
