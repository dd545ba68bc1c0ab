package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"olympia-api/internal/adapters/persistence/repositories"
	"olympia-api/internal/core/domain"
)

// PublicAnnouncementLimit caps the public announcement list
const PublicAnnouncementLimit = 50

// AnnouncementInput is a create or update request. Nil fields are untouched
// on update.
type AnnouncementInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// AnnouncementService manages site announcements
type AnnouncementService struct {
	announcements repositories.AnnouncementRepository
	now           Clock
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(announcements repositories.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{announcements: announcements, now: time.Now}
}

// ListPublic returns the newest announcements
func (s *AnnouncementService) ListPublic(ctx context.Context) ([]*domain.Announcement, error) {
	return s.announcements.ListRecent(ctx, PublicAnnouncementLimit)
}

// ListAll returns every announcement, newest first
func (s *AnnouncementService) ListAll(ctx context.Context) ([]*domain.Announcement, error) {
	return s.announcements.ListRecent(ctx, 0)
}

// Create stores a new announcement authored by uid
func (s *AnnouncementService) Create(ctx context.Context, uid string, input *AnnouncementInput) (*domain.Announcement, error) {
	if input.Title == nil || strings.TrimSpace(*input.Title) == "" {
		return nil, domain.NewValidationError("title", "제목을 입력하세요.")
	}
	a := &domain.Announcement{
		Title:     strings.TrimSpace(*input.Title),
		CreatedBy: uid,
		CreatedAt: s.now(),
	}
	if input.Content != nil {
		a.Content = *input.Content
	}
	if err := s.announcements.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}
	return a, nil
}

// Update changes title or content and stamps updatedAt
func (s *AnnouncementService) Update(ctx context.Context, id string, input *AnnouncementInput) (*domain.Announcement, error) {
	if _, err := s.announcements.GetByID(ctx, id); err != nil {
		return nil, err
	}
	fields := domain.FieldSet{"updatedAt": s.now()}
	if input.Title != nil {
		fields["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		fields["content"] = *input.Content
	}
	if err := s.announcements.UpdateFields(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update announcement %s: %w", id, err)
	}
	return s.announcements.GetByID(ctx, id)
}

// Delete removes an announcement
func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	return s.announcements.Delete(ctx, id)
}
