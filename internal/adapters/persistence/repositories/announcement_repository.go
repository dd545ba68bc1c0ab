package repositories

import (
	"context"
	"errors"

	"olympia-api/internal/adapters/persistence/models"
	"olympia-api/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var announcementColumns = map[string]string{
	"title":     "title",
	"content":   "content",
	"updatedAt": "updated_at",
}

// announcementRepository implements AnnouncementRepository interface
type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new announcement repository
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

// Create creates an announcement
func (r *announcementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	row := &models.Announcement{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(row).Error
}

// GetByID gets an announcement by ID
func (r *announcementRepository) GetByID(ctx context.Context, id string) (*domain.Announcement, error) {
	var row models.Announcement
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAnnouncementNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// ListRecent lists announcements newest first
func (r *announcementRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Announcement, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []*models.Announcement
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]*domain.Announcement, len(rows))
	for i, row := range rows {
		items[i] = row.ToDomain()
	}
	return items, nil
}

// UpdateFields applies a partial update
func (r *announcementRepository) UpdateFields(ctx context.Context, id string, fields domain.FieldSet) error {
	updates := columnUpdates(fields, announcementColumns)
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&models.Announcement{}).Where("id = ?", id).Updates(updates)
	return checkUpdated(ctx, r.db, res, &models.Announcement{}, id, domain.ErrAnnouncementNotFound)
}

// Delete deletes an announcement
func (r *announcementRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Announcement{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAnnouncementNotFound
	}
	return nil
}
