package repositories

import (
	"context"
	"errors"

	"olympia-api/internal/adapters/persistence/models"
	"olympia-api/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// applicationRepository implements ApplicationRepository interface
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create creates a new application, assigning its id
func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(models.ApplicationFromDomain(app)).Error
}

// GetByID gets an application by ID
func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return app.ToDomain(), nil
}

// ListOrderedByOwner lists the first applications ordered by owner id
func (r *applicationRepository) ListOrderedByOwner(ctx context.Context, limit int) ([]*domain.Application, error) {
	var rows []*models.Application
	err := r.db.WithContext(ctx).
		Order("user_id").
		Order("id").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return applicationsToDomain(rows), nil
}

// ListByOwner lists applications owned by a user
func (r *applicationRepository) ListByOwner(ctx context.Context, userID string) ([]*domain.Application, error) {
	var rows []*models.Application
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return applicationsToDomain(rows), nil
}

// UpdateFields applies a partial update
func (r *applicationRepository) UpdateFields(ctx context.Context, id string, fields domain.FieldSet) error {
	updates := columnUpdates(fields, models.ApplicationColumns)
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&models.Application{}).Where("id = ?", id).Updates(updates)
	return checkUpdated(ctx, r.db, res, &models.Application{}, id, domain.ErrApplicationNotFound)
}

// ListIDs lists every application id
func (r *applicationRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Application{}).Order("id").Pluck("id", &ids).Error
	return ids, err
}

// DeleteBatch deletes up to MaxWriteBatch applications
func (r *applicationRepository) DeleteBatch(ctx context.Context, ids []string) error {
	return deleteBatch(ctx, r.db, &models.Application{}, ids)
}

func applicationsToDomain(rows []*models.Application) []*domain.Application {
	apps := make([]*domain.Application, len(rows))
	for i, row := range rows {
		apps[i] = row.ToDomain()
	}
	return apps
}
