package repositories

import (
	"context"

	"olympia-api/internal/adapters/persistence/models"
	"olympia-api/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// lookupRepository implements LookupRepository interface
type lookupRepository struct {
	db *gorm.DB
}

// NewLookupRepository creates a new lookup value repository
func NewLookupRepository(db *gorm.DB) LookupRepository {
	return &lookupRepository{db: db}
}

// ListByType lists the rows of a category in insertion order
func (r *lookupRepository) ListByType(ctx context.Context, typeCd string) ([]*domain.LookupValue, error) {
	var rows []*models.LookupValue
	err := r.db.WithContext(ctx).
		Where("type_cd = ?", typeCd).
		Order("sort_seq").
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	values := make([]*domain.LookupValue, len(rows))
	for i, row := range rows {
		values[i] = row.ToDomain()
	}
	return values, nil
}

// Create appends a row to its category
func (r *lookupRepository) Create(ctx context.Context, value *domain.LookupValue) error {
	if value.ID == "" {
		value.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq int
		if err := tx.Model(&models.LookupValue{}).
			Where("type_cd = ?", value.TypeCd).
			Select("COALESCE(MAX(sort_seq), 0)").
			Row().Scan(&seq); err != nil {
			return err
		}

		row := models.LookupValueFromDomain(value)
		row.SortSeq = seq + 1
		return tx.Create(row).Error
	})
}

// CountByType counts the rows of a category
func (r *lookupRepository) CountByType(ctx context.Context, typeCd string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LookupValue{}).Where("type_cd = ?", typeCd).Count(&count).Error
	return count, err
}
