package repositories

import (
	"context"
	"errors"

	"olympia-api/internal/adapters/persistence/models"
	"olympia-api/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var commonCodeColumns = map[string]string{
	"group": "code_group",
	"code":  "code",
	"name":  "name",
	"order": "sort_order",
}

// commonCodeRepository implements CommonCodeRepository interface
type commonCodeRepository struct {
	db *gorm.DB
}

// NewCommonCodeRepository creates a new common code repository
func NewCommonCodeRepository(db *gorm.DB) CommonCodeRepository {
	return &commonCodeRepository{db: db}
}

// Create creates a common code
func (r *commonCodeRepository) Create(ctx context.Context, code *domain.CommonCode) error {
	if code.ID == "" {
		code.ID = uuid.NewString()
	}
	row := &models.CommonCode{
		ID:        code.ID,
		Group:     code.Group,
		Code:      code.Code,
		Name:      code.Name,
		SortOrder: code.Order,
	}
	return r.db.WithContext(ctx).Create(row).Error
}

// GetByID gets a common code by ID
func (r *commonCodeRepository) GetByID(ctx context.Context, id string) (*domain.CommonCode, error) {
	var row models.CommonCode
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCommonCodeNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// ListByGroup lists the codes of one group, or of every group when empty
func (r *commonCodeRepository) ListByGroup(ctx context.Context, group string) ([]*domain.CommonCode, error) {
	query := r.db.WithContext(ctx)
	if group != "" {
		query = query.Where("code_group = ?", group)
	}
	return r.find(query.Order("sort_order ASC").Order("code ASC"))
}

// ListAll lists every code grouped for the admin screen
func (r *commonCodeRepository) ListAll(ctx context.Context) ([]*domain.CommonCode, error) {
	return r.find(r.db.WithContext(ctx).Order("code_group ASC").Order("sort_order ASC").Order("code ASC"))
}

func (r *commonCodeRepository) find(query *gorm.DB) ([]*domain.CommonCode, error) {
	var rows []*models.CommonCode
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]*domain.CommonCode, len(rows))
	for i, row := range rows {
		items[i] = row.ToDomain()
	}
	return items, nil
}

// UpdateFields applies a partial update
func (r *commonCodeRepository) UpdateFields(ctx context.Context, id string, fields domain.FieldSet) error {
	updates := columnUpdates(fields, commonCodeColumns)
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&models.CommonCode{}).Where("id = ?", id).Updates(updates)
	return checkUpdated(ctx, r.db, res, &models.CommonCode{}, id, domain.ErrCommonCodeNotFound)
}

// Delete deletes a common code
func (r *commonCodeRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CommonCode{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCommonCodeNotFound
	}
	return nil
}
