package repositories

import (
	"context"
	"errors"
	"fmt"

	"olympia-api/internal/adapters/persistence/models"
	"olympia-api/internal/core/domain"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a user profile keyed by the identity provider uid
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	return r.db.WithContext(ctx).Create(models.BoUserFromDomain(user)).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user models.BoUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToDomain(), nil
}

// GetMany gets up to MaxGetAllKeys users in one round trip
func (r *userRepository) GetMany(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	if len(ids) > MaxGetAllKeys {
		return nil, fmt.Errorf("%w: %d > %d", domain.ErrGetAllLimitExceeded, len(ids), MaxGetAllKeys)
	}
	found := make(map[string]*domain.User, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var rows []*models.BoUser
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		found[row.ID] = row.ToDomain()
	}
	return found, nil
}

// ListOrderedByName lists the first users ordered by name
func (r *userRepository) ListOrderedByName(ctx context.Context, limit int) ([]*domain.User, error) {
	var rows []*models.BoUser
	err := r.db.WithContext(ctx).Order("name").Order("id").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return usersToDomain(rows), nil
}

// ListAll lists every user
func (r *userRepository) ListAll(ctx context.Context) ([]*domain.User, error) {
	var rows []*models.BoUser
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return usersToDomain(rows), nil
}

// ListByEmailOptIn lists users with the given emailyn flag
func (r *userRepository) ListByEmailOptIn(ctx context.Context, emailYN string) ([]*domain.User, error) {
	var rows []*models.BoUser
	if err := r.db.WithContext(ctx).Where("emailyn = ?", emailYN).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return usersToDomain(rows), nil
}

// UpdateFields applies a partial update
func (r *userRepository) UpdateFields(ctx context.Context, id string, fields domain.FieldSet) error {
	updates := columnUpdates(fields, models.UserColumns)
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&models.BoUser{}).Where("id = ?", id).Updates(updates)
	return checkUpdated(ctx, r.db, res, &models.BoUser{}, id, domain.ErrUserNotFound)
}

// DeleteBatch deletes up to MaxWriteBatch users
func (r *userRepository) DeleteBatch(ctx context.Context, ids []string) error {
	return deleteBatch(ctx, r.db, &models.BoUser{}, ids)
}

func usersToDomain(rows []*models.BoUser) []*domain.User {
	users := make([]*domain.User, len(rows))
	for i, row := range rows {
		users[i] = row.ToDomain()
	}
	return users
}
