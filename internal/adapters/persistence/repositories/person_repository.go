package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"olympia-api/internal/adapters/persistence/models"
	"olympia-api/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// personRepository implements PersonRepository interface
type personRepository struct {
	db *gorm.DB
}

// NewPersonRepository creates a new person repository
func NewPersonRepository(db *gorm.DB) PersonRepository {
	return &personRepository{db: db}
}

// ListByApplicationIDs lists persons of up to MaxInQueryValues applications
func (r *personRepository) ListByApplicationIDs(ctx context.Context, ids []string) ([]*domain.Person, error) {
	if len(ids) > MaxInQueryValues {
		return nil, fmt.Errorf("%w: %d > %d", domain.ErrQueryLimitExceeded, len(ids), MaxInQueryValues)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []*models.Person
	err := r.db.WithContext(ctx).
		Where("application_id IN ?", ids).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return personsToDomain(rows), nil
}

// ListByApplicationAndOwner lists persons of one application saved by its owner
func (r *personRepository) ListByApplicationAndOwner(ctx context.Context, applicationID, userID string) ([]*domain.Person, error) {
	var rows []*models.Person
	err := r.db.WithContext(ctx).
		Where("application_id = ? AND user_id = ?", applicationID, userID).
		Order("application_no_num").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return personsToDomain(rows), nil
}

// FindByApplicationNoText finds persons whose applicationNo is stored as this string
func (r *personRepository) FindByApplicationNoText(ctx context.Context, applicationNo string, limit int) ([]*domain.Person, error) {
	var rows []*models.Person
	err := r.db.WithContext(ctx).
		Where("application_no_text = ?", applicationNo).
		Order("id").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return personsToDomain(rows), nil
}

// FindByApplicationNoInt finds persons whose applicationNo is stored as this number
func (r *personRepository) FindByApplicationNoInt(ctx context.Context, applicationNo int64, limit int) ([]*domain.Person, error) {
	var rows []*models.Person
	err := r.db.WithContext(ctx).
		Where("application_no_num = ?", applicationNo).
		Order("id").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return personsToDomain(rows), nil
}

// MaxApplicationNo returns the largest numeric applicationNo in either representation
func (r *personRepository) MaxApplicationNo(ctx context.Context) (int64, bool, error) {
	var maxNum sql.NullInt64
	if err := r.db.WithContext(ctx).
		Model(&models.Person{}).
		Select("MAX(application_no_num)").
		Row().Scan(&maxNum); err != nil {
		return 0, false, err
	}

	var texts []string
	if err := r.db.WithContext(ctx).
		Model(&models.Person{}).
		Where("application_no_text REGEXP ?", "^[0-9]+$").
		Pluck("application_no_text", &texts).Error; err != nil {
		return 0, false, err
	}

	found := maxNum.Valid
	maxNo := maxNum.Int64
	for _, text := range texts {
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			continue
		}
		if !found || n > maxNo {
			maxNo = n
			found = true
		}
	}
	return maxNo, found, nil
}

// CreateBatch inserts up to MaxWriteBatch persons in one transaction
func (r *personRepository) CreateBatch(ctx context.Context, persons []*domain.Person) error {
	if len(persons) == 0 {
		return nil
	}
	if len(persons) > MaxWriteBatch {
		return fmt.Errorf("%w: %d > %d", domain.ErrWriteBatchTooLarge, len(persons), MaxWriteBatch)
	}

	rows := make([]*models.Person, len(persons))
	for i, p := range persons {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		rows[i] = models.PersonFromDomain(p)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
}

// UpdateFields applies a partial update
func (r *personRepository) UpdateFields(ctx context.Context, id string, fields domain.FieldSet) error {
	updates := columnUpdates(fields, models.PersonColumns)
	if raw, ok := fields["applicationNo"]; ok {
		no := domain.FlexFromAny(raw)
		updates["application_no_num"] = no.Num
		updates["application_no_text"] = no.Text
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&models.Person{}).Where("id = ?", id).Updates(updates)
	return checkUpdated(ctx, r.db, res, &models.Person{}, id, domain.ErrNotFound)
}

// Count counts persons matching all given field values
func (r *personRepository) Count(ctx context.Context, where domain.FieldSet) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Person{})
	for key, value := range where {
		column, ok := models.PersonColumns[key]
		if !ok {
			return 0, fmt.Errorf("%w: unknown person field %q", domain.ErrInvalidInput, key)
		}
		query = query.Where(column+" = ?", value)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

// ListIDs lists every person id
func (r *personRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Person{}).Order("id").Pluck("id", &ids).Error
	return ids, err
}

// DeleteBatch deletes up to MaxWriteBatch persons
func (r *personRepository) DeleteBatch(ctx context.Context, ids []string) error {
	return deleteBatch(ctx, r.db, &models.Person{}, ids)
}

func personsToDomain(rows []*models.Person) []*domain.Person {
	persons := make([]*domain.Person, len(rows))
	for i, row := range rows {
		persons[i] = row.ToDomain()
	}
	return persons
}
