package repositories

import (
	"context"
	"fmt"

	"olympia-api/internal/core/domain"

	"gorm.io/gorm"
)

// columnUpdates translates a field set into column updates, dropping keys
// that have no column
func columnUpdates(fields domain.FieldSet, columns map[string]string) map[string]interface{} {
	updates := make(map[string]interface{}, len(fields))
	for key, value := range fields {
		if column, ok := columns[key]; ok {
			updates[column] = value
		}
	}
	return updates
}

// checkUpdated maps a zero-row update to notFound when the row is missing.
// MySQL reports changed rows only, so an update writing identical values
// also affects zero rows.
func checkUpdated(ctx context.Context, db *gorm.DB, res *gorm.DB, model interface{}, id string, notFound error) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound
	}
	return nil
}

// deleteBatch deletes up to MaxWriteBatch rows in one committed transaction
func deleteBatch(ctx context.Context, db *gorm.DB, model interface{}, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if len(ids) > MaxWriteBatch {
		return fmt.Errorf("%w: %d > %d", domain.ErrWriteBatchTooLarge, len(ids), MaxWriteBatch)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("id IN ?", ids).Delete(model).Error
	})
}
