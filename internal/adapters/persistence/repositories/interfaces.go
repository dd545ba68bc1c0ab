package repositories

import (
	"context"

	"olympia-api/internal/core/domain"
)

// Store limits. They mirror the document store the data was migrated from
// and are enforced by every implementation so callers must chunk.
const (
	// MaxInQueryValues caps the number of values in one "in" filter
	MaxInQueryValues = 30
	// MaxGetAllKeys caps the number of keys in one multi-key get
	MaxGetAllKeys = 100
	// MaxWriteBatch caps the number of writes committed together
	MaxWriteBatch = 500
)

// ApplicationRepository defines applications repository interface
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	ListOrderedByOwner(ctx context.Context, limit int) ([]*domain.Application, error)
	ListByOwner(ctx context.Context, userID string) ([]*domain.Application, error)
	UpdateFields(ctx context.Context, id string, fields domain.FieldSet) error
	ListIDs(ctx context.Context) ([]string, error)
	DeleteBatch(ctx context.Context, ids []string) error
}

// PersonRepository defines bo_person repository interface
type PersonRepository interface {
	// ListByApplicationIDs returns persons whose applicationId is one of ids.
	// len(ids) must not exceed MaxInQueryValues.
	ListByApplicationIDs(ctx context.Context, ids []string) ([]*domain.Person, error)
	ListByApplicationAndOwner(ctx context.Context, applicationID, userID string) ([]*domain.Person, error)
	FindByApplicationNoText(ctx context.Context, applicationNo string, limit int) ([]*domain.Person, error)
	FindByApplicationNoInt(ctx context.Context, applicationNo int64, limit int) ([]*domain.Person, error)
	MaxApplicationNo(ctx context.Context) (int64, bool, error)
	CreateBatch(ctx context.Context, persons []*domain.Person) error
	UpdateFields(ctx context.Context, id string, fields domain.FieldSet) error
	// Count counts persons whose fields equal the given values (all when empty)
	Count(ctx context.Context, where domain.FieldSet) (int64, error)
	ListIDs(ctx context.Context) ([]string, error)
	DeleteBatch(ctx context.Context, ids []string) error
}

// UserRepository defines bo_users repository interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetMany returns the users found among ids keyed by id.
	// len(ids) must not exceed MaxGetAllKeys.
	GetMany(ctx context.Context, ids []string) (map[string]*domain.User, error)
	ListOrderedByName(ctx context.Context, limit int) ([]*domain.User, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
	ListByEmailOptIn(ctx context.Context, emailYN string) ([]*domain.User, error)
	UpdateFields(ctx context.Context, id string, fields domain.FieldSet) error
	DeleteBatch(ctx context.Context, ids []string) error
}

// LookupRepository defines bo_lookup_value repository interface
type LookupRepository interface {
	// ListByType returns all rows of a category in insertion order
	ListByType(ctx context.Context, typeCd string) ([]*domain.LookupValue, error)
	Create(ctx context.Context, value *domain.LookupValue) error
	CountByType(ctx context.Context, typeCd string) (int64, error)
}

// AnnouncementRepository defines announcements repository interface
type AnnouncementRepository interface {
	Create(ctx context.Context, a *domain.Announcement) error
	GetByID(ctx context.Context, id string) (*domain.Announcement, error)
	// ListRecent lists newest first; limit <= 0 returns all
	ListRecent(ctx context.Context, limit int) ([]*domain.Announcement, error)
	UpdateFields(ctx context.Context, id string, fields domain.FieldSet) error
	Delete(ctx context.Context, id string) error
}

// CommonCodeRepository defines common_codes repository interface
type CommonCodeRepository interface {
	Create(ctx context.Context, code *domain.CommonCode) error
	GetByID(ctx context.Context, id string) (*domain.CommonCode, error)
	// ListByGroup orders by order then code; an empty group lists every code
	ListByGroup(ctx context.Context, group string) ([]*domain.CommonCode, error)
	// ListAll orders by group, order then code
	ListAll(ctx context.Context) ([]*domain.CommonCode, error)
	UpdateFields(ctx context.Context, id string, fields domain.FieldSet) error
	Delete(ctx context.Context, id string) error
}

// Store bundles the repositories of one backing store
type Store struct {
	Applications  ApplicationRepository
	Persons       PersonRepository
	Users         UserRepository
	Lookups       LookupRepository
	Announcements AnnouncementRepository
	CommonCodes   CommonCodeRepository
}
