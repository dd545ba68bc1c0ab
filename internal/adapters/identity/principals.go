package identity

import (
	"context"
	"errors"
	"strings"
	"sync"

	"olympia-api/internal/adapters/persistence/models"
	"olympia-api/internal/core/domain"

	"gorm.io/gorm"
)

// PrincipalRepository stores principals with their password hash
type PrincipalRepository interface {
	Create(ctx context.Context, p *models.Principal) error
	GetByUID(ctx context.Context, uid string) (*models.Principal, error)
	GetByEmail(ctx context.Context, email string) (*models.Principal, error)
	SetAdmin(ctx context.Context, uid string, admin bool) error
	Delete(ctx context.Context, uid string) error
}

// ============================================================
// gorm
// ============================================================

type gormPrincipals struct {
	db *gorm.DB
}

// NewGormPrincipals stores principals in the principals table
func NewGormPrincipals(db *gorm.DB) PrincipalRepository {
	return &gormPrincipals{db: db}
}

func (r *gormPrincipals) Create(ctx context.Context, p *models.Principal) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Principal{}).Where("email = ?", p.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrEmailAlreadyExists
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *gormPrincipals) GetByUID(ctx context.Context, uid string) (*models.Principal, error) {
	var p models.Principal
	err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrPrincipalNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormPrincipals) GetByEmail(ctx context.Context, email string) (*models.Principal, error) {
	var p models.Principal
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrPrincipalNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormPrincipals) SetAdmin(ctx context.Context, uid string, admin bool) error {
	res := r.db.WithContext(ctx).Model(&models.Principal{}).Where("uid = ?", uid).Update("admin_claim", admin)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByUID(ctx, uid); err != nil {
			return err
		}
	}
	return nil
}

func (r *gormPrincipals) Delete(ctx context.Context, uid string) error {
	res := r.db.WithContext(ctx).Unscoped().Where("uid = ?", uid).Delete(&models.Principal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPrincipalNotFound
	}
	return nil
}

// ============================================================
// memory
// ============================================================

type memoryPrincipals struct {
	mu    sync.RWMutex
	byUID map[string]*models.Principal
}

// NewMemoryPrincipals keeps principals in memory
func NewMemoryPrincipals() PrincipalRepository {
	return &memoryPrincipals{byUID: make(map[string]*models.Principal)}
}

func (r *memoryPrincipals) Create(ctx context.Context, p *models.Principal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byUID {
		if strings.EqualFold(existing.Email, p.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *p
	r.byUID[p.UID] = &cp
	return nil
}

func (r *memoryPrincipals) GetByUID(ctx context.Context, uid string) (*models.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byUID[uid]
	if !ok {
		return nil, domain.ErrPrincipalNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memoryPrincipals) GetByEmail(ctx context.Context, email string) (*models.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.byUID {
		if strings.EqualFold(p.Email, email) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrPrincipalNotFound
}

func (r *memoryPrincipals) SetAdmin(ctx context.Context, uid string, admin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byUID[uid]
	if !ok {
		return domain.ErrPrincipalNotFound
	}
	p.AdminClaim = admin
	return nil
}

func (r *memoryPrincipals) Delete(ctx context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUID[uid]; !ok {
		return domain.ErrPrincipalNotFound
	}
	delete(r.byUID, uid)
	return nil
}
