// Package identity is a self-hosted identity provider: principals with
// bcrypt passwords, HS256 ID tokens and an admin custom claim.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"olympia-api/internal/adapters/persistence/models"
	"olympia-api/internal/core/domain"
	"olympia-api/internal/pkg/jwt"
	"olympia-api/internal/pkg/password"

	"github.com/google/uuid"
)

// Options configures token issuing
type Options struct {
	Secret          string
	Issuer          string
	AccessTokenMins int
	// BcryptCost overrides password.DefaultCost when > 0
	BcryptCost int
}

// LocalProvider implements services.IdentityProvider
type LocalProvider struct {
	principals PrincipalRepository
	opts       Options
}

// NewLocalProvider creates a new local identity provider
func NewLocalProvider(principals PrincipalRepository, opts Options) *LocalProvider {
	if opts.AccessTokenMins <= 0 {
		opts.AccessTokenMins = 60
	}
	if opts.Issuer == "" {
		opts.Issuer = "olympia-api"
	}
	return &LocalProvider{principals: principals, opts: opts}
}

// VerifyToken validates an ID token whose principal still exists
func (p *LocalProvider) VerifyToken(ctx context.Context, token string) (*domain.Principal, error) {
	claims, err := jwt.ValidateAccessToken(token, p.opts.Secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	row, err := p.principals.GetByUID(ctx, claims.UID)
	if err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}

	principal := toPrincipal(row)
	principal.Claims = claims.ToMap()
	return principal, nil
}

// GetPrincipal returns the stored principal with its current admin claim
func (p *LocalProvider) GetPrincipal(ctx context.Context, uid string) (*domain.Principal, error) {
	row, err := p.principals.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	return toPrincipal(row), nil
}

// GetPrincipalByEmail looks a principal up by email
func (p *LocalProvider) GetPrincipalByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	row, err := p.principals.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	return toPrincipal(row), nil
}

// SetAdminClaim sets or clears the admin claim. Tokens issued earlier keep
// their old claim until they expire.
func (p *LocalProvider) SetAdminClaim(ctx context.Context, uid string, admin bool) error {
	return p.principals.SetAdmin(ctx, uid, admin)
}

// DeletePrincipal removes a principal; its tokens stop verifying
func (p *LocalProvider) DeletePrincipal(ctx context.Context, uid string) error {
	return p.principals.Delete(ctx, uid)
}

// CreatePrincipal registers a new principal
func (p *LocalProvider) CreatePrincipal(ctx context.Context, email, pass, displayName string) (*domain.Principal, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.NewValidationError("email", "이메일을 입력하세요.")
	}
	if !password.ValidatePassword(pass) {
		return nil, domain.NewValidationError("password", "비밀번호는 8자 이상이어야 합니다.")
	}

	hash, err := password.Hash(pass, p.opts.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	row := &models.Principal{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
	}
	if err := p.principals.Create(ctx, row); err != nil {
		return nil, err
	}
	return toPrincipal(row), nil
}

// Authenticate checks email/password and issues an ID token
func (p *LocalProvider) Authenticate(ctx context.Context, email, pass string) (string, *domain.Principal, error) {
	row, err := p.principals.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !password.Verify(pass, row.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.GenerateAccessToken(row.UID, row.Email, row.AdminClaim, p.opts.Secret, p.opts.Issuer, p.opts.AccessTokenMins)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, toPrincipal(row), nil
}

func toPrincipal(row *models.Principal) *domain.Principal {
	return &domain.Principal{
		UID:         row.UID,
		Email:       row.Email,
		DisplayName: row.DisplayName,
		Admin:       row.AdminClaim,
	}
}
