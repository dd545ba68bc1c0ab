package services

import (
	"context"
	"time"

	"olympia-api/internal/core/domain"
)

// Note: repositories are injected as repositories.Store (see store.go in the
// persistence layer). The collaborators below live outside the store.

// IdentityProvider verifies tokens and manages principals
type IdentityProvider interface {
	VerifyToken(ctx context.Context, token string) (*domain.Principal, error)
	GetPrincipal(ctx context.Context, uid string) (*domain.Principal, error)
	GetPrincipalByEmail(ctx context.Context, email string) (*domain.Principal, error)
	SetAdminClaim(ctx context.Context, uid string, admin bool) error
	DeletePrincipal(ctx context.Context, uid string) error
	CreatePrincipal(ctx context.Context, email, password, displayName string) (*domain.Principal, error)
	// Authenticate checks email/password and issues a token
	Authenticate(ctx context.Context, email, password string) (string, *domain.Principal, error)
}

// Notifier delivers a message to a list of recipients
type Notifier interface {
	Send(ctx context.Context, recipients []string, subject, text, html string) error
}

// LookupOptionCache stores current pick-list options per category and day
type LookupOptionCache interface {
	Get(ctx context.Context, typeCd, today string) ([]domain.LookupOption, bool)
	Set(ctx context.Context, typeCd, today string, options []domain.LookupOption, ttl time.Duration)
}

// Clock returns the current time. Services default to time.Now.
type Clock func() time.Time
