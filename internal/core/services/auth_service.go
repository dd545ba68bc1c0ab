package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"olympia-api/internal/adapters/persistence/repositories"
	"olympia-api/internal/core/domain"
	"olympia-api/internal/pkg/password"
)

// AccessDecision is the outcome of an access check
type AccessDecision int

const (
	AccessGranted AccessDecision = iota
	AccessUnauthenticated
	AccessUnauthorized
)

func (d AccessDecision) String() string {
	switch d {
	case AccessGranted:
		return "granted"
	case AccessUnauthenticated:
		return "unauthenticated"
	case AccessUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Err maps a denial to its sentinel error (nil when granted)
func (d AccessDecision) Err() error {
	switch d {
	case AccessGranted:
		return nil
	case AccessUnauthenticated:
		return domain.ErrUnauthenticated
	default:
		return domain.ErrUnauthorized
	}
}

// SignUpInput represents sign-up input
type SignUpInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents a successful sign-up or login
type AuthResponse struct {
	Token string       `json:"token,omitempty"`
	UID   string       `json:"uid"`
	Email string       `json:"email"`
	User  *domain.User `json:"user,omitempty"`
	Admin bool         `json:"admin"`
}

// AdminCheck reports where an admin decision came from
type AdminCheck struct {
	UID          string `json:"uid"`
	Admin        bool   `json:"admin"`
	AdminClaim   *bool  `json:"admin_claim"`
	AdminInToken *bool  `json:"admin_in_token"`
}

// AuthService handles authentication and authorization
type AuthService struct {
	identity IdentityProvider
	users    repositories.UserRepository
	now      Clock
	loc      *time.Location
}

// NewAuthService creates a new auth service
func NewAuthService(identity IdentityProvider, users repositories.UserRepository) *AuthService {
	return &AuthService{
		identity: identity,
		users:    users,
		now:      time.Now,
		loc:      defaultLocation(),
	}
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header
func BearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// Authenticate verifies a bearer token
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Principal, AccessDecision, error) {
	if token == "" {
		return nil, AccessUnauthenticated, domain.ErrUnauthenticated
	}
	principal, err := s.identity.VerifyToken(ctx, token)
	if err != nil {
		return nil, AccessUnauthenticated, err
	}
	return principal, AccessGranted, nil
}

// AuthorizeAdmin grants when the token carries admin=true, otherwise asks
// the identity provider for the stored claim
func (s *AuthService) AuthorizeAdmin(ctx context.Context, principal *domain.Principal) AccessDecision {
	if principal == nil || principal.UID == "" {
		return AccessUnauthenticated
	}
	if principal.AdminInToken() {
		return AccessGranted
	}
	if claim := s.serverAdminClaim(ctx, principal.UID); claim != nil && *claim {
		return AccessGranted
	}
	return AccessUnauthorized
}

// AuthorizeOwnerOrAdmin grants the owner of a resource or an admin
func (s *AuthService) AuthorizeOwnerOrAdmin(ctx context.Context, principal *domain.Principal, ownerID string) AccessDecision {
	if principal == nil || principal.UID == "" {
		return AccessUnauthenticated
	}
	if principal.UID == ownerID {
		return AccessGranted
	}
	return s.AuthorizeAdmin(ctx, principal)
}

// CheckAdmin explains the admin decision for the caller
func (s *AuthService) CheckAdmin(ctx context.Context, principal *domain.Principal) *AdminCheck {
	check := &AdminCheck{UID: principal.UID}
	if v, ok := principal.Claims["admin"].(bool); ok {
		check.AdminInToken = &v
	}
	check.AdminClaim = s.serverAdminClaim(ctx, principal.UID)
	check.Admin = s.AuthorizeAdmin(ctx, principal) == AccessGranted
	return check
}

func (s *AuthService) serverAdminClaim(ctx context.Context, uid string) *bool {
	p, err := s.identity.GetPrincipal(ctx, uid)
	if err != nil {
		if !errors.Is(err, domain.ErrPrincipalNotFound) {
			log.Printf("⚠️ Admin claim lookup for %s failed: %v", uid, err)
		}
		return nil
	}
	admin := p.Admin
	return &admin
}

// SignUp creates a principal and its applicant profile
func (s *AuthService) SignUp(ctx context.Context, input *SignUpInput) (*AuthResponse, error) {
	email := strings.TrimSpace(input.Email)
	name := strings.TrimSpace(input.Name)
	switch {
	case email == "" || !strings.Contains(email, "@"):
		return nil, domain.NewValidationError("email", "이메일을 입력하세요.")
	case !password.ValidatePassword(input.Password):
		return nil, domain.NewValidationError("password", "비밀번호는 8자 이상이어야 합니다.")
	case name == "":
		return nil, domain.NewValidationError("name", "이름을 입력하세요.")
	case !hasDigit(input.Phone):
		return nil, domain.NewValidationError("phone", "전화번호는 필수입니다.")
	}

	principal, err := s.identity.CreatePrincipal(ctx, email, input.Password, name)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:        principal.UID,
		Name:      name,
		Phone:     strings.TrimSpace(input.Phone),
		Email:     email,
		UserType:  domain.UserTypeApplicant,
		EmailYN:   domain.CodeNo,
		CreateYMD: ymdOf(s.now(), s.loc),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// keep principals and profiles paired
		if delErr := s.identity.DeletePrincipal(ctx, principal.UID); delErr != nil {
			log.Printf("⚠️ Rollback principal %s failed: %v", principal.UID, delErr)
		}
		return nil, fmt.Errorf("create user profile: %w", err)
	}

	token, _, err := s.identity.Authenticate(ctx, email, input.Password)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User signed up: %s (%s)", email, principal.UID)
	return &AuthResponse{Token: token, UID: principal.UID, Email: email, User: user}, nil
}

// Login checks credentials and issues a token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	token, principal, err := s.identity.Authenticate(ctx, strings.TrimSpace(input.Email), input.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, principal.UID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	return &AuthResponse{
		Token: token,
		UID:   principal.UID,
		Email: principal.Email,
		User:  user,
		Admin: principal.Admin,
	}, nil
}

// Me returns the caller's profile
func (s *AuthService) Me(ctx context.Context, principal *domain.Principal) (*domain.User, error) {
	return s.users.GetByID(ctx, principal.UID)
}
