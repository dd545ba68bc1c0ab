package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode"

	"olympia-api/internal/adapters/persistence/repositories"
	"olympia-api/internal/core/domain"
	"olympia-api/internal/pkg/metrics"
)

const (
	// AdminUserListLimit caps the admin user list
	AdminUserListLimit = 500
	// allUserTypes disables the userType filter
	allUserTypes = "전체"
)

// UserFilter holds the admin user list predicates
type UserFilter struct {
	Name     string `query:"name"`
	Phone    string `query:"phone"`
	UserType string `query:"userType"`
}

// UserListItem is one row of the admin user list
type UserListItem struct {
	ID           string `json:"id"`
	Name         string `json:"Name"`
	Phone        string `json:"Phone"`
	EMail        string `json:"eMail"`
	UserType     string `json:"userType"`
	UserTypeName string `json:"userTypeName"`
	EmailYN      string `json:"emailyn"`
	CreateYMD    string `json:"create_ymd"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
}

// UpdateUserInput is a partial profile update. Nil fields are untouched.
type UpdateUserInput struct {
	Phone    *string `json:"Phone"`
	EMail    *string `json:"eMail"`
	UserType *string `json:"userType"`
	EmailYN  *string `json:"emailyn"`
}

// UserService handles admin user management
type UserService struct {
	users    repositories.UserRepository
	lookups  *LookupService
	identity IdentityProvider
	metrics  *metrics.Metrics
}

// NewUserService creates a new user service
func NewUserService(users repositories.UserRepository, lookups *LookupService, identity IdentityProvider, m *metrics.Metrics) *UserService {
	return &UserService{
		users:    users,
		lookups:  lookups,
		identity: identity,
		metrics:  m,
	}
}

// List returns users ordered by name with their type label as of creation
func (s *UserService) List(ctx context.Context, filter UserFilter) ([]UserListItem, error) {
	nameQ := strings.ToLower(strings.TrimSpace(filter.Name))
	phoneQ := strings.TrimSpace(filter.Phone)
	typeQ := strings.TrimSpace(filter.UserType)

	// type 140 once for all rows
	table, err := s.lookups.Table(ctx, domain.LookupUserType)
	if err != nil {
		return nil, err
	}

	users, err := s.users.ListOrderedByName(ctx, AdminUserListLimit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	items := make([]UserListItem, 0, len(users))
	for _, u := range users {
		if nameQ != "" && !strings.Contains(strings.ToLower(u.Name), nameQ) {
			continue
		}
		if phoneQ != "" && !strings.Contains(u.Phone, phoneQ) {
			continue
		}
		if typeQ != "" && typeQ != allUserTypes && u.UserType != typeQ {
			continue
		}
		items = append(items, toUserListItem(u, table.ResolveCode(u.UserType, u.CreateYMD)))
	}
	return items, nil
}

// Get returns one user profile
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// Update applies an admin profile edit. When userType changes the admin
// claim is synced to whether its label is the administrator type.
func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := domain.FieldSet{}
	if input.Phone != nil {
		if !hasDigit(strings.TrimSpace(*input.Phone)) {
			return nil, domain.NewValidationError("Phone", "전화번호는 필수입니다.")
		}
		fields["Phone"] = *input.Phone
	}
	if input.EMail != nil && strings.TrimSpace(*input.EMail) != "" {
		fields["eMail"] = strings.TrimSpace(*input.EMail)
	}
	if input.UserType != nil {
		fields["userType"] = *input.UserType
	}
	if input.EmailYN != nil {
		fields["emailyn"] = *input.EmailYN
	}
	if len(fields) == 0 {
		return user, nil
	}

	if err := s.users.UpdateFields(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}

	if input.UserType != nil {
		s.syncAdminClaim(ctx, id, *input.UserType, user.CreateYMD)
	}

	return s.users.GetByID(ctx, id)
}

// syncAdminClaim sets the admin claim from the user type label. Failures
// are logged only.
func (s *UserService) syncAdminClaim(ctx context.Context, id, userType, createYMD string) {
	typeName, err := s.lookups.UserTypeName(ctx, userType, createYMD)
	if err != nil {
		log.Printf("⚠️ Resolve user type %q for %s failed: %v", userType, id, err)
	}
	isAdmin := strings.TrimSpace(typeName) == domain.AdminTypeName ||
		strings.TrimSpace(userType) == domain.AdminTypeName
	log.Printf("🔐 Admin claim: user_id=%s userType=%s type_name=%q is_admin=%v", id, userType, typeName, isAdmin)

	if s.identity == nil {
		return
	}
	if err := s.identity.SetAdminClaim(ctx, id, isAdmin); err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			log.Printf("⚠️ Admin claim for %s skipped: no principal", id)
		} else {
			log.Printf("⚠️ Set admin claim for %s failed: %v", id, err)
		}
		s.metrics.IncSkippedFailure("admin_claim")
	}
}

func toUserListItem(u *domain.User, typeName string) UserListItem {
	return UserListItem{
		ID:           u.ID,
		Name:         u.Name,
		Phone:        u.Phone,
		EMail:        u.Email,
		UserType:     u.UserType,
		UserTypeName: typeName,
		EmailYN:      u.EmailYN,
		CreateYMD:    u.CreateYMD,
		Email:        u.Email,
		DisplayName:  u.Name,
	}
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
