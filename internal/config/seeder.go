package config

import (
	"context"
	"errors"
	"log"
	"strings"

	"olympia-api/internal/adapters/persistence/repositories"
	"olympia-api/internal/core/domain"
	"olympia-api/internal/core/services"
)

// lookupSeed is one default code row
type lookupSeed struct {
	typeCd  string
	valueCd string
	valueNm string
}

// defaultLookups are created for categories that have no rows yet
var defaultLookups = []lookupSeed{
	{domain.LookupExamType, "100", "개인"},
	{domain.LookupExamType, "200", "단체"},
	{domain.LookupParticipation, "100", "참가"},
	{domain.LookupParticipation, "200", "불참"},
	{domain.LookupRefundRequest, "100", "요청"},
	{domain.LookupRefundRequest, "200", "미요청"},
	{domain.LookupYesNo, "100", "예"},
	{domain.LookupYesNo, "200", "아니오"},
	{domain.LookupUserType, "100", domain.AdminTypeName},
	{domain.LookupUserType, "200", "신청자"},
}

// Seeder handles store seeding
type Seeder struct {
	store    *repositories.Store
	identity services.IdentityProvider
	cfg      *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(store *repositories.Store, identity services.IdentityProvider, cfg *Config) *Seeder {
	return &Seeder{store: store, identity: identity, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("🌱 Running seeders...")

	if err := s.seedLookupValues(ctx); err != nil {
		return err
	}

	if err := s.seedAdminUser(ctx); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Seeding completed")
	return nil
}

// seedLookupValues creates default codes for empty categories. Codes are
// open-ended (start 19000101, end 99991231).
func (s *Seeder) seedLookupValues(ctx context.Context) error {
	seeded := map[string]bool{}
	for _, seed := range defaultLookups {
		if _, done := seeded[seed.typeCd]; !done {
			count, err := s.store.Lookups.CountByType(ctx, seed.typeCd)
			if err != nil {
				return err
			}
			seeded[seed.typeCd] = count == 0
		}
		if !seeded[seed.typeCd] {
			continue
		}
		value := &domain.LookupValue{
			TypeCd:   seed.typeCd,
			ValueCd:  domain.FlexString(seed.valueCd),
			ValueNm:  seed.valueNm,
			StartYMD: "19000101",
			EndYMD:   "99991231",
		}
		if err := s.store.Lookups.Create(ctx, value); err != nil {
			return err
		}
		log.Printf("   Created lookup %s/%s: %s", seed.typeCd, seed.valueCd, seed.valueNm)
	}
	return nil
}

// seedAdminUser creates the admin principal and profile from SEED_ADMIN_*.
// Development only; in production grant admin with cmd/set-admin-claim.
func (s *Seeder) seedAdminUser(ctx context.Context) error {
	email := strings.TrimSpace(getEnv("SEED_ADMIN_EMAIL", ""))
	pass := getEnv("SEED_ADMIN_PASSWORD", "")
	if email == "" || pass == "" || s.identity == nil {
		return nil
	}
	if s.cfg != nil && s.cfg.IsProd() {
		return errors.New("admin seeding is disabled in prod")
	}

	principal, err := s.identity.GetPrincipalByEmail(ctx, email)
	if errors.Is(err, domain.ErrPrincipalNotFound) {
		principal, err = s.identity.CreatePrincipal(ctx, email, pass, "관리자")
	}
	if err != nil {
		return err
	}

	if _, err := s.store.Users.GetByID(ctx, principal.UID); errors.Is(err, domain.ErrUserNotFound) {
		admin := &domain.User{
			ID:       principal.UID,
			Name:     "관리자",
			Email:    email,
			UserType: domain.UserTypeAdmin,
			EmailYN:  domain.CodeNo,
		}
		if err := s.store.Users.Create(ctx, admin); err != nil {
			return err
		}
	}

	if err := s.identity.SetAdminClaim(ctx, principal.UID, true); err != nil {
		return err
	}

	log.Printf("✅ Admin user ready: %s", email)
	return nil
}
