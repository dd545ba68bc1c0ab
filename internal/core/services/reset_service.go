package services

import (
	"context"
	"fmt"
	"log"

	"olympia-api/internal/adapters/persistence/repositories"
	"olympia-api/internal/core/domain"
	"olympia-api/internal/pkg/metrics"
)

// ResetMessage is returned after a completed reset
const ResetMessage = "초기화되었습니다."

// ResetResult reports what a reset removed
type ResetResult struct {
	OK                  bool   `json:"ok"`
	Message             string `json:"message"`
	ApplicationsDeleted int    `json:"applicationsDeleted"`
	PersonsDeleted      int    `json:"personsDeleted"`
	UsersDeleted        int    `json:"usersDeleted"`
	PrincipalsDeleted   int    `json:"principalsDeleted"`
	PrincipalFailures   int    `json:"principalFailures"`
}

// ResetService wipes registration data for a new season. Administrator
// accounts survive.
type ResetService struct {
	store    *repositories.Store
	identity IdentityProvider
	metrics  *metrics.Metrics
}

// NewResetService creates a new reset service. m may be nil.
func NewResetService(store *repositories.Store, identity IdentityProvider, m *metrics.Metrics) *ResetService {
	return &ResetService{store: store, identity: identity, metrics: m}
}

// Reset deletes every application and person, then every non-admin user
// with its principal. Each batch commits on its own; a failing batch stops
// the reset and earlier batches stay deleted. Principal deletion failures
// are logged and skipped.
func (s *ResetService) Reset(ctx context.Context) (*ResetResult, error) {
	result := &ResetResult{}

	// 1. Applications
	appIDs, err := s.store.Applications.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	n, err := deleteInBatches(ctx, appIDs, s.store.Applications.DeleteBatch)
	result.ApplicationsDeleted = n
	if err != nil {
		return result, fmt.Errorf("delete applications: %w", err)
	}

	// 2. Persons
	personIDs, err := s.store.Persons.ListIDs(ctx)
	if err != nil {
		return result, fmt.Errorf("list persons: %w", err)
	}
	n, err = deleteInBatches(ctx, personIDs, s.store.Persons.DeleteBatch)
	result.PersonsDeleted = n
	if err != nil {
		return result, fmt.Errorf("delete persons: %w", err)
	}

	// 3. Non-admin users
	users, err := s.store.Users.ListAll(ctx)
	if err != nil {
		return result, fmt.Errorf("list users: %w", err)
	}
	var userIDs []string
	for _, u := range users {
		if u.UserType != domain.UserTypeAdmin {
			userIDs = append(userIDs, u.ID)
		}
	}

	// 4. Principals, best effort
	for _, uid := range userIDs {
		if err := s.identity.DeletePrincipal(ctx, uid); err != nil {
			log.Printf("⚠️ Reset: delete principal %s failed: %v", uid, err)
			result.PrincipalFailures++
			s.metrics.IncSkippedFailure("reset_principal")
			continue
		}
		result.PrincipalsDeleted++
	}

	// 5. User records
	n, err = deleteInBatches(ctx, userIDs, s.store.Users.DeleteBatch)
	result.UsersDeleted = n
	if err != nil {
		return result, fmt.Errorf("delete users: %w", err)
	}

	s.metrics.AddBulkWrites("reset", result.ApplicationsDeleted+result.PersonsDeleted+result.UsersDeleted)
	log.Printf("🧹 Reset done: %d applications, %d persons, %d users (%d principal failures)",
		result.ApplicationsDeleted, result.PersonsDeleted, result.UsersDeleted, result.PrincipalFailures)

	result.OK = true
	result.Message = ResetMessage
	return result, nil
}

// deleteInBatches deletes ids in MaxWriteBatch batches and returns how many
// were deleted before the first failure
func deleteInBatches(ctx context.Context, ids []string, del func(context.Context, []string) error) (int, error) {
	deleted := 0
	for _, batch := range chunkStrings(ids, repositories.MaxWriteBatch) {
		if err := del(ctx, batch); err != nil {
			return deleted, err
		}
		deleted += len(batch)
	}
	return deleted, nil
}
