package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"olympia-api/internal/adapters/persistence/repositories"
	"olympia-api/internal/core/domain"
)

// applicationNoFloor is the number below which registration numbers are not issued
const applicationNoFloor = 1000

// ApplicantInput is one applicant of a submitted form
type ApplicantInput struct {
	ApplicationNo       domain.FlexValue `json:"applicationNo"`
	ExamType            string           `json:"examType"`
	ApplicantName       string           `json:"applicantName"`
	Mobile              string           `json:"mobile"`
	DepositNote         string           `json:"depositNote"`
	ParticipationStatus string           `json:"participationStatus"`
	FeeConfirmed        string           `json:"feeConfirmed"`
	ContactConfirmed    string           `json:"contactConfirmed"`
	RefundRequest       string           `json:"refundRequest"`
	RefundConfirmed     string           `json:"refundConfirmed"`
	CreateYMD           string           `json:"create_ymd"`

	// LegacyContactConfirmed is the contacConfirmed spelling older clients send
	LegacyContactConfirmed string `json:"contacConfirmed"`
}

// ApplicationInput is a submitted application form
type ApplicationInput struct {
	ChurchName      string           `json:"churchName"`
	ContactName     string           `json:"contactName"`
	ContactPosition string           `json:"contactPosition"`
	ContactPhone    string           `json:"contactPhone"`
	PastorName      string           `json:"pastorName"`
	ChurchAddress   string           `json:"churchAddress"`
	Denomination    string           `json:"denomination"`
	Status          string           `json:"status"`
	Applicants      []ApplicantInput `json:"applicants"`
}

// ApplicationDetail is an application with the caller's applicants
type ApplicationDetail struct {
	*domain.Application
	Persons []*domain.Person `json:"persons"`
}

// ApplicationService handles applicant-facing submissions
type ApplicationService struct {
	store   *repositories.Store
	auth    *AuthService
	reports *ReportService
	now     Clock
	loc     *time.Location
}

// NewApplicationService creates a new application service
func NewApplicationService(store *repositories.Store, auth *AuthService, reports *ReportService) *ApplicationService {
	return &ApplicationService{
		store:   store,
		auth:    auth,
		reports: reports,
		now:     time.Now,
		loc:     defaultLocation(),
	}
}

// WithClock overrides the clock used for timestamps and create_ymd
func (s *ApplicationService) WithClock(now Clock) *ApplicationService {
	s.now = now
	return s
}

// Create stores an application owned by the caller along with its applicants
func (s *ApplicationService) Create(ctx context.Context, principal *domain.Principal, input *ApplicationInput) (*ApplicationDetail, error) {
	if principal == nil || principal.UID == "" {
		return nil, domain.ErrUnauthenticated
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = domain.DefaultApplicationStatus
	}
	createdAt := s.now()
	app := &domain.Application{
		ChurchName:      input.ChurchName,
		ContactName:     input.ContactName,
		ContactPosition: input.ContactPosition,
		ContactPhone:    input.ContactPhone,
		PastorName:      input.PastorName,
		ChurchAddress:   input.ChurchAddress,
		Denomination:    input.Denomination,
		UserID:          principal.UID,
		Status:          status,
		CreatedAt:       &createdAt,
	}
	if err := s.store.Applications.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}

	persons, err := s.replacePersons(ctx, app.ID, principal.UID, input.Applicants)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Application submitted: %s by %s (%d applicants)", app.ID, principal.UID, len(persons))
	return &ApplicationDetail{Application: app, Persons: persons}, nil
}

// SavePersons replaces the caller's applicants of an application
func (s *ApplicationService) SavePersons(ctx context.Context, principal *domain.Principal, applicationID string, applicants []ApplicantInput) ([]*domain.Person, error) {
	app, err := s.store.Applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if principal == nil || principal.UID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if app.UserID != principal.UID {
		return nil, domain.ErrUnauthorized
	}
	return s.replacePersons(ctx, app.ID, principal.UID, applicants)
}

// replacePersons deletes the (application, owner) persons and inserts the
// new list. Missing registration numbers are issued from the current maximum.
func (s *ApplicationService) replacePersons(ctx context.Context, applicationID, userID string, applicants []ApplicantInput) ([]*domain.Person, error) {
	existing, err := s.store.Persons.ListByApplicationAndOwner(ctx, applicationID, userID)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	ids := make([]string, len(existing))
	for i, p := range existing {
		ids[i] = p.ID
	}
	if _, err := deleteInBatches(ctx, ids, s.store.Persons.DeleteBatch); err != nil {
		return nil, fmt.Errorf("delete persons: %w", err)
	}
	if len(applicants) == 0 {
		return []*domain.Person{}, nil
	}

	nextNo, err := s.nextApplicationNo(ctx)
	if err != nil {
		return nil, err
	}
	today := ymdOf(s.now(), s.loc)

	persons := make([]*domain.Person, 0, len(applicants))
	for _, a := range applicants {
		var appNo domain.FlexValue
		if n, ok := a.ApplicationNo.Int(); ok {
			appNo = domain.FlexInt(n)
		} else {
			appNo = domain.FlexInt(nextNo)
			nextNo++
		}
		createYMD := strings.TrimSpace(a.CreateYMD)
		if createYMD == "" {
			createYMD = today
		}
		persons = append(persons, &domain.Person{
			ApplicationID:       applicationID,
			UserID:              userID,
			ApplicationNo:       appNo,
			ExamType:            a.ExamType,
			ApplicantName:       a.ApplicantName,
			Mobile:              a.Mobile,
			DepositNote:         a.DepositNote,
			ParticipationStatus: a.ParticipationStatus,
			FeeConfirmed:        a.FeeConfirmed,
			ContactConfirmed:    firstNonBlank(a.ContactConfirmed, a.LegacyContactConfirmed),
			RefundRequest:       a.RefundRequest,
			RefundConfirmed:     a.RefundConfirmed,
			CreateYMD:           createYMD,
		})
	}

	for start := 0; start < len(persons); start += repositories.MaxWriteBatch {
		end := min(start+repositories.MaxWriteBatch, len(persons))
		if err := s.store.Persons.CreateBatch(ctx, persons[start:end]); err != nil {
			return nil, fmt.Errorf("create persons: %w", err)
		}
	}
	return persons, nil
}

func (s *ApplicationService) nextApplicationNo(ctx context.Context) (int64, error) {
	maxNo, found, err := s.store.Persons.MaxApplicationNo(ctx)
	if err != nil {
		return 0, fmt.Errorf("max applicationNo: %w", err)
	}
	base := int64(applicationNoFloor)
	if found && maxNo > base {
		base = maxNo
	}
	return base + 1, nil
}

// ListOwn lists the caller's applications
func (s *ApplicationService) ListOwn(ctx context.Context, principal *domain.Principal) ([]*domain.Application, error) {
	if principal == nil || principal.UID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.store.Applications.ListByOwner(ctx, principal.UID)
}

// Get returns an application to its owner or an admin
func (s *ApplicationService) Get(ctx context.Context, principal *domain.Principal, id string) (*ApplicationDetail, error) {
	if principal == nil || principal.UID == "" {
		return nil, domain.ErrUnauthenticated
	}
	app, err := s.store.Applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if decision := s.auth.AuthorizeOwnerOrAdmin(ctx, principal, app.UserID); decision != AccessGranted {
		return nil, decision.Err()
	}
	persons, err := s.store.Persons.ListByApplicationAndOwner(ctx, app.ID, app.UserID)
	if err != nil {
		return nil, err
	}
	return &ApplicationDetail{Application: app, Persons: persons}, nil
}

// MyReport returns the caller's report rows ordered by exam type and name
func (s *ApplicationService) MyReport(ctx context.Context, principal *domain.Principal) ([]domain.ReportRow, error) {
	if principal == nil || principal.UID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.reports.List(ctx, OwnerScope(principal.UID), ReportFilter{})
}
