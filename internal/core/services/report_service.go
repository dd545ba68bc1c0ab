package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"olympia-api/internal/adapters/persistence/repositories"
	"olympia-api/internal/core/domain"
	"olympia-api/internal/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

const (
	// AdminApplicationLimit caps the applications listed in the admin report
	AdminApplicationLimit = 500
	// chunkConcurrency bounds parallel chunk queries per aggregation
	chunkConcurrency = 4
)

// ReportScope selects which applications a report covers
type ReportScope struct {
	Admin   bool
	OwnerID string
}

// AdminScope covers the first AdminApplicationLimit applications by owner id
func AdminScope() ReportScope {
	return ReportScope{Admin: true}
}

// OwnerScope covers the applications owned by uid
func OwnerScope(uid string) ReportScope {
	return ReportScope{OwnerID: uid}
}

func (s ReportScope) label() string {
	if s.Admin {
		return "admin"
	}
	return "owner"
}

// ReportService joins applications, persons and users into report rows
type ReportService struct {
	store   *repositories.Store
	lookups *LookupService
	metrics *metrics.Metrics
}

// NewReportService creates a new report service. m may be nil.
func NewReportService(store *repositories.Store, lookups *LookupService, m *metrics.Metrics) *ReportService {
	return &ReportService{
		store:   store,
		lookups: lookups,
		metrics: m,
	}
}

// List builds the report for scope, then filters, sorts and numbers it
func (s *ReportService) List(ctx context.Context, scope ReportScope, filter ReportFilter) ([]domain.ReportRow, error) {
	rows, err := s.Aggregate(ctx, scope)
	if err != nil {
		return nil, err
	}
	ordering := OwnerOrdering
	if scope.Admin {
		ordering = AdminOrdering
	}
	return ApplyReportFilter(rows, filter, ordering), nil
}

// Aggregate builds one row per person, or one placeholder row for an
// application without persons. Rows come back in application fetch order
// and are not yet numbered. Any failed chunk fails the whole aggregation.
func (s *ReportService) Aggregate(ctx context.Context, scope ReportScope) ([]domain.ReportRow, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveReportLatency(time.Since(start)) }()

	// 1. Applications
	apps, err := s.listApplications(ctx, scope)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return []domain.ReportRow{}, nil
	}
	appIDs := make([]string, len(apps))
	for i, app := range apps {
		appIDs[i] = app.ID
	}

	// 2. Persons, chunked by MaxInQueryValues
	personsByApp, err := s.fetchPersons(ctx, appIDs)
	if err != nil {
		return nil, err
	}

	// 3. Owners, batched by MaxGetAllKeys
	users, err := s.fetchUsers(ctx, ownerIDs(apps, personsByApp))
	if err != nil {
		return nil, err
	}

	// 4. Display name tables, one query per category
	names, err := s.loadDisplayTables(ctx)
	if err != nil {
		return nil, err
	}

	// 5. Rows
	rows := make([]domain.ReportRow, 0, len(apps))
	for _, app := range apps {
		persons := personsByApp[app.ID]
		base := s.baseRow(app, persons, users)
		if len(persons) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, p := range persons {
			row := base
			fillPerson(&row, p)
			if submitted := formatYMD(strings.TrimSpace(p.CreateYMD)); submitted != "" {
				row.SubmittedAt = submitted
			}
			names.attach(&row, strings.TrimSpace(p.CreateYMD))
			rows = append(rows, row)
		}
	}

	s.metrics.AddReportRows(scope.label(), len(rows))
	return rows, nil
}

func (s *ReportService) listApplications(ctx context.Context, scope ReportScope) ([]*domain.Application, error) {
	var (
		apps []*domain.Application
		err  error
	)
	if scope.Admin {
		apps, err = s.store.Applications.ListOrderedByOwner(ctx, AdminApplicationLimit)
	} else {
		if scope.OwnerID == "" {
			return nil, domain.ErrUnauthenticated
		}
		apps, err = s.store.Applications.ListByOwner(ctx, scope.OwnerID)
	}
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// fetchPersons runs one "in" query per chunk of application ids. Results
// are merged in chunk order so output does not depend on scheduling.
func (s *ReportService) fetchPersons(ctx context.Context, appIDs []string) (map[string][]*domain.Person, error) {
	chunks := chunkStrings(appIDs, repositories.MaxInQueryValues)
	results := make([][]*domain.Person, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(chunkConcurrency)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			s.metrics.IncChunkQuery("persons_in")
			persons, err := s.store.Persons.ListByApplicationIDs(gctx, chunk)
			if err != nil {
				return fmt.Errorf("persons chunk %d: %w", i, err)
			}
			results[i] = persons
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byApp := make(map[string][]*domain.Person, len(appIDs))
	for _, persons := range results {
		for _, p := range persons {
			byApp[p.ApplicationID] = append(byApp[p.ApplicationID], p)
		}
	}
	return byApp, nil
}

// fetchUsers resolves owner ids with multi-key gets of at most MaxGetAllKeys
func (s *ReportService) fetchUsers(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	users := make(map[string]*domain.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	chunks := chunkStrings(ids, repositories.MaxGetAllKeys)
	results := make([]map[string]*domain.User, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(chunkConcurrency)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			s.metrics.IncChunkQuery("users_get_all")
			found, err := s.store.Users.GetMany(gctx, chunk)
			if err != nil {
				return fmt.Errorf("users batch %d: %w", i, err)
			}
			results[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, found := range results {
		for id, u := range found {
			users[id] = u
		}
	}
	return users, nil
}

func (s *ReportService) baseRow(app *domain.Application, persons []*domain.Person, users map[string]*domain.User) domain.ReportRow {
	owner := strings.TrimSpace(app.UserID)
	if owner == "" && len(persons) > 0 {
		owner = strings.TrimSpace(persons[0].UserID)
	}
	row := domain.ReportRow{
		ApplicationID:   app.ID,
		ChurchName:      app.ChurchName,
		ContactName:     app.ContactName,
		ContactPosition: app.ContactPosition,
		ContactPhone:    app.ContactPhone,
		PastorName:      app.PastorName,
		ChurchAddress:   app.ChurchAddress,
		Denomination:    app.Denomination,
		UserID:          owner,
	}
	// stored timestamps are UTC; the date is their first 10 characters
	if app.CreatedAt != nil && !app.CreatedAt.IsZero() {
		row.SubmittedAt = app.CreatedAt.UTC().Format("2006-01-02")
	}
	if u, ok := users[owner]; ok && u != nil {
		row.SubmitterName = strings.TrimSpace(u.Name)
		row.SubmitterPhone = strings.TrimSpace(u.Phone)
	}
	return row
}

func fillPerson(row *domain.ReportRow, p *domain.Person) {
	row.PersonID = p.ID
	row.ApplicationNo = p.ApplicationNo.String()
	row.ExamineNumber = strings.TrimSpace(p.ExamineNumber)
	row.ExamType = p.ExamType
	row.ApplicantName = p.ApplicantName
	row.Mobile = p.Mobile
	row.DepositNote = p.DepositNote
	row.ParticipationStatus = p.ParticipationStatus
	row.FeeConfirmed = p.FeeConfirmed
	row.ContactConfirmed = p.ContactConfirmed
	row.RefundRequest = p.RefundRequest
	row.RefundConfirmed = p.RefundConfirmed
}

// ownerIDs is the union of application and person owners in first-seen order
func ownerIDs(apps []*domain.Application, personsByApp map[string][]*domain.Person) []string {
	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		id = strings.TrimSpace(id)
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, app := range apps {
		add(app.UserID)
		for _, p := range personsByApp[app.ID] {
			add(p.UserID)
		}
	}
	return ids
}

// displayTables holds the lookup tables used for row display names
type displayTables struct {
	examType      *LookupTable
	participation *LookupTable
	refundRequest *LookupTable
	yesNo         *LookupTable
}

func (s *ReportService) loadDisplayTables(ctx context.Context) (*displayTables, error) {
	if s.lookups == nil {
		return &displayTables{}, nil
	}
	t := &displayTables{}
	targets := []struct {
		typeCd string
		dst    **LookupTable
	}{
		{domain.LookupExamType, &t.examType},
		{domain.LookupParticipation, &t.participation},
		{domain.LookupRefundRequest, &t.refundRequest},
		{domain.LookupYesNo, &t.yesNo},
	}
	for _, target := range targets {
		table, err := s.lookups.Table(ctx, target.typeCd)
		if err != nil {
			return nil, err
		}
		*target.dst = table
	}
	return t, nil
}

func (t *displayTables) attach(row *domain.ReportRow, asOf string) {
	row.ExamTypeName = t.examType.ResolveCode(row.ExamType, asOf)
	row.ParticipationStatusName = t.participation.ResolveCode(row.ParticipationStatus, asOf)
	row.RefundRequestName = t.refundRequest.ResolveCode(row.RefundRequest, asOf)
	row.FeeConfirmedName = t.yesNo.ResolveCode(row.FeeConfirmed, asOf)
	row.ContactConfirmedName = t.yesNo.ResolveCode(row.ContactConfirmed, asOf)
	row.RefundConfirmedName = t.yesNo.ResolveCode(row.RefundConfirmed, asOf)
}

// chunkStrings splits ids into consecutive chunks of at most size
func chunkStrings(ids []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// ListContacts lists application-only contact rows (first
// AdminApplicationLimit by owner id) with trimmed fields
func (s *ReportService) ListContacts(ctx context.Context, filter ContactFilter) ([]domain.ContactRow, error) {
	apps, err := s.listApplications(ctx, AdminScope())
	if err != nil {
		return nil, err
	}
	rows := make([]domain.ContactRow, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, domain.ContactRow{
			ApplicationID:   app.ID,
			ChurchName:      strings.TrimSpace(app.ChurchName),
			ContactName:     strings.TrimSpace(app.ContactName),
			ContactPosition: strings.TrimSpace(app.ContactPosition),
			ContactPhone:    strings.TrimSpace(app.ContactPhone),
			Denomination:    strings.TrimSpace(app.Denomination),
			PastorName:      strings.TrimSpace(app.PastorName),
			ChurchAddress:   strings.TrimSpace(app.ChurchAddress),
		})
	}
	return ApplyContactFilter(rows, filter), nil
}
