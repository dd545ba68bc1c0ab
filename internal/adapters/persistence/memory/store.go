// Package memory provides in-memory repositories with the same store limits
// as the MySQL implementation. Used for local development and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"olympia-api/internal/adapters/persistence/repositories"
	"olympia-api/internal/core/domain"

	"github.com/google/uuid"
)

// Stats counts round trips so callers can verify batching
type Stats struct {
	InQueries     int
	GetAllCalls   int
	DeleteBatches int
	Writes        int
}

// Store holds every collection in memory. Rows keep insertion order.
type Store struct {
	mu sync.Mutex

	applications  []*domain.Application
	persons       []*domain.Person
	users         []*domain.User
	lookups       []*domain.LookupValue
	announcements []*domain.Announcement
	commonCodes   []*domain.CommonCode

	stats Stats

	// PersonQueryHook, when set, runs before every persons "in" query and
	// may fail it
	PersonQueryHook func(ids []string) error
	// DeleteHook, when set, runs before every delete batch and may fail it
	DeleteHook func(collection string, ids []string) error
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Repositories returns repository views over the store
func (s *Store) Repositories() *repositories.Store {
	return &repositories.Store{
		Applications:  &applicationRepo{s: s},
		Persons:       &personRepo{s: s},
		Users:         &userRepo{s: s},
		Lookups:       &lookupRepo{s: s},
		Announcements: &announcementRepo{s: s},
		CommonCodes:   &commonCodeRepo{s: s},
	}
}

// Stats returns a snapshot of the round-trip counters
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// ============================================================
// Applications
// ============================================================

type applicationRepo struct {
	s *Store
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	cp := *app
	r.s.applications = append(r.s.applications, &cp)
	r.s.stats.Writes++
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.applications {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrApplicationNotFound
}

func (r *applicationRepo) ListOrderedByOwner(ctx context.Context, limit int) ([]*domain.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := copyApplications(r.s.applications)
	sort.SliceStable(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *applicationRepo) ListByOwner(ctx context.Context, userID string) ([]*domain.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Application
	for _, a := range r.s.applications {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *applicationRepo) UpdateFields(ctx context.Context, id string, fields domain.FieldSet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.applications {
		if a.ID != id {
			continue
		}
		for key, value := range fields {
			s := fmt.Sprint(value)
			switch key {
			case "churchName":
				a.ChurchName = s
			case "contactName":
				a.ContactName = s
			case "contactPosition":
				a.ContactPosition = s
			case "contactPhone":
				a.ContactPhone = s
			case "pastorName":
				a.PastorName = s
			case "churchAddress":
				a.ChurchAddress = s
			case "denomination":
				a.Denomination = s
			case "status":
				a.Status = s
			}
		}
		r.s.stats.Writes++
		return nil
	}
	return domain.ErrApplicationNotFound
}

func (r *applicationRepo) ListIDs(ctx context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make([]string, len(r.s.applications))
	for i, a := range r.s.applications {
		ids[i] = a.ID
	}
	return ids, nil
}

func (r *applicationRepo) DeleteBatch(ctx context.Context, ids []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkDelete("applications", ids); err != nil {
		return err
	}
	drop := toSet(ids)
	kept := r.s.applications[:0]
	for _, a := range r.s.applications {
		if !drop[a.ID] {
			kept = append(kept, a)
		}
	}
	r.s.applications = kept
	return nil
}

// ============================================================
// Persons
// ============================================================

type personRepo struct {
	s *Store
}

func (r *personRepo) ListByApplicationIDs(ctx context.Context, ids []string) ([]*domain.Person, error) {
	if len(ids) > repositories.MaxInQueryValues {
		return nil, fmt.Errorf("%w: %d > %d", domain.ErrQueryLimitExceeded, len(ids), repositories.MaxInQueryValues)
	}
	r.s.mu.Lock()
	hook := r.s.PersonQueryHook
	r.s.stats.InQueries++
	r.s.mu.Unlock()
	if hook != nil {
		if err := hook(ids); err != nil {
			return nil, err
		}
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := toSet(ids)
	var out []*domain.Person
	for _, p := range r.s.persons {
		if want[p.ApplicationID] {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *personRepo) ListByApplicationAndOwner(ctx context.Context, applicationID, userID string) ([]*domain.Person, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Person
	for _, p := range r.s.persons {
		if p.ApplicationID == applicationID && p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *personRepo) FindByApplicationNoText(ctx context.Context, applicationNo string, limit int) ([]*domain.Person, error) {
	return r.find(limit, func(p *domain.Person) bool {
		return p.ApplicationNo.Text != nil && *p.ApplicationNo.Text == applicationNo
	}), nil
}

func (r *personRepo) FindByApplicationNoInt(ctx context.Context, applicationNo int64, limit int) ([]*domain.Person, error) {
	return r.find(limit, func(p *domain.Person) bool {
		return p.ApplicationNo.Num != nil && *p.ApplicationNo.Num == applicationNo
	}), nil
}

func (r *personRepo) find(limit int, match func(p *domain.Person) bool) []*domain.Person {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Person
	for _, p := range r.s.persons {
		if limit > 0 && len(out) >= limit {
			break
		}
		if match(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out
}

func (r *personRepo) MaxApplicationNo(ctx context.Context) (int64, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var maxNo int64
	found := false
	for _, p := range r.s.persons {
		n, ok := p.ApplicationNo.Int()
		if !ok {
			continue
		}
		if !found || n > maxNo {
			maxNo = n
			found = true
		}
	}
	return maxNo, found, nil
}

func (r *personRepo) CreateBatch(ctx context.Context, persons []*domain.Person) error {
	if len(persons) > repositories.MaxWriteBatch {
		return fmt.Errorf("%w: %d > %d", domain.ErrWriteBatchTooLarge, len(persons), repositories.MaxWriteBatch)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range persons {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		cp := *p
		r.s.persons = append(r.s.persons, &cp)
	}
	r.s.stats.Writes++
	return nil
}

func (r *personRepo) UpdateFields(ctx context.Context, id string, fields domain.FieldSet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.persons {
		if p.ID != id {
			continue
		}
		for key, value := range fields {
			if key == "applicationNo" {
				p.ApplicationNo = domain.FlexFromAny(value)
				continue
			}
			if field := personField(p, key); field != nil {
				*field = fmt.Sprint(value)
			}
		}
		r.s.stats.Writes++
		return nil
	}
	return domain.ErrNotFound
}

func (r *personRepo) Count(ctx context.Context, where domain.FieldSet) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, p := range r.s.persons {
		match := true
		for key, value := range where {
			field := personField(p, key)
			if field == nil {
				return 0, fmt.Errorf("%w: unknown person field %q", domain.ErrInvalidInput, key)
			}
			if *field != fmt.Sprint(value) {
				match = false
				break
			}
		}
		if match {
			count++
		}
	}
	return count, nil
}

func (r *personRepo) ListIDs(ctx context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make([]string, len(r.s.persons))
	for i, p := range r.s.persons {
		ids[i] = p.ID
	}
	return ids, nil
}

func (r *personRepo) DeleteBatch(ctx context.Context, ids []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkDelete("bo_person", ids); err != nil {
		return err
	}
	drop := toSet(ids)
	kept := r.s.persons[:0]
	for _, p := range r.s.persons {
		if !drop[p.ID] {
			kept = append(kept, p)
		}
	}
	r.s.persons = kept
	return nil
}

func personField(p *domain.Person, key string) *string {
	switch key {
	case "applicantName":
		return &p.ApplicantName
	case "mobile":
		return &p.Mobile
	case "examType":
		return &p.ExamType
	case "examineNumber":
		return &p.ExamineNumber
	case "depositNote":
		return &p.DepositNote
	case "participationStatus":
		return &p.ParticipationStatus
	case "feeConfirmed":
		return &p.FeeConfirmed
	case "contactConfirmed":
		return &p.ContactConfirmed
	case "refundRequest":
		return &p.RefundRequest
	case "refundConfirmed":
		return &p.RefundConfirmed
	case "create_ymd":
		return &p.CreateYMD
	}
	return nil
}

// ============================================================
// Users
// ============================================================

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ID == user.ID {
			return domain.ErrDuplicateEntry
		}
	}
	cp := *user
	r.s.users = append(r.s.users, &cp)
	r.s.stats.Writes++
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepo) GetMany(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	if len(ids) > repositories.MaxGetAllKeys {
		return nil, fmt.Errorf("%w: %d > %d", domain.ErrGetAllLimitExceeded, len(ids), repositories.MaxGetAllKeys)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stats.GetAllCalls++
	want := toSet(ids)
	found := make(map[string]*domain.User, len(ids))
	for _, u := range r.s.users {
		if want[u.ID] {
			cp := *u
			found[u.ID] = &cp
		}
	}
	return found, nil
}

func (r *userRepo) ListOrderedByName(ctx context.Context, limit int) ([]*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := copyUsers(r.s.users)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *userRepo) ListAll(ctx context.Context) ([]*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return copyUsers(r.s.users), nil
}

func (r *userRepo) ListByEmailOptIn(ctx context.Context, emailYN string) ([]*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.User
	for _, u := range r.s.users {
		if u.EmailYN == emailYN {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *userRepo) UpdateFields(ctx context.Context, id string, fields domain.FieldSet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ID != id {
			continue
		}
		for key, value := range fields {
			s := fmt.Sprint(value)
			switch key {
			case "Name":
				u.Name = s
			case "Phone":
				u.Phone = s
			case "eMail":
				u.Email = s
			case "userType":
				u.UserType = s
			case "emailyn":
				u.EmailYN = s
			}
		}
		r.s.stats.Writes++
		return nil
	}
	return domain.ErrUserNotFound
}

func (r *userRepo) DeleteBatch(ctx context.Context, ids []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkDelete("bo_users", ids); err != nil {
		return err
	}
	drop := toSet(ids)
	kept := r.s.users[:0]
	for _, u := range r.s.users {
		if !drop[u.ID] {
			kept = append(kept, u)
		}
	}
	r.s.users = kept
	return nil
}

// ============================================================
// Lookup values & announcements
// ============================================================

type lookupRepo struct {
	s *Store
}

func (r *lookupRepo) ListByType(ctx context.Context, typeCd string) ([]*domain.LookupValue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.LookupValue
	for _, v := range r.s.lookups {
		if v.TypeCd == typeCd {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *lookupRepo) Create(ctx context.Context, value *domain.LookupValue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if value.ID == "" {
		value.ID = uuid.NewString()
	}
	cp := *value
	r.s.lookups = append(r.s.lookups, &cp)
	return nil
}

func (r *lookupRepo) CountByType(ctx context.Context, typeCd string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, v := range r.s.lookups {
		if v.TypeCd == typeCd {
			count++
		}
	}
	return count, nil
}

type announcementRepo struct {
	s *Store
}

func (r *announcementRepo) Create(ctx context.Context, a *domain.Announcement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	cp := *a
	r.s.announcements = append(r.s.announcements, &cp)
	return nil
}

func (r *announcementRepo) GetByID(ctx context.Context, id string) (*domain.Announcement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.announcements {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrAnnouncementNotFound
}

func (r *announcementRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Announcement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Announcement, len(r.s.announcements))
	for i, a := range r.s.announcements {
		cp := *a
		out[i] = &cp
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *announcementRepo) UpdateFields(ctx context.Context, id string, fields domain.FieldSet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.announcements {
		if a.ID != id {
			continue
		}
		if v, ok := fields["title"]; ok {
			a.Title = fmt.Sprint(v)
		}
		if v, ok := fields["content"]; ok {
			a.Content = fmt.Sprint(v)
		}
		if v, ok := fields["updatedAt"].(time.Time); ok {
			a.UpdatedAt = &v
		}
		return nil
	}
	return domain.ErrAnnouncementNotFound
}

func (r *announcementRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, a := range r.s.announcements {
		if a.ID == id {
			r.s.announcements = append(r.s.announcements[:i], r.s.announcements[i+1:]...)
			return nil
		}
	}
	return domain.ErrAnnouncementNotFound
}

type commonCodeRepo struct {
	s *Store
}

func (r *commonCodeRepo) Create(ctx context.Context, code *domain.CommonCode) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if code.ID == "" {
		code.ID = uuid.NewString()
	}
	cp := *code
	r.s.commonCodes = append(r.s.commonCodes, &cp)
	return nil
}

func (r *commonCodeRepo) GetByID(ctx context.Context, id string) (*domain.CommonCode, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.commonCodes {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrCommonCodeNotFound
}

func (r *commonCodeRepo) ListByGroup(ctx context.Context, group string) ([]*domain.CommonCode, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.CommonCode, 0, len(r.s.commonCodes))
	for _, c := range r.s.commonCodes {
		if group == "" || c.Group == group {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}

func (r *commonCodeRepo) ListAll(ctx context.Context) ([]*domain.CommonCode, error) {
	out, _ := r.ListByGroup(ctx, "")
	sort.SliceStable(out, func(i, j int) bool { return out[i].Group < out[j].Group })
	return out, nil
}

func (r *commonCodeRepo) UpdateFields(ctx context.Context, id string, fields domain.FieldSet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.commonCodes {
		if c.ID != id {
			continue
		}
		if v, ok := fields["group"]; ok {
			c.Group = fmt.Sprint(v)
		}
		if v, ok := fields["code"]; ok {
			c.Code = fmt.Sprint(v)
		}
		if v, ok := fields["name"]; ok {
			c.Name = fmt.Sprint(v)
		}
		if v, ok := fields["order"].(int); ok {
			c.Order = v
		}
		return nil
	}
	return domain.ErrCommonCodeNotFound
}

func (r *commonCodeRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, c := range r.s.commonCodes {
		if c.ID == id {
			r.s.commonCodes = append(r.s.commonCodes[:i], r.s.commonCodes[i+1:]...)
			return nil
		}
	}
	return domain.ErrCommonCodeNotFound
}

// ============================================================
// helpers
// ============================================================

// checkDelete enforces the batch limit and runs the fault hook. Caller holds mu.
func (s *Store) checkDelete(collection string, ids []string) error {
	if len(ids) > repositories.MaxWriteBatch {
		return fmt.Errorf("%w: %d > %d", domain.ErrWriteBatchTooLarge, len(ids), repositories.MaxWriteBatch)
	}
	if s.DeleteHook != nil {
		if err := s.DeleteHook(collection, ids); err != nil {
			return err
		}
	}
	s.stats.DeleteBatches++
	return nil
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[strings.TrimSpace(id)] = true
	}
	return set
}

func copyApplications(in []*domain.Application) []*domain.Application {
	out := make([]*domain.Application, len(in))
	for i, a := range in {
		cp := *a
		out[i] = &cp
	}
	return out
}

func copyUsers(in []*domain.User) []*domain.User {
	out := make([]*domain.User, len(in))
	for i, u := range in {
		cp := *u
		out[i] = &cp
	}
	return out
}
