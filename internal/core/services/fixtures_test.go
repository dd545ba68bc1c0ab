package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"olympia-api/internal/adapters/persistence/memory"
	"olympia-api/internal/adapters/persistence/repositories"
	"olympia-api/internal/core/domain"

	"github.com/stretchr/testify/require"
)

var seoul = defaultLocation()

// fixedClock returns a clock stuck at the given local date and time
func fixedClock(year int, month time.Month, day, hour int) Clock {
	t := time.Date(year, month, day, hour, 0, 0, 0, seoul)
	return func() time.Time { return t }
}

type fakeToken struct {
	uid   string
	admin bool
}

// fakeIdentity is an in-memory IdentityProvider with per-uid failures
type fakeIdentity struct {
	mu         sync.Mutex
	principals map[string]*domain.Principal
	tokens     map[string]fakeToken
	failDelete map[string]bool
	failClaim  bool
	claimCalls map[string]bool
	passwords  map[string]string
	lookups    int
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		principals: map[string]*domain.Principal{},
		tokens:     map[string]fakeToken{},
		failDelete: map[string]bool{},
		claimCalls: map[string]bool{},
		passwords:  map[string]string{},
	}
}

// add registers a principal and returns a token for it. tokenAdmin is the
// admin claim baked into the token.
func (f *fakeIdentity) add(uid string, admin, tokenAdmin bool) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.principals[uid] = &domain.Principal{UID: uid, Email: uid + "@example.com", Admin: admin}
	token := "token-" + uid
	f.tokens[token] = fakeToken{uid: uid, admin: tokenAdmin}
	return token
}

func (f *fakeIdentity) VerifyToken(ctx context.Context, token string) (*domain.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tok, ok := f.tokens[token]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	p, ok := f.principals[tok.uid]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	cp := *p
	cp.Claims = map[string]any{"uid": tok.uid, "admin": tok.admin}
	return &cp, nil
}

func (f *fakeIdentity) GetPrincipal(ctx context.Context, uid string) (*domain.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	p, ok := f.principals[uid]
	if !ok {
		return nil, domain.ErrPrincipalNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeIdentity) GetPrincipalByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.principals {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrPrincipalNotFound
}

func (f *fakeIdentity) SetAdminClaim(ctx context.Context, uid string, admin bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failClaim {
		return errors.New("identity provider unavailable")
	}
	p, ok := f.principals[uid]
	if !ok {
		return domain.ErrPrincipalNotFound
	}
	p.Admin = admin
	f.claimCalls[uid] = admin
	return nil
}

func (f *fakeIdentity) DeletePrincipal(ctx context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete[uid] {
		return fmt.Errorf("delete %s: identity provider unavailable", uid)
	}
	if _, ok := f.principals[uid]; !ok {
		return domain.ErrPrincipalNotFound
	}
	delete(f.principals, uid)
	return nil
}

func (f *fakeIdentity) CreatePrincipal(ctx context.Context, email, password, displayName string) (*domain.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.principals {
		if p.Email == email {
			return nil, domain.ErrEmailAlreadyExists
		}
	}
	uid := fmt.Sprintf("uid-%d", len(f.principals)+1)
	f.principals[uid] = &domain.Principal{UID: uid, Email: email, DisplayName: displayName}
	f.passwords[uid] = password
	return &domain.Principal{UID: uid, Email: email, DisplayName: displayName}, nil
}

func (f *fakeIdentity) Authenticate(ctx context.Context, email, password string) (string, *domain.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for uid, p := range f.principals {
		if p.Email == email && f.passwords[uid] == password {
			token := "token-" + uid
			f.tokens[token] = fakeToken{uid: uid, admin: p.Admin}
			cp := *p
			return token, &cp, nil
		}
	}
	return "", nil, domain.ErrInvalidCredentials
}

func (f *fakeIdentity) has(uid string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.principals[uid]
	return ok
}

// fakeNotifier records sent mails
type fakeNotifier struct {
	err   error
	sent  [][]string
	mails []string
}

func (n *fakeNotifier) Send(ctx context.Context, recipients []string, subject, text, html string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, recipients)
	n.mails = append(n.mails, subject)
	return nil
}

// fakeOptionCache is a map-backed LookupOptionCache
type fakeOptionCache struct {
	entries map[string][]domain.LookupOption
	ttls    map[string]time.Duration
}

func newFakeOptionCache() *fakeOptionCache {
	return &fakeOptionCache{
		entries: map[string][]domain.LookupOption{},
		ttls:    map[string]time.Duration{},
	}
}

func (c *fakeOptionCache) Get(ctx context.Context, typeCd, today string) ([]domain.LookupOption, bool) {
	options, ok := c.entries[typeCd+":"+today]
	return options, ok
}

func (c *fakeOptionCache) Set(ctx context.Context, typeCd, today string, options []domain.LookupOption, ttl time.Duration) {
	c.entries[typeCd+":"+today] = options
	c.ttls[typeCd+":"+today] = ttl
}

// seedLookups stores lookup rows with an open window
func seedLookups(t *testing.T, repos *repositories.Store, typeCd string, pairs ...string) {
	t.Helper()
	for i := 0; i+1 < len(pairs); i += 2 {
		require.NoError(t, repos.Lookups.Create(context.Background(), &domain.LookupValue{
			TypeCd:   typeCd,
			ValueCd:  domain.FlexString(pairs[i]),
			ValueNm:  pairs[i+1],
			StartYMD: "19000101",
			EndYMD:   "99991231",
		}))
	}
}

// seedApplication stores an application owned by owner with n persons
func seedApplication(t *testing.T, repos *repositories.Store, owner, church string, n int) *domain.Application {
	t.Helper()
	ctx := context.Background()
	app := &domain.Application{ChurchName: church, ContactName: church + " 담당", UserID: owner}
	require.NoError(t, repos.Applications.Create(ctx, app))

	persons := make([]*domain.Person, n)
	for i := range persons {
		persons[i] = &domain.Person{
			ApplicationID: app.ID,
			UserID:        owner,
			ApplicationNo: domain.FlexInt(int64(1001 + i)),
			ApplicantName: fmt.Sprintf("%s-%02d", church, i),
			ExamType:      "100",
			CreateYMD:     "20240301",
		}
	}
	if n > 0 {
		require.NoError(t, repos.Persons.CreateBatch(ctx, persons))
	}
	return app
}

func newMemoryRepos() (*memory.Store, *repositories.Store) {
	store := memory.NewStore()
	return store, store.Repositories()
}
