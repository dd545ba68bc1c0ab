package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"olympia-api/internal/adapters/persistence/repositories"
	"olympia-api/internal/core/domain"
)

// LookupTable holds every row of one lookup category, fetched once and
// reused for all rows of a listing.
type LookupTable struct {
	TypeCd string
	rows   []*domain.LookupValue
}

// NewLookupTable wraps rows of one category. Rows keep their fetch order.
func NewLookupTable(typeCd string, rows []*domain.LookupValue) *LookupTable {
	return &LookupTable{TypeCd: typeCd, rows: rows}
}

// Resolve returns the label of valueCd valid on asOf (YYYYMMDD). When no
// window contains asOf the first non-empty label of a matching code is used.
func (t *LookupTable) Resolve(valueCd domain.FlexValue, asOf string) string {
	if t == nil || valueCd.IsZero() {
		return ""
	}
	asOfInt, asOfOK := ymdToInt(asOf)
	fallback := ""
	for _, row := range t.rows {
		if !valueCd.Equal(row.ValueCd) {
			continue
		}
		if fallback == "" && row.ValueNm != "" {
			fallback = row.ValueNm
		}
		if asOfOK && asOfInt != 0 && inWindow(asOfInt, row.StartYMD, row.EndYMD) {
			return row.ValueNm
		}
	}
	return fallback
}

// ResolveCode is Resolve for a code held as a plain string
func (t *LookupTable) ResolveCode(code, asOf string) string {
	if code == "" {
		return ""
	}
	return t.Resolve(domain.FlexString(code), asOf)
}

// Options returns rows valid on today sorted by label, then code
func (t *LookupTable) Options(today string) []domain.LookupOption {
	options := make([]domain.LookupOption, 0)
	if t == nil {
		return options
	}
	todayInt, ok := ymdToInt(today)
	if !ok {
		return options
	}
	for _, row := range t.rows {
		if inWindow(todayInt, row.StartYMD, row.EndYMD) {
			options = append(options, domain.LookupOption{
				ValueCd: row.ValueCd.String(),
				ValueNm: row.ValueNm,
			})
		}
	}
	sort.SliceStable(options, func(i, j int) bool {
		if options[i].ValueNm != options[j].ValueNm {
			return options[i].ValueNm < options[j].ValueNm
		}
		return options[i].ValueCd < options[j].ValueCd
	})
	return options
}

// LookupService serves lookup tables and current pick-list options
type LookupService struct {
	lookups repositories.LookupRepository
	cache   LookupOptionCache
	now     Clock
	loc     *time.Location
}

// NewLookupService creates a new lookup service. cache may be nil.
func NewLookupService(lookups repositories.LookupRepository, cache LookupOptionCache) *LookupService {
	return &LookupService{
		lookups: lookups,
		cache:   cache,
		now:     time.Now,
		loc:     defaultLocation(),
	}
}

// WithClock overrides the clock and time zone used for "today"
func (s *LookupService) WithClock(now Clock, loc *time.Location) *LookupService {
	s.now = now
	if loc != nil {
		s.loc = loc
	}
	return s
}

// Today returns the current date as YYYYMMDD in the service time zone
func (s *LookupService) Today() string {
	return ymdOf(s.now(), s.loc)
}

// Table fetches all rows of one category with a single query
func (s *LookupService) Table(ctx context.Context, typeCd string) (*LookupTable, error) {
	rows, err := s.lookups.ListByType(ctx, typeCd)
	if err != nil {
		return nil, fmt.Errorf("load lookup %s: %w", typeCd, err)
	}
	return NewLookupTable(typeCd, rows), nil
}

// CurrentOptions lists codes of typeCd whose window contains today
func (s *LookupService) CurrentOptions(ctx context.Context, typeCd string) ([]domain.LookupOption, error) {
	typeCd = strings.TrimSpace(typeCd)
	if typeCd == "" {
		return nil, domain.NewValidationError("type_cd", "type_cd 필요")
	}
	today := s.Today()

	if s.cache != nil {
		if options, ok := s.cache.Get(ctx, typeCd, today); ok {
			return options, nil
		}
	}

	table, err := s.Table(ctx, typeCd)
	if err != nil {
		return nil, err
	}
	options := table.Options(today)

	if s.cache != nil {
		s.cache.Set(ctx, typeCd, today, options, s.untilMidnight())
	}
	return options, nil
}

// UserTypeName resolves a user type label as of createYMD, falling back to
// today's window when that resolves to nothing.
func (s *LookupService) UserTypeName(ctx context.Context, valueCd, createYMD string) (string, error) {
	if strings.TrimSpace(valueCd) == "" {
		return "", nil
	}
	table, err := s.Table(ctx, domain.LookupUserType)
	if err != nil {
		return "", err
	}
	name := table.ResolveCode(valueCd, createYMD)
	if name == "" {
		name = table.ResolveCode(valueCd, s.Today())
	}
	return name, nil
}

// untilMidnight is the cache lifetime of today's options
func (s *LookupService) untilMidnight() time.Duration {
	now := s.now().In(s.loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, s.loc)
	ttl := midnight.Sub(now)
	if ttl <= 0 {
		log.Printf("⚠️ Lookup cache ttl computed as %s, using 1m", ttl)
		return time.Minute
	}
	return ttl
}
