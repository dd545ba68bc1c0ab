package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"olympia-api/internal/adapters/persistence/repositories"
	"olympia-api/internal/core/domain"
	"olympia-api/internal/pkg/metrics"
)

// MaxMatchesPerApplicationNo caps the persons corrected for one business key
const MaxMatchesPerApplicationNo = 50

// NothingToApplyMessage is returned for an empty examine number upload
const NothingToApplyMessage = "반영할 데이터가 없습니다."

// Fields an admin grid save may change
var (
	applicationPatchFields = []string{
		"churchName", "pastorName", "churchAddress", "contactName",
		"contactPosition", "contactPhone", "denomination",
	}
	personPatchFields = []string{
		"applicantName", "mobile", "examType", "applicationNo", "examineNumber",
		"depositNote", "participationStatus", "feeConfirmed", "contactConfirmed",
		"refundRequest", "refundConfirmed",
	}
	// older clients send the contact status as contacConfirmed
	patchFieldAliases = map[string]string{
		"contacConfirmed": "contactConfirmed",
	}
)

// RowUpdate is one edited grid row as decoded from JSON
type RowUpdate map[string]any

// ExamineNumberUpdate is one uploaded (applicationNo, examineNumber) pair
type ExamineNumberUpdate struct {
	ApplicationNo domain.FlexValue `json:"applicationNo"`
	ExamineNumber domain.FlexValue `json:"examineNumber"`
}

// BulkExamineResult reports an examine number upload
type BulkExamineResult struct {
	Updated int    `json:"updated"`
	OK      bool   `json:"ok,omitempty"`
	Message string `json:"message,omitempty"`
}

// BulkUpdateService applies allow-listed admin edits
type BulkUpdateService struct {
	store   *repositories.Store
	metrics *metrics.Metrics
}

// NewBulkUpdateService creates a new bulk update service. m may be nil.
func NewBulkUpdateService(store *repositories.Store, m *metrics.Metrics) *BulkUpdateService {
	return &BulkUpdateService{store: store, metrics: m}
}

// PatchRows saves edited report rows. Entries without applicationId are
// skipped, person fields apply only with a non-empty personId, unknown
// fields are ignored. Returns the number of record writes.
func (s *BulkUpdateService) PatchRows(ctx context.Context, updates []RowUpdate) (int, error) {
	writes := 0
	defer func() { s.metrics.AddBulkWrites("patch_rows", writes) }()

	for _, u := range updates {
		appID := stringField(u["applicationId"])
		if appID == "" {
			continue
		}
		if fields := pick(u, applicationPatchFields); len(fields) > 0 {
			if err := s.store.Applications.UpdateFields(ctx, appID, fields); err != nil {
				return writes, fmt.Errorf("update application %s: %w", appID, err)
			}
			writes++
		}

		personID, ok := u["personId"].(string)
		if !ok || strings.TrimSpace(personID) == "" {
			continue
		}
		fields := pick(u, personPatchFields)
		if len(fields) == 0 {
			continue
		}
		if raw, ok := fields["applicationNo"]; ok {
			fields["applicationNo"] = domain.FlexFromAny(raw).CoerceInt()
		}
		if err := s.store.Persons.UpdateFields(ctx, personID, fields); err != nil {
			return writes, fmt.Errorf("update person %s: %w", personID, err)
		}
		writes++
	}
	return writes, nil
}

// PatchContacts saves edited contact rows. Only application fields apply.
func (s *BulkUpdateService) PatchContacts(ctx context.Context, updates []RowUpdate) (int, error) {
	writes := 0
	defer func() { s.metrics.AddBulkWrites("patch_contacts", writes) }()

	for _, u := range updates {
		appID := stringField(u["applicationId"])
		if appID == "" {
			continue
		}
		fields := pick(u, applicationPatchFields)
		if len(fields) == 0 {
			continue
		}
		if err := s.store.Applications.UpdateFields(ctx, appID, fields); err != nil {
			return writes, fmt.Errorf("update application %s: %w", appID, err)
		}
		writes++
	}
	return writes, nil
}

// BulkUpdateExamineNumbers overwrites examineNumber on every person whose
// applicationNo equals the uploaded key, stored as text or as a number.
// At most MaxMatchesPerApplicationNo persons are written per key.
func (s *BulkUpdateService) BulkUpdateExamineNumbers(ctx context.Context, items []ExamineNumberUpdate) (*BulkExamineResult, error) {
	if len(items) == 0 {
		return &BulkExamineResult{Updated: 0, Message: NothingToApplyMessage}, nil
	}

	updated := 0
	defer func() { s.metrics.AddBulkWrites("examine_numbers", updated) }()

	for _, item := range items {
		examineNo := strings.TrimSpace(item.ExamineNumber.String())
		if item.ApplicationNo.Num == nil && item.ApplicationNo.Text == nil && examineNo == "" {
			continue
		}
		key := strings.TrimSpace(item.ApplicationNo.String())
		if key == "" {
			continue
		}

		persons, err := s.findByApplicationNo(ctx, key)
		if err != nil {
			return nil, err
		}
		for _, p := range persons {
			if err := s.store.Persons.UpdateFields(ctx, p.ID, domain.FieldSet{"examineNumber": examineNo}); err != nil {
				return nil, fmt.Errorf("update examine number for %s: %w", key, err)
			}
			updated++
		}
	}

	log.Printf("📝 Examine numbers updated: %d person(s) from %d item(s)", updated, len(items))
	return &BulkExamineResult{Updated: updated, OK: true}, nil
}

// findByApplicationNo unions text-typed and integer-typed matches for key
func (s *BulkUpdateService) findByApplicationNo(ctx context.Context, key string) ([]*domain.Person, error) {
	persons, err := s.store.Persons.FindByApplicationNoText(ctx, key, MaxMatchesPerApplicationNo)
	if err != nil {
		return nil, fmt.Errorf("find applicationNo %q: %w", key, err)
	}

	n, convErr := strconv.ParseInt(key, 10, 64)
	if convErr != nil || len(persons) >= MaxMatchesPerApplicationNo {
		return persons, nil
	}

	numeric, err := s.store.Persons.FindByApplicationNoInt(ctx, n, MaxMatchesPerApplicationNo-len(persons))
	if err != nil {
		return nil, fmt.Errorf("find applicationNo %d: %w", n, err)
	}
	seen := make(map[string]bool, len(persons))
	for _, p := range persons {
		seen[p.ID] = true
	}
	for _, p := range numeric {
		if len(persons) >= MaxMatchesPerApplicationNo {
			break
		}
		if !seen[p.ID] {
			seen[p.ID] = true
			persons = append(persons, p)
		}
	}
	return persons, nil
}

// pick copies the allow-listed keys present in u
func pick(u RowUpdate, allowed []string) domain.FieldSet {
	fields := domain.FieldSet{}
	for _, key := range allowed {
		raw, ok := u[key]
		if !ok {
			raw, ok = aliasValue(u, key)
		}
		if !ok {
			continue
		}
		if key == "applicationNo" {
			fields[key] = raw
			continue
		}
		fields[key] = stringField(raw)
	}
	return fields
}

// aliasValue returns the value of an alias spelling of key, if any
func aliasValue(u RowUpdate, key string) (any, bool) {
	for alias, canonical := range patchFieldAliases {
		if canonical != key {
			continue
		}
		if raw, ok := u[alias]; ok {
			return raw, true
		}
	}
	return nil, false
}

// stringField renders a decoded JSON scalar as the stored string
func stringField(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
