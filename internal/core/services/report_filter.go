package services

import (
	"sort"
	"strings"

	"olympia-api/internal/core/domain"
)

// ReportFilter holds the report list predicates. Empty fields pass.
type ReportFilter struct {
	ChurchName          string `query:"churchName"`
	ContactName         string `query:"contactName"`
	Applicant           string `query:"applicant"`
	ExamType            string `query:"examType"`
	ParticipationStatus string `query:"participationStatus"`
	FeeConfirmed        string `query:"feeConfirmed"`
	ContactConfirmed    string `query:"contactConfirmed"`
	RefundRequest       string `query:"refundRequest"`
	RefundConfirmed     string `query:"refundConfirmed"`

	// LegacyContactConfirmed is the contacConfirmed spelling older clients send
	LegacyContactConfirmed string `query:"contacConfirmed"`
}

// Normalize trims every predicate
func (f ReportFilter) Normalize() ReportFilter {
	return ReportFilter{
		ChurchName:          strings.TrimSpace(f.ChurchName),
		ContactName:         strings.TrimSpace(f.ContactName),
		Applicant:           strings.TrimSpace(f.Applicant),
		ExamType:            strings.TrimSpace(f.ExamType),
		ParticipationStatus: strings.TrimSpace(f.ParticipationStatus),
		FeeConfirmed:        strings.TrimSpace(f.FeeConfirmed),
		ContactConfirmed:    firstNonBlank(f.ContactConfirmed, f.LegacyContactConfirmed),
		RefundRequest:       strings.TrimSpace(f.RefundRequest),
		RefundConfirmed:     strings.TrimSpace(f.RefundConfirmed),
	}
}

// firstNonBlank returns the first value that is not blank, trimmed
func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// Match reports whether row passes every predicate
func (f ReportFilter) Match(row *domain.ReportRow) bool {
	return containsFold(row.ChurchName, f.ChurchName) &&
		containsFold(row.ContactName, f.ContactName) &&
		containsFold(row.ApplicantName, f.Applicant) &&
		codeMatches(f.ExamType, row.ExamType) &&
		codeMatches(f.ParticipationStatus, row.ParticipationStatus) &&
		codeMatches(f.FeeConfirmed, row.FeeConfirmed) &&
		codeMatches(f.ContactConfirmed, row.ContactConfirmed) &&
		codeMatches(f.RefundRequest, row.RefundRequest) &&
		codeMatches(f.RefundConfirmed, row.RefundConfirmed)
}

// RowOrdering extracts the sort key of a row
type RowOrdering func(row *domain.ReportRow) []string

// AdminOrdering sorts by church, contact, exam type, then applicant
func AdminOrdering(row *domain.ReportRow) []string {
	return []string{row.ChurchName, row.ContactName, row.ExamType, row.ApplicantName}
}

// OwnerOrdering sorts by exam type, then applicant
func OwnerOrdering(row *domain.ReportRow) []string {
	return []string{row.ExamType, row.ApplicantName}
}

// ApplyReportFilter filters, stably sorts by the trimmed ordering key and
// numbers the result 1..N. The input slice is not modified.
func ApplyReportFilter(rows []domain.ReportRow, filter ReportFilter, ordering RowOrdering) []domain.ReportRow {
	filter = filter.Normalize()
	out := make([]domain.ReportRow, 0, len(rows))
	for i := range rows {
		if filter.Match(&rows[i]) {
			out = append(out, rows[i])
		}
	}

	if ordering != nil {
		keys := make([][]string, len(out))
		for i := range out {
			keys[i] = trimAll(ordering(&out[i]))
		}
		idx := make([]int, len(out))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			return lessKeys(keys[idx[a]], keys[idx[b]])
		})
		sorted := make([]domain.ReportRow, len(out))
		for i, j := range idx {
			sorted[i] = out[j]
		}
		out = sorted
	}

	for i := range out {
		out[i].Order = i + 1
	}
	return out
}

// ContactFilter holds the contact list predicates
type ContactFilter struct {
	ChurchName   string `query:"churchName"`
	ContactName  string `query:"contactName"`
	ContactPhone string `query:"contactPhone"`
}

// Match reports whether row passes every predicate. Phone matching ignores
// dashes and spaces on both sides.
func (f ContactFilter) Match(row *domain.ContactRow) bool {
	if !containsFold(row.ChurchName, strings.TrimSpace(f.ChurchName)) {
		return false
	}
	if !containsFold(row.ContactName, strings.TrimSpace(f.ContactName)) {
		return false
	}
	phone := stripPhone(strings.TrimSpace(f.ContactPhone))
	return phone == "" || strings.Contains(stripPhone(row.ContactPhone), phone)
}

// ApplyContactFilter filters contact rows and numbers the result 1..N
func ApplyContactFilter(rows []domain.ContactRow, filter ContactFilter) []domain.ContactRow {
	out := make([]domain.ContactRow, 0, len(rows))
	for i := range rows {
		if filter.Match(&rows[i]) {
			out = append(out, rows[i])
		}
	}
	for i := range out {
		out[i].Order = i + 1
	}
	return out
}

func containsFold(value, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(query))
}

func codeMatches(query, stored string) bool {
	if query == "" {
		return true
	}
	return domain.CodesEqual(query, stored)
}

func stripPhone(s string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(s)
}

func trimAll(keys []string) []string {
	for i := range keys {
		keys[i] = strings.TrimSpace(keys[i])
	}
	return keys
}

func lessKeys(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
