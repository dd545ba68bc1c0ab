package services

import (
	"fmt"
	"testing"

	"olympia-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows(n int) []domain.ReportRow {
	rows := make([]domain.ReportRow, n)
	for i := range rows {
		rows[i] = domain.ReportRow{
			ChurchName:    fmt.Sprintf("교회%d", n-i),
			ApplicantName: fmt.Sprintf("참가자%02d", i),
			ExamType:      "100",
			FeeConfirmed:  domain.CodeNo,
			Order:         99,
		}
	}
	return rows
}

func TestApplyReportFilter_RenumbersAfterFiltering(t *testing.T) {
	rows := sampleRows(10)
	for _, i := range []int{2, 5, 8} {
		rows[i].FeeConfirmed = domain.CodeYes
	}

	out := ApplyReportFilter(rows, ReportFilter{FeeConfirmed: domain.CodeYes}, AdminOrdering)
	require.Len(t, out, 3)
	orders := []int{out[0].Order, out[1].Order, out[2].Order}
	assert.Equal(t, []int{1, 2, 3}, orders)
}

func TestApplyReportFilter_Idempotent(t *testing.T) {
	rows := sampleRows(8)
	filter := ReportFilter{ChurchName: "교회", ExamType: "100"}

	once := ApplyReportFilter(rows, filter, AdminOrdering)
	twice := ApplyReportFilter(once, filter, AdminOrdering)
	assert.Equal(t, once, twice)
}

func TestApplyReportFilter_DoesNotMutateInput(t *testing.T) {
	rows := sampleRows(4)
	rows[0].ChurchName = "  교회4"
	before := append([]domain.ReportRow(nil), rows...)

	out := ApplyReportFilter(rows, ReportFilter{}, AdminOrdering)
	assert.Equal(t, before, rows)
	require.Len(t, out, 4)
	assert.Equal(t, 1, out[0].Order)
}

func TestApplyReportFilter_Sorting(t *testing.T) {
	rows := []domain.ReportRow{
		{ChurchName: "나", ContactName: "갑", ExamType: "200", ApplicantName: "b"},
		{ChurchName: " 가", ContactName: "을", ExamType: "100", ApplicantName: "z"},
		{ChurchName: "가", ContactName: "갑", ExamType: "200", ApplicantName: "a"},
		{ChurchName: "가", ContactName: "갑", ExamType: "100", ApplicantName: "c"},
	}

	admin := ApplyReportFilter(rows, ReportFilter{}, AdminOrdering)
	assert.Equal(t, []string{"c", "a", "z", "b"}, applicantNames(admin))

	owner := ApplyReportFilter(rows, ReportFilter{}, OwnerOrdering)
	assert.Equal(t, []string{"c", "z", "a", "b"}, applicantNames(owner))
}

func TestApplyReportFilter_CodeTolerance(t *testing.T) {
	rows := []domain.ReportRow{
		{ApplicantName: "a", ParticipationStatus: "100"},
		{ApplicantName: "b", ParticipationStatus: " 100"},
		{ApplicantName: "c", ParticipationStatus: "0100"},
		{ApplicantName: "d", ParticipationStatus: "200"},
	}

	out := ApplyReportFilter(rows, ReportFilter{ParticipationStatus: "100 "}, nil)
	assert.Equal(t, []string{"a", "b", "c"}, applicantNames(out))
}

func TestApplyReportFilter_ContactConfirmedSpellings(t *testing.T) {
	rows := []domain.ReportRow{
		{ApplicantName: "a", ContactConfirmed: domain.CodeYes},
		{ApplicantName: "b", ContactConfirmed: domain.CodeNo},
	}

	out := ApplyReportFilter(rows, ReportFilter{LegacyContactConfirmed: domain.CodeYes}, nil)
	assert.Equal(t, []string{"a"}, applicantNames(out))

	out = ApplyReportFilter(rows, ReportFilter{ContactConfirmed: domain.CodeNo, LegacyContactConfirmed: domain.CodeYes}, nil)
	assert.Equal(t, []string{"b"}, applicantNames(out))
}

func TestApplyReportFilter_TextIsCaseInsensitive(t *testing.T) {
	rows := []domain.ReportRow{
		{ChurchName: "Grace Church", ApplicantName: "a"},
		{ChurchName: "Hope", ApplicantName: "b"},
	}
	out := ApplyReportFilter(rows, ReportFilter{ChurchName: "GRACE"}, nil)
	assert.Equal(t, []string{"a"}, applicantNames(out))
}

func TestApplyContactFilter(t *testing.T) {
	rows := []domain.ContactRow{
		{ChurchName: "은혜교회", ContactName: "김", ContactPhone: "010-1111-2222"},
		{ChurchName: "소망교회", ContactName: "이", ContactPhone: "01033334444"},
		{ChurchName: "은혜로교회", ContactName: "박", ContactPhone: "010 1111 9999"},
	}

	out := ApplyContactFilter(rows, ContactFilter{ContactPhone: "010-1111"})
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].Order)
	assert.Equal(t, 2, out[1].Order)

	out = ApplyContactFilter(rows, ContactFilter{ChurchName: "소망", ContactPhone: "3333 4444"})
	require.Len(t, out, 1)
	assert.Equal(t, "이", out[0].ContactName)

	assert.Empty(t, ApplyContactFilter(rows, ContactFilter{ContactName: "최"}))
}

func applicantNames(rows []domain.ReportRow) []string {
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.ApplicantName
	}
	return names
}
