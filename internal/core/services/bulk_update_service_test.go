package services

import (
	"context"
	"testing"

	"olympia-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkUpdateService_PatchRows(t *testing.T) {
	ctx := context.Background()
	_, repos := newMemoryRepos()
	app := seedApplication(t, repos, "owner-1", "은혜교회", 1)
	persons, err := repos.Persons.ListByApplicationIDs(ctx, []string{app.ID})
	require.NoError(t, err)
	personID := persons[0].ID

	svc := NewBulkUpdateService(repos, nil)

	t.Run("applies allow-listed fields", func(t *testing.T) {
		writes, err := svc.PatchRows(ctx, []RowUpdate{{
			"applicationId": app.ID,
			"personId":      personID,
			"churchName":    "새은혜교회",
			"userId":        "intruder",
			"status":        "승인",
			"feeConfirmed":  domain.CodeYes,
			"applicationNo": "2001",
		}})
		require.NoError(t, err)
		assert.Equal(t, 2, writes)

		stored, err := repos.Applications.GetByID(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, "새은혜교회", stored.ChurchName)
		assert.Equal(t, "owner-1", stored.UserID)
		assert.Empty(t, stored.Status)

		updated, err := repos.Persons.ListByApplicationIDs(ctx, []string{app.ID})
		require.NoError(t, err)
		assert.Equal(t, domain.CodeYes, updated[0].FeeConfirmed)
		assert.True(t, updated[0].ApplicationNo.IsNumeric())
		assert.Equal(t, "2001", updated[0].ApplicationNo.String())
	})

	t.Run("keeps non numeric applicationNo as text", func(t *testing.T) {
		_, err := svc.PatchRows(ctx, []RowUpdate{{
			"applicationId": app.ID,
			"personId":      personID,
			"applicationNo": "A-1",
		}})
		require.NoError(t, err)

		updated, err := repos.Persons.ListByApplicationIDs(ctx, []string{app.ID})
		require.NoError(t, err)
		assert.False(t, updated[0].ApplicationNo.IsNumeric())
		assert.Equal(t, "A-1", updated[0].ApplicationNo.String())
	})

	t.Run("person fields need a personId", func(t *testing.T) {
		writes, err := svc.PatchRows(ctx, []RowUpdate{
			{"applicationId": app.ID, "mobile": "010-0000-0000"},
			{"applicationId": app.ID, "personId": "  ", "mobile": "010-0000-0000"},
			{"applicationId": app.ID, "personId": 12, "mobile": "010-0000-0000"},
		})
		require.NoError(t, err)
		assert.Zero(t, writes)

		updated, err := repos.Persons.ListByApplicationIDs(ctx, []string{app.ID})
		require.NoError(t, err)
		assert.Empty(t, updated[0].Mobile)
	})

	t.Run("skips rows without applicationId", func(t *testing.T) {
		writes, err := svc.PatchRows(ctx, []RowUpdate{{"personId": personID, "mobile": "010"}})
		require.NoError(t, err)
		assert.Zero(t, writes)
	})

	t.Run("accepts the contacConfirmed spelling", func(t *testing.T) {
		_, err := svc.PatchRows(ctx, []RowUpdate{{
			"applicationId":   app.ID,
			"personId":        personID,
			"contacConfirmed": domain.CodeYes,
		}})
		require.NoError(t, err)

		updated, err := repos.Persons.ListByApplicationIDs(ctx, []string{app.ID})
		require.NoError(t, err)
		assert.Equal(t, domain.CodeYes, updated[0].ContactConfirmed)

		// the canonical key wins when both are sent
		_, err = svc.PatchRows(ctx, []RowUpdate{{
			"applicationId":    app.ID,
			"personId":         personID,
			"contactConfirmed": domain.CodeNo,
			"contacConfirmed":  domain.CodeYes,
		}})
		require.NoError(t, err)
		updated, err = repos.Persons.ListByApplicationIDs(ctx, []string{app.ID})
		require.NoError(t, err)
		assert.Equal(t, domain.CodeNo, updated[0].ContactConfirmed)
	})

	t.Run("unknown application fails", func(t *testing.T) {
		_, err := svc.PatchRows(ctx, []RowUpdate{{"applicationId": "missing", "churchName": "x"}})
		assert.ErrorIs(t, err, domain.ErrApplicationNotFound)
	})
}

func TestBulkUpdateService_PatchContacts(t *testing.T) {
	ctx := context.Background()
	_, repos := newMemoryRepos()
	app := seedApplication(t, repos, "owner-1", "은혜교회", 1)
	svc := NewBulkUpdateService(repos, nil)

	writes, err := svc.PatchContacts(ctx, []RowUpdate{
		{"applicationId": app.ID, "contactPhone": "010-2222-3333", "personId": "p", "mobile": "x"},
		{"contactPhone": "ignored"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, writes)

	stored, err := repos.Applications.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "010-2222-3333", stored.ContactPhone)
}

func TestBulkUpdateService_ExamineNumbersMatchBothRepresentations(t *testing.T) {
	ctx := context.Background()
	_, repos := newMemoryRepos()
	require.NoError(t, repos.Persons.CreateBatch(ctx, []*domain.Person{
		{ApplicationID: "a", ApplicationNo: domain.FlexInt(7)},
		{ApplicationID: "a", ApplicationNo: domain.FlexString("7")},
		{ApplicationID: "a", ApplicationNo: domain.FlexInt(8)},
	}))
	svc := NewBulkUpdateService(repos, nil)

	result, err := svc.BulkUpdateExamineNumbers(ctx, []ExamineNumberUpdate{
		{ApplicationNo: domain.FlexString("7"), ExamineNumber: domain.FlexString(" E-100 ")},
	})
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, 2, result.Updated)

	persons, err := repos.Persons.ListByApplicationIDs(ctx, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, "E-100", persons[0].ExamineNumber)
	assert.Equal(t, "E-100", persons[1].ExamineNumber)
	assert.Empty(t, persons[2].ExamineNumber)

	t.Run("idempotent", func(t *testing.T) {
		again, err := svc.BulkUpdateExamineNumbers(ctx, []ExamineNumberUpdate{
			{ApplicationNo: domain.FlexInt(7), ExamineNumber: domain.FlexString("E-100")},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, again.Updated)

		persons, err := repos.Persons.ListByApplicationIDs(ctx, []string{"a"})
		require.NoError(t, err)
		assert.Equal(t, "E-100", persons[0].ExamineNumber)
		assert.Equal(t, "E-100", persons[1].ExamineNumber)
	})
}

func TestBulkUpdateService_ExamineNumbersCapPerKey(t *testing.T) {
	ctx := context.Background()
	_, repos := newMemoryRepos()
	persons := make([]*domain.Person, 60)
	for i := range persons {
		no := domain.FlexInt(9)
		if i%2 == 0 {
			no = domain.FlexString("9")
		}
		persons[i] = &domain.Person{ApplicationID: "a", ApplicationNo: no}
	}
	require.NoError(t, repos.Persons.CreateBatch(ctx, persons))
	svc := NewBulkUpdateService(repos, nil)

	result, err := svc.BulkUpdateExamineNumbers(ctx, []ExamineNumberUpdate{
		{ApplicationNo: domain.FlexInt(9), ExamineNumber: domain.FlexString("X")},
	})
	require.NoError(t, err)
	assert.Equal(t, MaxMatchesPerApplicationNo, result.Updated)

	count, err := repos.Persons.Count(ctx, domain.FieldSet{"examineNumber": "X"})
	require.NoError(t, err)
	assert.Equal(t, int64(MaxMatchesPerApplicationNo), count)
}

func TestBulkUpdateService_ExamineNumbersEdgeCases(t *testing.T) {
	ctx := context.Background()
	_, repos := newMemoryRepos()
	require.NoError(t, repos.Persons.CreateBatch(ctx, []*domain.Person{
		{ApplicationID: "a", ApplicationNo: domain.FlexString("A-1"), ExamineNumber: "old"},
	}))
	svc := NewBulkUpdateService(repos, nil)

	t.Run("empty upload", func(t *testing.T) {
		result, err := svc.BulkUpdateExamineNumbers(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, result.Updated)
		assert.False(t, result.OK)
		assert.Equal(t, NothingToApplyMessage, result.Message)
	})

	t.Run("blank entries are skipped", func(t *testing.T) {
		result, err := svc.BulkUpdateExamineNumbers(ctx, []ExamineNumberUpdate{
			{},
			{ApplicationNo: domain.FlexString("  "), ExamineNumber: domain.FlexString("Z")},
		})
		require.NoError(t, err)
		assert.True(t, result.OK)
		assert.Zero(t, result.Updated)
	})

	t.Run("text key without numeric form", func(t *testing.T) {
		result, err := svc.BulkUpdateExamineNumbers(ctx, []ExamineNumberUpdate{
			{ApplicationNo: domain.FlexString("A-1"), ExamineNumber: domain.FlexValue{}},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Updated)

		persons, err := repos.Persons.ListByApplicationIDs(ctx, []string{"a"})
		require.NoError(t, err)
		assert.Empty(t, persons[0].ExamineNumber)
	})

	t.Run("unknown key updates nothing", func(t *testing.T) {
		result, err := svc.BulkUpdateExamineNumbers(ctx, []ExamineNumberUpdate{
			{ApplicationNo: domain.FlexInt(404), ExamineNumber: domain.FlexString("Q")},
		})
		require.NoError(t, err)
		assert.Zero(t, result.Updated)
	})
}
