package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronService(t *testing.T) {
	_, repos := newMemoryRepos()
	report := NewDailyReportService(repos, nil, seoul, nil)

	t.Run("defaults", func(t *testing.T) {
		svc := NewCronService(report, "", nil)
		assert.Equal(t, DefaultReportSchedule, svc.schedule)
		assert.Equal(t, seoul.String(), svc.cron.Location().String())
	})

	t.Run("registers the report job", func(t *testing.T) {
		svc := NewCronService(report, "30 7 * * *", seoul)
		require.NoError(t, svc.Start())
		assert.Len(t, svc.cron.Entries(), 1)
		svc.Stop()
	})

	t.Run("invalid schedule", func(t *testing.T) {
		svc := NewCronService(report, "every morning", seoul)
		assert.Error(t, svc.Start())
		assert.Empty(t, svc.cron.Entries())
	})
}
