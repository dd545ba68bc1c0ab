package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"olympia-api/internal/adapters/persistence/repositories"
	"olympia-api/internal/core/domain"
	"olympia-api/internal/pkg/metrics"
)

// DailyCounts are the person counts reported each morning
type DailyCounts struct {
	Total           int64 `json:"total"`
	Participating   int64 `json:"participating"`
	FeeConfirmed    int64 `json:"feeConfirmed"`
	Yesterday       int64 `json:"yesterday"`
	RefundRequested int64 `json:"refundRequested"`
	RefundPaid      int64 `json:"refundPaid"`
}

// DailyReport is a rendered report mail
type DailyReport struct {
	Date       string      `json:"date"`
	Recipients []string    `json:"recipients"`
	Counts     DailyCounts `json:"counts"`
	Subject    string      `json:"subject"`
	Text       string      `json:"text"`
	HTML       string      `json:"html"`
}

// DailyReportService mails registration counts to opted-in users
type DailyReportService struct {
	store    *repositories.Store
	notifier Notifier
	metrics  *metrics.Metrics
	now      Clock
	loc      *time.Location
}

// NewDailyReportService creates a new daily report service. notifier may be
// nil, in which case reports are built but not sent.
func NewDailyReportService(store *repositories.Store, notifier Notifier, loc *time.Location, m *metrics.Metrics) *DailyReportService {
	if loc == nil {
		loc = defaultLocation()
	}
	return &DailyReportService{
		store:    store,
		notifier: notifier,
		metrics:  m,
		now:      time.Now,
		loc:      loc,
	}
}

// WithClock overrides the clock
func (s *DailyReportService) WithClock(now Clock) *DailyReportService {
	s.now = now
	return s
}

// Build collects recipients and counts and renders the mail
func (s *DailyReportService) Build(ctx context.Context) (*DailyReport, error) {
	now := s.now().In(s.loc)
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("20060102")

	users, err := s.store.Users.ListByEmailOptIn(ctx, domain.CodeYes)
	if err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}
	var recipients []string
	for _, u := range users {
		email := strings.TrimSpace(u.Email)
		if email != "" && strings.Contains(email, "@") {
			recipients = append(recipients, email)
		}
	}

	counts, err := s.count(ctx, yesterday)
	if err != nil {
		return nil, err
	}

	report := &DailyReport{
		Date:       today,
		Recipients: recipients,
		Counts:     *counts,
		Subject:    "전국 바이블 올림피이드 대회 지원현황 입니다. (" + today + ")",
	}
	report.Text, report.HTML = renderDailyReport(today, counts)
	return report, nil
}

// personCount is one counted predicate
type personCount struct {
	where domain.FieldSet
	dst   *int64
}

func (s *DailyReportService) count(ctx context.Context, yesterday string) (*DailyCounts, error) {
	counts := &DailyCounts{}
	queries := []personCount{
		{nil, &counts.Total},
		{domain.FieldSet{"participationStatus": domain.CodeYes}, &counts.Participating},
		{domain.FieldSet{"feeConfirmed": domain.CodeYes}, &counts.FeeConfirmed},
		{domain.FieldSet{"create_ymd": yesterday}, &counts.Yesterday},
		{domain.FieldSet{"refundRequest": domain.CodeYes}, &counts.RefundRequested},
		{domain.FieldSet{"refundConfirmed": domain.CodeYes}, &counts.RefundPaid},
	}
	for _, q := range queries {
		n, err := s.store.Persons.Count(ctx, q.where)
		if err != nil {
			return nil, fmt.Errorf("count persons: %w", err)
		}
		*q.dst = n
	}
	return counts, nil
}

// Run builds and sends the report. Errors are logged, never returned.
func (s *DailyReportService) Run(ctx context.Context) {
	report, err := s.Build(ctx)
	if err != nil {
		log.Printf("❌ Daily report failed: %v", err)
		s.metrics.IncReportMail("failed")
		return
	}
	if len(report.Recipients) == 0 {
		log.Println("📭 Daily report: no recipients (emailyn=100 with eMail)")
		s.metrics.IncReportMail("skipped")
		return
	}
	if s.notifier == nil {
		log.Println("⚠️ Daily report: mailer not configured, skipping")
		s.metrics.IncReportMail("skipped")
		return
	}
	if err := s.notifier.Send(ctx, report.Recipients, report.Subject, report.Text, report.HTML); err != nil {
		log.Printf("❌ Daily report mail failed: %v", err)
		s.metrics.IncReportMail("failed")
		return
	}
	log.Printf("📧 Daily report sent to %d recipients", len(report.Recipients))
	s.metrics.IncReportMail("sent")
}

func renderDailyReport(today string, c *DailyCounts) (string, string) {
	headline := today + " 전국 바이블 올림피아드 대회 지원현황입니다."
	lines := []string{
		fmt.Sprintf("■ 전체 지원자: %d명", c.Total),
		fmt.Sprintf("■ 실제 참여자: %d명", c.Participating),
		fmt.Sprintf("■ 입금 확인자: %d명", c.FeeConfirmed),
		fmt.Sprintf("■ 전일 신청자: %d명", c.Yesterday),
		fmt.Sprintf("■ 환불요청자(전체): %d명", c.RefundRequested),
		fmt.Sprintf("■ 환불지급자(전체): %d명", c.RefundPaid),
	}

	text := headline + "\n\n" + strings.Join(lines, "\n")

	var html strings.Builder
	html.WriteString(`<div style="font-size: 2em; line-height: 1.5;">`)
	html.WriteString("<p style='margin: 0.5em 0;'>" + headline + "</p>")
	for _, line := range lines {
		html.WriteString("<p style='margin: 0.5em 0;'>" + line + "</p>")
	}
	html.WriteString("</div>")
	return text, html.String()
}
