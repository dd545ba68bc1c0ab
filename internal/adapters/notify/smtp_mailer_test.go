package notify

import (
	"bytes"
	"context"
	"testing"

	"olympia-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPMailer_DisabledWithoutHost(t *testing.T) {
	assert.Nil(t, NewSMTPMailer(config.SMTPConfig{From: "noreply@example.com"}))
	assert.Nil(t, NewSMTPMailer(config.SMTPConfig{Host: "smtp.example.com"}))
	assert.NotNil(t, NewSMTPMailer(config.SMTPConfig{Host: "smtp.example.com", Port: 587, From: "noreply@example.com"}))
}

func TestSMTPMailer_SendWithoutRecipients(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{Host: "smtp.invalid", Port: 587, From: "noreply@example.com"})
	require.NotNil(t, m)
	assert.NoError(t, m.Send(context.Background(), nil, "subject", "text", ""))
}

func TestSMTPMailer_SendHonoursCancelledContext(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{Host: "smtp.invalid", Port: 587, From: "noreply@example.com"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Send(ctx, []string{"a@example.com"}, "subject", "text", ""), context.Canceled)
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("noreply@example.com", []string{"a@example.com", "b@example.com"},
		"Daily report", "plain body", "<p>html body</p>")

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "From: noreply@example.com")
	assert.Contains(t, out, "a@example.com")
	assert.Contains(t, out, "b@example.com")
	assert.Contains(t, out, "Subject: Daily report")
	assert.Contains(t, out, "multipart/alternative")
	assert.Contains(t, out, "text/plain")
	assert.Contains(t, out, "text/html")
}
