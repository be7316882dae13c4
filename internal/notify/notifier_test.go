package notify

import (
	"errors"
	"io"
	"log"
	"net/smtp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placement-hub/internal/config"
	"placement-hub/internal/domain/application"
)

type fakeMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return f.err
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestNotifierInterviewConfirmation(t *testing.T) {
	mailer := &fakeMailer{}
	n := NewNotifier(mailer, quietLogger())

	when := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	n.SendInterviewConfirmation("student@example.com", "Acme Corp", when, "https://meet.example/room", "virtual")

	require.Len(t, mailer.sent, 1)
	m := mailer.sent[0]
	assert.Equal(t, "student@example.com", m.to)
	assert.Equal(t, "Interview Scheduled - Acme Corp", m.subject)
	assert.Contains(t, m.body, "Acme Corp")
	assert.Contains(t, m.body, "https://meet.example/room")
}

func TestNotifierEscapesHTML(t *testing.T) {
	mailer := &fakeMailer{}
	n := NewNotifier(mailer, quietLogger())

	n.SendApplicationStatusUpdate("a@b.com", "<script>x</script>", "Engineer", application.StatusShortlisted)

	require.Len(t, mailer.sent, 1)
	assert.NotContains(t, mailer.sent[0].body, "<script>")
	assert.Contains(t, mailer.sent[0].body, "&lt;script&gt;")
}

func TestNotifierSwallowsSendFailure(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	n := NewNotifier(mailer, quietLogger())

	assert.NotPanics(t, func() {
		n.SendInterviewReminder("a@b.com", "Acme", time.Now(), "")
	})
	assert.Len(t, mailer.sent, 1)
}

func TestNotifierSkipsEmptyRecipient(t *testing.T) {
	mailer := &fakeMailer{}
	n := NewNotifier(mailer, quietLogger())

	n.SendOfferNotification("", "Acme", "Engineer", nil)
	assert.Empty(t, mailer.sent)
}

func TestNotifierOfferIncludesDetails(t *testing.T) {
	mailer := &fakeMailer{}
	n := NewNotifier(mailer, quietLogger())

	joining := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	n.SendOfferNotification("a@b.com", "Acme", "Engineer", &application.OfferDetails{
		CTC:         1200000,
		JoiningDate: &joining,
	})

	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].body, "1200000.00")
	assert.Contains(t, mailer.sent[0].body, "2026-07-01")
}

func TestSMTPMailerNoHostIsNoop(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{}, quietLogger())
	called := false
	m.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	}

	require.NoError(t, m.Send("a@b.com", "hi", "<p>hi</p>"))
	assert.False(t, called)
}

func TestSMTPMailerBuildsMessage(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{
		Host: "smtp.example.com",
		Port: "587",
		User: "mailer@example.com",
		From: "Placement Cell <noreply@example.com>",
	}, quietLogger())

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	m.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	require.NoError(t, m.Send("student@example.com", "Interview", "<p>body</p>"))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "Placement Cell <noreply@example.com>", gotFrom)
	assert.Equal(t, []string{"student@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Interview")
	assert.Contains(t, string(gotMsg), "Content-Type: text/html")
	assert.Contains(t, string(gotMsg), "<p>body</p>")
}
