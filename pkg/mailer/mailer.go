package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"sync"
	"time"

	"github.com/qonnected/qonnected-backend/internal/config"
)

// Mailer represents an outbound email gateway
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer delivers mail through a plain-auth SMTP relay
type SMTPMailer struct {
	Host     string
	Port     string
	From     string
	Password string
}

// MockMailer records sends instead of delivering them; selected by config in
// development and test environments.
type MockMailer struct {
	mu   sync.Mutex
	sent []Message
}

// Message is one recorded send of the MockMailer
type Message struct {
	To      string
	Subject string
	Body    string
	At      time.Time
}

// NewSMTPMailer creates a new SMTPMailer
func NewSMTPMailer(cfg *config.Config) Mailer {
	return &SMTPMailer{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		From:     cfg.SMTP.From,
		Password: cfg.SMTP.Password,
	}
}

// NewMockMailer creates a new MockMailer
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

// Send sends an email over SMTP
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + m.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{to}, message)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Send records the email without delivering it
func (m *MockMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, Message{To: to, Subject: subject, Body: body, At: time.Now()})
	fmt.Printf("[Mock Mailer] to=%s subject=%q\n", to, subject)
	return nil
}

// Sent returns a copy of the recorded messages
func (m *MockMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}
