package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"go-jobportal-backend/internal/domain"
)

// EmailService sends candidate-facing notifications via SMTP.
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string

	templates map[string]*template.Template
}

// NewEmailService creates an email service. fromEmail defaults to the SMTP
// username when empty, which is what Brevo expects.
func NewEmailService(host, port, username, password, fromEmail string) *EmailService {
	if fromEmail == "" {
		fromEmail = username
	}
	return &EmailService{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromEmail: fromEmail,
		templates: map[string]*template.Template{
			domain.NotifyStatusChange:       template.Must(template.New(domain.NotifyStatusChange).Parse(statusChangeTemplate)),
			domain.NotifyInterviewScheduled: template.Must(template.New(domain.NotifyInterviewScheduled).Parse(interviewScheduledTemplate)),
			domain.NotifyInterviewReminder:  template.Must(template.New(domain.NotifyInterviewReminder).Parse(interviewReminderTemplate)),
		},
	}
}

const emailStyle = `<style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .detail-box { background: white; padding: 15px; border-left: 4px solid #0066cc; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>`

const statusChangeTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Application Update</title>
    ` + emailStyle + `
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Application Update</h1>
        </div>
        <div class="content">
            <p>Hi {{.CandidateName}},</p>
            <p>Your application for <strong>{{.JobTitle}}</strong> has been updated.</p>
            <div class="detail-box">
                New status: <strong>{{.Status}}</strong>
            </div>
        </div>
        <div class="footer">
            <p>You are receiving this because you applied through our job portal.</p>
        </div>
    </div>
</body>
</html>`

const interviewScheduledTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Interview Scheduled</title>
    ` + emailStyle + `
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Interview Scheduled</h1>
        </div>
        <div class="content">
            <p>Hi {{.CandidateName}},</p>
            <p>Congratulations! You have been invited to interview for <strong>{{.JobTitle}}</strong>.</p>
            <div class="detail-box">
                <p>Date: <strong>{{.InterviewDate}}</strong></p>
                <p>Time: <strong>{{.InterviewTime}}</strong></p>
                {{if .MeetingLink}}<p>Meeting link: <a href="{{.MeetingLink}}">{{.MeetingLink}}</a></p>{{end}}
            </div>
            <p>Please be ready a few minutes early.</p>
        </div>
        <div class="footer">
            <p>You are receiving this because you applied through our job portal.</p>
        </div>
    </div>
</body>
</html>`

const interviewReminderTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Interview Reminder</title>
    ` + emailStyle + `
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Interview Reminder</h1>
        </div>
        <div class="content">
            <p>Hi {{.CandidateName}},</p>
            <p>This is a reminder of your upcoming interview for <strong>{{.JobTitle}}</strong>.</p>
            <div class="detail-box">
                <p>Date: <strong>{{.InterviewDate}}</strong></p>
                <p>Time: <strong>{{.InterviewTime}}</strong></p>
                {{if .MeetingLink}}<p>Meeting link: <a href="{{.MeetingLink}}">{{.MeetingLink}}</a></p>{{end}}
            </div>
        </div>
        <div class="footer">
            <p>You are receiving this because you applied through our job portal.</p>
        </div>
    </div>
</body>
</html>`

var subjects = map[string]string{
	domain.NotifyStatusChange:       "Your application status has changed",
	domain.NotifyInterviewScheduled: "Your interview has been scheduled",
	domain.NotifyInterviewReminder:  "Reminder: upcoming interview",
}

// Notify renders the template for kind and sends it to recipient.
func (s *EmailService) Notify(_ context.Context, recipient, kind string, payload domain.NotificationPayload) error {
	tmpl, ok := s.templates[kind]
	if !ok {
		return fmt.Errorf("email: unknown notification kind %q", kind)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, payload); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		recipient,
		subjects[kind],
		body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{recipient}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured reports whether the service has usable SMTP settings.
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
