package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/garry1963/golf-society-manager-sub000/config"
	"github.com/garry1963/golf-society-manager-sub000/models"
)

const resultsEmailTemplate = `<html>
<body>
<h2>{{.Tournament.Name}} - Final Results</h2>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Pos</th><th>Player</th><th>Gross</th><th>Points</th><th>Net</th><th>League pts</th></tr>
{{range .Results}}<tr>
<td>{{.Position}}</td>
<td>{{.MemberName}}</td>
<td>{{if .Gross}}{{.Gross}}{{else}}-{{end}}</td>
<td>{{if .Points}}{{.Points}}{{else}}-{{end}}</td>
<td>{{if .Net}}{{printf "%.1f" .Net}}{{else}}-{{end}}</td>
<td>{{.LeaguePoints}}</td>
</tr>{{end}}
</table>
<p>Handicaps have been revised. Check your member page for your new index.</p>
</body>
</html>`

const inviteEmailTemplate = `<html>
<body>
<p>You have been invited to join the society.</p>
<p>Use this token to complete your registration: <strong>{{.Token}}</strong></p>
<p>The invite expires on {{.ExpiresAt.Format "2 January 2006"}}.</p>
</body>
</html>`

// EmailService delivers result summaries and invites over SMTP. It
// implements ResultsMailer and InviteMailer.
type EmailService struct {
	cfg           *config.Config
	resultsRender *template.Template
	inviteRender  *template.Template
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		cfg:           cfg,
		resultsRender: template.Must(template.New("results").Parse(resultsEmailTemplate)),
		inviteRender:  template.Must(template.New("invite").Parse(inviteEmailTemplate)),
	}
}

func (s *EmailService) SendResults(ctx context.Context, tournament *models.Tournament, results []models.TournamentResult, recipients []string) error {
	if s.cfg.SMTPHost == "" {
		return nil
	}

	var body bytes.Buffer
	data := struct {
		Tournament *models.Tournament
		Results    []models.TournamentResult
	}{tournament, results}
	if err := s.resultsRender.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render results email: %w", err)
	}

	subject := fmt.Sprintf("Results: %s", tournament.Name)
	return s.send(recipients, subject, body.String())
}

func (s *EmailService) SendInvite(ctx context.Context, invite *models.Invite) error {
	if s.cfg.SMTPHost == "" {
		return nil
	}

	var body bytes.Buffer
	if err := s.inviteRender.Execute(&body, invite); err != nil {
		return fmt.Errorf("failed to render invite email: %w", err)
	}
	return s.send([]string{invite.Email}, "Society membership invite", body.String())
}

func (s *EmailService) send(to []string, subject, body string) error {
	msg := []byte("From: " + s.cfg.SMTPFrom + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	tlsConfig := &tls.Config{ServerName: s.cfg.SMTPHost}

	var client *smtp.Client
	if s.cfg.SMTPPort == 465 {
		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return fmt.Errorf("smtp tls dial: %w", err)
		}
		client, err = smtp.NewClient(conn, s.cfg.SMTPHost)
		if err != nil {
			conn.Close()
			return fmt.Errorf("smtp client: %w", err)
		}
	} else {
		c, err := smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("smtp dial: %w", err)
		}
		client = c
		if err := client.StartTLS(tlsConfig); err != nil {
			client.Close()
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	defer client.Quit()

	if s.cfg.SMTPUser != "" {
		auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(s.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt to %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}
	return nil
}
