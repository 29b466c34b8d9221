package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/google/uuid"

	"github.com/launchpair/launchpair/internal/logging"
)

type Service struct {
	smtpHost     string
	smtpPort     string
	smtpUser     string
	smtpPassword string
	fromEmail    string
	supportInbox string
}

func NewService(smtpHost, smtpPort, smtpUser, smtpPassword, supportInbox string) *Service {
	return &Service{
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUser:     smtpUser,
		smtpPassword: smtpPassword,
		fromEmail:    smtpUser,
		supportInbox: supportInbox,
	}
}

// SendRecoveryTicketAlert notifies the support inbox about a new account
// recovery ticket. This method is designed to be called in a goroutine.
func (s *Service) SendRecoveryTicketAlert(ctx context.Context, claimantEmail, fullName, reason string, ticketID uuid.UUID) error {
	logger := logging.GetLoggerFromContext(ctx)

	subject := fmt.Sprintf("Account recovery ticket %s", ticketID)
	body, err := s.renderRecoveryTicketTemplate(claimantEmail, fullName, reason, ticketID)
	if err != nil {
		logger.Error("failed to render recovery ticket template", "error", err)
		return fmt.Errorf("render template: %w", err)
	}

	if err := s.sendEmail(s.supportInbox, subject, body); err != nil {
		logger.Error("failed to send recovery ticket alert", "ticket_id", ticketID, "error", err)
		return fmt.Errorf("send email: %w", err)
	}

	logger.Info("recovery ticket alert sent", "ticket_id", ticketID)
	return nil
}

// SendPasswordChangedEmail tells the user their password was changed.
// This method is designed to be called in a goroutine.
func (s *Service) SendPasswordChangedEmail(ctx context.Context, toEmail string) error {
	logger := logging.GetLoggerFromContext(ctx)

	subject := "Your password was changed"
	body, err := s.renderPasswordChangedTemplate()
	if err != nil {
		logger.Error("failed to render password changed template", "error", err)
		return fmt.Errorf("render template: %w", err)
	}

	if err := s.sendEmail(toEmail, subject, body); err != nil {
		logger.Error("failed to send password changed email", "email", toEmail, "error", err)
		return fmt.Errorf("send email: %w", err)
	}

	logger.Info("password changed email sent", "email", toEmail)
	return nil
}

func (s *Service) sendEmail(to, subject, body string) error {
	auth := smtp.PlainAuth("", s.smtpUser, s.smtpPassword, s.smtpHost)

	// Build message
	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s\r\n",
		s.fromEmail, to, subject, body,
	))

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	return smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg)
}

func (s *Service) renderRecoveryTicketTemplate(claimantEmail, fullName, reason string, ticketID uuid.UUID) (string, error) {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            background-color: #4F46E5;
            color: white;
            padding: 20px;
            text-align: center;
            border-radius: 5px 5px 0 0;
        }
        .content {
            background-color: #f9f9f9;
            padding: 30px;
            border-radius: 0 0 5px 5px;
        }
        .field {
            margin: 10px 0;
        }
        .field span {
            font-weight: bold;
        }
        .footer {
            margin-top: 30px;
            font-size: 12px;
            color: #666;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>New Recovery Ticket</h1>
    </div>
    <div class="content">
        <h2>A user requested account recovery</h2>
        <div class="field"><span>Ticket:</span> {{.TicketID}}</div>
        <div class="field"><span>Email:</span> {{.ClaimantEmail}}</div>
        <div class="field"><span>Full name:</span> {{.FullName}}</div>
        <div class="field"><span>Reason:</span> {{.Reason}}</div>

        <p style="margin-top: 30px;">Verify the claimant's identity before resetting any credentials.</p>
    </div>
    <div class="footer">
        <p>&copy; 2026 LaunchPair. All rights reserved.</p>
    </div>
</body>
</html>
`

	t, err := template.New("recoveryTicket").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	data := struct {
		TicketID      string
		ClaimantEmail string
		FullName      string
		Reason        string
	}{
		TicketID:      ticketID.String(),
		ClaimantEmail: claimantEmail,
		FullName:      fullName,
		Reason:        reason,
	}

	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}

func (s *Service) renderPasswordChangedTemplate() (string, error) {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            background-color: #4F46E5;
            color: white;
            padding: 20px;
            text-align: center;
            border-radius: 5px 5px 0 0;
        }
        .content {
            background-color: #f9f9f9;
            padding: 30px;
            border-radius: 0 0 5px 5px;
        }
        .footer {
            margin-top: 30px;
            font-size: 12px;
            color: #666;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Password Changed</h1>
    </div>
    <div class="content">
        <h2>Your password was updated</h2>
        <p>The password for your account was just changed using your security question.</p>

        <p style="margin-top: 30px;">If this wasn't you, submit a recovery ticket from the sign-in page right away.</p>
    </div>
    <div class="footer">
        <p>&copy; 2026 LaunchPair. All rights reserved.</p>
    </div>
</body>
</html>
`

	t, err := template.New("passwordChanged").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, nil); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
