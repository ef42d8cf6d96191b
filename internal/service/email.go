package service

import (
	"context"
	"fmt"
	"strings"

	"sitework-backend/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
	toEmail   string
	toName    string
}

// NewEmailService sends scheduler reminders to the configured inventory
// manager address via SendGrid.
func NewEmailService(apiKey, fromEmail, fromName, toEmail, toName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		toEmail:   toEmail,
		toName:    toName,
	}
}

func (s *emailService) send(subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(s.toName, s.toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendOverdueSummary(ctx context.Context, overdue []domain.ProjectAssignment) error {
	if len(overdue) == 0 {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "The following tool assignments are past their expected return date:\n\n")
	for _, a := range overdue {
		expected := ""
		if a.ExpectedReturnDate != nil {
			expected = *a.ExpectedReturnDate
		}
		fmt.Fprintf(&b, "- %s (serial %s), project %d, assigned %s, expected back %s\n",
			a.ToolName, a.SerialNumber, a.ProjectID, a.AssignedDate, expected)
	}
	return s.send(fmt.Sprintf("%d overdue tool assignments", len(overdue)), b.String())
}

func (s *emailService) SendMaintenanceReminder(ctx context.Context, due []domain.MaintenanceDueItem) error {
	if len(due) == 0 {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "The following tools are due for maintenance:\n\n")
	for _, item := range due {
		fmt.Fprintf(&b, "- %s, last maintained %s, %d units currently under maintenance\n",
			item.Name, item.LastMaintenance, item.MaintenanceUnits)
	}
	return s.send(fmt.Sprintf("%d tool types due for maintenance", len(due)), b.String())
}
