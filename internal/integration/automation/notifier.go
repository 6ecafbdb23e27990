package automation

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/fintrack/backend/internal/application/adapter"
	"github.com/fintrack/backend/internal/domain/entity"
)

// emailNotifier implements adapter.ScheduleNotifier via Resend.
type emailNotifier struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewEmailNotifier creates a Resend-backed schedule notifier.
func NewEmailNotifier(apiKey, fromName, fromEmail string) adapter.ScheduleNotifier {
	return &emailNotifier{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// NotifyScheduleExpired tells the user their recurring schedule ran out.
func (n *emailNotifier) NotifyScheduleExpired(ctx context.Context, user *entity.User, schedule *entity.RecurringSchedule) error {
	subject := fmt.Sprintf("Recurring transaction ended: %s", schedule.Description)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your recurring transaction <strong>%s</strong> reached its end date on %s and will no longer be generated.</p>",
		user.Name,
		schedule.Description,
		schedule.EndDate.Format("2006-01-02"),
	)
	return n.send(ctx, user.Email, subject, html)
}

// NotifyPlanCompleted tells the user their installment plan is done.
func (n *emailNotifier) NotifyPlanCompleted(ctx context.Context, user *entity.User, plan *entity.InstallmentPlan) error {
	subject := fmt.Sprintf("Installments complete: %s", plan.Description)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>All %d installments of <strong>%s</strong> have been recorded.</p>",
		user.Name,
		plan.InstallmentCount,
		plan.Description,
	)
	return n.send(ctx, user.Email, subject, html)
}

func (n *emailNotifier) send(ctx context.Context, to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", n.fromName, n.fromEmail),
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	if _, err := n.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	return nil
}

var _ adapter.ScheduleNotifier = (*emailNotifier)(nil)
