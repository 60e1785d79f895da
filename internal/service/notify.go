package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// NotifyService delivers out-of-band notifications to the counterparty of
// an artwork event. Delivery is best-effort: failures are logged only and
// must never propagate into the operation that triggered them.
type NotifyService struct {
	client     *resend.Client
	fromEmail  string
	staffInbox string
	appURL     string
	appName    string
	isDev      bool
}

func NewNotifyService(apiKey, fromEmail, staffInbox, appURL, appName string, isDev bool) *NotifyService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &NotifyService{
		client:     client,
		fromEmail:  fromEmail,
		staffInbox: staffInbox,
		appURL:     appURL,
		appName:    appName,
		isDev:      isDev,
	}
}

// NotifyNewComment tells the counterparty about a new thread message.
// Customer comments go to the staff inbox; staff comments to the customer.
func (s *NotifyService) NotifyNewComment(artworkID, artworkName, authorRole, customerEmail string) {
	to := s.staffInbox
	if authorRole == "staff" {
		to = customerEmail
	}
	if to == "" {
		return
	}

	subject := fmt.Sprintf("[%s] New comment on %s", s.appName, artworkName)
	body := fmt.Sprintf("A new comment was posted on artwork %q.\n\nView the thread: %s/app/artwork/%s\n", artworkName, s.appURL, artworkID)

	s.send("new_comment", to, subject, body)
}

// NotifyDecision tells the staff inbox about a customer sign-off.
func (s *NotifyService) NotifyDecision(artworkID, artworkName, approvalType, approverName string) {
	subject := fmt.Sprintf("[%s] Proof decision on %s", s.appName, artworkName)
	body := fmt.Sprintf("%s submitted %q for artwork %q.\n\nView the artwork: %s/app/artwork/%s\n", approverName, approvalType, artworkName, s.appURL, artworkID)

	s.send("proof_decision", s.staffInbox, subject, body)
}

func (s *NotifyService) send(kind, to, subject, body string) {
	if s.isDev {
		slog.Info("notification sent (dev mode)", "kind", kind, "to", to, "subject", subject)
		return
	}

	if s.client == nil {
		slog.Warn("notification skipped, service not configured", "kind", kind, "to", to)
		return
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err != nil {
		slog.Error("notification failed", "kind", kind, "to", to, "error", err)
		return
	}
	slog.Info("notification sent", "kind", kind, "to", to)
}
