// FilePath: internal/notify/notify.go
package notify

import (
	"context"
	"fmt"
	"strings"

	nuts "github.com/vaudience/go-nuts"

	"github.com/verdantlabs/gardenhub/internal/config"
	"github.com/verdantlabs/gardenhub/internal/models"
	"github.com/verdantlabs/gardenhub/internal/monitoring"
	"github.com/verdantlabs/gardenhub/internal/repository"
)

// Mailer delivers a single HTML email
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// LogMailer logs the email instead of delivering it. Used when no
// SMTP/provider mailer is configured.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	nuts.L.Infof("[LogMailer] Would send to %s: %s (%d bytes)", to, subject, len(htmlBody))
	return nil
}

// Service delivers per-user digests when plants leave the normal state
type Service struct {
	users   repository.UserRepository
	mailer  Mailer
	cfg     config.EmailConfig
	metrics *monitoring.Metrics
}

// NewService creates a notification service. The mailer defaults to a
// log-backed one and metrics may be nil.
func NewService(users repository.UserRepository, mailer Mailer, cfg config.EmailConfig, metrics *monitoring.Metrics) *Service {
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &Service{users: users, mailer: mailer, cfg: cfg, metrics: metrics}
}

// NotifyStatusChanges groups transitions by user and sends each user
// one digest email. Users without an email address are skipped, and a
// delivery failure for one user does not block the others.
func (s *Service) NotifyStatusChanges(ctx context.Context, transitions []models.StatusTransition) error {
	byUser := make(map[string][]models.StatusTransition)
	for _, t := range transitions {
		if !t.LeftNormal() {
			continue
		}
		byUser[t.UserID] = append(byUser[t.UserID], t)
	}

	var failed int
	for userID, userTransitions := range byUser {
		user, err := s.users.Get(ctx, userID)
		if err != nil {
			nuts.L.Warnf("[NotifyService] Could not load user %s for notification: %v", userID, err)
			failed++
			continue
		}
		if user.Email == "" {
			nuts.L.Warnf("[NotifyService] User %s has no email address, skipping digest", userID)
			continue
		}

		subject := fmt.Sprintf("%s: %d of your plants need attention", s.cfg.SenderName, len(userTransitions))
		body := buildDigestBody(user.Username, userTransitions)
		if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
			nuts.L.Errorf("[NotifyService] Digest delivery to %s failed: %v", user.Email, err)
			failed++
			continue
		}
		if s.metrics != nil {
			s.metrics.NotificationsSent.Inc()
		}
		nuts.L.Infof("[NotifyService] Sent digest to %s (%d plants)", user.Email, len(userTransitions))
	}

	if failed > 0 {
		return fmt.Errorf("failed to deliver %d of %d digests", failed, len(byUser))
	}
	return nil
}

func buildDigestBody(username string, transitions []models.StatusTransition) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<p>Hi %s,</p>", username)
	b.WriteString("<p>Your daily garden check found plants that need attention:</p><ul>")
	for _, t := range transitions {
		fmt.Fprintf(&b, "<li><strong>%s</strong>: %s", t.PlantName, statusLabel(t.NewStatus))
		if t.Reason != "" {
			fmt.Fprintf(&b, " &mdash; %s", t.Reason)
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul><p>Happy gardening!</p></body></html>")
	return b.String()
}

func statusLabel(status models.PlantStatus) string {
	switch status {
	case models.StatusNeedsWatering:
		return "needs watering"
	case models.StatusAtRisk:
		return "at risk"
	default:
		return string(status)
	}
}
