package service

import (
	"context"
	"log/slog"

	"github.com/podstreak/podstreak/internal/repository"
	"github.com/resend/resend-go/v2"
)

// MissedNotification is one dispatch request for a missed check-in.
type MissedNotification struct {
	UserID    string
	GoalID    string
	GoalTitle string
}

// Dispatcher accepts missed-check-in notifications. Implementations must
// never block the caller: the evaluator's write path cannot wait on a slow
// notification channel.
type Dispatcher interface {
	NotifyMissed(userID, goalID, goalTitle string)
}

// DispatcherService delivers missed-check-in emails through Resend. Requests
// are buffered on an internal queue and sent by a worker goroutine; when the
// queue is full the request is dropped with a warning. Delivery failures are
// logged and never retried here (the mail provider owns its retry policy).
type DispatcherService struct {
	client    *resend.Client
	users     repository.UserRepository
	fromEmail string
	appURL    string
	appName   string
	isDev     bool

	queue chan MissedNotification
	done  chan struct{}
}

func NewDispatcherService(users repository.UserRepository, apiKey, fromEmail, appURL, appName string, isDev bool) *DispatcherService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	s := &DispatcherService{
		client:    client,
		users:     users,
		fromEmail: fromEmail,
		appURL:    appURL,
		appName:   appName,
		isDev:     isDev,
		queue:     make(chan MissedNotification, 256),
		done:      make(chan struct{}),
	}

	go s.deliverLoop()

	return s
}

// NotifyMissed enqueues a notification and returns immediately.
func (s *DispatcherService) NotifyMissed(userID, goalID, goalTitle string) {
	n := MissedNotification{UserID: userID, GoalID: goalID, GoalTitle: goalTitle}

	select {
	case s.queue <- n:
	default:
		slog.Warn("notification queue full, dropping", "user_id", userID, "goal_id", goalID)
	}
}

// Close stops accepting notifications and drains the queue.
func (s *DispatcherService) Close() {
	close(s.queue)
	<-s.done
}

func (s *DispatcherService) deliverLoop() {
	defer close(s.done)

	for n := range s.queue {
		s.send(n)
	}
}

func (s *DispatcherService) send(n MissedNotification) {
	user, err := s.users.ByID(n.UserID)
	if err != nil {
		slog.Warn("notification skipped, cannot resolve user", "user_id", n.UserID, "goal_id", n.GoalID, "error", err)
		return
	}

	subject, body := missedEmailTemplate(n.GoalTitle, n.GoalID, s.appURL, s.appName)

	if s.isDev {
		slog.Info("notification sent (dev mode)", "type", "missed_check_in", "to", user.Email, "goal_id", n.GoalID, "subject", subject)
		return
	}

	if s.client == nil {
		slog.Warn("notification service not configured (missing RESEND_API_KEY)", "goal_id", n.GoalID)
		return
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{user.Email},
		Subject: subject,
		Text:    body,
	}

	_, err = s.client.Emails.SendWithContext(context.Background(), params)
	if err != nil {
		slog.Warn("notification delivery failed", "type", "missed_check_in", "to", user.Email, "goal_id", n.GoalID, "error", err)
		return
	}

	slog.Info("notification sent", "type", "missed_check_in", "to", user.Email, "goal_id", n.GoalID)
}
