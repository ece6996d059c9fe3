package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	"sales-activity-backend/config"
	"sales-activity-backend/internal/model"
	"sales-activity-backend/internal/repository"
)

// Notifier is fire-and-forget: workflows never fail because a notification did.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification)
}

// StoreNotifier persists notifications for the app inbox. Delivery to devices
// is handled outside this service.
type StoreNotifier struct {
	repo   repository.NotificationRepository
	logger logrus.FieldLogger
}

func NewStoreNotifier(repo repository.NotificationRepository, logger logrus.FieldLogger) *StoreNotifier {
	return &StoreNotifier{repo: repo, logger: logger}
}

func (s *StoreNotifier) Notify(ctx context.Context, n model.Notification) {
	if err := s.repo.Create(ctx, &n); err != nil {
		config.LogError(s.logger, "usecase", "Notify", string(n.Type), n, err)
		return
	}
	s.logger.WithFields(logrus.Fields{
		"user_id":        n.UserID,
		"type":           n.Type,
		"reference_type": n.ReferenceType,
		"reference_id":   n.ReferenceID,
	}).Debug("notification stored")
}
