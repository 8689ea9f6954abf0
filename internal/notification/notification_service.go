package notification

import (
	"context"
	"errors"
	"time"

	notificationerrors "hr-hub/internal/notification/errors"
	"hr-hub/internal/session"
	"hr-hub/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	// Deliver stores a notification for one employee. Replayed events are ignored.
	Deliver(ctx context.Context, d Delivery) error
	ListOwn(ctx context.Context, q ListQuery) ([]NotificationResponse, int64, error)
	MarkRead(ctx context.Context, id string) (NotificationResponse, error)
	MarkAllRead(ctx context.Context) (MarkAllReadResponse, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

func (s *service) Deliver(ctx context.Context, d Delivery) error {
	n := &Notification{
		ID:         uuid.New(),
		CompanyID:  d.CompanyID,
		EmployeeID: d.EmployeeID,
		EventID:    d.EventID,
		Kind:       d.Kind,
		Title:      d.Title,
		Body:       d.Body,
		CreatedAt:  s.now().UTC(),
	}
	inserted, err := s.repo.Insert(ctx, n)
	if err != nil {
		s.logger.Error("store notification failed",
			zap.String("event_id", d.EventID),
			zap.String("employee_id", d.EmployeeID),
			zap.Error(err),
		)
		return err
	}
	if !inserted {
		s.logger.Debug("notification already delivered",
			zap.String("event_id", d.EventID),
			zap.String("employee_id", d.EmployeeID),
		)
	}
	return nil
}

func (s *service) employeeID(ctx context.Context) (string, error) {
	p, ok := session.FromContext(ctx)
	if !ok || p.EmployeeID == "" {
		return "", notificationerrors.ErrNoEmployeeProfile
	}
	return p.EmployeeID, nil
}

func (s *service) ListOwn(ctx context.Context, q ListQuery) ([]NotificationResponse, int64, error) {
	employeeID, err := s.employeeID(ctx)
	if err != nil {
		return nil, 0, err
	}
	rows, total, err := s.repo.ListForEmployee(ctx, employeeID, q.Unread, q.Offset(), q.Limit)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	out := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		out[i] = mapToResponse(n)
	}
	return out, total, nil
}

func (s *service) MarkRead(ctx context.Context, id string) (NotificationResponse, error) {
	employeeID, err := s.employeeID(ctx)
	if err != nil {
		return NotificationResponse{}, err
	}
	n, err := s.repo.MarkRead(ctx, employeeID, id, s.now().UTC())
	if err != nil {
		return NotificationResponse{}, s.mapError(err)
	}
	return mapToResponse(*n), nil
}

func (s *service) MarkAllRead(ctx context.Context) (MarkAllReadResponse, error) {
	employeeID, err := s.employeeID(ctx)
	if err != nil {
		return MarkAllReadResponse{}, err
	}
	n, err := s.repo.MarkAllRead(ctx, employeeID, s.now().UTC())
	if err != nil {
		return MarkAllReadResponse{}, s.mapError(err)
	}
	return MarkAllReadResponse{Updated: n}, nil
}

func (s *service) mapError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notificationerrors.ErrNotificationNotFound
	}
	s.logger.Error("notification storage failed", zap.Error(err))
	return apperror.FromStorage(err)
}

func mapToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		Kind:      n.Kind,
		Title:     n.Title,
		Body:      n.Body,
		Read:      n.ReadAt != nil,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
