package audit

import (
	"context"

	"hr-hub/internal/shared/apperror"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, q ListLogsQuery) ([]LogResponse, int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) List(ctx context.Context, q ListLogsQuery) ([]LogResponse, int64, error) {
	logs, total, err := s.repo.List(ctx, ListFilter{
		ResourceType: q.ResourceType,
		ActorID:      q.ActorID,
		Action:       q.Action,
		Offset:       q.Offset(),
		Limit:        q.Limit,
	})
	if err != nil {
		s.logger.Error("list audit logs failed", zap.Error(err))
		return nil, 0, apperror.FromStorage(err)
	}

	out := make([]LogResponse, len(logs))
	for i, l := range logs {
		out[i] = LogResponse{
			ID:           l.ID.String(),
			CompanyID:    l.CompanyID,
			ActorID:      l.ActorID,
			Action:       l.Action,
			ResourceType: l.ResourceType,
			ResourceID:   l.ResourceID,
			Changes:      l.Changes,
			IP:           l.IP,
			UserAgent:    l.UserAgent,
			CreatedAt:    l.CreatedAt,
		}
	}
	return out, total, nil
}
