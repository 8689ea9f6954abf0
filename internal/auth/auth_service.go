package auth

import (
	"context"
	"errors"

	"hr-hub/internal/audit"
	autherrors "hr-hub/internal/auth/errors"
	"hr-hub/internal/rbac"
	"hr-hub/internal/session"
	"hr-hub/internal/shared/apperror"
	"hr-hub/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Sessions is the part of session.Manager the auth flow drives.
type Sessions interface {
	Start(ctx context.Context, userID, ip, userAgent string) (session.Issued, error)
	Revoke(ctx context.Context, token string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

// Permissions lists the grants of a role.
type Permissions interface {
	PermissionsFor(role session.Role) []rbac.Permission
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, p session.Principal) (MeResponse, error)
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// dummyHash keeps the unknown-email path as slow as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("hr-hub-timing-equaliser"), bcrypt.DefaultCost)

type service struct {
	repo     Repository
	sessions Sessions
	perms    Permissions
	audit    audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, sessions Sessions, perms Permissions, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, sessions: sessions, perms: perms, audit: recorder, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("login lookup failed", zap.Error(err))
			return LoginResponse{}, apperror.FromStorage(err)
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
		s.logger.Warn("login unknown email")
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login wrong password", zap.String("user_id", user.ID.String()))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}
	if !user.IsActive || !session.Role(user.Role).Valid() {
		s.logger.Warn("login rejected for inactive or misconfigured user", zap.String("user_id", user.ID.String()))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	md := contextutil.ExtractMetadata(ctx)
	issued, err := s.sessions.Start(ctx, user.ID.String(), md.IP, md.UserAgent)
	if err != nil {
		s.logger.Error("login start session failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		return LoginResponse{}, apperror.FromStorage(err)
	}

	entry := audit.NewEntry(ctx, "auth.login", "user", user.ID.String(), user.CompanyID)
	entry.ActorID = user.ID.String()
	s.audit.Record(ctx, entry)

	s.logger.Info("login success", zap.String("user_id", user.ID.String()), zap.String("company_id", user.CompanyID))
	return LoginResponse{
		User:      mapUser(*user),
		ExpiresAt: issued.ExpiresAt,
		Token:     issued.Token,
	}, nil
}

// Logout is idempotent: an unknown or already revoked token succeeds.
func (s *service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, token); err != nil {
		s.logger.Error("logout revoke failed", zap.Error(err))
		return apperror.FromStorage(err)
	}
	return nil
}

func (s *service) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.sessions.PurgeExpired(ctx)
	if err != nil {
		s.logger.Error("purge expired sessions failed", zap.Error(err))
		return 0, err
	}
	s.logger.Info("expired sessions purged", zap.Int64("count", n))
	return n, nil
}

func (s *service) Me(ctx context.Context, p session.Principal) (MeResponse, error) {
	user, err := s.repo.FindByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MeResponse{}, autherrors.ErrUserNotFound
		}
		s.logger.Error("me lookup failed", zap.Error(err))
		return MeResponse{}, apperror.FromStorage(err)
	}

	perms := s.perms.PermissionsFor(p.Role)
	if perms == nil {
		perms = []rbac.Permission{}
	}
	return MeResponse{User: mapUser(*user), Permissions: perms}, nil
}

func mapUser(u User) UserResponse {
	return UserResponse{
		ID:         u.ID.String(),
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		CompanyID:  u.CompanyID,
		EmployeeID: u.EmployeeID,
	}
}
