package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"hr-hub/internal/shared/apperror"
	"hr-hub/internal/shared/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidSession = apperror.New(
	apperror.CodeUnauthorized,
	"Session is invalid or expired",
	http.StatusUnauthorized,
)

// Resolver turns a raw session token into a Principal.
type Resolver interface {
	Resolve(ctx context.Context, token string) (Principal, error)
}

type Issued struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
}

type Manager struct {
	tokens *Tokens
	store  Store
	cache  *cache.Cache
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

func NewManager(tokens *Tokens, store Store, c *cache.Cache, ttl time.Duration, logger ...*zap.Logger) *Manager {
	l := zap.L().Named("session.manager")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("session.manager")
	}
	return &Manager{
		tokens: tokens,
		store:  store,
		cache:  c,
		ttl:    ttl,
		now:    time.Now,
		logger: l,
	}
}

func cacheKey(sessionID string) string {
	return "session:" + sessionID
}

// Start creates a server-side session for userID and returns the signed cookie value.
func (m *Manager) Start(ctx context.Context, userID, ip, userAgent string) (Issued, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return Issued{}, apperror.BadRequest("Invalid user id")
	}

	sess := &Session{
		ID:        uuid.New(),
		UserID:    uid,
		IP:        ip,
		UserAgent: userAgent,
		ExpiresAt: m.now().Add(m.ttl).UTC(),
	}
	if err := m.store.Create(ctx, sess); err != nil {
		m.logger.Error("session persist failed", zap.String("user_id", userID), zap.Error(err))
		return Issued{}, apperror.FromStorage(err)
	}

	token, err := m.tokens.Issue(sess.ID.String(), userID, sess.ExpiresAt)
	if err != nil {
		m.logger.Error("session sign failed", zap.Error(err))
		return Issued{}, apperror.Wrap(err, apperror.CodeInternalError, apperror.ErrInternal.Message, http.StatusInternalServerError)
	}

	return Issued{Token: token, SessionID: sess.ID.String(), ExpiresAt: sess.ExpiresAt}, nil
}

func (m *Manager) Resolve(ctx context.Context, token string) (Principal, error) {
	if token == "" {
		return Principal{}, apperror.ErrUnauthorized
	}

	claims, err := m.tokens.Parse(token)
	if err != nil {
		m.logger.Debug("session token rejected", zap.Error(err))
		return Principal{}, ErrInvalidSession
	}

	key := cacheKey(claims.SessionID)
	var cached Principal
	if m.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	now := m.now()
	p, expiresAt, err := m.store.FindActive(ctx, claims.SessionID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Principal{}, ErrInvalidSession
		}
		m.logger.Error("session lookup failed", zap.String("session_id", claims.SessionID), zap.Error(err))
		return Principal{}, apperror.FromStorage(err)
	}
	if !p.Role.Valid() || p.CompanyID == "" {
		m.logger.Warn("session principal malformed", zap.String("user_id", p.UserID), zap.String("role", string(p.Role)))
		return Principal{}, ErrInvalidSession
	}

	if ttl := expiresAt.Sub(now); ttl > 0 {
		m.cache.Set(ctx, key, p, min(ttl, 5*time.Minute))
	}
	return p, nil
}

// Revoke ends the session referenced by token. Unknown or expired tokens are a no-op.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	claims, err := m.tokens.Parse(token)
	if err != nil {
		return nil
	}
	if err := m.store.Delete(ctx, claims.SessionID); err != nil {
		m.logger.Error("session delete failed", zap.String("session_id", claims.SessionID), zap.Error(err))
		return apperror.FromStorage(err)
	}
	m.cache.Delete(ctx, cacheKey(claims.SessionID))
	return nil
}

// PurgeExpired removes sessions past their expiry; run from the cron endpoint.
func (m *Manager) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := m.store.DeleteExpired(ctx, m.now())
	if err != nil {
		return 0, apperror.FromStorage(err)
	}
	return n, nil
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}
