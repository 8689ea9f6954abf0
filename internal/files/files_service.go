package files

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hr-hub/internal/audit"
	fileserrors "hr-hub/internal/files/errors"
	"hr-hub/internal/session"
	"hr-hub/internal/shared/apperror"
	"hr-hub/internal/tenant"

	"go.uber.org/zap"
)

// Presigner is satisfied by *minio.Client.
type Presigner interface {
	PresignedPutObject(ctx context.Context, bucketName, objectName string, expires time.Duration) (*url.URL, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

type Service interface {
	UploadURL(ctx context.Context, req UploadURLRequest) (PresignedURL, error)
	DownloadURL(ctx context.Context, key string) (PresignedURL, error)
}

type service struct {
	presigner Presigner
	bucket    string
	ttl       time.Duration
	audit     audit.Recorder
	now       func() time.Time
	logger    *zap.Logger
}

// NewService accepts a nil presigner; every call then fails with 503.
func NewService(presigner Presigner, bucket string, ttl time.Duration, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("files.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("files.service")
	}
	return &service{presigner: presigner, bucket: bucket, ttl: ttl, audit: recorder, now: time.Now, logger: l}
}

func (s *service) UploadURL(ctx context.Context, req UploadURLRequest) (PresignedURL, error) {
	if s.presigner == nil {
		return PresignedURL{}, fileserrors.ErrStorageUnavailable
	}
	scope, _ := tenant.FromContext(ctx)
	companyID, err := scope.WriteCompanyID(req.CompanyID)
	if err != nil {
		return PresignedURL{}, err
	}
	filename := sanitizeFilename(req.Filename)
	if filename == "" {
		return PresignedURL{}, fileserrors.ErrInvalidFilename
	}

	key := newKey(companyID, req.Purpose, filename)
	u, err := s.presigner.PresignedPutObject(ctx, s.bucket, key, s.ttl)
	if err != nil {
		s.logger.Error("presign upload failed", zap.String("key", key), zap.Error(err))
		return PresignedURL{}, apperror.Wrap(err, apperror.CodeServiceUnavailable, "File storage is unavailable", http.StatusServiceUnavailable)
	}

	s.audit.Record(ctx, audit.NewEntry(ctx, "file.upload_url", "file", key, companyID))
	return PresignedURL{
		Key:         key,
		URL:         u.String(),
		Method:      http.MethodPut,
		ContentType: req.ContentType,
		ExpiresAt:   s.now().UTC().Add(s.ttl),
	}, nil
}

func (s *service) DownloadURL(ctx context.Context, key string) (PresignedURL, error) {
	if s.presigner == nil {
		return PresignedURL{}, fileserrors.ErrStorageUnavailable
	}
	if !validKey(key) {
		return PresignedURL{}, fileserrors.ErrInvalidKey
	}
	p, _ := session.FromContext(ctx)
	if !p.IsSuperAdmin() && !strings.HasPrefix(key, companyPrefix(p.CompanyID)) {
		s.logger.Warn("foreign file key requested", zap.String("user_id", p.UserID), zap.String("key", key))
		return PresignedURL{}, fileserrors.ErrForeignKey
	}

	u, err := s.presigner.PresignedGetObject(ctx, s.bucket, key, s.ttl, nil)
	if err != nil {
		s.logger.Error("presign download failed", zap.String("key", key), zap.Error(err))
		return PresignedURL{}, apperror.Wrap(err, apperror.CodeServiceUnavailable, "File storage is unavailable", http.StatusServiceUnavailable)
	}
	return PresignedURL{
		Key:       key,
		URL:       u.String(),
		Method:    http.MethodGet,
		ExpiresAt: s.now().UTC().Add(s.ttl),
	}, nil
}
