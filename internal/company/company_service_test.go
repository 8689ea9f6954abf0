package company_test

import (
	"context"
	"testing"

	"hr-hub/internal/company"
	companyerrors "hr-hub/internal/company/errors"
	"hr-hub/internal/shared/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCompanyRepo struct {
	ListFn     func(ctx context.Context, offset, limit int) ([]company.Company, int64, error)
	FindByIDFn func(ctx context.Context, id string) (*company.Company, error)
	UpdateFn   func(ctx context.Context, c *company.Company) error
	ActiveFn   func(ctx context.Context) ([]company.Company, error)
}

func (f *fakeCompanyRepo) WithTx(tx *gorm.DB) company.Repository { return f }
func (f *fakeCompanyRepo) List(ctx context.Context, offset, limit int) ([]company.Company, int64, error) {
	return f.ListFn(ctx, offset, limit)
}
func (f *fakeCompanyRepo) FindByID(ctx context.Context, id string) (*company.Company, error) {
	return f.FindByIDFn(ctx, id)
}
func (f *fakeCompanyRepo) Update(ctx context.Context, c *company.Company) error {
	return f.UpdateFn(ctx, c)
}
func (f *fakeCompanyRepo) ListActive(ctx context.Context) ([]company.Company, error) {
	return f.ActiveFn(ctx)
}

func strPtr(s string) *string { return &s }

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("updates only provided fields and audits", func(t *testing.T) {
		recorder := &testutil.AuditRecorder{}
		repo := &fakeCompanyRepo{
			FindByIDFn: func(ctx context.Context, got string) (*company.Company, error) {
				return &company.Company{ID: id, Name: "Hub KR", CountryCode: "KR", Timezone: "Asia/Seoul", Currency: "KRW", IsActive: true}, nil
			},
			UpdateFn: func(ctx context.Context, c *company.Company) error {
				assert.Equal(t, "Hub Korea", c.Name)
				assert.Equal(t, "Asia/Seoul", c.Timezone)
				return nil
			},
		}

		resp, err := company.NewService(repo, recorder).Update(ctx, id.String(), company.UpdateCompanyRequest{Name: strPtr("Hub Korea")})

		require.NoError(t, err)
		assert.Equal(t, "Hub Korea", resp.Name)
		assert.Equal(t, []string{"company.update"}, recorder.Actions())
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := company.NewService(&fakeCompanyRepo{}, &testutil.AuditRecorder{}).Update(ctx, id.String(), company.UpdateCompanyRequest{})
		assert.ErrorIs(t, err, companyerrors.ErrNothingToUpdate)
	})

	t.Run("foreign or missing company", func(t *testing.T) {
		recorder := &testutil.AuditRecorder{}
		repo := &fakeCompanyRepo{
			FindByIDFn: func(ctx context.Context, got string) (*company.Company, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		_, err := company.NewService(repo, recorder).Update(ctx, id.String(), company.UpdateCompanyRequest{Name: strPtr("x1")})

		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
		assert.Empty(t, recorder.Actions())
	})
}

func TestService_CountryOf(t *testing.T) {
	repo := &fakeCompanyRepo{
		FindByIDFn: func(ctx context.Context, id string) (*company.Company, error) {
			return &company.Company{ID: uuid.MustParse(id), CountryCode: "VN"}, nil
		},
	}

	country, err := company.NewService(repo, &testutil.AuditRecorder{}).CountryOf(context.Background(), uuid.NewString())

	require.NoError(t, err)
	assert.Equal(t, "VN", country)
}

func TestService_ActiveCompanies(t *testing.T) {
	repo := &fakeCompanyRepo{
		ActiveFn: func(ctx context.Context) ([]company.Company, error) {
			return []company.Company{{ID: uuid.New(), CountryCode: "KR"}, {ID: uuid.New(), CountryCode: "PL"}}, nil
		},
	}

	got, err := company.NewService(repo, &testutil.AuditRecorder{}).ActiveCompanies(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "PL", got[1].CountryCode)
}
