package attendance

import (
	"context"
	"errors"
	"time"

	attendanceerrors "hr-hub/internal/attendance/errors"
	"hr-hub/internal/audit"
	"hr-hub/internal/compliance"
	"hr-hub/internal/employee"
	"hr-hub/internal/session"
	"hr-hub/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RuleSource resolves the labor rules of a company.
type RuleSource interface {
	RuleForCompany(ctx context.Context, companyID string) (compliance.Rule, error)
}

type Service interface {
	ClockIn(ctx context.Context, req ClockInRequest) (RecordResponse, error)
	ClockOut(ctx context.Context, req ClockOutRequest) (RecordResponse, error)
	List(ctx context.Context, q ListQuery) ([]RecordResponse, int64, error)
	WeeklySummary(ctx context.Context, employeeID string, weekStart string) (WeeklySummary, error)
}

type service struct {
	repo      Repository
	employees employee.Repository
	rules     RuleSource
	audit     audit.Recorder
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(repo Repository, employees employee.Repository, rules RuleSource, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		repo:      repo,
		employees: employees,
		rules:     rules,
		audit:     recorder,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) actor(ctx context.Context) (session.Principal, error) {
	p, ok := session.FromContext(ctx)
	if !ok || p.EmployeeID == "" {
		return session.Principal{}, attendanceerrors.ErrNoEmployeeProfile
	}
	return p, nil
}

func (s *service) ClockIn(ctx context.Context, req ClockInRequest) (RecordResponse, error) {
	p, err := s.actor(ctx)
	if err != nil {
		return RecordResponse{}, err
	}

	now := s.now().UTC()
	rec := &Record{
		ID:         uuid.New(),
		CompanyID:  p.CompanyID,
		EmployeeID: p.EmployeeID,
		WorkDate:   truncateDay(now),
		ClockIn:    now,
		Status:     statusAt(now),
		Source:     req.Source,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Notes:      req.Notes,
	}
	if rec.Source == "" {
		rec.Source = SourceManual
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		if apperror.IsUniqueViolation(err, "uq_attendance_employee_day") {
			return RecordResponse{}, attendanceerrors.ErrAlreadyClockedIn
		}
		return RecordResponse{}, s.mapError(err)
	}

	resp := mapToResponse(*rec)
	s.audit.Record(ctx, audit.NewEntry(ctx, "attendance.clock_in", "attendance_record", resp.ID, rec.CompanyID).WithChanges(nil, resp))
	return resp, nil
}

// ClockOut closes today's record, or yesterday's when a shift crossed midnight.
func (s *service) ClockOut(ctx context.Context, req ClockOutRequest) (RecordResponse, error) {
	p, err := s.actor(ctx)
	if err != nil {
		return RecordResponse{}, err
	}

	now := s.now().UTC()
	rec, err := s.openRecord(ctx, p.EmployeeID, now)
	if err != nil {
		return RecordResponse{}, err
	}
	before := mapToResponse(*rec)

	closed, err := s.repo.ClockOut(ctx, rec.ID.String(), now, req.Notes)
	if err != nil {
		return RecordResponse{}, s.mapError(err)
	}
	if !closed {
		return RecordResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}
	rec.ClockOut = &now
	if req.Notes != nil {
		rec.Notes = req.Notes
	}

	after := mapToResponse(*rec)
	s.audit.Record(ctx, audit.NewEntry(ctx, "attendance.clock_out", "attendance_record", after.ID, rec.CompanyID).WithChanges(before, after))
	return after, nil
}

func (s *service) openRecord(ctx context.Context, employeeID string, now time.Time) (*Record, error) {
	today := truncateDay(now)
	rec, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, today)
	switch {
	case err == nil && rec.ClockOut == nil:
		return rec, nil
	case err == nil:
		return nil, attendanceerrors.ErrAlreadyClockedOut
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, s.mapError(err)
	}

	prev, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, today.AddDate(0, 0, -1))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendanceerrors.ErrNotClockedIn
		}
		return nil, s.mapError(err)
	}
	if prev.ClockOut != nil {
		return nil, attendanceerrors.ErrNotClockedIn
	}
	return prev, nil
}

func (s *service) List(ctx context.Context, q ListQuery) ([]RecordResponse, int64, error) {
	f := ListFilter{EmployeeID: q.EmployeeID, Offset: q.Offset(), Limit: q.Limit}
	if q.From != "" {
		from, _ := time.Parse(dateLayout, q.From)
		f.From = &from
	}
	if q.To != "" {
		to, _ := time.Parse(dateLayout, q.To)
		f.To = &to
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return nil, 0, attendanceerrors.ErrInvalidRange
	}

	rows, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	out := make([]RecordResponse, len(rows))
	for i, r := range rows {
		out[i] = mapToResponse(r)
	}
	return out, total, nil
}

func (s *service) WeeklySummary(ctx context.Context, employeeID string, weekStart string) (WeeklySummary, error) {
	start, err := time.Parse(dateLayout, weekStart)
	if err != nil {
		return WeeklySummary{}, apperror.BadRequest("week_start must be YYYY-MM-DD")
	}
	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WeeklySummary{}, apperror.NotFound("Employee not found")
		}
		return WeeklySummary{}, s.mapError(err)
	}
	rule, err := s.rules.RuleForCompany(ctx, emp.CompanyID)
	if err != nil {
		return WeeklySummary{}, err
	}

	end := start.AddDate(0, 0, 7)
	rows, err := s.repo.ListRange(ctx, employeeID, start, end)
	if err != nil {
		return WeeklySummary{}, s.mapError(err)
	}

	worked := decimal.Zero
	for _, r := range rows {
		worked = worked.Add(r.Hours())
	}
	worked = worked.Round(2)

	return WeeklySummary{
		EmployeeID:    employeeID,
		WeekStart:     start.Format(dateLayout),
		WeekEnd:       end.AddDate(0, 0, -1).Format(dateLayout),
		Days:          len(rows),
		WorkedHours:   worked,
		WeeklyHourCap: rule.WeeklyHourCap,
		Overtime:      worked.GreaterThan(decimal.NewFromInt(int64(rule.WeeklyHourCap))),
	}, nil
}

func (s *service) mapError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendanceerrors.ErrNotClockedIn
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	s.logger.Error("attendance storage failed", zap.Error(err))
	return apperror.FromStorage(err)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func mapToResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:         r.ID.String(),
		CompanyID:  r.CompanyID,
		EmployeeID: r.EmployeeID,
		WorkDate:   r.WorkDate.Format(dateLayout),
		ClockIn:    r.ClockIn,
		ClockOut:   r.ClockOut,
		Status:     r.Status,
		Source:     r.Source,
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
		Notes:      r.Notes,
	}
}

// NewServiceWithClock is NewService with an injectable clock.
func NewServiceWithClock(repo Repository, employees employee.Repository, rules RuleSource, recorder audit.Recorder, now func() time.Time, logger ...*zap.Logger) Service {
	s := NewService(repo, employees, rules, recorder, logger...).(*service)
	s.now = now
	return s
}
