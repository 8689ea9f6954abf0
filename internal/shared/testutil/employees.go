package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"

	"hr-hub/internal/employee"

	"gorm.io/gorm"
)

// Employees is an in-memory employee.Repository keyed by id.
type Employees struct {
	mu   sync.Mutex
	ByID map[string]employee.Employee
	Err  error
}

func NewEmployees(list ...employee.Employee) *Employees {
	e := &Employees{ByID: make(map[string]employee.Employee, len(list))}
	for _, empl := range list {
		e.ByID[empl.ID.String()] = empl
	}
	return e
}

func (e *Employees) WithTx(tx *gorm.DB) employee.Repository { return e }

func (e *Employees) Create(ctx context.Context, empl *employee.Employee) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Err != nil {
		return e.Err
	}
	e.ByID[empl.ID.String()] = *empl
	return nil
}

func (e *Employees) List(ctx context.Context, f employee.ListFilter) ([]employee.Employee, int64, error) {
	all, err := e.ListActive(ctx)
	return all, int64(len(all)), err
}

func (e *Employees) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Err != nil {
		return nil, e.Err
	}
	empl, ok := e.ByID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &empl, nil
}

func (e *Employees) Update(ctx context.Context, empl *employee.Employee) error {
	return e.Create(ctx, empl)
}

func (e *Employees) Delete(ctx context.Context, id string) error {
	return errors.New("testutil: Employees.Delete not supported")
}

func (e *Employees) ListActive(ctx context.Context) ([]employee.Employee, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Err != nil {
		return nil, e.Err
	}
	out := make([]employee.Employee, 0, len(e.ByID))
	for _, empl := range e.ByID {
		if empl.Status != employee.StatusTerminated {
			out = append(out, empl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HireDate.Before(out[j].HireDate) })
	return out, nil
}

func (e *Employees) CountActive(ctx context.Context) (int64, error) {
	active, err := e.ListActive(ctx)
	return int64(len(active)), err
}
