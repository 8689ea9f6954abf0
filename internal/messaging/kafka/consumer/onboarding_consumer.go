package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"hr-hub/internal/events"
)

// OnboardingStarter opens the onboarding checklist of a new hire. It must be a no-op when one exists.
type OnboardingStarter interface {
	StartForNewHire(ctx context.Context, companyID, employeeID string) error
}

// EmployeeLifecycle handles hr.employee.lifecycle.v1.
func EmployeeLifecycle(onboarding OnboardingStarter) HandlerFunc {
	return func(ctx context.Context, meta events.Meta, value []byte) error {
		if meta.EventType != events.TypeEmployeeCreated {
			return nil
		}

		var ev events.EmployeeCreated
		if err := json.Unmarshal(value, &ev); err != nil {
			return fmt.Errorf("%w: %v", ErrSkip, err)
		}
		if ev.EmployeeID == "" {
			return fmt.Errorf("%w: employee_id missing", ErrSkip)
		}
		return onboarding.StartForNewHire(ctx, meta.CompanyID, ev.EmployeeID)
	}
}
