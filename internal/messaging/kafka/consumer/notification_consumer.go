package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"hr-hub/internal/events"
	"hr-hub/internal/notification"
)

// Notifier stores an in-app notification; a repeated (event, employee) pair is ignored.
type Notifier interface {
	Deliver(ctx context.Context, d notification.Delivery) error
}

// LeaveLifecycle handles hr.leave.lifecycle.v1.
func LeaveLifecycle(notifier Notifier) HandlerFunc {
	return func(ctx context.Context, meta events.Meta, value []byte) error {
		var ev events.LeaveDecided
		if err := json.Unmarshal(value, &ev); err != nil {
			return fmt.Errorf("%w: %v", ErrSkip, err)
		}

		d := notification.Delivery{
			EventID:    meta.EventID,
			CompanyID:  meta.CompanyID,
			EmployeeID: ev.EmployeeID,
			Kind:       meta.EventType,
		}
		switch meta.EventType {
		case events.TypeLeaveApproved:
			d.Title = "Leave request approved"
			d.Body = fmt.Sprintf("Your %s leave from %s to %s was approved.", ev.LeaveType, ev.StartDate, ev.EndDate)
		case events.TypeLeaveRejected:
			d.Title = "Leave request rejected"
			d.Body = fmt.Sprintf("Your %s leave from %s to %s was rejected.", ev.LeaveType, ev.StartDate, ev.EndDate)
			if ev.Reason != "" {
				d.Body += " Reason: " + ev.Reason
			}
		default:
			return nil
		}
		return notifier.Deliver(ctx, d)
	}
}

// PayrollLifecycle handles hr.payroll.lifecycle.v1.
func PayrollLifecycle(notifier Notifier) HandlerFunc {
	return func(ctx context.Context, meta events.Meta, value []byte) error {
		if meta.EventType != events.TypePayrollPaid {
			return nil
		}

		var ev events.PayrollPaid
		if err := json.Unmarshal(value, &ev); err != nil {
			return fmt.Errorf("%w: %v", ErrSkip, err)
		}

		for _, employeeID := range ev.EmployeeIDs {
			err := notifier.Deliver(ctx, notification.Delivery{
				EventID:    meta.EventID,
				CompanyID:  meta.CompanyID,
				EmployeeID: employeeID,
				Kind:       meta.EventType,
				Title:      "Payslip available",
				Body:       fmt.Sprintf("Payroll for %s has been paid.", ev.Period),
			})
			if err != nil {
				return err
			}
		}
		return nil
	}
}
