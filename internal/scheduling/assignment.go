package scheduling

import (
	"context"

	"github.com/balebbae/RESA-sub002/internal/domain"
)

// AssignmentStore is the persistence surface for shift assignment.
// UpdateShiftAssignment writes both fields in a single row update.
type AssignmentStore interface {
	GetEmployee(ctx context.Context, id int64) (*domain.Employee, error)
	UpdateShiftAssignment(ctx context.Context, shiftID int64, employeeID *int64, employeeName *string) (*domain.ScheduledShift, error)
}

// Assigner associates and disassociates employees with scheduled shifts.
// Role compatibility is advisory and left to the calling layer; concurrent
// assignments are last-write-wins.
type Assigner struct {
	store AssignmentStore
}

func NewAssigner(store AssignmentStore) *Assigner {
	return &Assigner{store: store}
}

// Assign puts the employee on the shift, denormalizing the employee's name
// at assignment time. The name is kept current afterwards by the employee
// update sync.
func (a *Assigner) Assign(ctx context.Context, shiftID, employeeID int64) (*domain.ScheduledShift, error) {
	employee, err := a.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	name := employee.FullName
	return a.store.UpdateShiftAssignment(ctx, shiftID, &employee.ID, &name)
}

// Unassign returns the shift to the unassigned state. It has no
// preconditions: unassigning an already-unassigned shift is a no-op success.
func (a *Assigner) Unassign(ctx context.Context, shiftID int64) (*domain.ScheduledShift, error) {
	return a.store.UpdateShiftAssignment(ctx, shiftID, nil, nil)
}
