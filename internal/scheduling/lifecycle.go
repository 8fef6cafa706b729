package scheduling

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/balebbae/RESA-sub002/internal/domain"
)

// LifecycleStore is the persistence surface for the publish transition.
// PublishSchedule must set published_at exactly once: a second call returns
// domain.ErrAlreadyPublished and leaves the timestamp untouched.
type LifecycleStore interface {
	PublishSchedule(ctx context.Context, scheduleID int64) (*domain.Schedule, error)
	GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error)
	ListShiftsBySchedule(ctx context.Context, scheduleID int64) ([]*domain.ScheduledShift, error)
	GetEmployee(ctx context.Context, id int64) (*domain.Employee, error)
}

// Notifier dispatches a schedule summary to one employee. From the
// lifecycle's perspective it is fire-and-forget: a dispatch failure never
// unwinds a committed publish.
type Notifier interface {
	NotifyEmployeeOfSchedule(ctx context.Context, employee *domain.Employee, restaurant *domain.Restaurant, schedule *domain.Schedule, shifts []*domain.ScheduledShift) error
}

// Lifecycle owns the one-way draft→published transition of a schedule and
// its one-time side effect: notifying every employee with at least one
// assigned shift in the schedule.
type Lifecycle struct {
	store    LifecycleStore
	notifier Notifier
}

func NewLifecycle(store LifecycleStore, notifier Notifier) *Lifecycle {
	return &Lifecycle{
		store:    store,
		notifier: notifier,
	}
}

type PublishResult struct {
	Schedule      *domain.Schedule `json:"schedule"`
	NotifiedCount int              `json:"notifiedCount"`
	Warnings      []string         `json:"warnings"`
}

// Publish transitions the schedule out of draft and fans out one
// notification per assigned employee. Returns domain.ErrAlreadyPublished if
// the schedule left draft earlier. Notification failures are collected as
// warnings on the result, not returned as errors: at that point the schedule
// is already published.
func (l *Lifecycle) Publish(ctx context.Context, scheduleID int64) (*PublishResult, error) {
	schedule, err := l.store.PublishSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	result := &PublishResult{
		Schedule: schedule,
		Warnings: []string{},
	}

	restaurant, err := l.store.GetRestaurant(ctx, schedule.RestaurantID)
	if err != nil {
		slog.Error("schedule published but restaurant lookup failed, skipping notifications", "scheduleID", scheduleID, "error", err)
		result.Warnings = append(result.Warnings, "notifications skipped: restaurant lookup failed")
		return result, nil
	}

	shifts, err := l.store.ListShiftsBySchedule(ctx, scheduleID)
	if err != nil {
		slog.Error("schedule published but shift listing failed, skipping notifications", "scheduleID", scheduleID, "error", err)
		result.Warnings = append(result.Warnings, "notifications skipped: shift listing failed")
		return result, nil
	}

	shiftsByEmployee := make(map[int64][]*domain.ScheduledShift)
	for _, shift := range shifts {
		if shift.EmployeeID == nil {
			continue
		}
		shiftsByEmployee[*shift.EmployeeID] = append(shiftsByEmployee[*shift.EmployeeID], shift)
	}

	employeeIDs := make([]int64, 0, len(shiftsByEmployee))
	for id := range shiftsByEmployee {
		employeeIDs = append(employeeIDs, id)
	}
	sort.Slice(employeeIDs, func(i, j int) bool { return employeeIDs[i] < employeeIDs[j] })

	for _, employeeID := range employeeIDs {
		assigned := shiftsByEmployee[employeeID]
		sort.Slice(assigned, func(i, j int) bool {
			if !assigned[i].ShiftDate.Equal(assigned[j].ShiftDate) {
				return assigned[i].ShiftDate.Before(assigned[j].ShiftDate)
			}
			return assigned[i].StartTime < assigned[j].StartTime
		})

		employee, err := l.store.GetEmployee(ctx, employeeID)
		if err != nil {
			slog.Error("failed to load employee for schedule notification", "scheduleID", scheduleID, "employeeID", employeeID, "error", err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("employee %d could not be notified", employeeID))
			continue
		}

		if err := l.notifier.NotifyEmployeeOfSchedule(ctx, employee, restaurant, schedule, assigned); err != nil {
			slog.Error("failed to dispatch schedule notification", "scheduleID", scheduleID, "employeeID", employeeID, "error", err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("employee %d could not be notified", employeeID))
			continue
		}

		result.NotifiedCount++
	}

	return result, nil
}
