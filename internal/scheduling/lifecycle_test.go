package scheduling

import (
	"context"
	"errors"
	"testing"

	"github.com/balebbae/RESA-sub002/internal/domain"
)

// publishFixture materializes a one-template week and assigns the shift so
// publish has someone to notify.
func publishFixture(t *testing.T) (*fakeStore, *domain.Schedule, *domain.Employee) {
	t.Helper()

	store := newFakeStore()
	restaurant := store.addRestaurant("The Copper Pot")
	employee := store.addEmployee(restaurant.ID, "Alex Rivera", "alex@example.com")
	server := store.addRole(restaurant.ID, "Server", "#3b82f6")
	store.addTemplate(restaurant.ID, 0, "09:00:00", "13:00:00", server.ID)

	m := NewMaterializer(store, &fakeLocker{})
	schedule, _, err := m.MaterializeWeek(context.Background(), restaurant.ID, mustDate(t, "2025-01-19"))
	if err != nil {
		t.Fatalf("MaterializeWeek() error = %v", err)
	}

	shifts, _ := store.ListShiftsBySchedule(context.Background(), schedule.ID)
	assigner := NewAssigner(store)
	for _, shift := range shifts {
		if _, err := assigner.Assign(context.Background(), shift.ID, employee.ID); err != nil {
			t.Fatalf("Assign() error = %v", err)
		}
	}

	return store, schedule, employee
}

func TestPublishSetsPublishedAtAndNotifies(t *testing.T) {
	store, schedule, employee := publishFixture(t)
	notifier := &fakeNotifier{}

	lifecycle := NewLifecycle(store, notifier)

	result, err := lifecycle.Publish(context.Background(), schedule.ID)
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if result.Schedule.PublishedAt == nil {
		t.Fatal("PublishedAt not set")
	}
	if result.NotifiedCount != 1 {
		t.Errorf("NotifiedCount = %d, want 1", result.NotifiedCount)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}
	if len(notifier.calls) != 1 || notifier.calls[0].employeeID != employee.ID {
		t.Fatalf("notifier calls = %+v, want one for employee %d", notifier.calls, employee.ID)
	}
	if notifier.calls[0].shiftCount != 1 {
		t.Errorf("notification carried %d shifts, want 1", notifier.calls[0].shiftCount)
	}
}

func TestPublishIsSingleFire(t *testing.T) {
	store, schedule, _ := publishFixture(t)
	notifier := &fakeNotifier{}

	lifecycle := NewLifecycle(store, notifier)

	first, err := lifecycle.Publish(context.Background(), schedule.ID)
	if err != nil {
		t.Fatalf("first Publish() error = %v", err)
	}
	publishedAt := *first.Schedule.PublishedAt

	_, err = lifecycle.Publish(context.Background(), schedule.ID)
	if !errors.Is(err, domain.ErrAlreadyPublished) {
		t.Fatalf("second Publish() error = %v, want domain.ErrAlreadyPublished", err)
	}
	if !store.schedules[schedule.ID].PublishedAt.Equal(publishedAt) {
		t.Error("second publish attempt moved the published timestamp")
	}
	if len(notifier.calls) != 1 {
		t.Errorf("notifier called %d times across both attempts, want 1", len(notifier.calls))
	}
}

func TestPublishUnknownSchedule(t *testing.T) {
	store := newFakeStore()

	lifecycle := NewLifecycle(store, &fakeNotifier{})

	_, err := lifecycle.Publish(context.Background(), 404)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Publish() error = %v, want domain.ErrNotFound", err)
	}
}

func TestPublishSurvivesNotificationFailure(t *testing.T) {
	store, schedule, employee := publishFixture(t)
	notifier := &fakeNotifier{failFor: map[int64]error{employee.ID: errors.New("smtp down")}}

	lifecycle := NewLifecycle(store, notifier)

	result, err := lifecycle.Publish(context.Background(), schedule.ID)
	if err != nil {
		t.Fatalf("Publish() error = %v, publish must not fail on notification errors", err)
	}
	if result.Schedule.PublishedAt == nil {
		t.Error("PublishedAt not set despite notification failure")
	}
	if result.NotifiedCount != 0 {
		t.Errorf("NotifiedCount = %d, want 0", result.NotifiedCount)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly one", result.Warnings)
	}
}

func TestPublishSkipsUnassignedShifts(t *testing.T) {
	store := newFakeStore()
	restaurant := store.addRestaurant("The Copper Pot")
	server := store.addRole(restaurant.ID, "Server", "#3b82f6")
	store.addTemplate(restaurant.ID, 0, "09:00:00", "13:00:00", server.ID)

	m := NewMaterializer(store, &fakeLocker{})
	schedule, _, err := m.MaterializeWeek(context.Background(), restaurant.ID, mustDate(t, "2025-01-19"))
	if err != nil {
		t.Fatalf("MaterializeWeek() error = %v", err)
	}

	notifier := &fakeNotifier{}
	lifecycle := NewLifecycle(store, notifier)

	result, err := lifecycle.Publish(context.Background(), schedule.ID)
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if result.NotifiedCount != 0 || len(notifier.calls) != 0 {
		t.Errorf("unassigned-only schedule notified %d employees, want 0", len(notifier.calls))
	}
}

func TestPublishNotifiesEachAssignedEmployeeOnce(t *testing.T) {
	store := newFakeStore()
	restaurant := store.addRestaurant("The Copper Pot")
	alex := store.addEmployee(restaurant.ID, "Alex Rivera", "alex@example.com")
	jordan := store.addEmployee(restaurant.ID, "Jordan Lee", "jordan@example.com")
	server := store.addRole(restaurant.ID, "Server", "#3b82f6")
	store.addTemplate(restaurant.ID, 1, "09:00:00", "17:00:00", server.ID)
	store.addTemplate(restaurant.ID, 2, "09:00:00", "17:00:00", server.ID)
	store.addTemplate(restaurant.ID, 3, "09:00:00", "17:00:00", server.ID)

	m := NewMaterializer(store, &fakeLocker{})
	schedule, _, err := m.MaterializeWeek(context.Background(), restaurant.ID, mustDate(t, "2025-01-19"))
	if err != nil {
		t.Fatalf("MaterializeWeek() error = %v", err)
	}

	// Alex works two of the three shifts, Jordan the third
	shifts, _ := store.ListShiftsBySchedule(context.Background(), schedule.ID)
	assigner := NewAssigner(store)
	owners := []int64{alex.ID, alex.ID, jordan.ID}
	for i, shift := range shifts {
		if _, err := assigner.Assign(context.Background(), shift.ID, owners[i]); err != nil {
			t.Fatalf("Assign() error = %v", err)
		}
	}

	notifier := &fakeNotifier{}
	lifecycle := NewLifecycle(store, notifier)

	result, err := lifecycle.Publish(context.Background(), schedule.ID)
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if result.NotifiedCount != 2 {
		t.Errorf("NotifiedCount = %d, want 2", result.NotifiedCount)
	}

	counts := map[int64]int{}
	shiftTotals := map[int64]int{}
	for _, call := range notifier.calls {
		counts[call.employeeID]++
		shiftTotals[call.employeeID] += call.shiftCount
	}
	if counts[alex.ID] != 1 || counts[jordan.ID] != 1 {
		t.Errorf("notification counts = %v, want one per employee", counts)
	}
	if shiftTotals[alex.ID] != 2 || shiftTotals[jordan.ID] != 1 {
		t.Errorf("notified shift totals = %v, want 2 for Alex and 1 for Jordan", shiftTotals)
	}
}
