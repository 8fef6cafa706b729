package scheduling

import (
	"context"
	"errors"
	"testing"

	"github.com/balebbae/RESA-sub002/internal/domain"
)

func TestMaterializeWeekExpandsTemplatesAcrossRoles(t *testing.T) {
	store := newFakeStore()
	restaurant := store.addRestaurant("The Copper Pot")
	server := store.addRole(restaurant.ID, "Server", "#3b82f6")
	cook := store.addRole(restaurant.ID, "Cook", "#ef4444")
	store.addTemplate(restaurant.ID, 1, "09:00:00", "17:00:00", server.ID, cook.ID)
	store.addTemplate(restaurant.ID, 1, "17:00:00", "23:00:00", server.ID)

	m := NewMaterializer(store, &fakeLocker{})

	schedule, created, err := m.MaterializeWeek(context.Background(), restaurant.ID, mustDate(t, "2025-01-19"))
	if err != nil {
		t.Fatalf("MaterializeWeek() error = %v", err)
	}
	if created != 3 {
		t.Fatalf("created = %d, want 3", created)
	}
	if !schedule.StartDate.Equal(mustDate(t, "2025-01-19")) || !schedule.EndDate.Equal(mustDate(t, "2025-01-25")) {
		t.Errorf("schedule covers %v to %v, want 2025-01-19 to 2025-01-25", schedule.StartDate, schedule.EndDate)
	}

	shifts, _ := store.ListShiftsBySchedule(context.Background(), schedule.ID)
	monday := mustDate(t, "2025-01-20")
	for _, shift := range shifts {
		if !shift.ShiftDate.Equal(monday) {
			t.Errorf("shift %d dated %v, want %v", shift.ID, shift.ShiftDate, monday)
		}
		if shift.EmployeeID != nil {
			t.Errorf("shift %d created already assigned", shift.ID)
		}
		if shift.ShiftTemplateID == nil {
			t.Errorf("shift %d missing template origin", shift.ID)
		}
	}

	roleCounts := map[int64]int{}
	for _, shift := range shifts {
		roleCounts[shift.RoleID]++
	}
	if roleCounts[server.ID] != 2 || roleCounts[cook.ID] != 1 {
		t.Errorf("role distribution = %v, want 2 Server and 1 Cook", roleCounts)
	}
}

func TestMaterializeWeekIsIdempotent(t *testing.T) {
	store := newFakeStore()
	restaurant := store.addRestaurant("The Copper Pot")
	server := store.addRole(restaurant.ID, "Server", "#3b82f6")
	store.addTemplate(restaurant.ID, 2, "09:00:00", "17:00:00", server.ID)

	m := NewMaterializer(store, &fakeLocker{})
	weekStart := mustDate(t, "2025-01-19")

	first, created, err := m.MaterializeWeek(context.Background(), restaurant.ID, weekStart)
	if err != nil {
		t.Fatalf("first MaterializeWeek() error = %v", err)
	}
	if created != 1 {
		t.Fatalf("first call created = %d, want 1", created)
	}

	second, created, err := m.MaterializeWeek(context.Background(), restaurant.ID, weekStart)
	if err != nil {
		t.Fatalf("second MaterializeWeek() error = %v", err)
	}
	if created != 0 {
		t.Errorf("second call created = %d, want 0", created)
	}
	if second.ID != first.ID {
		t.Errorf("second call returned schedule %d, want the existing %d", second.ID, first.ID)
	}

	shifts, _ := store.ListShiftsBySchedule(context.Background(), first.ID)
	if len(shifts) != 1 {
		t.Errorf("schedule holds %d shifts after re-run, want 1", len(shifts))
	}
}

func TestMaterializeWeekPicksUpTemplatesAddedLater(t *testing.T) {
	store := newFakeStore()
	restaurant := store.addRestaurant("The Copper Pot")
	server := store.addRole(restaurant.ID, "Server", "#3b82f6")
	store.addTemplate(restaurant.ID, 3, "09:00:00", "17:00:00", server.ID)

	m := NewMaterializer(store, &fakeLocker{})
	weekStart := mustDate(t, "2025-01-19")

	schedule, _, err := m.MaterializeWeek(context.Background(), restaurant.ID, weekStart)
	if err != nil {
		t.Fatalf("MaterializeWeek() error = %v", err)
	}

	host := store.addRole(restaurant.ID, "Host", "#22c55e")
	store.addTemplate(restaurant.ID, 5, "10:00:00", "16:00:00", host.ID)

	_, created, err := m.MaterializeWeek(context.Background(), restaurant.ID, weekStart)
	if err != nil {
		t.Fatalf("re-run MaterializeWeek() error = %v", err)
	}
	if created != 1 {
		t.Errorf("re-run created = %d, want only the new template's instance", created)
	}

	shifts, _ := store.ListShiftsBySchedule(context.Background(), schedule.ID)
	if len(shifts) != 2 {
		t.Errorf("schedule holds %d shifts, want 2", len(shifts))
	}
}

func TestMaterializeWeekWithoutTemplatesStillCreatesSchedule(t *testing.T) {
	store := newFakeStore()
	restaurant := store.addRestaurant("The Copper Pot")

	m := NewMaterializer(store, &fakeLocker{})

	schedule, created, err := m.MaterializeWeek(context.Background(), restaurant.ID, mustDate(t, "2025-01-19"))
	if err != nil {
		t.Fatalf("MaterializeWeek() error = %v", err)
	}
	if schedule == nil {
		t.Fatal("expected a schedule even with no templates")
	}
	if created != 0 {
		t.Errorf("created = %d, want 0", created)
	}
}

func TestMaterializeWeekRejectsMidWeekStart(t *testing.T) {
	store := newFakeStore()
	restaurant := store.addRestaurant("The Copper Pot")

	m := NewMaterializer(store, &fakeLocker{})

	_, _, err := m.MaterializeWeek(context.Background(), restaurant.ID, mustDate(t, "2025-01-20"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want domain.ErrValidation", err)
	}
	if len(store.schedules) != 0 {
		t.Error("rejected materialization must not create a schedule")
	}
}

func TestMaterializeWeekUnknownRestaurant(t *testing.T) {
	store := newFakeStore()

	m := NewMaterializer(store, &fakeLocker{})

	_, _, err := m.MaterializeWeek(context.Background(), 404, mustDate(t, "2025-01-19"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want domain.ErrNotFound", err)
	}
}

func TestMaterializeWeekReleasesLock(t *testing.T) {
	store := newFakeStore()
	restaurant := store.addRestaurant("The Copper Pot")
	locker := &fakeLocker{}

	m := NewMaterializer(store, locker)

	if _, _, err := m.MaterializeWeek(context.Background(), restaurant.ID, mustDate(t, "2025-01-19")); err != nil {
		t.Fatalf("MaterializeWeek() error = %v", err)
	}

	if len(locker.locked) != 1 || len(locker.unlocked) != 1 {
		t.Fatalf("lock traffic = %d acquired / %d released, want 1/1", len(locker.locked), len(locker.unlocked))
	}
	if locker.locked[0] != locker.unlocked[0] {
		t.Errorf("released key %q differs from acquired key %q", locker.unlocked[0], locker.locked[0])
	}
}

func TestExpandCandidatesSkipsExistingAndUnknownRoles(t *testing.T) {
	weekStart := mustDate(t, "2025-01-19")
	schedule := &domain.Schedule{ID: 1, RestaurantID: 1, StartDate: weekStart, EndDate: WeekEnd(weekStart)}

	server := &domain.Role{ID: 10, RestaurantID: 1, Name: "Server", Color: "#3b82f6"}
	template := &domain.ShiftTemplate{
		ID:           20,
		RestaurantID: 1,
		DayOfWeek:    2,
		StartTime:    "09:00:00",
		EndTime:      "17:00:00",
		RoleIDs:      []int64{server.ID, 99}, // 99 was deleted
	}

	templateID := template.ID
	existing := []*domain.ScheduledShift{
		{
			ID:              1,
			ScheduleID:      schedule.ID,
			ShiftTemplateID: &templateID,
			RoleID:          server.ID,
			ShiftDate:       mustDate(t, "2025-01-21"),
			StartTime:       "09:00:00",
			EndTime:         "17:00:00",
		},
		// a manual shift on the same date and role must not suppress expansion
		{
			ID:         2,
			ScheduleID: schedule.ID,
			RoleID:     server.ID,
			ShiftDate:  mustDate(t, "2025-01-21"),
			StartTime:  "12:00:00",
			EndTime:    "20:00:00",
		},
	}

	candidates := ExpandCandidates(schedule, []*domain.ShiftTemplate{template}, []*domain.Role{server}, existing)
	if len(candidates) != 0 {
		t.Fatalf("got %d candidates, want 0: instance exists and role 99 is gone", len(candidates))
	}

	// without the template-origin instance, only the known role expands
	candidates = ExpandCandidates(schedule, []*domain.ShiftTemplate{template}, []*domain.Role{server}, existing[1:])
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
	got := candidates[0]
	if got.RoleID != server.ID || got.RoleName != "Server" || got.RoleColor != "#3b82f6" {
		t.Errorf("candidate role denormalization = (%d, %q, %q)", got.RoleID, got.RoleName, got.RoleColor)
	}
	if got.ShiftDate.Format(DateLayout) != "2025-01-21" {
		t.Errorf("candidate date = %s, want 2025-01-21", got.ShiftDate.Format(DateLayout))
	}
}
