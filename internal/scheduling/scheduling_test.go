package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/balebbae/RESA-sub002/internal/domain"
)

// fakeStore is an in-memory stand-in for the repository. Its MaterializeWeek
// mirrors the real transaction: get-or-create the schedule, expand through
// ExpandCandidates and insert the missing instances.
type fakeStore struct {
	restaurants map[int64]*domain.Restaurant
	employees   map[int64]*domain.Employee
	roles       []*domain.Role
	templates   []*domain.ShiftTemplate
	schedules   map[int64]*domain.Schedule
	shifts      map[int64]*domain.ScheduledShift
	nextID      int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		restaurants: make(map[int64]*domain.Restaurant),
		employees:   make(map[int64]*domain.Employee),
		schedules:   make(map[int64]*domain.Schedule),
		shifts:      make(map[int64]*domain.ScheduledShift),
	}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) addRestaurant(name string) *domain.Restaurant {
	restaurant := &domain.Restaurant{ID: s.id(), Name: name}
	s.restaurants[restaurant.ID] = restaurant
	return restaurant
}

func (s *fakeStore) addEmployee(restaurantID int64, fullName, email string) *domain.Employee {
	employee := &domain.Employee{ID: s.id(), RestaurantID: restaurantID, FullName: fullName, Email: email}
	s.employees[employee.ID] = employee
	return employee
}

func (s *fakeStore) addRole(restaurantID int64, name, color string) *domain.Role {
	role := &domain.Role{ID: s.id(), RestaurantID: restaurantID, Name: name, Color: color}
	s.roles = append(s.roles, role)
	return role
}

func (s *fakeStore) addTemplate(restaurantID int64, day int32, startTime, endTime string, roleIDs ...int64) *domain.ShiftTemplate {
	template := &domain.ShiftTemplate{
		ID:           s.id(),
		RestaurantID: restaurantID,
		DayOfWeek:    day,
		StartTime:    startTime,
		EndTime:      endTime,
		RoleIDs:      roleIDs,
	}
	s.templates = append(s.templates, template)
	return template
}

func (s *fakeStore) MaterializeWeek(ctx context.Context, restaurantID int64, weekStart, weekEnd time.Time) (*domain.Schedule, int, error) {
	if _, ok := s.restaurants[restaurantID]; !ok {
		return nil, 0, domain.ErrNotFound
	}

	var schedule *domain.Schedule
	for _, existing := range s.schedules {
		if existing.RestaurantID == restaurantID && existing.StartDate.Equal(weekStart) && existing.EndDate.Equal(weekEnd) {
			schedule = existing
			break
		}
	}
	if schedule == nil {
		schedule = &domain.Schedule{
			ID:           s.id(),
			RestaurantID: restaurantID,
			StartDate:    weekStart,
			EndDate:      weekEnd,
			CreatedAt:    time.Now(),
		}
		s.schedules[schedule.ID] = schedule
	}

	templates := []*domain.ShiftTemplate{}
	for _, template := range s.templates {
		if template.RestaurantID == restaurantID {
			templates = append(templates, template)
		}
	}

	roles := []*domain.Role{}
	for _, role := range s.roles {
		if role.RestaurantID == restaurantID {
			roles = append(roles, role)
		}
	}

	existing, _ := s.ListShiftsBySchedule(ctx, schedule.ID)

	candidates := ExpandCandidates(schedule, templates, roles, existing)
	for _, shift := range candidates {
		shift.ID = s.id()
		s.shifts[shift.ID] = shift
	}

	return schedule, len(candidates), nil
}

func (s *fakeStore) PublishSchedule(ctx context.Context, scheduleID int64) (*domain.Schedule, error) {
	schedule, ok := s.schedules[scheduleID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if schedule.PublishedAt != nil {
		return nil, domain.ErrAlreadyPublished
	}
	now := time.Now()
	schedule.PublishedAt = &now
	return schedule, nil
}

func (s *fakeStore) GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error) {
	restaurant, ok := s.restaurants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return restaurant, nil
}

func (s *fakeStore) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	employee, ok := s.employees[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return employee, nil
}

func (s *fakeStore) ListShiftsBySchedule(ctx context.Context, scheduleID int64) ([]*domain.ScheduledShift, error) {
	shifts := []*domain.ScheduledShift{}
	for _, shift := range s.shifts {
		if shift.ScheduleID == scheduleID {
			shifts = append(shifts, shift)
		}
	}
	return shifts, nil
}

func (s *fakeStore) UpdateShiftAssignment(ctx context.Context, shiftID int64, employeeID *int64, employeeName *string) (*domain.ScheduledShift, error) {
	shift, ok := s.shifts[shiftID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	shift.EmployeeID = employeeID
	shift.EmployeeName = employeeName
	return shift, nil
}

// fakeLocker records lock traffic and always grants the lock.
type fakeLocker struct {
	locked   []string
	unlocked []string
}

func (l *fakeLocker) TryLock(ctx context.Context, key string) (bool, error) {
	l.locked = append(l.locked, key)
	return true, nil
}

func (l *fakeLocker) Unlock(ctx context.Context, key string) error {
	l.unlocked = append(l.unlocked, key)
	return nil
}

type notification struct {
	employeeID int64
	shiftCount int
}

type fakeNotifier struct {
	calls   []notification
	failFor map[int64]error
}

func (n *fakeNotifier) NotifyEmployeeOfSchedule(ctx context.Context, employee *domain.Employee, restaurant *domain.Restaurant, schedule *domain.Schedule, shifts []*domain.ScheduledShift) error {
	if err, ok := n.failFor[employee.ID]; ok {
		return err
	}
	n.calls = append(n.calls, notification{employeeID: employee.ID, shiftCount: len(shifts)})
	return nil
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return d
}
