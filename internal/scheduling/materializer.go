package scheduling

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/balebbae/RESA-sub002/internal/domain"
)

// MaterializerStore is the slice of persistence the materializer needs. The
// implementation must run the whole operation in one transaction: get or
// create the schedule, read templates/roles/existing shifts, expand via
// ExpandCandidates and insert the missing instances, so that a failure never
// leaves behind an empty schedule that looks materialized.
type MaterializerStore interface {
	MaterializeWeek(ctx context.Context, restaurantID int64, weekStart, weekEnd time.Time) (*domain.Schedule, int, error)
}

// Locker serializes materialization per (restaurant, week). Locking is
// best-effort: the unique index on template-origin shifts is the hard
// duplicate guard.
type Locker interface {
	TryLock(ctx context.Context, key string) (bool, error)
	Unlock(ctx context.Context, key string) error
}

// Materializer turns recurring shift templates into concrete shift instances
// for a given restaurant and week. The operation is idempotent and intended
// to run on every week-view load.
type Materializer struct {
	store  MaterializerStore
	locker Locker
}

func NewMaterializer(store MaterializerStore, locker Locker) *Materializer {
	return &Materializer{
		store:  store,
		locker: locker,
	}
}

// MaterializeWeek ensures a schedule exists for the week beginning at
// weekStart and that every (template × role × date) combination has a shift
// instance. Existing instances are never touched; the returned count covers
// newly created ones only.
func (m *Materializer) MaterializeWeek(ctx context.Context, restaurantID int64, weekStart time.Time) (*domain.Schedule, int, error) {
	weekStart = NormalizeDate(weekStart)
	if !IsWeekStart(weekStart) {
		return nil, 0, fmt.Errorf("%w: week start must be a %s", domain.ErrValidation, WeekStartDay)
	}

	key := fmt.Sprintf("materialize:%d:%s", restaurantID, weekStart.Format(DateLayout))
	locked, err := m.locker.TryLock(ctx, key)
	if err != nil {
		slog.Warn("materialization lock unavailable, relying on unique index", "key", key, "error", err)
	}
	if locked {
		defer func() {
			if err := m.locker.Unlock(context.WithoutCancel(ctx), key); err != nil {
				slog.Warn("failed to release materialization lock", "key", key, "error", err)
			}
		}()
	}

	return m.store.MaterializeWeek(ctx, restaurantID, weekStart, WeekEnd(weekStart))
}

type candidateKey struct {
	templateID int64
	roleID     int64
	date       string
}

// ExpandCandidates computes the shift instances that should exist for the
// schedule's week but do not yet: for each template, the one date in the week
// matching its day-of-week, crossed with the template's roles. Instances
// whose (template, role, date) key already exists are suppressed, which is
// what makes materialization idempotent. Role name and color are denormalized
// from the role records as they are now.
func ExpandCandidates(schedule *domain.Schedule, templates []*domain.ShiftTemplate, roles []*domain.Role, existing []*domain.ScheduledShift) []*domain.ScheduledShift {
	rolesByID := make(map[int64]*domain.Role, len(roles))
	for _, role := range roles {
		rolesByID[role.ID] = role
	}

	seen := make(map[candidateKey]bool, len(existing))
	for _, shift := range existing {
		if shift.ShiftTemplateID == nil {
			// manually created shifts never block template expansion
			continue
		}
		seen[candidateKey{
			templateID: *shift.ShiftTemplateID,
			roleID:     shift.RoleID,
			date:       shift.ShiftDate.Format(DateLayout),
		}] = true
	}

	candidates := []*domain.ScheduledShift{}
	for _, template := range templates {
		date := DateForWeekday(schedule.StartDate, template.DayOfWeek)

		for _, roleID := range template.RoleIDs {
			role, ok := rolesByID[roleID]
			if !ok {
				continue
			}

			key := candidateKey{
				templateID: template.ID,
				roleID:     roleID,
				date:       date.Format(DateLayout),
			}
			if seen[key] {
				continue
			}
			seen[key] = true

			templateID := template.ID
			candidates = append(candidates, &domain.ScheduledShift{
				ScheduleID:      schedule.ID,
				ShiftTemplateID: &templateID,
				RoleID:          roleID,
				ShiftDate:       date,
				StartTime:       template.StartTime,
				EndTime:         template.EndTime,
				Notes:           "",
				RoleName:        role.Name,
				RoleColor:       role.Color,
			})
		}
	}

	return candidates
}
