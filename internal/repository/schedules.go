package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/balebbae/RESA-sub002/internal/domain"
	"github.com/balebbae/RESA-sub002/internal/scheduling"
)

func (r *Repository) GetSchedule(ctx context.Context, id int64) (*domain.Schedule, error) {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	return getSchedule(ctx, r.dbpool, id)
}

func getSchedule(ctx context.Context, q querier, id int64) (*domain.Schedule, error) {
	query := `
		SELECT id, restaurant_id, start_date, end_date, published_at, created_at
		FROM schedules
		WHERE id = $1
	`

	schedule := &domain.Schedule{}
	var publishedAt sql.NullTime
	dst := []any{
		&schedule.ID,
		&schedule.RestaurantID,
		&schedule.StartDate,
		&schedule.EndDate,
		&publishedAt,
		&schedule.CreatedAt,
	}
	if err := q.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if publishedAt.Valid {
		schedule.PublishedAt = &publishedAt.Time
	}

	return schedule, nil
}

func (r *Repository) ListSchedules(ctx context.Context, restaurantID int64) ([]*domain.Schedule, error) {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, restaurant_id, start_date, end_date, published_at, created_at
		FROM schedules
		WHERE restaurant_id = $1
		ORDER BY start_date DESC, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := []*domain.Schedule{}
	for rows.Next() {
		var schedule domain.Schedule
		var publishedAt sql.NullTime
		dst := []any{
			&schedule.ID,
			&schedule.RestaurantID,
			&schedule.StartDate,
			&schedule.EndDate,
			&publishedAt,
			&schedule.CreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if publishedAt.Valid {
			schedule.PublishedAt = &publishedAt.Time
		}
		schedules = append(schedules, &schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

// DeleteSchedule removes the schedule; its scheduled shifts go with it via
// the ON DELETE CASCADE constraint.
func (r *Repository) DeleteSchedule(ctx context.Context, id int64) error {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	query := `DELETE FROM schedules WHERE id = $1`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}

// PublishSchedule sets published_at exactly once. The WHERE published_at IS
// NULL guard makes the transition single-fire under concurrent publishes: the
// loser sees zero rows and gets domain.ErrAlreadyPublished.
func (r *Repository) PublishSchedule(ctx context.Context, id int64) (*domain.Schedule, error) {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	query := `
		UPDATE schedules
		SET published_at = now()
		WHERE id = $1 AND published_at IS NULL
		RETURNING id, restaurant_id, start_date, end_date, published_at, created_at
	`

	schedule := &domain.Schedule{}
	var publishedAt sql.NullTime
	dst := []any{
		&schedule.ID,
		&schedule.RestaurantID,
		&schedule.StartDate,
		&schedule.EndDate,
		&publishedAt,
		&schedule.CreatedAt,
	}
	err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...)
	if err == nil {
		if publishedAt.Valid {
			schedule.PublishedAt = &publishedAt.Time
		}
		return schedule, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// zero rows: the schedule is either already published or missing
	if _, err := getSchedule(ctx, r.dbpool, id); err != nil {
		return nil, err
	}
	return nil, domain.ErrAlreadyPublished
}

// MaterializeWeek runs the whole materialization in one transaction:
// get-or-create the schedule for [weekStart, weekEnd], read the restaurant's
// templates, roles and the schedule's existing shifts, expand the missing
// (template × role × date) instances and insert them. The insert infers the
// scheduled_shifts_materialization_key partial unique index as its conflict
// arbiter, so two racing materializations cannot produce duplicates. The
// index is partial (template-origin rows only), which is why the arbiter is
// spelled as an inference clause and not ON CONSTRAINT.
func (r *Repository) MaterializeWeek(ctx context.Context, restaurantID int64, weekStart, weekEnd time.Time) (*domain.Schedule, int, error) {
	ctx, cancel := r.transactionTimeout(ctx)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM restaurants WHERE id = $1)`
	if err := tx.QueryRowContext(ctx, query, restaurantID).Scan(&exists); err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, domain.ErrNotFound
	}

	schedule := &domain.Schedule{
		RestaurantID: restaurantID,
		StartDate:    weekStart,
		EndDate:      weekEnd,
	}

	query = `
		SELECT id, published_at, created_at
		FROM schedules
		WHERE restaurant_id = $1 AND start_date = $2 AND end_date = $3
		ORDER BY id
		LIMIT 1
	`
	var publishedAt sql.NullTime
	err = tx.QueryRowContext(ctx, query, restaurantID, weekStart, weekEnd).Scan(&schedule.ID, &publishedAt, &schedule.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		query = `
			INSERT INTO schedules (restaurant_id, start_date, end_date)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`
		if err := tx.QueryRowContext(ctx, query, restaurantID, weekStart, weekEnd).Scan(&schedule.ID, &schedule.CreatedAt); err != nil {
			return nil, 0, err
		}
	case err != nil:
		return nil, 0, err
	default:
		if publishedAt.Valid {
			schedule.PublishedAt = &publishedAt.Time
		}
	}

	templates, err := listShiftTemplates(ctx, tx, restaurantID)
	if err != nil {
		return nil, 0, err
	}

	roles, err := listRoles(ctx, tx, restaurantID)
	if err != nil {
		return nil, 0, err
	}

	existing, err := listShiftsBySchedule(ctx, tx, schedule.ID)
	if err != nil {
		return nil, 0, err
	}

	candidates := scheduling.ExpandCandidates(schedule, templates, roles, existing)

	created := 0
	for _, shift := range candidates {
		query = `
			INSERT INTO scheduled_shifts
				(schedule_id, shift_template_id, role_id, shift_date, start_time, end_time, notes, role_name, role_color)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (schedule_id, shift_template_id, role_id, shift_date)
				WHERE shift_template_id IS NOT NULL DO NOTHING
		`
		params := []any{
			shift.ScheduleID,
			shift.ShiftTemplateID,
			shift.RoleID,
			shift.ShiftDate,
			shift.StartTime,
			shift.EndTime,
			shift.Notes,
			shift.RoleName,
			shift.RoleColor,
		}
		result, err := tx.ExecContext(ctx, query, params...)
		if err != nil {
			return nil, 0, err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return nil, 0, err
		}
		created += int(n)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}

	return schedule, created, nil
}
