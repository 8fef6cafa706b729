package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/balebbae/RESA-sub002/internal/domain"
)

const scheduledShiftColumns = `
	id, schedule_id, shift_template_id, role_id, employee_id,
	shift_date, start_time, end_time, notes,
	employee_name, role_name, role_color, created_at
`

func scanScheduledShift(dst interface {
	Scan(dest ...any) error
}, shift *domain.ScheduledShift) error {
	var templateID, employeeID sql.NullInt64
	var employeeName sql.NullString

	fields := []any{
		&shift.ID,
		&shift.ScheduleID,
		&templateID,
		&shift.RoleID,
		&employeeID,
		&shift.ShiftDate,
		&shift.StartTime,
		&shift.EndTime,
		&shift.Notes,
		&employeeName,
		&shift.RoleName,
		&shift.RoleColor,
		&shift.CreatedAt,
	}
	if err := dst.Scan(fields...); err != nil {
		return err
	}

	if templateID.Valid {
		shift.ShiftTemplateID = &templateID.Int64
	}
	if employeeID.Valid {
		shift.EmployeeID = &employeeID.Int64
	}
	if employeeName.Valid {
		shift.EmployeeName = &employeeName.String
	}

	return nil
}

func (r *Repository) GetShift(ctx context.Context, id int64) (*domain.ScheduledShift, error) {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	query := `SELECT ` + scheduledShiftColumns + ` FROM scheduled_shifts WHERE id = $1`

	shift := &domain.ScheduledShift{}
	if err := scanScheduledShift(r.dbpool.QueryRowContext(ctx, query, id), shift); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return shift, nil
}

func (r *Repository) ListShiftsBySchedule(ctx context.Context, scheduleID int64) ([]*domain.ScheduledShift, error) {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	return listShiftsBySchedule(ctx, r.dbpool, scheduleID)
}

func listShiftsBySchedule(ctx context.Context, q querier, scheduleID int64) ([]*domain.ScheduledShift, error) {
	query := `
		SELECT ` + scheduledShiftColumns + `
		FROM scheduled_shifts
		WHERE schedule_id = $1
		ORDER BY shift_date, start_time, id
	`

	rows, err := q.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := []*domain.ScheduledShift{}
	for rows.Next() {
		shift := &domain.ScheduledShift{}
		if err := scanScheduledShift(rows, shift); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

// CreateShift inserts a manually created shift. The caller is responsible
// for filling the denormalized role/employee display fields from the current
// source records.
func (r *Repository) CreateShift(ctx context.Context, shift *domain.ScheduledShift) error {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO scheduled_shifts
			(schedule_id, shift_template_id, role_id, employee_id, shift_date, start_time, end_time, notes, employee_name, role_name, role_color)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	params := []any{
		shift.ScheduleID,
		shift.ShiftTemplateID,
		shift.RoleID,
		shift.EmployeeID,
		shift.ShiftDate,
		shift.StartTime,
		shift.EndTime,
		shift.Notes,
		shift.EmployeeName,
		shift.RoleName,
		shift.RoleColor,
	}
	return r.dbpool.QueryRowContext(ctx, query, params...).Scan(&shift.ID, &shift.CreatedAt)
}

func (r *Repository) UpdateShift(ctx context.Context, shift *domain.ScheduledShift) error {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	query := `
		UPDATE scheduled_shifts
		SET
			role_id = $1,
			shift_date = $2,
			start_time = $3,
			end_time = $4,
			notes = $5,
			role_name = $6,
			role_color = $7
		WHERE id = $8
	`

	params := []any{
		shift.RoleID,
		shift.ShiftDate,
		shift.StartTime,
		shift.EndTime,
		shift.Notes,
		shift.RoleName,
		shift.RoleColor,
		shift.ID,
	}
	result, err := r.dbpool.ExecContext(ctx, query, params...)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteShift(ctx context.Context, id int64) error {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	query := `DELETE FROM scheduled_shifts WHERE id = $1`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}

// UpdateShiftAssignment sets or clears the assignment in one atomic row
// update. Passing nils returns the shift to the unassigned state.
func (r *Repository) UpdateShiftAssignment(ctx context.Context, shiftID int64, employeeID *int64, employeeName *string) (*domain.ScheduledShift, error) {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	query := `
		UPDATE scheduled_shifts
		SET employee_id = $1, employee_name = $2
		WHERE id = $3
		RETURNING ` + scheduledShiftColumns

	shift := &domain.ScheduledShift{}
	if err := scanScheduledShift(r.dbpool.QueryRowContext(ctx, query, employeeID, employeeName, shiftID), shift); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return shift, nil
}
