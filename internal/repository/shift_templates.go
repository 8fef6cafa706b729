package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/balebbae/RESA-sub002/internal/domain"
)

func (r *Repository) CreateShiftTemplate(ctx context.Context, template *domain.ShiftTemplate) error {
	ctx, cancel := r.transactionTimeout(ctx)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO shift_templates (restaurant_id, name, day_of_week, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`
	params := []any{template.RestaurantID, template.Name, template.DayOfWeek, template.StartTime, template.EndTime}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&template.ID, &template.CreatedAt, &template.Version); err != nil {
		return err
	}

	for _, roleID := range template.RoleIDs {
		query = `
			INSERT INTO shift_template_roles (shift_template_id, role_id)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, template.ID, roleID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) GetShiftTemplate(ctx context.Context, id int64) (*domain.ShiftTemplate, error) {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	query := `
		SELECT
			st.restaurant_id,
			st.name,
			st.day_of_week,
			st.start_time,
			st.end_time,
			st.created_at,
			st.version,
			str.role_id
		FROM shift_templates st
		LEFT JOIN shift_template_roles str ON st.id = str.shift_template_id
		WHERE st.id = $1
		ORDER BY str.role_id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	template := &domain.ShiftTemplate{
		ID:      id,
		RoleIDs: make([]int64, 0),
	}
	found := false

	for rows.Next() {
		var row struct {
			RestaurantID int64
			Name         string
			DayOfWeek    int32
			StartTime    string
			EndTime      string
			CreatedAt    sql.NullTime
			Version      int32
			RoleID       sql.NullInt64
		}

		dst := []any{
			&row.RestaurantID,
			&row.Name,
			&row.DayOfWeek,
			&row.StartTime,
			&row.EndTime,
			&row.CreatedAt,
			&row.Version,
			&row.RoleID,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if !found {
			found = true
			template.RestaurantID = row.RestaurantID
			template.Name = row.Name
			template.DayOfWeek = row.DayOfWeek
			template.StartTime = row.StartTime
			template.EndTime = row.EndTime
			template.CreatedAt = row.CreatedAt.Time
			template.Version = row.Version
		}

		// a template without junction rows has no roles to collect
		if row.RoleID.Valid {
			template.RoleIDs = append(template.RoleIDs, row.RoleID.Int64)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrNotFound
	}

	return template, nil
}

func (r *Repository) ListShiftTemplates(ctx context.Context, restaurantID int64) ([]*domain.ShiftTemplate, error) {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	return listShiftTemplates(ctx, r.dbpool, restaurantID)
}

func listShiftTemplates(ctx context.Context, q querier, restaurantID int64) ([]*domain.ShiftTemplate, error) {
	query := `
		SELECT
			st.id,
			st.name,
			st.day_of_week,
			st.start_time,
			st.end_time,
			st.created_at,
			st.version,
			str.role_id
		FROM shift_templates st
		LEFT JOIN shift_template_roles str ON st.id = str.shift_template_id
		WHERE st.restaurant_id = $1
		ORDER BY st.id, str.role_id
	`

	rows, err := q.QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templatesMap := make(map[int64]*domain.ShiftTemplate)
	order := make([]int64, 0)

	for rows.Next() {
		var row struct {
			ID        int64
			Name      string
			DayOfWeek int32
			StartTime string
			EndTime   string
			CreatedAt sql.NullTime
			Version   int32
			RoleID    sql.NullInt64
		}

		dst := []any{
			&row.ID,
			&row.Name,
			&row.DayOfWeek,
			&row.StartTime,
			&row.EndTime,
			&row.CreatedAt,
			&row.Version,
			&row.RoleID,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		template, exists := templatesMap[row.ID]
		if !exists {
			template = &domain.ShiftTemplate{
				ID:           row.ID,
				RestaurantID: restaurantID,
				Name:         row.Name,
				DayOfWeek:    row.DayOfWeek,
				StartTime:    row.StartTime,
				EndTime:      row.EndTime,
				CreatedAt:    row.CreatedAt.Time,
				Version:      row.Version,
				RoleIDs:      make([]int64, 0),
			}
			templatesMap[row.ID] = template
			order = append(order, row.ID)
		}

		if row.RoleID.Valid {
			template.RoleIDs = append(template.RoleIDs, row.RoleID.Int64)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	templates := make([]*domain.ShiftTemplate, 0, len(order))
	for _, id := range order {
		templates = append(templates, templatesMap[id])
	}

	return templates, nil
}

// UpdateShiftTemplate rewrites the template row (with an optimistic version
// check) and replaces its role set in the same transaction.
func (r *Repository) UpdateShiftTemplate(ctx context.Context, template *domain.ShiftTemplate) error {
	ctx, cancel := r.transactionTimeout(ctx)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE shift_templates
		SET
			name = $1,
			day_of_week = $2,
			start_time = $3,
			end_time = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`
	params := []any{template.Name, template.DayOfWeek, template.StartTime, template.EndTime, template.ID, template.Version}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&template.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	query = `DELETE FROM shift_template_roles WHERE shift_template_id = $1`
	if _, err := tx.ExecContext(ctx, query, template.ID); err != nil {
		return err
	}

	for _, roleID := range template.RoleIDs {
		query = `
			INSERT INTO shift_template_roles (shift_template_id, role_id)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, template.ID, roleID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteShiftTemplate removes the template. Shifts already materialized from
// it keep existing; their shift_template_id reference is cleared by the
// ON DELETE SET NULL constraint, never cascaded.
func (r *Repository) DeleteShiftTemplate(ctx context.Context, id int64) error {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	query := `DELETE FROM shift_templates WHERE id = $1`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
