package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/balebbae/RESA-sub002/internal/domain"
)

func (r *Repository) CreateRole(ctx context.Context, role *domain.Role) error {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO roles (restaurant_id, name, color)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	params := []any{role.RestaurantID, role.Name, role.Color}
	return r.dbpool.QueryRowContext(ctx, query, params...).Scan(&role.ID, &role.CreatedAt)
}

func (r *Repository) GetRole(ctx context.Context, id int64) (*domain.Role, error) {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, restaurant_id, name, color, created_at
		FROM roles
		WHERE id = $1
	`

	role := &domain.Role{}
	dst := []any{
		&role.ID,
		&role.RestaurantID,
		&role.Name,
		&role.Color,
		&role.CreatedAt,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return role, nil
}

func (r *Repository) ListRoles(ctx context.Context, restaurantID int64) ([]*domain.Role, error) {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	return listRoles(ctx, r.dbpool, restaurantID)
}

func listRoles(ctx context.Context, q querier, restaurantID int64) ([]*domain.Role, error) {
	query := `
		SELECT id, restaurant_id, name, color, created_at
		FROM roles
		WHERE restaurant_id = $1
		ORDER BY id
	`

	rows, err := q.QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []*domain.Role{}
	for rows.Next() {
		var role domain.Role
		dst := []any{
			&role.ID,
			&role.RestaurantID,
			&role.Name,
			&role.Color,
			&role.CreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		roles = append(roles, &role)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return roles, nil
}

// UpdateRole updates the role row and, in the same transaction, propagates
// the new name and color onto every scheduled shift carrying this role.
func (r *Repository) UpdateRole(ctx context.Context, role *domain.Role) error {
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
		UPDATE roles
		SET name = $1, color = $2
		WHERE id = $3
	`
	result, err := tx.ExecContext(ctx, query, role.Name, role.Color, role.ID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}

	query = `
		UPDATE scheduled_shifts
		SET role_name = $1, role_color = $2
		WHERE role_id = $3
	`
	if _, err := tx.ExecContext(ctx, query, role.Name, role.Color, role.ID); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteRole refuses to delete a role that scheduled shifts still reference.
// The scheduled_shifts_role_id_fkey RESTRICT constraint backs this check up
// against concurrent inserts.
func (r *Repository) DeleteRole(ctx context.Context, id int64) error {
	ctx, cancel := r.transactionTimeout(ctx)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var referenced bool
	query := `SELECT EXISTS (SELECT 1 FROM scheduled_shifts WHERE role_id = $1)`
	if err := tx.QueryRowContext(ctx, query, id).Scan(&referenced); err != nil {
		return err
	}
	if referenced {
		return domain.ErrRoleInUse
	}

	query = `DELETE FROM roles WHERE id = $1`
	if _, err := tx.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return tx.Commit()
}
