package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/balebbae/RESA-sub002/internal/domain"
)

func (r *Repository) CreateEmployee(ctx context.Context, employee *domain.Employee) error {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO employees (restaurant_id, full_name, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	params := []any{employee.RestaurantID, employee.FullName, employee.Email, employee.Phone}
	return r.dbpool.QueryRowContext(ctx, query, params...).Scan(&employee.ID, &employee.CreatedAt)
}

func (r *Repository) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, restaurant_id, full_name, email, phone, created_at
		FROM employees
		WHERE id = $1
	`

	employee := &domain.Employee{}
	dst := []any{
		&employee.ID,
		&employee.RestaurantID,
		&employee.FullName,
		&employee.Email,
		&employee.Phone,
		&employee.CreatedAt,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return employee, nil
}

func (r *Repository) ListEmployees(ctx context.Context, restaurantID int64) ([]*domain.Employee, error) {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, restaurant_id, full_name, email, phone, created_at
		FROM employees
		WHERE restaurant_id = $1
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []*domain.Employee{}
	for rows.Next() {
		var employee domain.Employee
		dst := []any{
			&employee.ID,
			&employee.RestaurantID,
			&employee.FullName,
			&employee.Email,
			&employee.Phone,
			&employee.CreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		employees = append(employees, &employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// UpdateEmployee updates the employee row and, in the same transaction,
// propagates the (possibly renamed) full name onto every scheduled shift the
// employee is assigned to.
func (r *Repository) UpdateEmployee(ctx context.Context, employee *domain.Employee) error {
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
		UPDATE employees
		SET full_name = $1, email = $2, phone = $3
		WHERE id = $4
	`
	params := []any{employee.FullName, employee.Email, employee.Phone, employee.ID}
	result, err := tx.ExecContext(ctx, query, params...)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}

	query = `
		UPDATE scheduled_shifts
		SET employee_name = $1
		WHERE employee_id = $2
	`
	if _, err := tx.ExecContext(ctx, query, employee.FullName, employee.ID); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteEmployee removes the employee and, in the same transaction, unassigns
// every scheduled shift that referenced them. The shifts themselves survive.
func (r *Repository) DeleteEmployee(ctx context.Context, id int64) error {
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
		UPDATE scheduled_shifts
		SET employee_id = NULL, employee_name = NULL
		WHERE employee_id = $1
	`
	if _, err := tx.ExecContext(ctx, query, id); err != nil {
		return err
	}

	query = `DELETE FROM employees WHERE id = $1`
	if _, err := tx.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return tx.Commit()
}
