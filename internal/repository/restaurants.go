package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/balebbae/RESA-sub002/internal/domain"
)

func (r *Repository) CreateRestaurant(ctx context.Context, restaurant *domain.Restaurant) error {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO restaurants (name, address, phone)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	params := []any{restaurant.Name, restaurant.Address, restaurant.Phone}
	return r.dbpool.QueryRowContext(ctx, query, params...).Scan(&restaurant.ID, &restaurant.CreatedAt)
}

func (r *Repository) GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error) {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, address, phone, created_at
		FROM restaurants
		WHERE id = $1
	`

	restaurant := &domain.Restaurant{}
	dst := []any{
		&restaurant.ID,
		&restaurant.Name,
		&restaurant.Address,
		&restaurant.Phone,
		&restaurant.CreatedAt,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return restaurant, nil
}

func (r *Repository) GetAllRestaurants(ctx context.Context) ([]*domain.Restaurant, error) {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, address, phone, created_at
		FROM restaurants
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := []*domain.Restaurant{}
	for rows.Next() {
		var restaurant domain.Restaurant
		dst := []any{
			&restaurant.ID,
			&restaurant.Name,
			&restaurant.Address,
			&restaurant.Phone,
			&restaurant.CreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, &restaurant)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return restaurants, nil
}

func (r *Repository) UpdateRestaurant(ctx context.Context, restaurant *domain.Restaurant) error {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	query := `
		UPDATE restaurants
		SET name = $1, address = $2, phone = $3
		WHERE id = $4
	`

	params := []any{restaurant.Name, restaurant.Address, restaurant.Phone, restaurant.ID}
	result, err := r.dbpool.ExecContext(ctx, query, params...)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteRestaurant(ctx context.Context, id int64) error {
	ctx, cancel := r.queryTimeout(ctx)
	defer cancel()

	query := `DELETE FROM restaurants WHERE id = $1`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
