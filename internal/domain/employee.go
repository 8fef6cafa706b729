package domain

import "time"

type Employee struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurantID"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"createdAt"`
}
