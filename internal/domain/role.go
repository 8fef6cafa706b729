package domain

import "time"

// Role is a restaurant-scoped job position (e.g. Server, Cook). Color is a
// hex string used by the calendar UI and denormalized onto shifts.
type Role struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurantID"`
	Name         string    `json:"name"`
	Color        string    `json:"color"`
	CreatedAt    time.Time `json:"createdAt"`
}
