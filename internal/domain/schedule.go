package domain

import "time"

// Schedule is a one-week container of scheduled shifts. PublishedAt is nil
// while the schedule is a draft; once set it is never cleared.
type Schedule struct {
	ID           int64      `json:"id"`
	RestaurantID int64      `json:"restaurantID"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	PublishedAt  *time.Time `json:"publishedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func (s *Schedule) Published() bool {
	return s.PublishedAt != nil
}
