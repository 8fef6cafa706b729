package domain

import "time"

// ShiftTemplate is a weekly-recurring shift pattern. DayOfWeek follows
// time.Weekday numbering (0 = Sunday .. 6 = Saturday). StartTime and EndTime
// are wall-clock times in "15:04:05" form, no date attached.
type ShiftTemplate struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurantID"`
	Name         string    `json:"name"`
	DayOfWeek    int32     `json:"dayOfWeek"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	RoleIDs      []int64   `json:"roleIDs"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
