package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type SchedulePublishedMailShift struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	RoleName  string `json:"roleName"`
}

type SchedulePublishedMailData struct {
	EmployeeName   string                       `json:"employeeName"`
	RestaurantName string                       `json:"restaurantName"`
	WeekStart      string                       `json:"weekStart"`
	WeekEnd        string                       `json:"weekEnd"`
	Shifts         []SchedulePublishedMailShift `json:"shifts"`
}
