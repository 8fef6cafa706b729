package domain

import "time"

// ScheduledShift is a concrete, dated shift instance. ShiftTemplateID points
// back at the template it was materialized from and is cleared (not cascaded)
// when that template is deleted. EmployeeID is nil while the shift is
// unassigned. EmployeeName, RoleName and RoleColor are denormalized display
// fields kept in sync with their source records.
type ScheduledShift struct {
	ID              int64     `json:"id"`
	ScheduleID      int64     `json:"scheduleID"`
	ShiftTemplateID *int64    `json:"shiftTemplateID"`
	RoleID          int64     `json:"roleID"`
	EmployeeID      *int64    `json:"employeeID"`
	ShiftDate       time.Time `json:"shiftDate"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	Notes           string    `json:"notes"`
	EmployeeName    *string   `json:"employeeName"`
	RoleName        string    `json:"roleName"`
	RoleColor       string    `json:"roleColor"`
	CreatedAt       time.Time `json:"createdAt"`
}
