package handler

type ContextKey string

var (
	RestaurantCtx    ContextKey = "restaurant"
	EmployeeCtx      ContextKey = "employee"
	RoleCtx          ContextKey = "role"
	ShiftTemplateCtx ContextKey = "shiftTemplate"
	ScheduleCtx      ContextKey = "schedule"
	ShiftCtx         ContextKey = "shift"
)
