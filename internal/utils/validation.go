package utils

import (
	"fmt"
	"time"

	"github.com/balebbae/RESA-sub002/internal/domain"
)

// TimeLayout is the wall-clock format used for shift start and end times.
const TimeLayout = "15:04:05"

func ValidateTimeRange(startTime, endTime string) error {
	start, err := time.Parse(TimeLayout, startTime)
	if err != nil {
		return fmt.Errorf("%w: start time must be in HH:MM:SS form", domain.ErrValidation)
	}
	end, err := time.Parse(TimeLayout, endTime)
	if err != nil {
		return fmt.Errorf("%w: end time must be in HH:MM:SS form", domain.ErrValidation)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: end time must be after start time", domain.ErrValidation)
	}

	return nil
}

func ValidateShiftTemplate(template *domain.ShiftTemplate) error {
	if template.DayOfWeek < 0 || template.DayOfWeek > 6 {
		return fmt.Errorf("%w: day of week must be between 0 (Sunday) and 6 (Saturday)", domain.ErrValidation)
	}
	// at least one role by policy, even though the schema does not enforce it
	if len(template.RoleIDs) == 0 {
		return fmt.Errorf("%w: a shift template needs at least one role", domain.ErrValidation)
	}

	return ValidateTimeRange(template.StartTime, template.EndTime)
}
