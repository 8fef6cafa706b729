package utils

import (
	"errors"
	"testing"

	"github.com/balebbae/RESA-sub002/internal/domain"
)

func TestValidateTimeRange(t *testing.T) {
	tests := []struct {
		name      string
		startTime string
		endTime   string
		wantErr   bool
	}{
		{"valid range", "09:00:00", "17:00:00", false},
		{"one minute", "09:00:00", "09:01:00", false},
		{"end equals start", "09:00:00", "09:00:00", true},
		{"end before start", "17:00:00", "09:00:00", true},
		{"malformed start", "9am", "17:00:00", true},
		{"malformed end", "09:00:00", "17:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimeRange(tt.startTime, tt.endTime)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateTimeRange(%q, %q) error = %v, wantErr %v", tt.startTime, tt.endTime, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("error = %v, want it to wrap domain.ErrValidation", err)
			}
		})
	}
}

func TestValidateShiftTemplate(t *testing.T) {
	valid := func() *domain.ShiftTemplate {
		return &domain.ShiftTemplate{
			RestaurantID: 1,
			Name:         "Lunch",
			DayOfWeek:    1,
			StartTime:    "11:00:00",
			EndTime:      "15:00:00",
			RoleIDs:      []int64{1},
		}
	}

	if err := ValidateShiftTemplate(valid()); err != nil {
		t.Fatalf("valid template rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*domain.ShiftTemplate)
	}{
		{"day below range", func(tmpl *domain.ShiftTemplate) { tmpl.DayOfWeek = -1 }},
		{"day above range", func(tmpl *domain.ShiftTemplate) { tmpl.DayOfWeek = 7 }},
		{"no roles", func(tmpl *domain.ShiftTemplate) { tmpl.RoleIDs = nil }},
		{"inverted times", func(tmpl *domain.ShiftTemplate) { tmpl.StartTime, tmpl.EndTime = tmpl.EndTime, tmpl.StartTime }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			template := valid()
			tt.mutate(template)
			err := ValidateShiftTemplate(template)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("error = %v, want domain.ErrValidation", err)
			}
		})
	}
}
