package utils

import (
	"fmt"
	"math/rand"

	"github.com/balebbae/RESA-sub002/internal/domain"
)

var firstNames = []string{
	"Alice", "Ben", "Carla", "Diego", "Elena", "Frank", "Grace", "Hassan",
	"Ivy", "Jonas", "Keisha", "Liam", "Mona", "Noah", "Olivia", "Pedro",
	"Quinn", "Rosa", "Sam", "Tara",
}

var lastNames = []string{
	"Nguyen", "Smith", "Garcia", "Kim", "Patel", "Brown", "Rossi", "Yamada",
	"Johnson", "Martin", "Silva", "Novak", "Okafor", "Dubois", "Ali", "Cohen",
}

func GenerateRandomFullName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

func GenerateRandomEmployee(restaurantID int64, emailDomain string) *domain.Employee {
	fullName := GenerateRandomFullName()
	return &domain.Employee{
		RestaurantID: restaurantID,
		FullName:     fullName,
		Email:        fmt.Sprintf("%s%d@%s", firstNames[rand.Intn(len(firstNames))], rand.Intn(1000), emailDomain),
		Phone:        fmt.Sprintf("555-%04d", rand.Intn(10000)),
	}
}

// DefaultRoles covers the typical positions a restaurant schedules for.
var DefaultRoles = []domain.Role{
	{Name: "Server", Color: "#3b82f6"},
	{Name: "Cook", Color: "#ef4444"},
	{Name: "Host", Color: "#22c55e"},
	{Name: "Bartender", Color: "#a855f7"},
	{Name: "Dishwasher", Color: "#f59e0b"},
	{Name: "Manager", Color: "#64748b"},
}

var templateNames = []string{
	"Opening", "Lunch", "Dinner", "Closing", "Brunch", "Late Night",
}

// GenerateRandomShiftTemplate builds a template on a random day of the week
// with a non-degenerate time range and a non-empty subset of the roles.
func GenerateRandomShiftTemplate(restaurantID int64, roleIDs []int64) *domain.ShiftTemplate {
	startHour := rand.Intn(16)
	// at least two hours long
	endHour := startHour + 2 + rand.Intn(24-startHour-2)

	shuffled := append([]int64{}, roleIDs...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	n := rand.Intn(len(shuffled)) + 1

	return &domain.ShiftTemplate{
		RestaurantID: restaurantID,
		Name:         templateNames[rand.Intn(len(templateNames))],
		DayOfWeek:    int32(rand.Intn(7)),
		StartTime:    fmt.Sprintf("%02d:00:00", startHour),
		EndTime:      fmt.Sprintf("%02d:00:00", endHour),
		RoleIDs:      shuffled[:n],
	}
}
