package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/balebbae/RESA-sub002/internal/config"
	"github.com/balebbae/RESA-sub002/internal/domain"
	"github.com/balebbae/RESA-sub002/internal/repository"
	"github.com/balebbae/RESA-sub002/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var name string
	var emailDomain string

	flag.StringVar(&name, "name", "Demo Diner", "name of the restaurant to seed")
	flag.StringVar(&emailDomain, "email-domain", "example.com", "email domain for generated employees")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database connection pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not dial, so ping explicitly to fail fast
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	restaurant := &domain.Restaurant{
		Name:    name,
		Address: "123 Main St",
		Phone:   "555-0100",
	}
	if err := repo.CreateRestaurant(context.Background(), restaurant); err != nil {
		logger.Error("failed to insert restaurant", slog.String("error", err.Error()))
		return
	}
	logger.Info("restaurant inserted", slog.Int64("id", restaurant.ID), slog.String("name", restaurant.Name))

	roleIDs := make([]int64, 0, len(utils.DefaultRoles))
	for _, role := range utils.DefaultRoles {
		role := role
		role.RestaurantID = restaurant.ID
		if err := repo.CreateRole(context.Background(), &role); err != nil {
			logger.Error("failed to insert role", slog.String("name", role.Name), slog.String("error", err.Error()))
			continue
		}
		roleIDs = append(roleIDs, role.ID)
	}
	logger.Info("roles inserted", slog.Int("count", len(roleIDs)))

	employees := 0
	for i := 0; i < cfg.Seed.EmployeesPerRestaurant; i++ {
		employee := utils.GenerateRandomEmployee(restaurant.ID, emailDomain)
		if err := repo.CreateEmployee(context.Background(), employee); err != nil {
			logger.Error("failed to insert employee", slog.String("error", err.Error()))
			continue
		}
		employees++
	}
	logger.Info("employees inserted", slog.Int("count", employees))

	templates := 0
	for i := 0; i < cfg.Seed.TemplatesPerRestaurant; i++ {
		template := utils.GenerateRandomShiftTemplate(restaurant.ID, roleIDs)
		if err := repo.CreateShiftTemplate(context.Background(), template); err != nil {
			logger.Error("failed to insert shift template", slog.String("error", err.Error()))
			continue
		}
		templates++
	}
	logger.Info("shift templates inserted", slog.Int("count", templates))
}
