package handler

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/balebbae/RESA-sub002/internal/config"
	"github.com/balebbae/RESA-sub002/internal/notify"
	"github.com/balebbae/RESA-sub002/internal/repository"
	"github.com/balebbae/RESA-sub002/internal/scheduling"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	redisClient *redis.Client

	materializer *scheduling.Materializer
	lifecycle    *scheduling.Lifecycle
	assigner     *scheduling.Assigner

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	locker := scheduling.NewRedisLocker(rdb, time.Duration(cfg.Redis.LockExpiration)*time.Second)
	notifier := notify.NewQueuePublisher(mailCh, time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second)

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		redisClient: rdb,

		materializer: scheduling.NewMaterializer(repo, locker),
		lifecycle:    scheduling.NewLifecycle(repo, notifier),
		assigner:     scheduling.NewAssigner(repo),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestID)
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(h.rateLimit)

	h.Mux.Get("/health", h.Health)

	h.Mux.Route("/restaurants", func(r chi.Router) {
		r.Post("/", h.CreateRestaurant)
		r.Get("/", h.GetAllRestaurants)
		r.Route("/{restaurantID}", func(r chi.Router) {
			r.Use(h.restaurantCtx)
			r.Get("/", h.GetRestaurant)
			r.Patch("/", h.UpdateRestaurant)
			r.Delete("/", h.DeleteRestaurant)

			r.Route("/employees", func(r chi.Router) {
				r.Post("/", h.CreateEmployee)
				r.Get("/", h.ListEmployees)
				r.Route("/{employeeID}", func(r chi.Router) {
					r.Use(h.employeeCtx)
					r.Get("/", h.GetEmployee)
					r.Patch("/", h.UpdateEmployee)
					r.Delete("/", h.DeleteEmployee)
				})
			})

			r.Route("/roles", func(r chi.Router) {
				r.Post("/", h.CreateRole)
				r.Get("/", h.ListRoles)
				r.Route("/{roleID}", func(r chi.Router) {
					r.Use(h.roleCtx)
					r.Get("/", h.GetRole)
					r.Patch("/", h.UpdateRole)
					r.Delete("/", h.DeleteRole)
				})
			})

			r.Route("/shift-templates", func(r chi.Router) {
				r.Post("/", h.CreateShiftTemplate)
				r.Get("/", h.ListShiftTemplates)
				r.Route("/{templateID}", func(r chi.Router) {
					r.Use(h.shiftTemplateCtx)
					r.Get("/", h.GetShiftTemplate)
					r.Patch("/", h.UpdateShiftTemplate)
					r.Delete("/", h.DeleteShiftTemplate)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Post("/", h.MaterializeWeek)
				r.Get("/", h.ListSchedules)
				r.Route("/{scheduleID}", func(r chi.Router) {
					r.Use(h.scheduleCtx)
					r.Get("/", h.GetSchedule)
					r.Delete("/", h.DeleteSchedule)
					r.Post("/auto-populate", h.AutoPopulateSchedule)
					r.Post("/publish", h.PublishSchedule)

					r.Route("/shifts", func(r chi.Router) {
						r.Get("/", h.ListShifts)
						r.Post("/", h.CreateShift)
						r.Route("/{shiftID}", func(r chi.Router) {
							r.Use(h.shiftCtx)
							r.Get("/", h.GetShift)
							r.Patch("/", h.UpdateShift)
							r.Delete("/", h.DeleteShift)
							r.Patch("/assign", h.AssignShift)
							r.Delete("/assign", h.UnassignShift)
						})
					})
				})
			})
		})
	})
}
