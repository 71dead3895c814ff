package wire

import (
	"net/http"

	"fleet-admin/internal/adaptor"
	"fleet-admin/internal/data/repository"
	"fleet-admin/internal/usecase"
	"fleet-admin/pkg/middleware"
	"fleet-admin/pkg/utils"
	"fleet-admin/pkg/websocket"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the router and the services background jobs need
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes
func Wiring(repo *repository.Repository, deps usecase.Deps, hub *websocket.Hub, config *utils.Config, logger *zap.Logger) *App {
	if hub != nil {
		deps.Broadcast = hub
	}

	service := usecase.NewService(repo, deps, config, logger)
	handler := adaptor.NewHandler(service, hub, config, logger)

	return &App{
		Router:  setupRouter(handler, repo, config, logger),
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))

	r.Route("/api/admin", func(r chi.Router) {
		wireAuth(r, handler.Auth)

		// everything else needs an admin session
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthSession(repo.Session, logger))
			r.Use(middleware.Admin(repo.User, logger))

			r.Get("/me", handler.Auth.Me)
			r.Post("/logout", handler.Auth.Logout)

			wireUser(r, handler.User)
			wireBooking(r, handler.Booking)
			wireDriver(r, handler.Driver)
			wireVehicle(r, handler.Vehicle)
			wirePricing(r, handler.Pricing)
			wireAnalytics(r, handler.Analytics)
			wireTracking(r, handler.Tracking)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
