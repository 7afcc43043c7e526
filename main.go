package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/seamless/timesheet/config"
	"github.com/seamless/timesheet/controllers"
	"github.com/seamless/timesheet/database"
	"github.com/seamless/timesheet/directory"
	appmiddleware "github.com/seamless/timesheet/middleware"
	"github.com/seamless/timesheet/repositories"
	"github.com/seamless/timesheet/services"
)

func main() {
	// .env is optional; deployed instances configure via real env vars
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load("config.toml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := database.InitializeDatabase(cfg.Database.Path); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	repos := repositories.NewRepositories(database.GetDB())
	srvs := services.NewServices(repos, cfg)
	ctrl := controllers.NewControllers(srvs, cfg)

	dir := directory.NewClient(cfg.Directory.ServerURL, cfg.DirectoryAPIKey())
	identity := appmiddleware.NewIdentityResolver(cfg, dir)

	r := setupRouter(ctrl, identity)

	log.Printf("Timesheet server starting on port %s (env: %s)", cfg.Server.Port, cfg.Server.Env)
	log.Fatal(http.ListenAndServe(":"+cfg.Server.Port, r))
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, identity *appmiddleware.IdentityResolver) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(chimiddleware.Compress(5))
	r.Use(appmiddleware.Metrics)

	// Static files and operational endpoints stay outside the identity wall
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static/"))))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "timesheet"}`))
	})

	// IDENTITY-RESOLVED ROUTES
	r.Group(func(r chi.Router) {
		r.Use(identity.Handler)

		r.Get("/", ctrl.Timesheet.Index)
		r.Post("/submit", ctrl.Timesheet.Submit)

		r.Route("/api", func(r chi.Router) {
			r.Get("/get_history", ctrl.Timesheet.GetHistory)
			r.Get("/status_map", ctrl.Timesheet.StatusMap)
			r.Get("/breakdown", ctrl.Timesheet.Breakdown)
		})
	})

	return r
}
