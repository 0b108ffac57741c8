package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/JobDeck-io/jobdeck/internal/auth"
	"github.com/JobDeck-io/jobdeck/internal/config"
	"github.com/JobDeck-io/jobdeck/internal/database"
	"github.com/JobDeck-io/jobdeck/internal/portal"
	"github.com/JobDeck-io/jobdeck/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Api struct {
	Config  config.Config
	Router  *chi.Mux
	db      *database.DB
	auth    *auth.Service
	tokens  *auth.TokenManager
	uploads *storage.S3Client
	portal  *portal.Portal
}

func NewApi(cfg config.Config, db *database.DB) (*Api, error) {
	api := &Api{
		Config: cfg,
		Router: chi.NewRouter(),
		db:     db,
		auth:   auth.New(db, cfg.CookieSecure),
		tokens: auth.NewTokenManager(cfg.TokenSecret),
	}

	if cfg.S3Configured() {
		uploads, err := storage.NewS3Client(cfg.S3Endpoint, cfg.S3Region, cfg.S3Bucket, cfg.S3AccessKey, cfg.S3SecretKey)
		if err != nil {
			return nil, err
		}
		api.uploads = uploads
	} else {
		log.Printf("S3 not configured, logo uploads disabled")
	}

	p, err := portal.New(db, api.auth)
	if err != nil {
		return nil, err
	}
	api.portal = p

	api.setupRoutes()
	return api, nil
}

func (api *Api) setupRoutes() {
	r := api.Router

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Heartbeat("/heartbeat"))

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   api.Config.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))

		// Public routes
		r.Post("/auth/login", api.LoginHandler)
		r.Get("/auth/me", api.MeHandler)
		r.Post("/auth/logout", api.LogoutHandler)
		r.Get("/jobs", api.ListJobsHandler)
		r.Get("/jobs/filters", api.GetFiltersHandler)
		r.Get("/jobs/{id}", api.GetJobHandler)

		// Protected routes for posting management
		r.Group(func(r chi.Router) {
			r.Use(api.RequireAdmin)
			r.Post("/auth/tokens", api.CreateTokenHandler)
			r.Post("/jobs", api.CreateJobHandler)
			r.Put("/jobs/{id}", api.UpdateJobHandler)
			r.Delete("/jobs/{id}", api.DeleteJobHandler)
			r.Post("/uploads/logo", api.UploadLogoHandler)
		})
	})

	// Server-rendered pages
	r.Mount("/", api.portal.Routes())
}

func (api *Api) Serve() {
	// Periodic sweep of expired session rows
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			if err := api.auth.CleanupExpiredSessions(); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
			<-ticker.C
		}
	}()

	addr := fmt.Sprintf("0.0.0.0:%d", api.Config.Port)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, api.Router))
}
