package main

import (
	"net/http"

	"leaguemanager/config"
	"leaguemanager/database"
	"leaguemanager/handlers"
	"leaguemanager/league"
	"leaguemanager/logging"
	"leaguemanager/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logging.New()

	// Initialize JWT secret
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize database
	if err := database.Init(cfg.DatabaseURL); err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}

	svc := league.NewService(database.GetDB(), cfg.League, log)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg, svc, log)
	leagueHandler := handlers.NewLeagueHandler(svc, log)
	marketHandler := handlers.NewMarketHandler(svc, log)

	// Setup router
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	// Public routes
	router.Post("/api/auth/register", authHandler.Register)
	router.Post("/api/auth/login", authHandler.Login)

	// Protected routes
	router.Route("/api/league", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)

		r.Get("/my_team", leagueHandler.MyTeam)

		r.Get("/teams", leagueHandler.ListTeams)
		r.Get("/teams/{teamID}", leagueHandler.GetTeam)
		r.Put("/teams/{teamID}", leagueHandler.UpdateTeam)
		r.Get("/teams/{teamID}/players", leagueHandler.TeamPlayers)

		r.Get("/players", leagueHandler.ListPlayers)
		r.Get("/players/{playerID}", leagueHandler.GetPlayer)
		r.Put("/players/{playerID}", leagueHandler.UpdatePlayer)
		r.Post("/players/{playerID}/transfer", marketHandler.CreateListing)
		r.Post("/players/{playerID}/buy", marketHandler.BuyPlayer)

		r.Get("/market", marketHandler.ListMarket)
		r.Post("/market/{transferID}/buy", marketHandler.BuyTransfer)
	})

	log.WithField("port", cfg.ServerPort).Info("server starting")
	log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, router))
}
