package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/config"
	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/database"
	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/handler"
	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/middleware"
	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/queue"
	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/repository"
	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/router"
	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.Env == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	venues := repository.NewVenueRepo(db)
	hours := repository.NewOpeningHourRepo(db)
	bookings := repository.NewBookingRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	auth := handler.NewAuthHandler(cfg, users, tokens)
	owner := handler.NewOwnerHandler(venues, hours, bookings)
	customer := handler.NewCustomerHandler(venues, hours, bookings)
	public := handler.NewPublicHandler(venues, hours, bookings)

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterPublic(e, public, config.LoadCacheConfig(), rdb)
	router.RegisterOwner(e, owner, cfg.JWTSecret)
	router.RegisterCustomer(e, customer, cfg.JWTSecret)

	// The audit consumer runs inside the server process; it reconnects on
	// its own and never takes the API down with it.
	go queue.StartHoursConsumer(service.BrokerURL())

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
