package main

import (
	"log"

	"github.com/tourista/tourista-api/internal/config"
	"github.com/tourista/tourista-api/internal/repository/postgres"
	"github.com/tourista/tourista-api/internal/service"
	transporthttp "github.com/tourista/tourista-api/internal/transport/http"
	"github.com/tourista/tourista-api/internal/transport/mail"
	"github.com/tourista/tourista-api/internal/util"
)

func main() {
	cfg := config.Load()

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepo(db)
	tourRepo := postgres.NewTourRepo(db)

	tokens := util.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	mailer := mail.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	authService := service.NewAuthService(userRepo, tokens, mailer, cfg.PasswordResetTTL, cfg.FrontendBaseURL)
	tourService := service.NewTourService(tourRepo)

	e := transporthttp.NewRouter(cfg.AllowOrigins)
	transporthttp.RegisterAuth(e, authService)
	transporthttp.RegisterTours(e, authService, tourService)
	transporthttp.RegisterSwagger(e)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
