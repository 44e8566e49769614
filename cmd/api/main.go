package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/buildhq/sitetrack-backend-go/internal/config"
	"github.com/buildhq/sitetrack-backend-go/internal/domain/site"
	appHTTP "github.com/buildhq/sitetrack-backend-go/internal/handler/http"
	"github.com/buildhq/sitetrack-backend-go/internal/pkg/database"
	"github.com/buildhq/sitetrack-backend-go/internal/pkg/jwt"
	"github.com/buildhq/sitetrack-backend-go/internal/repository/postgresql"
	attendanceService "github.com/buildhq/sitetrack-backend-go/internal/service/attendance"
	siteService "github.com/buildhq/sitetrack-backend-go/internal/service/site"
	workerService "github.com/buildhq/sitetrack-backend-go/internal/service/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx := context.Background()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), int32(cfg.Database.MaxConns), int32(cfg.Database.MinConns))
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	requestRepo := postgresql.NewAttendanceRequestRepository(db)
	dailyRepo := postgresql.NewDailyAttendanceRepository(db)
	siteRepo := postgresql.NewSiteRepository(db)
	workerRepo := postgresql.NewWorkerRepository(db)

	// Seed the site zone on first start so geofence classification works
	// before anyone configures the zone through the API.
	seed := site.Site{
		Name:         cfg.Site.Name,
		Latitude:     cfg.Site.Latitude,
		Longitude:    cfg.Site.Longitude,
		RadiusMeters: cfg.Site.RadiusMeters,
	}
	if err := siteRepo.EnsureDefault(ctx, seed); err != nil {
		log.Fatal("Failed to seed site zone:", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.SlogLevel(),
	})).With(
		slog.String("app", "sitetrack"),
	)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	attendanceSvc := attendanceService.NewAttendanceService(requestRepo, dailyRepo, siteRepo, cfg.Store.Timeout, logger)
	siteSvc := siteService.NewSiteService(siteRepo, cfg.Store.Timeout)
	workerSvc := workerService.NewWorkerService(workerRepo, cfg.Store.Timeout)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	siteHandler := appHTTP.NewSiteHandler(siteSvc)
	workerHandler := appHTTP.NewWorkerHandler(workerSvc)

	router := appHTTP.NewRouter(cfg, jwtService, attendanceHandler, siteHandler, workerHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("starting server", "addr", addr, "env", cfg.App.Env)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server failed:", err)
	}
}
