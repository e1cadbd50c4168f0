package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-summary-go/internal/config"
	summary "github.com/cmlabs-hris/attendance-summary-go/internal/domain/attendance_summary"
	appHTTP "github.com/cmlabs-hris/attendance-summary-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/memo"
	"github.com/cmlabs-hris/attendance-summary-go/internal/repository/postgresql"
	summaryService "github.com/cmlabs-hris/attendance-summary-go/internal/service/attendance_summary"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	setLogLevel(cfg.App.LogLevel)

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := postgresql.EnsureSchema(ctx, db); err != nil {
		return err
	}

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	summaryRepo := postgresql.NewAttendanceSummaryRepository(db)
	summaryCache := memo.New[summary.SummaryResult](cfg.Cache.TTL).WithMaxEntries(cfg.Cache.MaxEntries)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	summarySvc := summaryService.NewAttendanceSummaryService(
		summaryRepo,
		summary.ChartGeometry{
			CX:          cfg.Chart.CX,
			CY:          cfg.Chart.CY,
			Radius:      cfg.Chart.Radius,
			LabelOffset: cfg.Chart.LabelOffset,
			MinDist:     cfg.Chart.MinDist,
			TopBound:    cfg.Chart.TopBound,
			BottomBound: cfg.Chart.BottomBound,
		},
		summaryCache,
		summaryService.WithLocation(location),
	)

	scheduler := cron.NewScheduler()
	if cfg.Cache.TTL > 0 {
		cron.NewAttendanceSummaryJobs(summaryCache, cfg.Cache.PruneInterval).RegisterJobs(scheduler)
	}
	scheduler.Start()
	defer scheduler.Stop()

	summaryHandler := appHTTP.NewAttendanceSummaryHandler(summarySvc)
	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Env:            cfg.App.Env,
			Version:        version,
		},
		JWTService,
		summaryHandler,
	)

	server := appHTTP.NewHTTPServer(fmt.Sprintf(":%d", cfg.App.Port), router)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

func setLogLevel(level string) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		slog.Warn("Unknown LOG_LEVEL, using info", "level", level)
		l = slog.LevelInfo
	}
	slog.SetLogLoggerLevel(l)
}
