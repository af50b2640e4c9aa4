package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/chronohr/attendance-backend-go/internal/config"
	appHTTP "github.com/chronohr/attendance-backend-go/internal/handler/http"
	"github.com/chronohr/attendance-backend-go/internal/pkg/cron"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/chronohr/attendance-backend-go/internal/pkg/jwt"
	"github.com/chronohr/attendance-backend-go/internal/pkg/oauth"
	"github.com/chronohr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/chronohr/attendance-backend-go/internal/service/attendance"
	authService "github.com/chronohr/attendance-backend-go/internal/service/auth"
	leaveService "github.com/chronohr/attendance-backend-go/internal/service/leave"
	reconciliationService "github.com/chronohr/attendance-backend-go/internal/service/reconciliation"
	timelogService "github.com/chronohr/attendance-backend-go/internal/service/timelog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	sessionRepo := postgresql.NewSessionRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	entryRepo := postgresql.NewEntryRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	manualRequestRepo := postgresql.NewManualRequestRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleSvc := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	authSvc := authService.NewAuthService(db, userRepo, jwtRepo, jwtSvc, cfg.App.DefaultTimezone)
	reconciliationSvc := reconciliationService.NewReconciliationService(sessionRepo, leaveRepo, manualRequestRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, sessionRepo, entryRepo, taskRepo, userRepo, manualRequestRepo, reconciliationSvc)
	timelogSvc := timelogService.NewTimelogService(db, entryRepo, taskRepo, sessionRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRepo)

	authHandler := appHTTP.NewAuthHandler(jwtSvc, authSvc, googleSvc, cfg.App.FrontendURL)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, reconciliationSvc)
	timelogHandler := appHTTP.NewTimelogHandler(timelogSvc)
	reconciliationHandler := appHTTP.NewReconciliationHandler(reconciliationSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(sessionRepo, userRepo, cfg.Attendance.EndOfDayTime).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:         cfg.App.Env,
			FrontendURL: cfg.App.FrontendURL,
			LogLevel:    parseLogLevel(cfg.App.LogLevel),
		},
		jwtSvc,
		authHandler,
		attendanceHandler,
		timelogHandler,
		reconciliationHandler,
		leaveHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
