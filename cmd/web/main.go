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

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/config"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/appstate"
	appHTTP "github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/handler/http"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/handler/http/middleware"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/calendar"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/credential"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/cron"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/database"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/device"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/geocode"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/repository/memory"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/repository/mongodb"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/repository/postgresql"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/repository/rest"
	appStateService "github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/service/appstate"
	attendanceService "github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/service/attendance"
	captureService "github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/service/capture"
	homeService "github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/service/home"
	leaveService "github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/service/leave"
	locationService "github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/service/location"
	profileService "github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/service/profile"
	punchService "github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/service/punch"
	salaryService "github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/service/salary"
	sessionService "github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/service/session"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "selfie-punch"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appStateRepo, closeStore, err := openAppStateRepository(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open app state store", "type", cfg.Store.Type, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	store := appStateService.NewStore(appStateRepo)

	client := rest.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, nil)
	authRepo := rest.NewAuthRepository(client)
	profileRepo := rest.NewProfileRepository(client)
	punchRepo := rest.NewPunchRepository(client)
	attendanceRepo := rest.NewAttendanceRepository(client)
	leaveRepo := rest.NewLeaveRepository(client)
	salaryRepo := rest.NewSalaryRepository(client)
	referenceRepo := rest.NewReferenceLocationRepository(client)

	sessionSvc := sessionService.NewSessionService(authRepo, store, credential.NewJWTDecoder(time.Now))
	// A credential the backend refuses is dropped before the error reaches the handler
	client.OnUnauthorized(sessionSvc.Invalidate)

	cal := calendar.New(cfg.Calendar.Holidays)
	geocoder := geocode.NewNominatim(cfg.Geocoder.URL, cfg.Geocoder.UserAgent, cfg.Geocoder.Timeout, nil)
	locationSvc := locationService.NewLocationService(referenceRepo, geocoder, cfg.Geofence.FallbackLocations, cfg.Geofence.RadiusMeters)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, cal, cfg.Leave.PaidAllowance)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, leaveSvc, store, cal)
	salarySvc := salaryService.NewSalaryService(salaryRepo, leaveSvc, cal)
	profileSvc := profileService.NewProfileService(profileRepo, store)
	homeSvc := homeService.NewHomeService(store, attendanceSvc, leaveSvc)
	punchSvc := punchService.NewPunchService(punchRepo, store, locationSvc, punchService.Policy{
		OutRequiresSelfie:   cfg.Punch.OutRequiresSelfie,
		OutRequiresGeofence: cfg.Punch.OutRequiresGeofence,
	}, captureService.Settings{JPEGQuality: cfg.Capture.JPEGQuality, MaxDimension: cfg.Capture.MaxDimension})

	scheduler := cron.NewScheduler()
	cron.NewHousekeepingJobs(appStateRepo, punchSvc, cfg.Store.StaleTTL, cfg.Capture.ViewIdle).RegisterJobs(scheduler, cfg.Store.PruneEvery)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Logger:         logger,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.App.AllowedOrigins,
		Device: middleware.DeviceCookie{
			Signer: device.NewSigner(cfg.Session.DeviceCookieSecret),
			Name:   cfg.Session.DeviceCookieName,
			MaxAge: cfg.Session.DeviceCookieMaxAge,
			Secure: cfg.Session.SecureCookie,
		},
		Sessions: sessionSvc,
	}, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(sessionSvc),
		Home:       appHTTP.NewHomeHandler(homeSvc),
		Punch:      appHTTP.NewPunchHandler(punchSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Salary:     appHTTP.NewSalaryHandler(salarySvc),
		Profile:    appHTTP.NewProfileHandler(profileSvc),
		Document:   appHTTP.NewDocumentHandler(attendanceSvc),
		Location:   appHTTP.NewLocationHandler(locationSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "store", cfg.Store.Type)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

// openAppStateRepository builds the configured store and returns its cleanup.
func openAppStateRepository(ctx context.Context, cfg *config.Config) (appstate.AppStateRepository, func(), error) {
	switch cfg.Store.Type {
	case "postgres":
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, nil, err
		}
		if err := postgresql.EnsureAppStateSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgresql.NewAppStateRepository(db), db.Close, nil

	case "mongo":
		mdb, err := database.NewMongoDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, nil, err
		}
		collection := mdb.Database.Collection(cfg.Mongo.Collection)
		if err := mongodb.EnsureAppStateIndexes(ctx, collection); err != nil {
			_ = mdb.Close(context.Background())
			return nil, nil, err
		}
		return mongodb.NewAppStateRepository(collection), func() {
			if err := mdb.Close(context.Background()); err != nil {
				slog.Error("Failed to disconnect mongodb", "error", err)
			}
		}, nil

	default:
		return memory.NewAppStateRepository(time.Now), func() {}, nil
	}
}
