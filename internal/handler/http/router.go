package http

import (
	"log/slog"
	"net/http"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/session"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// RouterConfig holds what the router needs beyond the handlers.
type RouterConfig struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
	Device         middleware.DeviceCookie
	Sessions       session.SessionService
}

type Handlers struct {
	Auth       AuthHandler
	Home       HomeHandler
	Punch      PunchHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Salary     SalaryHandler
	Profile    ProfileHandler
	Document   DocumentHandler
	Location   LocationHandler
}

func NewRouter(cfg RouterConfig, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))
	r.Use(cfg.Device.Handler)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/home", http.StatusFound)
	})

	r.Post("/login", h.Auth.Login)
	r.Post("/logout", h.Auth.Logout)

	// Requires a valid session
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionRequired(cfg.Sessions))

		r.Get("/home", h.Home.GetDashboard)

		r.Route("/punch", func(r chi.Router) {
			r.Get("/", h.Punch.View)
			r.Post("/location", h.Punch.ReportLocation)
			r.Post("/camera", h.Punch.StartCamera)
			r.Post("/capture", h.Punch.Capture)
			r.Post("/retake", h.Punch.Retake)
			r.Post("/in", h.Punch.PunchIn)
			r.Post("/out", h.Punch.PunchOut)
			r.Delete("/session", h.Punch.Unmount)
		})

		r.Get("/attendance", h.Attendance.List)

		r.Route("/leave", func(r chi.Router) {
			r.Get("/", h.Leave.List)
			r.Post("/", h.Leave.Create)
		})

		r.Get("/salary", h.Salary.List)

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", h.Profile.Get)
			r.Route("/payment-details", func(r chi.Router) {
				r.Get("/", h.Profile.ListPaymentDetails)
				r.Post("/", h.Profile.CreatePaymentDetails)
				r.Put("/{id}", h.Profile.UpdatePaymentDetails)
				r.Delete("/{id}", h.Profile.DeletePaymentDetails)
			})
		})

		r.Get("/documents/attendance.xlsx", h.Document.AttendanceSheet)
		r.Get("/locations", h.Location.List)
	})
	return r
}
