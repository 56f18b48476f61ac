package http

import (
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"

	"github.com/peopledesk/peopledesk-api/internal/handler/http/middleware"
	"github.com/peopledesk/peopledesk-api/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	Profile    ProfileHandler
	Role       RoleHandler
	Leave      LeaveHandler
	Attendance AttendanceHandler
	Activity   ActivityHandler
}

func NewRouter(jwtService jwt.Service, h Handlers, frontendURL string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "peopledesk-api"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			// Credential endpoints are brute-forceable, keep them throttled.
			r.Use(httprate.LimitByIP(20, 1*time.Minute))

			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", h.Auth.LoginWithGoogle)
				r.Route("/callback", func(r chi.Router) {
					r.Get("/google", h.Auth.OAuthCallbackGoogle)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/profiles", func(r chi.Router) {
				r.Get("/", h.Profile.List)
				r.Post("/", h.Profile.Create)
				r.Get("/me", h.Profile.GetMe)
				r.Put("/me", h.Profile.UpdateMe)
				r.Get("/{id}", h.Profile.Get)
				r.Put("/{id}", h.Profile.Update)
				r.Delete("/{id}", h.Profile.Delete)
			})

			r.Route("/roles", func(r chi.Router) {
				r.Get("/me", h.Role.GetMyRole)
				r.Route("/users/{userID}", func(r chi.Router) {
					r.Get("/", h.Role.ListByUser)
					r.Post("/", h.Role.Assign)
					r.Delete("/{role}", h.Role.Revoke)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Get("/", h.Leave.List)
				r.Post("/", h.Leave.Submit)
				r.Get("/{id}", h.Leave.Get)
				r.Put("/{id}", h.Leave.Update)
				r.Post("/{id}/approve", h.Leave.Approve)
				r.Post("/{id}/reject", h.Leave.Reject)
				r.Delete("/{id}", h.Leave.Delete)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/{id}/check-out", h.Attendance.CheckOut)
				r.Delete("/{id}", h.Attendance.Delete)
			})

			r.Get("/activity-logs", h.Activity.List)
		})
	})
	return r
}
