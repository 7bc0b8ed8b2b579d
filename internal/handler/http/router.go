package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/hadirku/hadirku-backend-go/internal/handler/http/middleware"
	"github.com/hadirku/hadirku-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	User       UserHandler
	Config     ConfigHandler
	Report     ReportHandler
}

func NewRouter(jwtService jwt.Service, h Handlers, uploadsDir string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hadirku-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Stored attendance photos
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
				r.Post("/change-password", h.Auth.ChangePassword)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/today", h.Attendance.GetToday)
				r.Get("/my", h.Attendance.GetMyAttendance)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Attendance.List)
					r.Get("/export", h.Report.ExportAttendance)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/", h.Leave.Submit)
				r.Get("/my", h.Leave.GetMyRequests)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Leave.List)
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/reject", h.Leave.Reject)
				})
			})

			r.Route("/config", func(r chi.Router) {
				r.Get("/", h.Config.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/office-location", h.Config.SetOfficeLocation)
				})
			})

			// Admin only
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/", h.User.Create)
				r.Get("/", h.User.List)
				r.Post("/{id}/reset-password", h.User.ResetPassword)
			})
		})
	})
	return r
}
