package http

import (
	"log/slog"

	"github.com/cmlabs-hris/hris-payroll-go/internal/config"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	app config.AppConfig,
	logger *slog.Logger,
	JWTService jwt.Service,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/employees", func(r chi.Router) {
			r.Use(middleware.RequireManager)
			r.Post("/", employeeHandler.Create)
			r.Get("/", employeeHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", employeeHandler.Get)
				r.Post("/deactivate", employeeHandler.Deactivate)
				r.Post("/salaries", employeeHandler.SetSalary)
				r.Get("/salaries", employeeHandler.ListSalaries)
				r.Get("/salaries/current", employeeHandler.CurrentSalary)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/check-in", attendanceHandler.CheckIn)
			r.Post("/check-out", attendanceHandler.CheckOut)
			r.Get("/", attendanceHandler.List)
			r.Get("/summary", attendanceHandler.Summary)
			r.Get("/calendar", attendanceHandler.Calendar)
			r.Get("/{id}", attendanceHandler.Get)
			r.With(middleware.RequireManager).Put("/", attendanceHandler.Record)
		})

		r.Route("/leave", func(r chi.Router) {
			r.Get("/days", leaveHandler.Days)
			r.Get("/balances", leaveHandler.Balances)

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", leaveHandler.ListSettings)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", leaveHandler.CreateSetting)
					r.Put("/{id}", leaveHandler.UpdateSetting)
				})
			})

			r.Route("/requests", func(r chi.Router) {
				r.Post("/", leaveHandler.SubmitRequest)
				r.Get("/", leaveHandler.ListRequests)
				r.Get("/{id}", leaveHandler.GetRequest)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/{id}/approve", leaveHandler.ApproveRequest)
					r.Post("/{id}/reject", leaveHandler.RejectRequest)
				})
			})
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Get("/", payrollHandler.List)
			r.Get("/{id}", payrollHandler.Get)

			// HR only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Post("/process", payrollHandler.Process)
				r.Get("/summary", payrollHandler.Summary)
				r.Put("/{id}", payrollHandler.Update)
				r.Post("/{id}/approve", payrollHandler.Approve)
				r.Post("/{id}/pay", payrollHandler.MarkPaid)
			})
		})
	})

	return r
}
