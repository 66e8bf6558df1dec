package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/config"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	appHTTP "github.com/cmlabs-hris/hris-payroll-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/workcalendar"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-payroll-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/hris-payroll-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/hris-payroll-go/internal/service/leave"
	payrollService "github.com/cmlabs-hris/hris-payroll-go/internal/service/payroll"
	"github.com/go-chi/httplog/v3"
)

func newLogger(app config.AppConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(app.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-payroll"),
		slog.String("env", app.Env),
	)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	logger := newLogger(cfg.App)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	if cfg.Database.Migrate {
		if err := db.Migrate(ctx); err != nil {
			log.Fatal("Error applying schema: ", err)
		}
	}

	var (
		summaryCache cache.Cache  = cache.Noop{}
		locker       cache.Locker = cache.NewLocalLocker()
	)
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Error connecting to redis: ", err)
		}
		defer redisCache.Close()
		summaryCache, locker = redisCache, redisCache
	}

	calendar, err := workcalendar.New(cfg.Policy.WorkingDaysRule)
	if err != nil {
		log.Fatal("Invalid WORKING_DAYS_RRULE: ", err)
	}
	halfDay, err := attendance.ParseHalfDayPolicy(cfg.Policy.HalfDayPolicy)
	if err != nil {
		log.Fatal("Invalid HALF_DAY_POLICY: ", err)
	}
	cycle, err := leave.ParseCycle(cfg.Policy.LeaveCycle)
	if err != nil {
		log.Fatal("Invalid LEAVE_CYCLE: ", err)
	}
	location := cfg.Location()

	transactor := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveSettingRepo := postgresql.NewLeaveSettingRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	employeeSvc := employeeService.NewEmployeeService(employeeRepo, salaryRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, calendar, halfDay, location)
	leaveSvc := leaveService.NewLeaveService(leaveSettingRepo, leaveRequestRepo, employeeRepo, attendanceRepo, transactor, cycle)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, employeeRepo, salaryRepo, attendanceSvc, transactor, summaryCache, locker)

	router := appHTTP.NewRouter(
		cfg.App,
		logger,
		JWTService,
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
	)

	scheduler := cron.NewScheduler()
	if cfg.Cron.Enabled {
		cron.NewAttendanceJobs(attendanceSvc, location).RegisterJobs(scheduler, cfg.Cron.Interval)
		cron.NewPayrollJobs(payrollSvc, location).RegisterJobs(scheduler, cfg.Cron.Interval)
		scheduler.Start(ctx)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "working_days", calendar.Rule(), "half_day", halfDay, "leave_cycle", cycle)
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
		slog.Error("Server shutdown error", "error", err)
	}
	scheduler.Stop()
}
