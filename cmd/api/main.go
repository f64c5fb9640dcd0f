package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/opshq/office-backend-go/internal/config"
	appHTTP "github.com/opshq/office-backend-go/internal/handler/http"
	"github.com/opshq/office-backend-go/internal/pkg/cron"
	"github.com/opshq/office-backend-go/internal/pkg/database"
	"github.com/opshq/office-backend-go/internal/pkg/email"
	"github.com/opshq/office-backend-go/internal/pkg/jwt"
	"github.com/opshq/office-backend-go/internal/pkg/storage"
	"github.com/opshq/office-backend-go/internal/repository/postgresql"
	attendanceService "github.com/opshq/office-backend-go/internal/service/attendance"
	authService "github.com/opshq/office-backend-go/internal/service/auth"
	dashboardService "github.com/opshq/office-backend-go/internal/service/dashboard"
	employeeService "github.com/opshq/office-backend-go/internal/service/employee"
	leaveService "github.com/opshq/office-backend-go/internal/service/leave"
	"github.com/opshq/office-backend-go/internal/service/payroll"
	taskService "github.com/opshq/office-backend-go/internal/service/task"
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
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	emailSvc := email.NewEmailService(cfg.SMTP)

	calculator := payroll.NewCalculator(attendanceRepo, leaveRepo)
	slipGenerator := payroll.NewPDFSlipGenerator(fileStorage)
	engine := payroll.NewEngine(db, employeeRepo, salaryRepo, calculator, slipGenerator, emailSvc, slog.Default())

	authSvc := authService.NewAuthService(employeeRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo, emailSvc, slog.Default())
	payrollSvc := payroll.NewPayrollService(engine, salaryRepo, fileStorage)
	taskSvc := taskService.NewTaskService(taskRepo, employeeRepo)
	dashboardSvc := dashboardService.NewDashboardService(employeeRepo, attendanceRepo, leaveRepo, taskRepo)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Salary:     appHTTP.NewSalaryHandler(payrollSvc),
		Task:       appHTTP.NewTaskHandler(taskSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
	}

	if cfg.Payroll.AutoRun {
		scheduler := cron.NewScheduler()
		scheduler.AddJob("monthly-payroll", cfg.Payroll.RunInterval, func(ctx context.Context) error {
			now := time.Now().UTC()
			// Last day of the previous month; AddDate(0, -1, 0) misbehaves on the 31st.
			prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
			_, err := engine.RunForMonth(ctx, prev.Year(), int(prev.Month()), cfg.Payroll.GeneratePDFs)
			return err
		})
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(cfg, jwtService, handlers)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Starting server on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error:", err)
	}
}
