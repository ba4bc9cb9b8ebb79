package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/numenapp/numen-service/internal/config"
	"github.com/numenapp/numen-service/internal/handler"
	"github.com/numenapp/numen-service/internal/middleware"
	"github.com/numenapp/numen-service/internal/repository"
	"github.com/numenapp/numen-service/internal/scheduler"
	"github.com/numenapp/numen-service/internal/service"
	"github.com/numenapp/numen-service/internal/session"
	"github.com/numenapp/numen-service/internal/utils/email"
	"github.com/numenapp/numen-service/migrations"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Apply schema migrations
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatalf("Failed to set migration dialect: %v", err)
	}
	if err := goose.Up(db, "."); err != nil {
		logger.Fatalf("Failed to apply migrations: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	sessions := session.NewManager()
	svc := service.NewService(repo, sessions, logger, cfg)
	h := handler.NewHandler(svc)
	sender := email.NewSender(cfg, logger)

	// Start reminder scheduler
	reminders := scheduler.NewScheduler(cfg, sessions, sender, logger)
	if err := reminders.Start(); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	defer reminders.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/logout", h.Logout).Methods("POST")
	authRouter.HandleFunc("/dashboard", h.Dashboard).Methods("GET")
	authRouter.HandleFunc("/profile", h.GetProfile).Methods("GET")
	authRouter.HandleFunc("/profile", h.UpdateProfile).Methods("PUT")
	authRouter.HandleFunc("/income/fixed", h.SetFixedIncome).Methods("PUT")
	authRouter.HandleFunc("/income/variable", h.ListVariableIncomes).Methods("GET")
	authRouter.HandleFunc("/income/variable", h.AddVariableIncome).Methods("POST")
	authRouter.HandleFunc("/income/variable/{index}", h.RemoveVariableIncome).Methods("DELETE")
	authRouter.HandleFunc("/expenses", h.SetPlannedExpense).Methods("PUT")
	authRouter.HandleFunc("/goals", h.AddGoal).Methods("POST")
	authRouter.HandleFunc("/goals/{index}/deposit", h.DepositToGoal).Methods("POST")
	authRouter.HandleFunc("/goals/{index}", h.RemoveGoal).Methods("DELETE")
	authRouter.HandleFunc("/payroll", h.GetPayroll).Methods("GET")
	authRouter.HandleFunc("/payroll/workers", h.AddWorker).Methods("POST")
	authRouter.HandleFunc("/payroll/workers/{id}", h.DeactivateWorker).Methods("DELETE")
	authRouter.HandleFunc("/payroll/runs", h.RecordPayrollRun).Methods("POST")
	authRouter.HandleFunc("/payroll/levies/config", h.SetLevyConfig).Methods("PUT")
	authRouter.HandleFunc("/payroll/runs/{index}/levies", h.ComputeLevies).Methods("GET")
	authRouter.HandleFunc("/payroll/runs/{index}/levies", h.RegisterLevyPayment).Methods("POST")
	authRouter.HandleFunc("/payroll/levy-payments/{index}/pay", h.MarkLevyPaymentPaid).Methods("POST")
	authRouter.HandleFunc("/utilities", h.GetUtilities).Methods("GET")
	authRouter.HandleFunc("/utilities/config", h.ConfigureUtility).Methods("PUT")
	authRouter.HandleFunc("/utilities/payments", h.RegisterUtilityPayment).Methods("POST")
	authRouter.HandleFunc("/utilities/pending", h.GetPendingUtilities).Methods("GET")
	authRouter.HandleFunc("/taxes", h.GetTaxes).Methods("GET")
	authRouter.HandleFunc("/taxes/estimate", h.EstimateTax).Methods("POST")
	authRouter.HandleFunc("/taxes/declarations", h.SaveDeclaration).Methods("POST")
	authRouter.HandleFunc("/taxes/declarations/{index}/pay", h.MarkDeclarationPaid).Methods("POST")
	authRouter.HandleFunc("/taxes/calendar", h.GetTaxCalendar).Methods("GET")
	authRouter.HandleFunc("/taxes/export", h.ExportDeclarations).Methods("GET")
	authRouter.HandleFunc("/taxes/profile", h.UpdateFiscalProfile).Methods("PUT")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
