package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/Dan9191/rent-service/internal/config"
	"github.com/Dan9191/rent-service/internal/handler"
	"github.com/Dan9191/rent-service/internal/integrations/cbr"
	"github.com/Dan9191/rent-service/internal/middleware"
	"github.com/Dan9191/rent-service/internal/repository"
	"github.com/Dan9191/rent-service/internal/scheduler"
	"github.com/Dan9191/rent-service/internal/service"
	"github.com/Dan9191/rent-service/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
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

	// Initialize layers
	repo := repository.NewRepository(db)
	cbrClient := cbr.NewCBRClient(cfg, logger)
	sender := email.NewSender(cfg, logger)
	svc := service.NewService(repo, logger, cfg, cbrClient, sender)
	h := handler.NewHandler(svc, logger)

	// Start daily reminder scheduler
	sched := scheduler.NewScheduler(svc, logger)
	if err := sched.Start(cfg.ReminderCron); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Key rate endpoint used for late-fee pricing
	r.HandleFunc("/key-rate", func(w http.ResponseWriter, r *http.Request) {
		rate, err := cbrClient.GetKeyRate()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get key rate: %v", err), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]float64{"key_rate": rate})
	}).Methods("GET")

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/properties", h.CreateProperty).Methods("POST")
	authRouter.HandleFunc("/properties", h.ListProperties).Methods("GET")
	authRouter.HandleFunc("/properties/{id}/expenses", h.AddExpense).Methods("POST")
	authRouter.HandleFunc("/properties/{id}/expenses", h.ListExpenses).Methods("GET")
	authRouter.HandleFunc("/tenants", h.CreateTenant).Methods("POST")
	authRouter.HandleFunc("/tenants", h.ListTenants).Methods("GET")
	authRouter.HandleFunc("/tenants/{id}", h.DeleteTenant).Methods("DELETE")
	authRouter.HandleFunc("/tenants/{id}/close", h.CloseContract).Methods("PUT")
	authRouter.HandleFunc("/tenants/{id}/status", h.TenantStatus).Methods("GET")
	authRouter.HandleFunc("/tenants/{id}/late-fee", h.LateFee).Methods("GET")
	authRouter.HandleFunc("/tenants/{id}/payments", h.RecordPayment).Methods("POST")
	authRouter.HandleFunc("/tenants/{id}/payments", h.ListPayments).Methods("GET")
	authRouter.HandleFunc("/tenants/{id}/payments/{paymentID}", h.DeletePayment).Methods("DELETE")
	authRouter.HandleFunc("/debtors", h.ListDebtors).Methods("GET")
	authRouter.HandleFunc("/notifications", h.Notifications).Methods("GET")
	authRouter.HandleFunc("/dashboard", h.Dashboard).Methods("GET")

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
