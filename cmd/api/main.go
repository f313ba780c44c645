package main

import (
	"context"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	httpadp "lendcore-backend/internal/adapter/http"
	"lendcore-backend/internal/adapter/middleware"
	"lendcore-backend/internal/adapter/repository/mysql"
	"lendcore-backend/internal/config"
	"lendcore-backend/internal/infrastructure/cache"
	"lendcore-backend/internal/infrastructure/db"
	"lendcore-backend/internal/notification"
	"lendcore-backend/internal/scheduler"
	paymentUC "lendcore-backend/internal/usecase/payment"
	penaltyUC "lendcore-backend/internal/usecase/penalty"
	scheduleUC "lendcore-backend/internal/usecase/schedule"
	"lendcore-backend/internal/usecase/status"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	loans := mysql.NewLoanRepository(gdb)
	installments := mysql.NewInstallmentRepository(gdb)
	penalties := mysql.NewPenaltyRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	classifier := status.NewClassifier(cfg.StatusUnitDuration())
	dispatcher := notification.NewLogDispatcher(log)

	scheduleUsecase := scheduleUC.NewUsecase(loans, installments, uow)
	openTerm := paymentUC.NewOpenTermRecalculator(classifier)
	allocator := paymentUC.NewAllocator(loans, installments, uow, classifier, openTerm, dispatcher, log)
	machine := penaltyUC.NewMachine(loans, installments, penalties, uow, classifier)

	reconciler := scheduler.NewReconciler(loans, installments, uow, classifier, log)
	cr := cron.New()
	if _, err := cr.AddFunc(cfg.ReconcileSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		reconciler.RunOnce(ctx)
	}); err != nil {
		log.Fatalf("reconcile spec %q: %v", cfg.ReconcileSpec, err)
	}
	cr.Start()
	defer cr.Stop()

	h := httpadp.NewHandler()
	loanHandler := httpadp.NewLoanHandler(scheduleUsecase)
	paymentHandler := httpadp.NewPaymentHandler(allocator)
	penaltyHandler := httpadp.NewPenaltyHandler(machine)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)
	e.POST("/loans/disburse", loanHandler.Disburse)
	e.GET("/loans/:loan_id", loanHandler.GetLoan)
	e.GET("/loans/:loan_id/installments", loanHandler.ListInstallments)
	e.POST("/payments", paymentHandler.PostPayment, idemp)
	e.POST("/penalties", penaltyHandler.Endorse)
	e.POST("/penalties/:endorsement_id/decision", penaltyHandler.Decide)

	addr := ":" + cfg.AppPort
	log.Infof("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
