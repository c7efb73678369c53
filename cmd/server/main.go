package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	attendanceapp "github.com/gymtrack/backend/internal/application/attendance"
	"github.com/gymtrack/backend/internal/application/billing"
	dashboardapp "github.com/gymtrack/backend/internal/application/dashboard"
	memberapp "github.com/gymtrack/backend/internal/application/member"
	planapp "github.com/gymtrack/backend/internal/application/plan"
	"github.com/gymtrack/backend/internal/infrastructure/config"
	"github.com/gymtrack/backend/internal/infrastructure/logger"
	"github.com/gymtrack/backend/internal/infrastructure/persistence"
	"github.com/gymtrack/backend/internal/infrastructure/storage"
	"github.com/gymtrack/backend/internal/interfaces/http/handler"
	"github.com/gymtrack/backend/internal/interfaces/http/middleware"
	"github.com/gymtrack/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting gym backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	memberRepo := persistence.NewGormMemberRepository(db.DB)
	planRepo := persistence.NewGormPlanRepository(db.DB)
	membershipRepo := persistence.NewGormMembershipRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	debtRepo := persistence.NewGormDebtRepository(db.DB)
	attendanceRepo := persistence.NewGormAttendanceRepository(db.DB)
	billingTx := persistence.NewGormBillingTransactionScope(db.DB)

	// Application services
	memberService := memberapp.NewMemberService(memberRepo, membershipRepo, planRepo, debtRepo)
	planService := planapp.NewPlanService(planRepo)
	membershipService := billing.NewMembershipService(membershipRepo, paymentRepo, debtRepo, planRepo, memberRepo, billingTx)
	debtService := billing.NewDebtService(debtRepo, memberRepo, billingTx)
	paymentService := billing.NewPaymentService(paymentRepo, memberRepo)
	attendanceService := attendanceapp.NewAttendanceService(attendanceRepo, memberRepo)
	dashboardService := dashboardapp.NewDashboardService(memberRepo, membershipRepo, paymentRepo, debtRepo, attendanceRepo)

	// Receipt storage on local disk
	receiptStore := storage.NewReceiptStore(cfg.Upload.Dir, cfg.Upload.MaxReceiptSize)

	// HTTP handlers
	memberHandler := handler.NewMemberHandler(memberService, membershipService)
	planHandler := handler.NewPlanHandler(planService)
	membershipHandler := handler.NewMembershipHandler(membershipService, receiptStore)
	debtHandler := handler.NewDebtHandler(debtService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	systemHandler := handler.NewSystemHandler(db.DB)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID first so every later layer can log it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		MaxAge:       12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Uploaded receipts are served directly from disk
	engine.Static("/uploads", cfg.Upload.Dir)

	// Domain route groups
	memberRoutes := router.NewDomainGroup("/members")
	memberRoutes.POST("", memberHandler.Create)
	memberRoutes.GET("", memberHandler.List)
	memberRoutes.GET("/list", memberHandler.ListDetailed)
	memberRoutes.GET("/search", memberHandler.Search)
	memberRoutes.GET("/:id", memberHandler.GetByID)
	memberRoutes.GET("/:id/full", memberHandler.GetFull)
	memberRoutes.PUT("/:id", memberHandler.Update)
	memberRoutes.DELETE("/:id", memberHandler.Deactivate)
	memberRoutes.DELETE("/:id/permanent", memberHandler.Delete)

	planRoutes := router.NewDomainGroup("/plans")
	planRoutes.POST("", planHandler.Create)
	planRoutes.GET("", planHandler.List)
	planRoutes.GET("/:id", planHandler.GetByID)

	membershipRoutes := router.NewDomainGroup("/memberships")
	membershipRoutes.POST("", membershipHandler.Create)
	membershipRoutes.GET("", membershipHandler.List)
	membershipRoutes.GET("/active", membershipHandler.ListActive)
	membershipRoutes.GET("/expiring", membershipHandler.ListExpiring)
	membershipRoutes.GET("/expired", membershipHandler.ListExpired)
	membershipRoutes.GET("/member/:id", membershipHandler.ListByMember)
	membershipRoutes.PUT("/:id", membershipHandler.Update)
	membershipRoutes.POST("/receipt", membershipHandler.UploadReceipt)

	debtRoutes := router.NewDomainGroup("/debts")
	debtRoutes.POST("", debtHandler.Create)
	debtRoutes.GET("", debtHandler.List)
	debtRoutes.GET("/pending", debtHandler.ListPending)
	debtRoutes.GET("/member/:id", debtHandler.ListByMember)
	debtRoutes.GET("/members-with-debt", debtHandler.MembersWithDebt)
	debtRoutes.GET("/:id", debtHandler.GetByID)
	debtRoutes.PUT("/:id", debtHandler.Update)
	debtRoutes.POST("/:id/payments", debtHandler.RegisterPayment)

	paymentRoutes := router.NewDomainGroup("/payments")
	paymentRoutes.POST("", paymentHandler.Create)
	paymentRoutes.GET("", paymentHandler.List)
	paymentRoutes.GET("/month-summary", paymentHandler.MonthSummary)
	paymentRoutes.GET("/by-method", paymentHandler.ByMethod)
	paymentRoutes.GET("/member/:id", paymentHandler.ListByMember)
	paymentRoutes.GET("/:id", paymentHandler.GetByID)

	attendanceRoutes := router.NewDomainGroup("/attendance")
	attendanceRoutes.POST("/check-in/:memberId", attendanceHandler.CheckIn)
	attendanceRoutes.POST("/check-out/:memberId", attendanceHandler.CheckOut)
	attendanceRoutes.GET("/today", attendanceHandler.Today)
	attendanceRoutes.GET("/currently-in", attendanceHandler.CurrentlyIn)
	attendanceRoutes.GET("/stats-by-weekday", attendanceHandler.StatsByWeekday)

	dashboardRoutes := router.NewDomainGroup("/dashboard")
	dashboardRoutes.GET("", dashboardHandler.Summary)
	dashboardRoutes.GET("/top-members", dashboardHandler.TopMembers)
	dashboardRoutes.GET("/income-by-plan", dashboardHandler.IncomeByPlan)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(
		memberRoutes,
		planRoutes,
		membershipRoutes,
		debtRoutes,
		paymentRoutes,
		attendanceRoutes,
		dashboardRoutes,
	)
	r.Setup()

	// Health endpoints live outside API versioning
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
