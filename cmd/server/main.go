// Package main runs the PedeSim HTTP server with WebSocket and graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pedesim/backend/config"
	"github.com/pedesim/backend/internal/auth"
	"github.com/pedesim/backend/internal/campaigns"
	"github.com/pedesim/backend/internal/items"
	"github.com/pedesim/backend/internal/meritus"
	"github.com/pedesim/backend/internal/middleware"
	"github.com/pedesim/backend/internal/orders"
	"github.com/pedesim/backend/internal/organizations"
	"github.com/pedesim/backend/internal/payments"
	"github.com/pedesim/backend/internal/realtime"
	"github.com/pedesim/backend/internal/reconcile"
	"github.com/pedesim/backend/internal/reports"
	"github.com/pedesim/backend/pkg/database"
	"github.com/pedesim/backend/pkg/redis"
	"github.com/pedesim/backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	redisPubSub := realtime.NewRedisPubSub(rdb.Client, logger)
	hub := realtime.NewHub(logger, redisPubSub, redisPubSub)

	// Auth
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, logger)

	// Organizations and campaigns
	orgRepo := organizations.NewRepository(pool)
	orgHandler := organizations.NewHandler(orgRepo)
	campaignRepo := campaigns.NewRepository(pool)
	campaignHandler := campaigns.NewHandler(campaignRepo)

	// Menu items
	itemsRepo := items.NewRepository(pool)
	itemsHandler := items.NewHandler(itemsRepo)

	// Orders (storefront + admin)
	ordersRepo := orders.NewRepository(pool)
	ordersHandler := orders.NewHandler(ordersRepo, itemsRepo, hub, cfg.Pix, logger)

	// Reconciliation and payment history
	reconcileRepo := reconcile.NewRepository(pool)
	reconcileHandler := reconcile.NewHandler(reconcileRepo, ordersRepo, hub, logger)
	paymentsRepo := payments.NewRepository(pool)
	paymentsHandler := payments.NewHandler(paymentsRepo)

	// Production report
	reportsRepo := reports.NewRepository(pool)
	reportsHandler := reports.NewHandler(reportsRepo)

	// Meritus (read-only)
	meritusRepo := meritus.NewRepository(pool)
	meritusHandler := meritus.NewHandler(meritusRepo)

	jwtValidate := func(token string) (userID uuid.UUID, perfil string, err error) {
		claims, err := jwtService.Validate(token)
		if err != nil {
			return uuid.Nil, "", err
		}
		return claims.UserID, claims.Perfil, nil
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Storefront (public, anonymous)
	router.GET("/loja", ordersHandler.Storefront)
	router.POST("/pedidos", ordersHandler.Create)
	router.GET("/pedidos/:id/pix", ordersHandler.Pix)
	router.GET("/pedidos/:id/qrcode.png", ordersHandler.QRCodePNG)

	// Auth (public)
	router.POST("/auth/login", authHandler.Login)

	// Admin API (JWT required; operador or admin)
	admin := router.Group("/admin")
	admin.Use(middleware.JWT(jwtService))
	{
		// Panel users (admin only)
		admin.POST("/usuarios", middleware.RequireRole("admin"), authHandler.Register)
		admin.GET("/usuarios", middleware.RequireRole("admin"), authHandler.List)

		// Organizations (admin only)
		admin.GET("/organizacoes", orgHandler.List)
		admin.POST("/organizacoes", middleware.RequireRole("admin"), orgHandler.Create)
		admin.GET("/organizacoes/:id", orgHandler.Get)
		admin.PUT("/organizacoes/:id", middleware.RequireRole("admin"), orgHandler.Update)
		admin.GET("/organizacoes/:id/campanhas", campaignHandler.List)

		// Campaigns
		admin.POST("/campanhas", middleware.RequireRole("admin"), campaignHandler.Create)
		admin.GET("/campanhas/:id", campaignHandler.Get)
		admin.PUT("/campanhas/:id", middleware.RequireRole("admin"), campaignHandler.Update)
		admin.POST("/campanhas/:id/ativar", middleware.RequireRole("admin"), campaignHandler.Activate)
		admin.POST("/campanhas/:id/desativar", middleware.RequireRole("admin"), campaignHandler.Deactivate)
		admin.DELETE("/campanhas/:id", middleware.RequireRole("admin"), campaignHandler.Delete)

		// Menu items
		admin.GET("/campanhas/:id/itens", itemsHandler.List)
		admin.POST("/campanhas/:id/itens", itemsHandler.Add)
		admin.PUT("/campanhas/:id/itens/ordem", itemsHandler.Reorder)
		admin.PATCH("/campanhas/:id/itens/:item_id", itemsHandler.SetActive)
		admin.DELETE("/campanhas/:id/itens/:item_id", itemsHandler.Remove)
		admin.PUT("/itens/:id", itemsHandler.Rename)

		// Orders
		admin.GET("/campanhas/:id/pedidos", ordersHandler.List)
		admin.GET("/campanhas/:id/pedidos.csv", ordersHandler.ExportCSV)
		admin.GET("/pedidos/:id/itens", ordersHandler.Lines)
		admin.PATCH("/pedidos/:id/status", ordersHandler.UpdateStatus)

		// Reconciliation
		admin.GET("/campanhas/:id/conferencia", reconcileHandler.Suggestions)
		admin.POST("/pedidos/:id/pagar", reconcileHandler.MarkPaid)
		admin.POST("/pedidos/:id/analise", reconcileHandler.MarkUnderReview)

		// Payment history
		admin.GET("/campanhas/:id/pagamentos", paymentsHandler.List)
		admin.GET("/campanhas/:id/pagamentos.csv", paymentsHandler.ExportCSV)

		// Production report
		admin.GET("/campanhas/:id/producao", reportsHandler.Production)
		admin.GET("/campanhas/:id/producao.csv", reportsHandler.ProductionCSV)

		// Meritus (read-only)
		admin.GET("/meritus/programas", meritusHandler.Programs)
		admin.GET("/meritus/programas/:id/periodos", meritusHandler.Periods)
		admin.GET("/meritus/programas/:id/criterios", meritusHandler.Criteria)
		admin.GET("/meritus/programas/:id/periodos/:periodo_id/ranking", meritusHandler.Ranking)
	}

	// WebSocket (token in query; no Authorization header required)
	router.GET("/ws", realtime.ServeWs(hub, logger, jwtValidate))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
