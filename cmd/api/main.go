package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/jhoicas/toolstock-api/internal/application/purchasing"
	"github.com/jhoicas/toolstock-api/internal/application/stock"
	"github.com/jhoicas/toolstock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/toolstock-api/internal/infrastructure/telegram"
	httpRouter "github.com/jhoicas/toolstock-api/internal/interfaces/http"
	"github.com/jhoicas/toolstock-api/pkg/config"
	"github.com/jhoicas/toolstock-api/pkg/logger"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := runMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Msg("migraciones aplicadas")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	toolRepo := postgres.NewToolRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	balancesUC := stock.NewBalanceUseCase(toolRepo, txnRepo, poRepo)
	movementsUC := stock.NewRecordMovementUseCase(toolRepo, txnRepo)
	purchasingUC := purchasing.NewPOUseCase(poRepo, toolRepo, txRunner)

	// Alertas por Telegram; sin token/chat el despachador queda nil y las
	// alertas solo se loggean.
	notifier, err := telegram.New(cfg.Telegram.Token, cfg.Telegram.ChatID)
	if err != nil {
		log.Fatal().Err(err).Msg("notificador Telegram")
	}
	var dispatcher stock.AlertDispatcher
	if notifier != nil {
		dispatcher = notifier
	} else {
		log.Warn().Msg("alertas Telegram desactivadas (sin TELEGRAM_TOKEN/TELEGRAM_CHAT_ID)")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Movements:  movementsUC,
		Balances:   balancesUC,
		Purchasing: purchasingUC,
		Dispatcher: dispatcher,
		Log:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
