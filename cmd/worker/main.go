package main

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/toolstock-api/internal/application/stock"
	"github.com/jhoicas/toolstock-api/internal/domain/entity"
	"github.com/jhoicas/toolstock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/toolstock-api/internal/infrastructure/telegram"
	"github.com/jhoicas/toolstock-api/internal/tasks"
	"github.com/jhoicas/toolstock-api/pkg/config"
	"github.com/jhoicas/toolstock-api/pkg/logger"
)

// El worker corre el barrido diario en un proceso separado del API: consume
// las mismas operaciones del núcleo por las mismas interfaces, sin estado
// compartido con el camino de las peticiones interactivas.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().Str("env", cfg.App.Env).Msg("iniciando worker")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	toolRepo := postgres.NewToolRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	balancesUC := stock.NewBalanceUseCase(toolRepo, txnRepo, poRepo)

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

	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Addr}

	// Scheduler: encola el barrido una vez al día en hora de planta (GMT+7).
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{Location: entity.PlantTZ})
	if _, err := scheduler.Register(cfg.Scan.Cron, tasks.NewDailyScanTask()); err != nil {
		log.Fatal().Err(err).Msg("registrar barrido diario")
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Fatal().Err(err).Msg("scheduler finalizado")
		}
	}()

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
	})
	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeDailyScan, tasks.NewScanHandler(balancesUC, dispatcher, log))

	if err := srv.Run(mux); err != nil {
		log.Fatal().Err(err).Msg("worker finalizado")
	}
}
