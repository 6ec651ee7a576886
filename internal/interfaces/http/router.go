package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/toolstock-api/internal/application/purchasing"
	"github.com/jhoicas/toolstock-api/internal/application/stock"
	"github.com/jhoicas/toolstock-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Movements  *stock.RecordMovementUseCase
	Balances   *stock.BalanceUseCase
	Purchasing *purchasing.POUseCase
	Dispatcher stock.AlertDispatcher // nil = alertas desactivadas
	Log        *logger.Logger
}

// Router registra las rutas de la API. La superficie expuesta es exactamente
// la de las operaciones del núcleo; ninguna preocupación de UI cruza hacia
// adentro.
func Router(app *fiber.App, deps RouterDeps) {
	// Métricas Prometheus (promhttp montado vía adaptor)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	stockHandler := NewStockHandler(deps.Movements, deps.Balances, deps.Dispatcher, deps.Log)
	api.Post("/movements", stockHandler.RecordMovement)
	api.Get("/movements/recent", stockHandler.ListRecent)
	api.Get("/tools", stockHandler.ListTools)
	api.Get("/tools/:code/balance", stockHandler.GetBalance)
	api.Get("/balances", stockHandler.ListBalances)
	api.Get("/balances/below-min", stockHandler.ScanBelowMinimum)

	poHandler := NewPurchasingHandler(deps.Purchasing)
	pos := api.Group("/purchase-orders")
	pos.Post("/", poHandler.CreatePO)
	pos.Get("/:id", poHandler.GetPO)
	pos.Post("/:id/items", poHandler.AddItem)
	api.Post("/po-items/:id/receive", poHandler.ReceiveItem)
	api.Get("/po-items/open", poHandler.TrackOpenItems)

	reportHandler := NewReportHandler(deps.Balances)
	api.Get("/reports/balance", reportHandler.BalanceWorkbook)
}
