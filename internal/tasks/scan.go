package tasks

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/toolstock-api/internal/application/stock"
	"github.com/jhoicas/toolstock-api/pkg/logger"
	"github.com/jhoicas/toolstock-api/pkg/metrics"
)

var _ asynq.Handler = (*ScanHandler)(nil)

// ScanHandler ejecuta el barrido diario: calcula balances, filtra bajo mínimo
// y despacha alertas. Corre en el proceso worker, separado del servidor HTTP,
// y usa las mismas operaciones del núcleo que las peticiones interactivas.
// Solo lee, no bloquea escrituras concurrentes.
type ScanHandler struct {
	balances   *stock.BalanceUseCase
	dispatcher stock.AlertDispatcher // puede ser nil (alertas desactivadas)
	log        *logger.Logger
}

// NewScanHandler construye el handler con sus dependencias inyectadas.
func NewScanHandler(balances *stock.BalanceUseCase, dispatcher stock.AlertDispatcher, log *logger.Logger) *ScanHandler {
	return &ScanHandler{balances: balances, dispatcher: dispatcher, log: log}
}

// ProcessTask implementa asynq.Handler. Un fallo de lectura del almacén hace
// fallar la tarea (asynq reintenta); un fallo de entrega de alerta solo se
// loggea, el barrido ya cumplió su parte.
func (h *ScanHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	balances, err := h.balances.ScanBelowMinimum(ctx)
	if err != nil {
		return err
	}
	metrics.ScansRun.Inc()

	h.log.Info().Int("below_min", len(balances)).Msg("barrido diario completado")
	if len(balances) == 0 || h.dispatcher == nil {
		return nil
	}
	if err := h.dispatcher.DispatchLowStock(ctx, balances); err != nil {
		h.log.Warn().Err(err).Msg("alertas del barrido no entregadas")
	}
	return nil
}
