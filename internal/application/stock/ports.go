package stock

import (
	"context"

	"github.com/jhoicas/toolstock-api/internal/application/dto"
)

// AlertDispatcher puerto de entrega de alertas de stock bajo mínimo.
// El núcleo entrega hechos estructurados; el adaptador compone el texto y lo
// envía. La entrega es best-effort: un fallo se registra y nunca aborta la
// operación que la disparó.
type AlertDispatcher interface {
	DispatchLowStock(ctx context.Context, balances []dto.ToolBalanceDTO) error
}
