package purchasing

import (
	"context"

	"github.com/jhoicas/toolstock-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Es la única frontera transaccional del sistema: la
// recepción de una línea de OC debe avanzar el contador de recepción y
// appendear el movimiento IN como una sola unidad (todo o nada).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txnRepo repository.TransactionRepository,
		poRepo repository.PurchaseOrderRepository,
	) error) error
}
