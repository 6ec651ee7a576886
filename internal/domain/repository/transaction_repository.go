package repository

import (
	"context"

	"github.com/jhoicas/toolstock-api/internal/domain/entity"
)

// TransactionRepository puerto del libro de movimientos (tool_stock_txn).
// El libro es append-only: no hay Update ni Delete.
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.StockTransaction) error
	// ListByTool devuelve todos los movimientos de una herramienta.
	ListByTool(ctx context.Context, toolCode string) ([]*entity.StockTransaction, error)
	// ListRecent devuelve los últimos movimientos, más reciente primero.
	ListRecent(ctx context.Context, limit int) ([]*entity.StockTransaction, error)
}
