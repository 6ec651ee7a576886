package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/toolstock-api/internal/domain/entity"
	"github.com/jhoicas/toolstock-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const txnColumns = `
	id, tool_code, direction, qty,
	COALESCE(dept, ''), COALESCE(machine_code, ''), COALESCE(part_no, ''),
	COALESCE(shift, ''), COALESCE(operator, ''), COALESCE(reason, ''),
	COALESCE(remark, ''), COALESCE(ref_doc, ''), txn_time, created_at`

// TransactionRepo libro de movimientos (tool_stock_txn) sobre PostgreSQL.
// Solo INSERT y SELECT: el libro es append-only por contrato.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create appendea un movimiento. La serialización de inserciones concurrentes
// para la misma herramienta la da el INSERT atómico de PostgreSQL; el balance
// se recalcula siempre del libro completo, así que el orden de llegada no
// altera el resultado.
func (r *TransactionRepo) Create(ctx context.Context, txn *entity.StockTransaction) error {
	query := `
		INSERT INTO tool_stock_txn (id, tool_code, direction, qty, dept, machine_code,
			part_no, shift, operator, reason, remark, ref_doc, txn_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		txn.ID, txn.ToolCode, txn.Direction, txn.Qty,
		nullIfEmpty(txn.Dept), nullIfEmpty(txn.MachineCode), nullIfEmpty(txn.PartNo),
		nullIfEmpty(txn.Shift), nullIfEmpty(txn.Operator), nullIfEmpty(txn.Reason),
		nullIfEmpty(txn.Remark), nullIfEmpty(txn.RefDoc), txn.TxnTime, txn.CreatedAt,
	)
	if err != nil {
		return storeErr("insert txn", err)
	}
	return nil
}

// ListByTool devuelve todos los movimientos de una herramienta, más antiguos
// primero.
func (r *TransactionRepo) ListByTool(ctx context.Context, toolCode string) ([]*entity.StockTransaction, error) {
	query := `SELECT ` + txnColumns + ` FROM tool_stock_txn WHERE tool_code = $1 ORDER BY txn_time`
	rows, err := r.q.Query(ctx, query, toolCode)
	if err != nil {
		return nil, storeErr("list txns by tool", err)
	}
	return scanTxns(rows)
}

// ListRecent devuelve los últimos movimientos, más reciente primero.
func (r *TransactionRepo) ListRecent(ctx context.Context, limit int) ([]*entity.StockTransaction, error) {
	query := `SELECT ` + txnColumns + ` FROM tool_stock_txn ORDER BY txn_time DESC LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, storeErr("list recent txns", err)
	}
	return scanTxns(rows)
}

func scanTxns(rows pgx.Rows) ([]*entity.StockTransaction, error) {
	defer rows.Close()
	var list []*entity.StockTransaction
	for rows.Next() {
		var t entity.StockTransaction
		if err := rows.Scan(
			&t.ID, &t.ToolCode, &t.Direction, &t.Qty,
			&t.Dept, &t.MachineCode, &t.PartNo,
			&t.Shift, &t.Operator, &t.Reason,
			&t.Remark, &t.RefDoc, &t.TxnTime, &t.CreatedAt,
		); err != nil {
			return nil, storeErr("scan txn", err)
		}
		list = append(list, &t)
	}
	if rows.Err() != nil {
		return nil, storeErr("iterate txns", rows.Err())
	}
	return list, nil
}
