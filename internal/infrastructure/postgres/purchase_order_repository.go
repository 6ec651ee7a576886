package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/toolstock-api/internal/domain"
	"github.com/jhoicas/toolstock-api/internal/domain/entity"
	"github.com/jhoicas/toolstock-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo cabeceras y líneas de OC sobre PostgreSQL (usable con
// pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// CreateHeader persiste una cabecera nueva.
func (r *PurchaseOrderRepo) CreateHeader(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, po_number, supplier, approver, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.Number, nullIfEmpty(po.Supplier), nullIfEmpty(po.Approver), po.Status, po.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("insert po header", err)
	}
	return nil
}

const poHeaderColumns = `id, po_number, COALESCE(supplier, ''), COALESCE(approver, ''), status, created_at`

// GetHeaderByID obtiene una cabecera por id; nil si no existe.
func (r *PurchaseOrderRepo) GetHeaderByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.getHeader(ctx, `SELECT `+poHeaderColumns+` FROM purchase_orders WHERE id = $1`, id)
}

// GetHeaderByNumber obtiene una cabecera por número de OC; nil si no existe.
func (r *PurchaseOrderRepo) GetHeaderByNumber(ctx context.Context, number string) (*entity.PurchaseOrder, error) {
	return r.getHeader(ctx, `SELECT `+poHeaderColumns+` FROM purchase_orders WHERE po_number = $1`, number)
}

func (r *PurchaseOrderRepo) getHeader(ctx context.Context, query, arg string) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&po.ID, &po.Number, &po.Supplier, &po.Approver, &po.Status, &po.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get po header", err)
	}
	return &po, nil
}

// UpdateHeaderStatus actualiza el estado de la cabecera (APPROVED -> CLOSED).
func (r *PurchaseOrderRepo) UpdateHeaderStatus(ctx context.Context, id, status string) error {
	_, err := r.q.Exec(ctx, `UPDATE purchase_orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return storeErr("update po status", err)
	}
	return nil
}

// CreateItem persiste una línea nueva.
func (r *PurchaseOrderRepo) CreateItem(ctx context.Context, item *entity.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_order_items (id, po_id, tool_code, requested_qty, received_qty, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.POID, item.ToolCode, item.RequestedQty, item.ReceivedQty,
		item.Status, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return storeErr("insert po item", err)
	}
	return nil
}

const poItemColumns = `id, po_id, tool_code, requested_qty, received_qty, status, created_at, updated_at`

// GetItemByID obtiene una línea por id; nil si no existe.
func (r *PurchaseOrderRepo) GetItemByID(ctx context.Context, id string) (*entity.PurchaseOrderItem, error) {
	return r.getItem(ctx, `SELECT `+poItemColumns+` FROM purchase_order_items WHERE id = $1`, id)
}

// GetItemForUpdate bloquea la fila de la línea (SELECT FOR UPDATE) para que
// recepciones concurrentes sobre la misma línea se serialicen. Usar solo
// dentro de una transacción.
func (r *PurchaseOrderRepo) GetItemForUpdate(ctx context.Context, id string) (*entity.PurchaseOrderItem, error) {
	return r.getItem(ctx, `SELECT `+poItemColumns+` FROM purchase_order_items WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) getItem(ctx context.Context, query, arg string) (*entity.PurchaseOrderItem, error) {
	var item entity.PurchaseOrderItem
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&item.ID, &item.POID, &item.ToolCode, &item.RequestedQty, &item.ReceivedQty,
		&item.Status, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get po item", err)
	}
	return &item, nil
}

// UpdateItemReceived avanza el contador de recepción y su estado derivado.
// Única mutación permitida sobre una línea.
func (r *PurchaseOrderRepo) UpdateItemReceived(ctx context.Context, id string, received decimal.Decimal, status string) error {
	query := `
		UPDATE purchase_order_items
		SET received_qty = $2, status = $3, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, received, status)
	if err != nil {
		return storeErr("update po item received", err)
	}
	return nil
}

// ListItemsByPO lista todas las líneas de una OC.
func (r *PurchaseOrderRepo) ListItemsByPO(ctx context.Context, poID string) ([]*entity.PurchaseOrderItem, error) {
	query := `SELECT ` + poItemColumns + ` FROM purchase_order_items WHERE po_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, poID)
	if err != nil {
		return nil, storeErr("list po items", err)
	}
	return scanItems(rows)
}

// ListOpenItems lista líneas con estado != RECEIVED, ordenadas por fecha de
// creación de la OC y luego id de línea. poID vacío = todas las OCs.
func (r *PurchaseOrderRepo) ListOpenItems(ctx context.Context, poID string) ([]*entity.PurchaseOrderItem, error) {
	query := `
		SELECT i.id, i.po_id, i.tool_code, i.requested_qty, i.received_qty, i.status, i.created_at, i.updated_at
		FROM purchase_order_items i
		JOIN purchase_orders p ON p.id = i.po_id
		WHERE i.status <> $1`
	args := []any{entity.ItemStatusReceived}
	if poID != "" {
		query += ` AND i.po_id = $2`
		args = append(args, poID)
	}
	query += ` ORDER BY p.created_at, i.id`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list open po items", err)
	}
	return scanItems(rows)
}

// ListOpenItemsByTool lista líneas abiertas de una herramienta (cálculo de on-PO).
func (r *PurchaseOrderRepo) ListOpenItemsByTool(ctx context.Context, toolCode string) ([]*entity.PurchaseOrderItem, error) {
	query := `SELECT ` + poItemColumns + ` FROM purchase_order_items WHERE tool_code = $1 AND status <> $2 ORDER BY id`
	rows, err := r.q.Query(ctx, query, toolCode, entity.ItemStatusReceived)
	if err != nil {
		return nil, storeErr("list open items by tool", err)
	}
	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]*entity.PurchaseOrderItem, error) {
	defer rows.Close()
	var list []*entity.PurchaseOrderItem
	for rows.Next() {
		var item entity.PurchaseOrderItem
		if err := rows.Scan(
			&item.ID, &item.POID, &item.ToolCode, &item.RequestedQty, &item.ReceivedQty,
			&item.Status, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, storeErr("scan po item", err)
		}
		list = append(list, &item)
	}
	if rows.Err() != nil {
		return nil, storeErr("iterate po items", rows.Err())
	}
	return list, nil
}
