package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/toolstock-api/internal/domain/entity"
)

// PurchaseOrderRepository puerto de persistencia de órdenes de compra
// (cabecera y líneas). Las líneas nunca se borran; la única mutación
// permitida es el avance del contador de recepción y su estado.
type PurchaseOrderRepository interface {
	CreateHeader(ctx context.Context, po *entity.PurchaseOrder) error
	// GetHeaderByID devuelve la cabecera o nil si no existe.
	GetHeaderByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// GetHeaderByNumber devuelve la cabecera por número de OC o nil.
	GetHeaderByNumber(ctx context.Context, number string) (*entity.PurchaseOrder, error)
	UpdateHeaderStatus(ctx context.Context, id, status string) error

	CreateItem(ctx context.Context, item *entity.PurchaseOrderItem) error
	// GetItemByID devuelve la línea o nil si no existe.
	GetItemByID(ctx context.Context, id string) (*entity.PurchaseOrderItem, error)
	// GetItemForUpdate bloquea la fila de la línea (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetItemForUpdate(ctx context.Context, id string) (*entity.PurchaseOrderItem, error)
	UpdateItemReceived(ctx context.Context, id string, received decimal.Decimal, status string) error
	ListItemsByPO(ctx context.Context, poID string) ([]*entity.PurchaseOrderItem, error)
	// ListOpenItems lista líneas con estado != RECEIVED; poID vacío = todas.
	// Orden: fecha de creación de la OC, luego id de línea.
	ListOpenItems(ctx context.Context, poID string) ([]*entity.PurchaseOrderItem, error)
	// ListOpenItemsByTool lista líneas abiertas de una herramienta (para on-PO).
	ListOpenItemsByTool(ctx context.Context, toolCode string) ([]*entity.PurchaseOrderItem, error)
}
