package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePORequest body para POST /api/purchase-orders.
type CreatePORequest struct {
	Number   string `json:"po_number"`
	Supplier string `json:"supplier,omitempty"`
	Approver string `json:"approver,omitempty"`
}

// POResponse cabecera de orden de compra.
type POResponse struct {
	ID        string    `json:"id"`
	Number    string    `json:"po_number"`
	Supplier  string    `json:"supplier,omitempty"`
	Approver  string    `json:"approver,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// AddItemRequest body para POST /api/purchase-orders/:id/items.
type AddItemRequest struct {
	ToolCode     string          `json:"tool_code"`
	RequestedQty decimal.Decimal `json:"requested_qty"`
}

// POItemResponse línea de orden de compra.
type POItemResponse struct {
	ID           string          `json:"id"`
	POID         string          `json:"po_id"`
	ToolCode     string          `json:"tool_code"`
	RequestedQty decimal.Decimal `json:"requested_qty"`
	ReceivedQty  decimal.Decimal `json:"received_qty"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ReceiveItemRequest body para POST /api/po-items/:id/receive.
type ReceiveItemRequest struct {
	Qty decimal.Decimal `json:"qty"`
}

// ReceiveItemResponse resultado de una recepción: la línea actualizada y el
// movimiento IN que quedó en el libro (misma transacción de BD).
type ReceiveItemResponse struct {
	Item        POItemResponse      `json:"item"`
	Transaction TransactionResponse `json:"transaction"`
}
