package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la orden de compra. Solo avanzan: APPROVED -> CLOSED.
const (
	POStatusApproved = "APPROVED"
	POStatusClosed   = "CLOSED"
)

// Estados de línea de OC. Derivados siempre con ItemStatusFor.
const (
	ItemStatusPending  = "PENDING"
	ItemStatusPartial  = "PARTIALLY_RECEIVED"
	ItemStatusReceived = "RECEIVED"
)

// PurchaseOrder cabecera de orden de compra.
type PurchaseOrder struct {
	ID        string
	Number    string // único
	Supplier  string
	Approver  string
	Status    string
	CreatedAt time.Time
}

// PurchaseOrderItem línea de orden de compra. ReceivedQty es monótona no
// decreciente y nunca supera RequestedQty; las líneas no se borran (histórico).
type PurchaseOrderItem struct {
	ID           string
	POID         string
	ToolCode     string
	RequestedQty decimal.Decimal
	ReceivedQty  decimal.Decimal
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ItemStatusFor deriva el estado de línea como función pura de cantidades:
// RECEIVED si recibido >= solicitado, PARTIALLY_RECEIVED si 0 < recibido <
// solicitado, PENDING en otro caso.
func ItemStatusFor(received, requested decimal.Decimal) string {
	switch {
	case received.GreaterThanOrEqual(requested):
		return ItemStatusReceived
	case received.GreaterThan(decimal.Zero):
		return ItemStatusPartial
	default:
		return ItemStatusPending
	}
}

// Outstanding cantidad pendiente de recibir (solicitado - recibido), mínimo cero.
func (i *PurchaseOrderItem) Outstanding() decimal.Decimal {
	out := i.RequestedQty.Sub(i.ReceivedQty)
	if out.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return out
}
