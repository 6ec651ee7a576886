package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de movimiento.
const (
	DirectionIN  = "IN"  // retorno / recepción
	DirectionOUT = "OUT" // salida / consumo
)

// PlantTZ zona horaria fija de la planta (GMT+7).
// Todos los txn_time se registran con este offset.
var PlantTZ = time.FixedZone("UTC+7", 7*60*60)

// StockTransaction entrada inmutable del libro de movimientos (tool_stock_txn).
// Una vez escrita nunca se modifica ni se borra: las correcciones son
// movimientos compensatorios nuevos.
type StockTransaction struct {
	ID          string
	ToolCode    string
	Direction   string          // IN | OUT
	Qty         decimal.Decimal // siempre > 0; el signo lo da Direction
	Dept        string
	MachineCode string
	PartNo      string
	Shift       string          // ej. 01D / 01N
	Operator    string
	Reason      string
	Remark      string
	RefDoc      string          // documento de referencia (ej. línea de OC)
	TxnTime     time.Time
	CreatedAt   time.Time
}

// SignedQty cantidad con signo: positiva para IN, negativa para OUT.
// La suma de SignedQty sobre el libro es el on-hand (conmutativa,
// independiente del orden de inserción).
func (t *StockTransaction) SignedQty() decimal.Decimal {
	if t.Direction == DirectionOUT {
		return t.Qty.Neg()
	}
	return t.Qty
}

// ValidDirection indica si d es una dirección de movimiento conocida.
func ValidDirection(d string) bool {
	return d == DirectionIN || d == DirectionOUT
}
