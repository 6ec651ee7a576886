package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/movements.
// Los campos de contexto (dept, machine_code, ...) son opcionales.
type RecordMovementRequest struct {
	ToolCode    string          `json:"tool_code"`
	Direction   string          `json:"direction"` // IN | OUT
	Qty         decimal.Decimal `json:"qty"`
	Dept        string          `json:"dept,omitempty"`
	MachineCode string          `json:"machine_code,omitempty"`
	PartNo      string          `json:"part_no,omitempty"`
	Shift       string          `json:"shift,omitempty"`
	Operator    string          `json:"operator,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	Remark      string          `json:"remark,omitempty"`
	RefDoc      string          `json:"ref_doc,omitempty"`
}

// TransactionResponse movimiento del libro tal como se expone por la API.
type TransactionResponse struct {
	ID          string          `json:"id"`
	ToolCode    string          `json:"tool_code"`
	Direction   string          `json:"direction"`
	Qty         decimal.Decimal `json:"qty"`
	Dept        string          `json:"dept,omitempty"`
	MachineCode string          `json:"machine_code,omitempty"`
	PartNo      string          `json:"part_no,omitempty"`
	Shift       string          `json:"shift,omitempty"`
	Operator    string          `json:"operator,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	Remark      string          `json:"remark,omitempty"`
	RefDoc      string          `json:"ref_doc,omitempty"`
	TxnTime     time.Time       `json:"txn_time"`
}

// ToolResponse herramienta del catálogo maestro.
type ToolResponse struct {
	Code     string          `json:"tool_code"`
	Name     string          `json:"tool_name"`
	Process  string          `json:"process,omitempty"`
	MinStock decimal.Decimal `json:"min_stock"`
	IsActive bool            `json:"is_active"`
}

// ToolBalanceDTO fila del tablero de balances (equivalente a la vista
// v_tool_balance_with_po del sistema original, recalculada en cada consulta).
type ToolBalanceDTO struct {
	ToolCode   string          `json:"tool_code"`
	ToolName   string          `json:"tool_name"`
	Process    string          `json:"process,omitempty"`
	MinStock   decimal.Decimal `json:"min_stock"`
	OnHand     decimal.Decimal `json:"on_hand"`
	OnPO       decimal.Decimal `json:"on_po"`
	IsBelowMin bool            `json:"is_below_min"`
}

// BalanceFilter filtros del tablero de balances.
type BalanceFilter struct {
	Process      string // vacío = todos los procesos
	BelowMinOnly bool
}
