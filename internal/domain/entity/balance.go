package entity

import "github.com/shopspring/decimal"

// ToolBalance balance derivado de una herramienta. Nunca se almacena: se
// recalcula del libro de movimientos y de las líneas de OC abiertas en cada
// consulta, de modo que no puede divergir de la fuente de verdad.
type ToolBalance struct {
	Tool       *Tool
	OnHand     decimal.Decimal // sum(IN) - sum(OUT)
	OnPO       decimal.Decimal // sum(solicitado - recibido) en líneas abiertas
	IsBelowMin bool            // OnHand < Tool.MinStock (estricto)
}
