package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tool herramienta del catálogo maestro (tool_master).
// El mantenimiento del maestro es externo; el núcleo solo lo consulta.
// Las herramientas se desactivan lógicamente, nunca se borran: el libro
// de movimientos las referencia por código.
type Tool struct {
	Code      string          // tool_code, clave primaria
	Name      string
	Process   string          // proceso/categoría de planta
	MinStock  decimal.Decimal // umbral mínimo de stock (>= 0)
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
