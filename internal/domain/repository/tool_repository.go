package repository

import (
	"context"

	"github.com/jhoicas/toolstock-api/internal/domain/entity"
)

// ToolRepository puerto de lectura del catálogo maestro de herramientas.
// El mantenimiento del maestro (altas, edición, desactivación) es de un
// colaborador externo; el núcleo solo consulta.
type ToolRepository interface {
	// GetByCode devuelve la herramienta o nil si el código no existe.
	GetByCode(ctx context.Context, code string) (*entity.Tool, error)
	// ListActive lista las herramientas activas ordenadas por código.
	ListActive(ctx context.Context) ([]*entity.Tool, error)
}
