package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/toolstock-api/internal/domain/entity"
	"github.com/jhoicas/toolstock-api/internal/domain/repository"
)

var _ repository.ToolRepository = (*ToolRepo)(nil)

// ToolRepo lectura del catálogo maestro (tool_master) sobre PostgreSQL.
type ToolRepo struct {
	q Querier
}

// NewToolRepository construye el adaptador. Pasar pool o tx (Querier).
func NewToolRepository(q Querier) *ToolRepo {
	return &ToolRepo{q: q}
}

// GetByCode obtiene una herramienta por código; nil si no existe.
func (r *ToolRepo) GetByCode(ctx context.Context, code string) (*entity.Tool, error) {
	query := `
		SELECT tool_code, tool_name, COALESCE(process, ''), min_stock, is_active, created_at, updated_at
		FROM tool_master WHERE tool_code = $1`
	var t entity.Tool
	err := r.q.QueryRow(ctx, query, code).Scan(
		&t.Code, &t.Name, &t.Process, &t.MinStock, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get tool", err)
	}
	return &t, nil
}

// ListActive lista las herramientas activas ordenadas por código.
func (r *ToolRepo) ListActive(ctx context.Context) ([]*entity.Tool, error) {
	query := `
		SELECT tool_code, tool_name, COALESCE(process, ''), min_stock, is_active, created_at, updated_at
		FROM tool_master WHERE is_active ORDER BY tool_code`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, storeErr("list active tools", err)
	}
	defer rows.Close()
	var list []*entity.Tool
	for rows.Next() {
		var t entity.Tool
		if err := rows.Scan(&t.Code, &t.Name, &t.Process, &t.MinStock, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, storeErr("scan tool", err)
		}
		list = append(list, &t)
	}
	if rows.Err() != nil {
		return nil, storeErr("list active tools", rows.Err())
	}
	return list, nil
}
