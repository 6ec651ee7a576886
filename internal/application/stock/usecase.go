package stock

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/toolstock-api/internal/application/dto"
	"github.com/jhoicas/toolstock-api/internal/domain"
	"github.com/jhoicas/toolstock-api/internal/domain/entity"
	"github.com/jhoicas/toolstock-api/internal/domain/repository"
)

// BalanceUseCase motor de balances: deriva on-hand y on-PO por herramienta
// desde el libro de movimientos y las líneas de OC abiertas. Solo lee; nunca
// almacena un balance (el libro append-only es la única fuente de verdad).
type BalanceUseCase struct {
	toolRepo repository.ToolRepository
	txnRepo  repository.TransactionRepository
	poRepo   repository.PurchaseOrderRepository
}

// NewBalanceUseCase construye el motor de balances.
func NewBalanceUseCase(
	toolRepo repository.ToolRepository,
	txnRepo repository.TransactionRepository,
	poRepo repository.PurchaseOrderRepository,
) *BalanceUseCase {
	return &BalanceUseCase{toolRepo: toolRepo, txnRepo: txnRepo, poRepo: poRepo}
}

// ShouldAlert política de alerta compartida entre el guardado de movimientos
// y el barrido diario: alertar exactamente cuando el balance está bajo mínimo.
func ShouldAlert(b dto.ToolBalanceDTO) bool {
	return b.IsBelowMin
}

// ComputeBalance calcula el balance actual de una herramienta. Devuelve
// ErrNotFound si el código no existe en el maestro. on-hand y on-PO se suman
// sobre el estado completo actual, por lo que el resultado nunca queda
// desfasado respecto al libro.
func (uc *BalanceUseCase) ComputeBalance(ctx context.Context, toolCode string) (*dto.ToolBalanceDTO, error) {
	tool, err := uc.toolRepo.GetByCode(ctx, toolCode)
	if err != nil {
		return nil, err
	}
	if tool == nil {
		return nil, domain.ErrNotFound
	}
	bal, err := uc.balanceFor(ctx, tool)
	if err != nil {
		return nil, err
	}
	return &bal, nil
}

// ListBalances calcula el balance de todas las herramientas activas,
// ordenadas por código, con filtros opcionales de proceso y "solo bajo mínimo".
func (uc *BalanceUseCase) ListBalances(ctx context.Context, filter dto.BalanceFilter) ([]dto.ToolBalanceDTO, error) {
	tools, err := uc.toolRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	balances := make([]dto.ToolBalanceDTO, 0, len(tools))
	for _, tool := range tools {
		if filter.Process != "" && tool.Process != filter.Process {
			continue
		}
		bal, err := uc.balanceFor(ctx, tool)
		if err != nil {
			return nil, err
		}
		if filter.BelowMinOnly && !bal.IsBelowMin {
			continue
		}
		balances = append(balances, bal)
	}
	sort.Slice(balances, func(i, j int) bool {
		return balances[i].ToolCode < balances[j].ToolCode
	})
	return balances, nil
}

// ScanBelowMinimum devuelve exactamente las herramientas activas bajo mínimo,
// ordenadas por código (determinista para reportes y comparación en tests).
func (uc *BalanceUseCase) ScanBelowMinimum(ctx context.Context) ([]dto.ToolBalanceDTO, error) {
	return uc.ListBalances(ctx, dto.BalanceFilter{BelowMinOnly: true})
}

// ListTools expone el catálogo maestro activo ordenado por código (solo lectura).
func (uc *BalanceUseCase) ListTools(ctx context.Context) ([]dto.ToolResponse, error) {
	tools, err := uc.toolRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ToolResponse, 0, len(tools))
	for _, t := range tools {
		out = append(out, dto.ToolResponse{
			Code:     t.Code,
			Name:     t.Name,
			Process:  t.Process,
			MinStock: t.MinStock,
			IsActive: t.IsActive,
		})
	}
	return out, nil
}

// balanceFor suma el libro (IN positivo, OUT negativo) y las cantidades
// pendientes de las líneas de OC abiertas de la herramienta.
func (uc *BalanceUseCase) balanceFor(ctx context.Context, tool *entity.Tool) (dto.ToolBalanceDTO, error) {
	txns, err := uc.txnRepo.ListByTool(ctx, tool.Code)
	if err != nil {
		return dto.ToolBalanceDTO{}, err
	}
	onHand := decimal.Zero
	for _, txn := range txns {
		onHand = onHand.Add(txn.SignedQty())
	}

	openItems, err := uc.poRepo.ListOpenItemsByTool(ctx, tool.Code)
	if err != nil {
		return dto.ToolBalanceDTO{}, err
	}
	onPO := decimal.Zero
	for _, item := range openItems {
		onPO = onPO.Add(item.Outstanding())
	}

	return dto.ToolBalanceDTO{
		ToolCode:   tool.Code,
		ToolName:   tool.Name,
		Process:    tool.Process,
		MinStock:   tool.MinStock,
		OnHand:     onHand,
		OnPO:       onPO,
		IsBelowMin: onHand.LessThan(tool.MinStock),
	}, nil
}
