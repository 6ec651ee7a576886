package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/toolstock-api/internal/application/dto"
	"github.com/jhoicas/toolstock-api/internal/domain"
	"github.com/jhoicas/toolstock-api/internal/domain/entity"
	"github.com/jhoicas/toolstock-api/internal/domain/repository"
)

// POUseCase ciclo de vida de órdenes de compra: cabecera -> líneas ->
// recepciones. Las recepciones concilian recibido contra solicitado y
// alimentan el libro de movimientos (ver receive_item.go).
type POUseCase struct {
	poRepo   repository.PurchaseOrderRepository
	toolRepo repository.ToolRepository
	txRunner TxRunner
}

// NewPOUseCase construye el caso de uso.
func NewPOUseCase(
	poRepo repository.PurchaseOrderRepository,
	toolRepo repository.ToolRepository,
	txRunner TxRunner,
) *POUseCase {
	return &POUseCase{poRepo: poRepo, toolRepo: toolRepo, txRunner: txRunner}
}

// CreatePO crea una cabecera en estado APPROVED. El número de OC es único:
// número vacío -> ErrInvalidInput, repetido -> ErrDuplicate.
func (uc *POUseCase) CreatePO(ctx context.Context, in dto.CreatePORequest) (*dto.POResponse, error) {
	if in.Number == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.poRepo.GetHeaderByNumber(ctx, in.Number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	po := &entity.PurchaseOrder{
		ID:        uuid.New().String(),
		Number:    in.Number,
		Supplier:  in.Supplier,
		Approver:  in.Approver,
		Status:    entity.POStatusApproved,
		CreatedAt: time.Now().In(entity.PlantTZ),
	}
	if err := uc.poRepo.CreateHeader(ctx, po); err != nil {
		return nil, err
	}
	return toPOResponse(po), nil
}

// AddItem agrega una línea a una OC en estado APPROVED. Valida qty > 0 y que
// el código de herramienta exista en el maestro.
func (uc *POUseCase) AddItem(ctx context.Context, poID string, in dto.AddItemRequest) (*dto.POItemResponse, error) {
	if !in.RequestedQty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	po, err := uc.poRepo.GetHeaderByID(ctx, poID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	if po.Status != entity.POStatusApproved {
		return nil, domain.ErrInvalidInput
	}
	tool, err := uc.toolRepo.GetByCode(ctx, in.ToolCode)
	if err != nil {
		return nil, err
	}
	if tool == nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().In(entity.PlantTZ)
	item := &entity.PurchaseOrderItem{
		ID:           uuid.New().String(),
		POID:         po.ID,
		ToolCode:     in.ToolCode,
		RequestedQty: in.RequestedQty,
		ReceivedQty:  decimal.Zero,
		Status:       entity.ItemStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.poRepo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return toPOItemResponse(item), nil
}

// GetPO devuelve la cabecera por id.
func (uc *POUseCase) GetPO(ctx context.Context, poID string) (*dto.POResponse, error) {
	po, err := uc.poRepo.GetHeaderByID(ctx, poID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	return toPOResponse(po), nil
}

// TrackOpenItems lista las líneas no recibidas por completo, opcionalmente
// de una sola OC, ordenadas por fecha de OC y luego id de línea.
func (uc *POUseCase) TrackOpenItems(ctx context.Context, poID string) ([]dto.POItemResponse, error) {
	if poID != "" {
		po, err := uc.poRepo.GetHeaderByID(ctx, poID)
		if err != nil {
			return nil, err
		}
		if po == nil {
			return nil, domain.ErrNotFound
		}
	}
	items, err := uc.poRepo.ListOpenItems(ctx, poID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.POItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, *toPOItemResponse(item))
	}
	return out, nil
}

func toPOResponse(po *entity.PurchaseOrder) *dto.POResponse {
	if po == nil {
		return nil
	}
	return &dto.POResponse{
		ID:        po.ID,
		Number:    po.Number,
		Supplier:  po.Supplier,
		Approver:  po.Approver,
		Status:    po.Status,
		CreatedAt: po.CreatedAt,
	}
}

func toPOItemResponse(item *entity.PurchaseOrderItem) *dto.POItemResponse {
	if item == nil {
		return nil
	}
	return &dto.POItemResponse{
		ID:           item.ID,
		POID:         item.POID,
		ToolCode:     item.ToolCode,
		RequestedQty: item.RequestedQty,
		ReceivedQty:  item.ReceivedQty,
		Status:       item.Status,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}
