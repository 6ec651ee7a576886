package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/toolstock-api/internal/application/dto"
	"github.com/jhoicas/toolstock-api/internal/domain"
	"github.com/jhoicas/toolstock-api/internal/domain/entity"
	"github.com/jhoicas/toolstock-api/internal/domain/repository"
	"github.com/jhoicas/toolstock-api/pkg/metrics"
)

// RecordMovementUseCase registra movimientos IN/OUT en el libro.
// El registro no notifica: quien llama decide si recalcula el balance y
// despacha la alerta (no hay re-consulta escondida dentro del write).
type RecordMovementUseCase struct {
	toolRepo repository.ToolRepository
	txnRepo  repository.TransactionRepository
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(
	toolRepo repository.ToolRepository,
	txnRepo repository.TransactionRepository,
) *RecordMovementUseCase {
	return &RecordMovementUseCase{toolRepo: toolRepo, txnRepo: txnRepo}
}

// RecordMovement valida (dirección conocida, qty > 0, herramienta activa) y
// appendea un movimiento inmutable con hora de planta (GMT+7).
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, in dto.RecordMovementRequest) (*dto.TransactionResponse, error) {
	if !entity.ValidDirection(in.Direction) {
		return nil, domain.ErrInvalidInput
	}
	if !in.Qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.ToolCode == "" {
		return nil, domain.ErrInvalidInput
	}

	tool, err := uc.toolRepo.GetByCode(ctx, in.ToolCode)
	if err != nil {
		return nil, err
	}
	if tool == nil || !tool.IsActive {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().In(entity.PlantTZ)
	txn := &entity.StockTransaction{
		ID:          uuid.New().String(),
		ToolCode:    in.ToolCode,
		Direction:   in.Direction,
		Qty:         in.Qty,
		Dept:        in.Dept,
		MachineCode: in.MachineCode,
		PartNo:      in.PartNo,
		Shift:       in.Shift,
		Operator:    in.Operator,
		Reason:      in.Reason,
		Remark:      in.Remark,
		RefDoc:      in.RefDoc,
		TxnTime:     now,
		CreatedAt:   now,
	}
	if err := uc.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}
	metrics.MovementsRecorded.WithLabelValues(in.Direction).Inc()
	return ToTransactionResponse(txn), nil
}

// ToTransactionResponse mapea la entidad al DTO de la API.
func ToTransactionResponse(t *entity.StockTransaction) *dto.TransactionResponse {
	if t == nil {
		return nil
	}
	return &dto.TransactionResponse{
		ID:          t.ID,
		ToolCode:    t.ToolCode,
		Direction:   t.Direction,
		Qty:         t.Qty,
		Dept:        t.Dept,
		MachineCode: t.MachineCode,
		PartNo:      t.PartNo,
		Shift:       t.Shift,
		Operator:    t.Operator,
		Reason:      t.Reason,
		Remark:      t.Remark,
		RefDoc:      t.RefDoc,
		TxnTime:     t.TxnTime,
	}
}

// ListRecent devuelve los últimos movimientos del libro, más reciente primero.
func (uc *RecordMovementUseCase) ListRecent(ctx context.Context, limit int) ([]dto.TransactionResponse, error) {
	if limit <= 0 {
		limit = 300
	}
	txns, err := uc.txnRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, *ToTransactionResponse(t))
	}
	return out, nil
}
