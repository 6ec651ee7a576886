package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/toolstock-api/internal/application/dto"
	"github.com/jhoicas/toolstock-api/internal/application/stock"
	"github.com/jhoicas/toolstock-api/internal/domain"
	"github.com/jhoicas/toolstock-api/internal/domain/entity"
	"github.com/jhoicas/toolstock-api/internal/domain/repository"
	"github.com/jhoicas/toolstock-api/pkg/metrics"
)

// ReceiveItem aplica una recepción parcial o total contra una línea de OC.
// Dentro de una sola transacción de BD: bloquea la línea (SELECT FOR UPDATE),
// avanza el contador de recepción, deriva el estado con ItemStatusFor,
// appendea el movimiento IN en el libro con referencia a la línea y cierra la
// cabecera si ya no quedan líneas abiertas. Tope estricto: recibido nunca
// supera lo solicitado (ErrOverReceipt).
func (uc *POUseCase) ReceiveItem(ctx context.Context, itemID string, receiveQty decimal.Decimal) (*dto.ReceiveItemResponse, error) {
	if !receiveQty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var (
		updated *entity.PurchaseOrderItem
		txn     *entity.StockTransaction
	)
	err := uc.txRunner.Run(ctx, func(
		txnRepo repository.TransactionRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		item, err := poRepo.GetItemForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		newReceived := item.ReceivedQty.Add(receiveQty)
		if newReceived.GreaterThan(item.RequestedQty) {
			return domain.ErrOverReceipt
		}

		status := entity.ItemStatusFor(newReceived, item.RequestedQty)
		if err := poRepo.UpdateItemReceived(ctx, item.ID, newReceived, status); err != nil {
			return err
		}

		po, err := poRepo.GetHeaderByID(ctx, item.POID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}

		now := time.Now().In(entity.PlantTZ)
		txn = &entity.StockTransaction{
			ID:        uuid.New().String(),
			ToolCode:  item.ToolCode,
			Direction: entity.DirectionIN,
			Qty:       receiveQty,
			Reason:    "PO receipt",
			RefDoc:    fmt.Sprintf("PO %s / item %s", po.Number, item.ID),
			TxnTime:   now,
			CreatedAt: now,
		}
		if err := txnRepo.Create(ctx, txn); err != nil {
			return err
		}

		// Política de cierre: la cabecera pasa a CLOSED cuando todas sus
		// líneas quedan RECEIVED. Nunca se reabre.
		if status == entity.ItemStatusReceived {
			siblings, err := poRepo.ListItemsByPO(ctx, item.POID)
			if err != nil {
				return err
			}
			allReceived := true
			for _, s := range siblings {
				st := s.Status
				if s.ID == item.ID {
					st = status
				}
				if st != entity.ItemStatusReceived {
					allReceived = false
					break
				}
			}
			if allReceived {
				if err := poRepo.UpdateHeaderStatus(ctx, item.POID, entity.POStatusClosed); err != nil {
					return err
				}
			}
		}

		item.ReceivedQty = newReceived
		item.Status = status
		item.UpdatedAt = now
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ReceiptsApplied.Inc()
	return &dto.ReceiveItemResponse{
		Item:        *toPOItemResponse(updated),
		Transaction: *stock.ToTransactionResponse(txn),
	}, nil
}
