package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/toolstock-api/internal/domain/entity"
)

// TestItemStatusFor verifica la función pura de estado de línea sobre la
// grilla de casos del contrato: solicitado=10.
func TestItemStatusFor(t *testing.T) {
	requested := decimal.NewFromInt(10)

	cases := []struct {
		name     string
		received decimal.Decimal
		want     string
	}{
		{"sin recibir", decimal.Zero, entity.ItemStatusPending},
		{"recepción parcial", decimal.NewFromInt(4), entity.ItemStatusPartial},
		{"una unidad", decimal.NewFromInt(1), entity.ItemStatusPartial},
		{"casi completo", decimal.NewFromInt(9), entity.ItemStatusPartial},
		{"completo exacto", decimal.NewFromInt(10), entity.ItemStatusReceived},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, entity.ItemStatusFor(tc.received, requested))
		})
	}
}

func TestOutstanding(t *testing.T) {
	item := &entity.PurchaseOrderItem{
		RequestedQty: decimal.NewFromInt(20),
		ReceivedQty:  decimal.NewFromInt(15),
	}
	assert.True(t, item.Outstanding().Equal(decimal.NewFromInt(5)))

	// Nunca negativo, incluso con datos fuera de contrato.
	item.ReceivedQty = decimal.NewFromInt(25)
	assert.True(t, item.Outstanding().IsZero())
}
