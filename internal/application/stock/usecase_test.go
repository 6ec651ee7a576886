package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/toolstock-api/internal/application/dto"
	"github.com/jhoicas/toolstock-api/internal/application/stock"
	"github.com/jhoicas/toolstock-api/internal/domain"
	"github.com/jhoicas/toolstock-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeToolRepo struct {
	tools map[string]*entity.Tool
}

func (f *fakeToolRepo) GetByCode(_ context.Context, code string) (*entity.Tool, error) {
	return f.tools[code], nil
}

func (f *fakeToolRepo) ListActive(_ context.Context) ([]*entity.Tool, error) {
	out := make([]*entity.Tool, 0, len(f.tools))
	for _, t := range f.tools {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeTxnRepo struct {
	txns []*entity.StockTransaction
}

func (f *fakeTxnRepo) Create(_ context.Context, txn *entity.StockTransaction) error {
	f.txns = append(f.txns, txn)
	return nil
}

func (f *fakeTxnRepo) ListByTool(_ context.Context, toolCode string) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for _, txn := range f.txns {
		if txn.ToolCode == toolCode {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (f *fakeTxnRepo) ListRecent(_ context.Context, limit int) ([]*entity.StockTransaction, error) {
	out := make([]*entity.StockTransaction, len(f.txns))
	copy(out, f.txns)
	// Más reciente primero, como el repositorio real.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakePORepo solo alimenta ListOpenItemsByTool; el resto del puerto no se usa
// desde el motor de balances.
type fakePORepo struct {
	openByTool map[string][]*entity.PurchaseOrderItem
}

func (f *fakePORepo) CreateHeader(context.Context, *entity.PurchaseOrder) error { return nil }
func (f *fakePORepo) GetHeaderByID(context.Context, string) (*entity.PurchaseOrder, error) {
	return nil, nil
}
func (f *fakePORepo) GetHeaderByNumber(context.Context, string) (*entity.PurchaseOrder, error) {
	return nil, nil
}
func (f *fakePORepo) UpdateHeaderStatus(context.Context, string, string) error { return nil }
func (f *fakePORepo) CreateItem(context.Context, *entity.PurchaseOrderItem) error {
	return nil
}
func (f *fakePORepo) GetItemByID(context.Context, string) (*entity.PurchaseOrderItem, error) {
	return nil, nil
}
func (f *fakePORepo) GetItemForUpdate(context.Context, string) (*entity.PurchaseOrderItem, error) {
	return nil, nil
}
func (f *fakePORepo) UpdateItemReceived(context.Context, string, decimal.Decimal, string) error {
	return nil
}
func (f *fakePORepo) ListItemsByPO(context.Context, string) ([]*entity.PurchaseOrderItem, error) {
	return nil, nil
}
func (f *fakePORepo) ListOpenItems(context.Context, string) ([]*entity.PurchaseOrderItem, error) {
	return nil, nil
}
func (f *fakePORepo) ListOpenItemsByTool(_ context.Context, toolCode string) ([]*entity.PurchaseOrderItem, error) {
	return f.openByTool[toolCode], nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func activeTool(code, name, process string, minStock int64) *entity.Tool {
	return &entity.Tool{
		Code:     code,
		Name:     name,
		Process:  process,
		MinStock: decimal.NewFromInt(minStock),
		IsActive: true,
	}
}

func newBalanceUC(tools *fakeToolRepo, txns *fakeTxnRepo, pos *fakePORepo) *stock.BalanceUseCase {
	if pos == nil {
		pos = &fakePORepo{}
	}
	return stock.NewBalanceUseCase(tools, txns, pos)
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeBalance
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeBalance_HerramientaInexistente(t *testing.T) {
	uc := newBalanceUC(&fakeToolRepo{tools: map[string]*entity.Tool{}}, &fakeTxnRepo{}, nil)

	_, err := uc.ComputeBalance(context.Background(), "NO-EXISTE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestComputeBalance_LibroVacio(t *testing.T) {
	tools := &fakeToolRepo{tools: map[string]*entity.Tool{
		"T-001": activeTool("T-001", "Fresa 6mm", "MILLING", 5),
	}}
	uc := newBalanceUC(tools, &fakeTxnRepo{}, nil)

	bal, err := uc.ComputeBalance(context.Background(), "T-001")
	require.NoError(t, err)
	assert.True(t, bal.OnHand.IsZero(), "sin movimientos el on-hand debe ser cero")
	assert.True(t, bal.OnPO.IsZero())
	assert.True(t, bal.IsBelowMin, "0 < min 5 debe marcar bajo mínimo")
}

// El on-hand es una suma: el orden de los movimientos en el libro no puede
// cambiar el resultado.
func TestComputeBalance_SumaConmutativa(t *testing.T) {
	mov := func(dir string, qty int64) *entity.StockTransaction {
		return &entity.StockTransaction{ToolCode: "T-001", Direction: dir, Qty: decimal.NewFromInt(qty)}
	}
	ordenA := []*entity.StockTransaction{mov("IN", 10), mov("OUT", 3), mov("IN", 2), mov("OUT", 4)}
	ordenB := []*entity.StockTransaction{mov("OUT", 4), mov("IN", 2), mov("IN", 10), mov("OUT", 3)}

	tools := &fakeToolRepo{tools: map[string]*entity.Tool{
		"T-001": activeTool("T-001", "Fresa 6mm", "MILLING", 5),
	}}

	balA, err := newBalanceUC(tools, &fakeTxnRepo{txns: ordenA}, nil).ComputeBalance(context.Background(), "T-001")
	require.NoError(t, err)
	balB, err := newBalanceUC(tools, &fakeTxnRepo{txns: ordenB}, nil).ComputeBalance(context.Background(), "T-001")
	require.NoError(t, err)

	assert.True(t, balA.OnHand.Equal(decimal.NewFromInt(5)))
	assert.True(t, balA.OnHand.Equal(balB.OnHand), "el orden del libro no debe afectar el on-hand")
}

func TestComputeBalance_OnPOSumaPendientes(t *testing.T) {
	tools := &fakeToolRepo{tools: map[string]*entity.Tool{
		"T-001": activeTool("T-001", "Fresa 6mm", "MILLING", 5),
	}}
	pos := &fakePORepo{openByTool: map[string][]*entity.PurchaseOrderItem{
		"T-001": {
			{RequestedQty: decimal.NewFromInt(20), ReceivedQty: decimal.NewFromInt(15)}, // pendiente 5
			{RequestedQty: decimal.NewFromInt(10), ReceivedQty: decimal.Zero},           // pendiente 10
		},
	}}
	uc := newBalanceUC(tools, &fakeTxnRepo{}, pos)

	bal, err := uc.ComputeBalance(context.Background(), "T-001")
	require.NoError(t, err)
	assert.True(t, bal.OnPO.Equal(decimal.NewFromInt(15)), "on-PO = suma de pendientes de líneas abiertas")
}

// En el límite exacto (on-hand == min) NO hay alerta: bajo mínimo es estricto.
func TestComputeBalance_LimiteExactoNoEsBajoMinimo(t *testing.T) {
	tools := &fakeToolRepo{tools: map[string]*entity.Tool{
		"T-001": activeTool("T-001", "Fresa 6mm", "MILLING", 5),
	}}
	txns := &fakeTxnRepo{txns: []*entity.StockTransaction{
		{ToolCode: "T-001", Direction: entity.DirectionIN, Qty: decimal.NewFromInt(5)},
	}}
	uc := newBalanceUC(tools, txns, nil)

	bal, err := uc.ComputeBalance(context.Background(), "T-001")
	require.NoError(t, err)
	assert.False(t, bal.IsBelowMin, "on-hand == min no debe alertar")
	assert.False(t, stock.ShouldAlert(*bal))

	// Un OUT de una unidad cruza el umbral.
	txns.txns = append(txns.txns, &entity.StockTransaction{
		ToolCode: "T-001", Direction: entity.DirectionOUT, Qty: decimal.NewFromInt(1),
	})
	bal, err = uc.ComputeBalance(context.Background(), "T-001")
	require.NoError(t, err)
	assert.True(t, bal.IsBelowMin)
	assert.True(t, stock.ShouldAlert(*bal))
}

// ──────────────────────────────────────────────────────────────────────────────
// ListBalances / ScanBelowMinimum
// ──────────────────────────────────────────────────────────────────────────────

func TestScanBelowMinimum_FiltraYOrdena(t *testing.T) {
	tools := &fakeToolRepo{tools: map[string]*entity.Tool{
		"T-030": activeTool("T-030", "Macho M8", "TAPPING", 10), // on-hand 2  -> bajo mínimo
		"T-010": activeTool("T-010", "Broca 5mm", "DRILLING", 3), // on-hand 7  -> ok
		"T-020": activeTool("T-020", "Inserto", "TURNING", 4),    // on-hand 1  -> bajo mínimo
	}}
	txns := &fakeTxnRepo{txns: []*entity.StockTransaction{
		{ToolCode: "T-030", Direction: entity.DirectionIN, Qty: decimal.NewFromInt(2)},
		{ToolCode: "T-010", Direction: entity.DirectionIN, Qty: decimal.NewFromInt(7)},
		{ToolCode: "T-020", Direction: entity.DirectionIN, Qty: decimal.NewFromInt(1)},
	}}
	uc := newBalanceUC(tools, txns, nil)

	below, err := uc.ScanBelowMinimum(context.Background())
	require.NoError(t, err)
	require.Len(t, below, 2)
	assert.Equal(t, "T-020", below[0].ToolCode, "el resultado debe venir ordenado por código")
	assert.Equal(t, "T-030", below[1].ToolCode)
	for _, b := range below {
		assert.True(t, b.IsBelowMin)
	}
}

func TestScanBelowMinimum_SinFaltantes(t *testing.T) {
	tools := &fakeToolRepo{tools: map[string]*entity.Tool{
		"T-001": activeTool("T-001", "Fresa 6mm", "MILLING", 0),
	}}
	uc := newBalanceUC(tools, &fakeTxnRepo{}, nil)

	below, err := uc.ScanBelowMinimum(context.Background())
	require.NoError(t, err)
	assert.Empty(t, below, "min 0 nunca alerta: on-hand 0 no es < 0")
}

func TestListBalances_FiltroPorProceso(t *testing.T) {
	tools := &fakeToolRepo{tools: map[string]*entity.Tool{
		"T-001": activeTool("T-001", "Fresa 6mm", "MILLING", 5),
		"T-002": activeTool("T-002", "Broca 5mm", "DRILLING", 3),
	}}
	uc := newBalanceUC(tools, &fakeTxnRepo{}, nil)

	balances, err := uc.ListBalances(context.Background(), dto.BalanceFilter{Process: "MILLING"})
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, "T-001", balances[0].ToolCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_Validaciones(t *testing.T) {
	tools := &fakeToolRepo{tools: map[string]*entity.Tool{
		"T-001": activeTool("T-001", "Fresa 6mm", "MILLING", 5),
		"T-OFF": {Code: "T-OFF", Name: "Retirada", MinStock: decimal.Zero, IsActive: false},
	}}
	uc := stock.NewRecordMovementUseCase(tools, &fakeTxnRepo{})

	cases := []struct {
		name string
		in   dto.RecordMovementRequest
	}{
		{"dirección desconocida", dto.RecordMovementRequest{ToolCode: "T-001", Direction: "ADJUST", Qty: decimal.NewFromInt(1)}},
		{"qty cero", dto.RecordMovementRequest{ToolCode: "T-001", Direction: entity.DirectionIN, Qty: decimal.Zero}},
		{"qty negativa", dto.RecordMovementRequest{ToolCode: "T-001", Direction: entity.DirectionOUT, Qty: decimal.NewFromInt(-3)}},
		{"código vacío", dto.RecordMovementRequest{Direction: entity.DirectionIN, Qty: decimal.NewFromInt(1)}},
		{"herramienta desconocida", dto.RecordMovementRequest{ToolCode: "NO-EXISTE", Direction: entity.DirectionIN, Qty: decimal.NewFromInt(1)}},
		{"herramienta inactiva", dto.RecordMovementRequest{ToolCode: "T-OFF", Direction: entity.DirectionIN, Qty: decimal.NewFromInt(1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RecordMovement(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRecordMovement_AppendeaConHoraDePlanta(t *testing.T) {
	tools := &fakeToolRepo{tools: map[string]*entity.Tool{
		"T-001": activeTool("T-001", "Fresa 6mm", "MILLING", 5),
	}}
	txns := &fakeTxnRepo{}
	uc := stock.NewRecordMovementUseCase(tools, txns)

	resp, err := uc.RecordMovement(context.Background(), dto.RecordMovementRequest{
		ToolCode:  "T-001",
		Direction: entity.DirectionOUT,
		Qty:       decimal.NewFromInt(2),
		Dept:      "PROD",
		Operator:  "somchai",
	})
	require.NoError(t, err)
	require.Len(t, txns.txns, 1)

	stored := txns.txns[0]
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, entity.DirectionOUT, stored.Direction)
	assert.Equal(t, "PROD", stored.Dept)

	_, offset := stored.TxnTime.Zone()
	assert.Equal(t, 7*60*60, offset, "los movimientos se registran en hora de planta GMT+7")
	assert.Equal(t, stored.ID, resp.ID)
}

func TestListRecent_MasRecientePrimeroConLimite(t *testing.T) {
	tools := &fakeToolRepo{tools: map[string]*entity.Tool{
		"T-001": activeTool("T-001", "Fresa 6mm", "MILLING", 5),
	}}
	txns := &fakeTxnRepo{}
	uc := stock.NewRecordMovementUseCase(tools, txns)

	for i := 0; i < 5; i++ {
		_, err := uc.RecordMovement(context.Background(), dto.RecordMovementRequest{
			ToolCode: "T-001", Direction: entity.DirectionIN, Qty: decimal.NewFromInt(int64(i + 1)),
		})
		require.NoError(t, err)
	}

	recent, err := uc.ListRecent(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.True(t, recent[0].Qty.Equal(decimal.NewFromInt(5)), "el último movimiento va primero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: IN 10, OUT 8 contra min 5 debe terminar en alerta
// ──────────────────────────────────────────────────────────────────────────────

func TestFlujoMovimientoYAlerta(t *testing.T) {
	tools := &fakeToolRepo{tools: map[string]*entity.Tool{
		"T-001": activeTool("T-001", "Fresa 6mm", "MILLING", 5),
	}}
	txns := &fakeTxnRepo{}
	movements := stock.NewRecordMovementUseCase(tools, txns)
	balances := newBalanceUC(tools, txns, nil)

	_, err := movements.RecordMovement(context.Background(), dto.RecordMovementRequest{
		ToolCode: "T-001", Direction: entity.DirectionIN, Qty: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	bal, err := balances.ComputeBalance(context.Background(), "T-001")
	require.NoError(t, err)
	assert.False(t, stock.ShouldAlert(*bal), "con on-hand 10 y min 5 no hay alerta")

	_, err = movements.RecordMovement(context.Background(), dto.RecordMovementRequest{
		ToolCode: "T-001", Direction: entity.DirectionOUT, Qty: decimal.NewFromInt(8),
	})
	require.NoError(t, err)

	bal, err = balances.ComputeBalance(context.Background(), "T-001")
	require.NoError(t, err)
	assert.True(t, bal.OnHand.Equal(decimal.NewFromInt(2)))
	assert.True(t, stock.ShouldAlert(*bal), "con on-hand 2 y min 5 debe alertar")
}
