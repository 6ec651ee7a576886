package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/toolstock-api/internal/application/dto"
	"github.com/jhoicas/toolstock-api/internal/application/stock"
	"github.com/jhoicas/toolstock-api/pkg/logger"
)

// StockHandler peticiones HTTP de movimientos y balances.
type StockHandler struct {
	movements  *stock.RecordMovementUseCase
	balances   *stock.BalanceUseCase
	dispatcher stock.AlertDispatcher // puede ser nil (alertas desactivadas)
	log        *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(
	movements *stock.RecordMovementUseCase,
	balances *stock.BalanceUseCase,
	dispatcher stock.AlertDispatcher,
	log *logger.Logger,
) *StockHandler {
	return &StockHandler{movements: movements, balances: balances, dispatcher: dispatcher, log: log}
}

// RecordMovement registra un movimiento IN/OUT y, tras el append, recalcula
// explícitamente el balance para decidir la alerta (la re-consulta es visible
// aquí, no escondida dentro del write). El fallo de la alerta se loggea y no
// afecta la respuesta: el movimiento ya quedó en el libro.
func (h *StockHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	txn, err := h.movements.RecordMovement(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}

	bal, err := h.balances.ComputeBalance(c.Context(), txn.ToolCode)
	if err != nil {
		// El movimiento quedó registrado; el balance se puede consultar aparte.
		h.log.Warn().Err(err).Str("tool", txn.ToolCode).Msg("recalcular balance tras movimiento")
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"transaction": txn})
	}
	if stock.ShouldAlert(*bal) && h.dispatcher != nil {
		if err := h.dispatcher.DispatchLowStock(c.Context(), []dto.ToolBalanceDTO{*bal}); err != nil {
			h.log.Warn().Err(err).Str("tool", bal.ToolCode).Msg("alerta bajo mínimo no entregada")
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"transaction": txn, "balance": bal})
}

// ListRecent últimos movimientos del libro (por defecto 300, como la vista
// original de transacciones).
func (h *StockHandler) ListRecent(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "300"))
	list, err := h.movements.ListRecent(c.Context(), limit)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "transactions": list})
}

// GetBalance balance actual de una herramienta.
func (h *StockHandler) GetBalance(c *fiber.Ctx) error {
	bal, err := h.balances.ComputeBalance(c.Context(), c.Params("code"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(bal)
}

// ListBalances tablero de balances de herramientas activas, con filtros
// opcionales process y below_min.
func (h *StockHandler) ListBalances(c *fiber.Ctx) error {
	filter := dto.BalanceFilter{
		Process:      c.Query("process"),
		BelowMinOnly: c.QueryBool("below_min"),
	}
	list, err := h.balances.ListBalances(c.Context(), filter)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "balances": list})
}

// ScanBelowMinimum herramientas bajo mínimo, ordenadas por código.
func (h *StockHandler) ScanBelowMinimum(c *fiber.Ctx) error {
	list, err := h.balances.ScanBelowMinimum(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "balances": list})
}

// ListTools catálogo maestro activo (solo lectura).
func (h *StockHandler) ListTools(c *fiber.Ctx) error {
	list, err := h.balances.ListTools(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "tools": list})
}
