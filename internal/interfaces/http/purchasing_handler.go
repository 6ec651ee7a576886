package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/toolstock-api/internal/application/dto"
	"github.com/jhoicas/toolstock-api/internal/application/purchasing"
)

// PurchasingHandler peticiones HTTP del ciclo de órdenes de compra.
type PurchasingHandler struct {
	uc *purchasing.POUseCase
}

// NewPurchasingHandler construye el handler.
func NewPurchasingHandler(uc *purchasing.POUseCase) *PurchasingHandler {
	return &PurchasingHandler{uc: uc}
}

// CreatePO crea una cabecera en estado APPROVED.
func (h *PurchasingHandler) CreatePO(c *fiber.Ctx) error {
	var in dto.CreatePORequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	po, err := h.uc.CreatePO(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(po)
}

// GetPO cabecera por id.
func (h *PurchasingHandler) GetPO(c *fiber.Ctx) error {
	po, err := h.uc.GetPO(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(po)
}

// AddItem agrega una línea a una OC aprobada.
func (h *PurchasingHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.AddItem(c.Context(), c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// ReceiveItem aplica una recepción contra una línea. La línea y el movimiento
// IN del libro se confirman en la misma transacción de BD.
func (h *PurchasingHandler) ReceiveItem(c *fiber.Ctx) error {
	var in dto.ReceiveItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.ReceiveItem(c.Context(), c.Params("id"), in.Qty)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(res)
}

// TrackOpenItems líneas pendientes de recibir, opcionalmente de una sola OC.
func (h *PurchasingHandler) TrackOpenItems(c *fiber.Ctx) error {
	items, err := h.uc.TrackOpenItems(c.Context(), c.Query("po_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}
