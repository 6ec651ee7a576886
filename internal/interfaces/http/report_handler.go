package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/toolstock-api/internal/application/dto"
	"github.com/jhoicas/toolstock-api/internal/application/stock"
	"github.com/jhoicas/toolstock-api/internal/domain/entity"
	"github.com/jhoicas/toolstock-api/internal/infrastructure/report"
)

// ReportHandler exportación de reportes.
type ReportHandler struct {
	balances *stock.BalanceUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(balances *stock.BalanceUseCase) *ReportHandler {
	return &ReportHandler{balances: balances}
}

// BalanceWorkbook exporta el tablero de balances completo como xlsx, con
// nombre de archivo timestampeado en hora de planta.
func (h *ReportHandler) BalanceWorkbook(c *fiber.Ctx) error {
	list, err := h.balances.ListBalances(c.Context(), dto.BalanceFilter{})
	if err != nil {
		return domainError(c, err)
	}
	buf, err := report.BuildBalanceWorkbook(list)
	if err != nil {
		return domainError(c, err)
	}

	filename := fmt.Sprintf("stock_balance_%s.xlsx", time.Now().In(entity.PlantTZ).Format("20060102_1504"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(buf.Bytes())
}
