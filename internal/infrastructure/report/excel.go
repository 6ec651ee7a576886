package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/toolstock-api/internal/application/dto"
)

// BuildBalanceWorkbook arma el reporte de balances en formato xlsx (una fila
// por herramienta, como la exportación del tablero original).
func BuildBalanceWorkbook(balances []dto.ToolBalanceDTO) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"tool_code", "tool_name", "process", "min_stock", "on_hand", "on_po", "is_below_min",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, b := range balances {
		excelRow := []interface{}{
			b.ToolCode,
			b.ToolName,
			b.Process,
			b.MinStock.String(),
			b.OnHand.String(),
			b.OnPO.String(),
			b.IsBelowMin,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
