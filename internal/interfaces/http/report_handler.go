package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/mayondo-api/internal/application/analytics"
	"github.com/jhoicas/mayondo-api/internal/application/dto"
	"github.com/jhoicas/mayondo-api/internal/application/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler reportes de gerencia: utilidad y exportaciones XLSX.
type ReportHandler struct {
	profit *appanalytics.ProfitUseCase
	export *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(profit *appanalytics.ProfitUseCase, export *report.UseCase) *ReportHandler {
	return &ReportHandler{profit: profit, export: export}
}

// Profit godoc
// @Summary      Utilidad agregada
// @Description  Ingreso (con 5% de transporte cuando aplica), costo y utilidad de las ventas del rango.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query     string  false  "YYYY-MM-DD inclusivo"
// @Param        to    query     string  false  "YYYY-MM-DD inclusivo"
// @Success      200   {object}  dto.ProfitReportDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/profit [get]
func (h *ReportHandler) Profit(c *fiber.Ctx) error {
	var req dto.ProfitReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.profit.Report(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SalesXLSX GET /api/reports/sales.xlsx?from=&to=
func (h *ReportHandler) SalesXLSX(c *fiber.Ctx) error {
	data, filename, err := h.export.SalesReport(c.UserContext(), c.Query("from"), c.Query("to"))
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, data, filename)
}

// StockXLSX GET /api/reports/stock.xlsx
func (h *ReportHandler) StockXLSX(c *fiber.Ctx) error {
	data, filename, err := h.export.StockReport(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, data, filename)
}

func sendAttachment(c *fiber.Ctx, data []byte, filename string) error {
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
