package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/constructora-pro/internal/application/dto"
	"github.com/tu-usuario/constructora-pro/internal/application/reports"
)

// ReportHandler reportes de solo lectura (protegido).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Valuation godoc
// @Summary      Valoración de inventario de bodega central
// @Description  Cantidad y valor a costo histórico de los lotes FIFO abiertos
// @Description  por material. drift expone la deriva entre el contador y la cola.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ValuationRowDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/valuation [get]
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	rows, err := h.uc.Valuation(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(rows), "items": rows})
}

// LowStock godoc
// @Summary      Materiales bajo su umbral mínimo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LowStockRowDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	rows, err := h.uc.LowStock(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(rows), "items": rows})
}
