package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/constructora-pro/internal/application/dto"
	"github.com/tu-usuario/constructora-pro/internal/application/inventory"
	"github.com/tu-usuario/constructora-pro/internal/domain"
	"github.com/tu-usuario/constructora-pro/internal/domain/entity"
	"github.com/tu-usuario/constructora-pro/internal/domain/repository"
)

// StockHandler maneja movimientos de stock y consultas de saldos (protegido).
type StockHandler struct {
	uc *inventory.AdjustStockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.AdjustStockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Compra (IN sin villa), traslado a villa (IN con villa), consumo
// @Description  de bodega central (OUT sin villa) o consumo en villa (OUT con villa).
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "material_id, type, quantity; rate_per_unit en compras; villa_id en traslados/consumos de villa"
// @Success      201   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if validateStruct(c, in) {
		return nil
	}
	res, err := h.uc.AdjustStock(c.Context(), inventory.AdjustStockInput{
		MaterialID:    in.MaterialID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		VillaID:       in.VillaID,
		RatePerUnit:   in.RatePerUnit,
		SupplierID:    in.SupplierID,
		ProjectID:     in.ProjectID,
		Date:          in.Date,
		UsageCategory: in.UsageCategory,
		Notes:         in.Notes,
		PerformedBy:   GetUserID(c),
	})
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAdjustStockResponse(res))
}

// RevertMovement godoc
// @Summary      Revertir un movimiento
// @Description  Emite los movimientos compensatorios del asiento indicado. El
// @Description  libro es append-only: nada se borra ni se edita.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true   "ID del movimiento"
// @Param        body  body  dto.RevertMovementRequest  false  "notas opcionales"
// @Success      201   {array}   dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements/{id}/revert [post]
func (h *StockHandler) RevertMovement(c *fiber.Ctx) error {
	var in dto.RevertMovementRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	movs, err := h.uc.RevertMovement(c.Context(), c.Params("id"), GetUserID(c), in.Notes)
	if err != nil {
		return stockError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetMaterialStock godoc
// @Summary      Stock global de un material
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del material"
// @Success      200  {object}  dto.MaterialStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/stock [get]
func (h *StockHandler) GetMaterialStock(c *fiber.Ctx) error {
	material, err := h.uc.GetMaterialStock(c.Context(), c.Params("id"))
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(dto.MaterialStockResponse{
		MaterialID:  material.ID,
		GlobalStock: material.GlobalStock,
		Unit:        material.Unit,
	})
}

// GetVillaStock godoc
// @Summary      Stock de un material en una villa
// @Description  Una villa sin movimientos del material devuelve saldo cero.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id       path  string  true  "ID del material"
// @Param        villaId  path  string  true  "ID de la villa"
// @Success      200  {object}  dto.VillaStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/stock/{villaId} [get]
func (h *StockHandler) GetVillaStock(c *fiber.Ctx) error {
	material, villa, err := h.uc.GetVillaStock(c.Context(), c.Params("id"), c.Params("villaId"))
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(dto.VillaStockResponse{
		MaterialID:   material.ID,
		VillaID:      villa.VillaID,
		CurrentStock: villa.CurrentStock,
		AvgCost:      villa.AvgCost,
		Unit:         material.Unit,
	})
}

// GetMovementHistory godoc
// @Summary      Historial de movimientos de un material
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id        path   string  true   "ID del material"
// @Param        villa_id  query  string  false  "Filtrar por villa"
// @Param        from      query  string  false  "Desde (RFC 3339 o YYYY-MM-DD)"
// @Param        to        query  string  false  "Hasta (RFC 3339 o YYYY-MM-DD)"
// @Param        limit     query  int     false  "Tamaño de página (default 50)"
// @Param        offset    query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/movements [get]
func (h *StockHandler) GetMovementHistory(c *fiber.Ctx) error {
	var q dto.MovementHistoryRequest
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	filter := repository.MovementFilter{Limit: q.Limit, Offset: q.Offset}
	if q.VillaID != "" {
		v := q.VillaID
		filter.VillaID = &v
	}
	if q.From != "" {
		t, err := parseDate(q.From)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from inválido", Field: "from"})
		}
		filter.From = &t
	}
	if q.To != "" {
		t, err := parseDate(q.To)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to inválido", Field: "to"})
		}
		filter.To = &t
	}

	movs, err := h.uc.GetMovementHistory(c.Context(), c.Params("id"), filter)
	if err != nil {
		return stockError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, toMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	})
}

// stockError traduce errores de dominio a respuestas HTTP. Los faltantes de
// stock van en 409 con la cantidad disponible y la unidad para el front.
func stockError(c *fiber.Ctx, err error) error {
	var shortage *domain.StockShortageError
	if errors.As(err, &shortage) {
		code := "INSUFFICIENT_STOCK"
		if shortage.VillaID != "" {
			code = "INSUFFICIENT_VILLA_STOCK"
		}
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:      code,
			Message:   err.Error(),
			Available: shortage.Available.String(),
			Unit:      shortage.Unit,
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidMovement), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrMaterialNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
	case errors.Is(err, domain.ErrMovementNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func toAdjustStockResponse(res *inventory.AdjustStockResult) dto.AdjustStockResponse {
	out := dto.AdjustStockResponse{
		Material: dto.MaterialStockResponse{
			MaterialID:  res.Material.ID,
			GlobalStock: res.Material.GlobalStock,
			Unit:        res.Material.Unit,
		},
		Movement: toMovementResponse(res.Movement),
	}
	if res.VillaStock != nil {
		out.VillaStock = &dto.VillaStockResponse{
			MaterialID:   res.VillaStock.MaterialID,
			VillaID:      res.VillaStock.VillaID,
			CurrentStock: res.VillaStock.CurrentStock,
			AvgCost:      res.VillaStock.AvgCost,
			Unit:         res.Material.Unit,
		}
	}
	return out
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	out := dto.MovementResponse{
		ID:                m.ID,
		MaterialID:        m.MaterialID,
		Type:              m.Type,
		Kind:              m.Kind(),
		Quantity:          m.Quantity,
		RemainingQuantity: m.RemainingQuantity,
		RatePerUnit:       m.RatePerUnit,
		TotalCost:         m.TotalCost,
		Date:              m.Date,
		UsageCategory:     m.UsageCategory,
		PerformedBy:       m.PerformedBy,
		Notes:             m.Notes,
		CreatedAt:         m.CreatedAt,
	}
	if m.VillaID != nil {
		out.VillaID = *m.VillaID
	}
	if m.SupplierID != nil {
		out.SupplierID = *m.SupplierID
	}
	if m.ProjectID != nil {
		out.ProjectID = *m.ProjectID
	}
	return out
}
