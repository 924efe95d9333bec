package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest body para POST /api/materials.
type CreateMaterialRequest struct {
	Name     string           `json:"name" validate:"required,min=2,max=150"`
	Unit     string           `json:"unit" validate:"required,min=1,max=20"`
	MinStock *decimal.Decimal `json:"min_stock,omitempty"`
}

// UpdateMaterialRequest body para PUT /api/materials/:id.
// GlobalStock y LastCost no se tocan aquí: se manejan vía movimientos.
type UpdateMaterialRequest struct {
	Name     *string          `json:"name,omitempty" validate:"omitempty,min=2,max=150"`
	Unit     *string          `json:"unit,omitempty" validate:"omitempty,min=1,max=20"`
	MinStock *decimal.Decimal `json:"min_stock,omitempty"`
}

// MaterialResponse material en respuestas.
type MaterialResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	GlobalStock decimal.Decimal `json:"global_stock"`
	LastCost    decimal.Decimal `json:"last_cost"`
	MinStock    decimal.Decimal `json:"min_stock"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MaterialListResponse listado paginado de materiales.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ValuationRowDTO fila del reporte de valoración de inventario.
type ValuationRowDTO struct {
	MaterialID    string          `json:"material_id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	GlobalStock   decimal.Decimal `json:"global_stock"`
	BatchQuantity decimal.Decimal `json:"batch_quantity"`
	BatchValue    decimal.Decimal `json:"batch_value"`
	AvgRate       decimal.Decimal `json:"avg_rate"`
	Drift         decimal.Decimal `json:"drift"` // global_stock - batch_quantity
}

// LowStockRowDTO fila del reporte de stock bajo.
type LowStockRowDTO struct {
	MaterialID   string          `json:"material_id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	GlobalStock  decimal.Decimal `json:"global_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	SuggestedQty decimal.Decimal `json:"suggested_qty"` // min_stock*1.5 - global_stock
	LastCost     decimal.Decimal `json:"last_cost"`
}
