package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/stock/movements.
// Type: IN | OUT. VillaID vacío = movimiento contra bodega central.
// RatePerUnit es obligatorio en compras (IN sin villa); en el resto de clases
// la tarifa la calcula el motor FIFO o el promedio del pool de la villa.
type AdjustStockRequest struct {
	MaterialID    string           `json:"material_id" validate:"required,uuid4"`
	Type          string           `json:"type" validate:"required,oneof=IN OUT"`
	Quantity      decimal.Decimal  `json:"quantity" validate:"required"`
	VillaID       string           `json:"villa_id,omitempty"`
	RatePerUnit   *decimal.Decimal `json:"rate_per_unit,omitempty"`
	SupplierID    string           `json:"supplier_id,omitempty" validate:"omitempty,uuid4"`
	ProjectID     string           `json:"project_id,omitempty" validate:"omitempty,uuid4"`
	Date          *time.Time       `json:"date,omitempty"`
	UsageCategory string           `json:"usage_category,omitempty"`
	Notes         string           `json:"notes,omitempty"`
}

// RevertMovementRequest body para POST /api/stock/movements/:id/revert.
type RevertMovementRequest struct {
	Notes string `json:"notes,omitempty"`
}

// MovementResponse asiento del libro de movimientos en respuestas.
type MovementResponse struct {
	ID                string          `json:"id"`
	MaterialID        string          `json:"material_id"`
	Type              string          `json:"type"`
	Kind              string          `json:"kind"`
	Quantity          decimal.Decimal `json:"quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	RatePerUnit       decimal.Decimal `json:"rate_per_unit"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	Date              time.Time       `json:"date"`
	VillaID           string          `json:"villa_id,omitempty"`
	SupplierID        string          `json:"supplier_id,omitempty"`
	ProjectID         string          `json:"project_id,omitempty"`
	UsageCategory     string          `json:"usage_category,omitempty"`
	PerformedBy       string          `json:"performed_by,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// AdjustStockResponse estado actualizado tras un movimiento exitoso.
type AdjustStockResponse struct {
	Material   MaterialStockResponse  `json:"material"`
	VillaStock *VillaStockResponse    `json:"villa_stock,omitempty"`
	Movement   MovementResponse       `json:"movement"`
}

// MaterialStockResponse snapshot del stock global de un material.
type MaterialStockResponse struct {
	MaterialID  string          `json:"material_id"`
	GlobalStock decimal.Decimal `json:"global_stock"`
	Unit        string          `json:"unit"`
}

// VillaStockResponse snapshot del stock de un material en una villa.
type VillaStockResponse struct {
	MaterialID   string          `json:"material_id"`
	VillaID      string          `json:"villa_id"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	AvgCost      decimal.Decimal `json:"avg_cost"`
	Unit         string          `json:"unit"`
}

// MovementHistoryRequest filtros query para GET /api/materials/:id/movements.
type MovementHistoryRequest struct {
	VillaID string `query:"villa_id"`
	From    string `query:"from"` // RFC 3339 o YYYY-MM-DD
	To      string `query:"to"`
	PageRequest
}

// MovementListResponse historial paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
