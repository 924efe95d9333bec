package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ValuationRow valoración de inventario de un material: lo que queda en los
// lotes FIFO abiertos frente al contador denormalizado de bodega central.
type ValuationRow struct {
	MaterialID    string
	Name          string
	Unit          string
	GlobalStock   decimal.Decimal
	BatchQuantity decimal.Decimal // Σ remaining_quantity de lotes abiertos
	BatchValue    decimal.Decimal // Σ remaining_quantity × rate_per_unit
}

// LowStockRow material cuyo stock global está en o por debajo de su umbral mínimo.
type LowStockRow struct {
	MaterialID  string
	Name        string
	Unit        string
	GlobalStock decimal.Decimal
	MinStock    decimal.Decimal
	LastCost    decimal.Decimal
}

// ReportRepository consultas de solo lectura para los colaboradores de reportería.
type ReportRepository interface {
	Valuation(ctx context.Context) ([]ValuationRow, error)
	LowStock(ctx context.Context) ([]LowStockRow, error)
}
