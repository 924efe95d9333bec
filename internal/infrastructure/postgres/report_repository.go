package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/constructora-pro/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportería de inventario.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// Valuation agrega por material lo que queda en los lotes FIFO abiertos de
// bodega central (cantidad y valor a tarifa de compra), junto al contador
// denormalizado para exponer cualquier deriva entre ambos.
func (r *ReportRepo) Valuation(ctx context.Context) ([]repository.ValuationRow, error) {
	const query = `
	SELECT
	    m.id,
	    m.name,
	    m.unit,
	    m.global_stock,
	    COALESCE(SUM(b.remaining_quantity), 0)                    AS batch_quantity,
	    COALESCE(SUM(b.remaining_quantity * b.rate_per_unit), 0)  AS batch_value
	FROM materials m
	LEFT JOIN movements b
	       ON b.material_id = m.id
	      AND b.type = 'IN'
	      AND b.villa_id IS NULL
	      AND b.remaining_quantity > 0
	WHERE m.active = true
	GROUP BY m.id, m.name, m.unit, m.global_stock
	ORDER BY m.name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.Valuation: %w", err)
	}
	defer rows.Close()

	var results []repository.ValuationRow
	for rows.Next() {
		var row repository.ValuationRow
		if err := rows.Scan(
			&row.MaterialID,
			&row.Name,
			&row.Unit,
			&row.GlobalStock,
			&row.BatchQuantity,
			&row.BatchValue,
		); err != nil {
			return nil, fmt.Errorf("reports.Valuation scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// LowStock materiales activos con stock global en o por debajo de su umbral
// mínimo. Los materiales con umbral cero no se reportan.
func (r *ReportRepo) LowStock(ctx context.Context) ([]repository.LowStockRow, error) {
	const query = `
	SELECT id, name, unit, global_stock, min_stock, last_cost
	FROM materials
	WHERE active = true
	  AND min_stock > 0
	  AND global_stock <= min_stock
	ORDER BY global_stock / min_stock ASC, name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.LowStock: %w", err)
	}
	defer rows.Close()

	var results []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(
			&row.MaterialID,
			&row.Name,
			&row.Unit,
			&row.GlobalStock,
			&row.MinStock,
			&row.LastCost,
		); err != nil {
			return nil, fmt.Errorf("reports.LowStock scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
