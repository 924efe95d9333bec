package reports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/constructora-pro/internal/application/dto"
	"github.com/tu-usuario/constructora-pro/internal/domain/repository"
)

// ReportUseCase reportes de solo lectura para los colaboradores de reportería
// (la renderización PDF/CSV ocurre fuera de este core).
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// Valuation valoración del inventario de bodega central a costo histórico:
// lo que queda en los lotes FIFO abiertos por material. Drift expone la
// diferencia entre el contador denormalizado y la cola FIFO, para que
// operaciones corrija con movimientos compensatorios explícitos.
func (uc *ReportUseCase) Valuation(ctx context.Context) ([]dto.ValuationRowDTO, error) {
	rows, err := uc.repo.Valuation(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ValuationRowDTO, 0, len(rows))
	for _, r := range rows {
		avgRate := decimal.Zero
		if r.BatchQuantity.GreaterThan(decimal.Zero) {
			avgRate = r.BatchValue.Div(r.BatchQuantity)
		}
		out = append(out, dto.ValuationRowDTO{
			MaterialID:    r.MaterialID,
			Name:          r.Name,
			Unit:          r.Unit,
			GlobalStock:   r.GlobalStock,
			BatchQuantity: r.BatchQuantity,
			BatchValue:    r.BatchValue,
			AvgRate:       avgRate,
			Drift:         r.GlobalStock.Sub(r.BatchQuantity),
		})
	}
	return out, nil
}

// LowStock materiales en o por debajo de su umbral mínimo, con cantidad de
// pedido sugerida (mismo criterio 1.5x que usa compras para reponer).
func (uc *ReportUseCase) LowStock(ctx context.Context) ([]dto.LowStockRowDTO, error) {
	rows, err := uc.repo.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	factor := decimal.NewFromFloat(1.5)
	out := make([]dto.LowStockRowDTO, 0, len(rows))
	for _, r := range rows {
		suggested := r.MinStock.Mul(factor).Sub(r.GlobalStock)
		if suggested.LessThan(decimal.Zero) {
			suggested = decimal.Zero
		}
		out = append(out, dto.LowStockRowDTO{
			MaterialID:   r.MaterialID,
			Name:         r.Name,
			Unit:         r.Unit,
			GlobalStock:  r.GlobalStock,
			MinStock:     r.MinStock,
			SuggestedQty: suggested,
			LastCost:     r.LastCost,
		})
	}
	return out, nil
}
