package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/constructora-pro/internal/domain"
	"github.com/tu-usuario/constructora-pro/internal/domain/entity"
)

// BatchConsumption decremento a persistir sobre un lote PURCHASE.
type BatchConsumption struct {
	MovementID string
	Consumed   decimal.Decimal
	Remaining  decimal.Decimal // remaining_quantity resultante del lote
}

// FIFOResult resultado del cálculo de costo FIFO para un consumo global.
type FIFOResult struct {
	TotalCost     decimal.Decimal
	EffectiveRate decimal.Decimal // promedio ponderado: TotalCost / cantidad
	Consumptions  []BatchConsumption
	Shortfall     decimal.Decimal // parte no cubierta por lotes ("stock fantasma")
	ShortfallRate decimal.Decimal // tarifa aplicada al faltante
}

// ConsumeFIFO recorre los lotes no agotados (ya ordenados del más antiguo al más
// reciente) y consume quantity acumulando costo histórico de adquisición.
//
// Si los lotes se agotan antes de cubrir quantity, el faltante se valora a la
// última tarifa recorrida (o a fallbackRate si no se recorrió ningún lote) y el
// cálculo igual tiene éxito: la disponibilidad la gobierna el contador
// denormalizado del material, no la completitud de la cola FIFO. El caller debe
// registrar el Shortfall como advertencia de reconciliación.
func ConsumeFIFO(batches []*entity.Movement, quantity, fallbackRate decimal.Decimal) (*FIFOResult, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidMovement
	}

	pending := quantity
	totalCost := decimal.Zero
	lastRate := fallbackRate
	consumptions := make([]BatchConsumption, 0, len(batches))

	for _, batch := range batches {
		if !pending.GreaterThan(decimal.Zero) {
			break
		}
		if !batch.RemainingQuantity.GreaterThan(decimal.Zero) {
			continue
		}
		consumed := decimal.Min(pending, batch.RemainingQuantity)
		totalCost = totalCost.Add(consumed.Mul(batch.RatePerUnit))
		pending = pending.Sub(consumed)
		lastRate = batch.RatePerUnit
		consumptions = append(consumptions, BatchConsumption{
			MovementID: batch.ID,
			Consumed:   consumed,
			Remaining:  batch.RemainingQuantity.Sub(consumed),
		})
	}

	res := &FIFOResult{
		TotalCost:    totalCost,
		Consumptions: consumptions,
		Shortfall:    decimal.Zero,
	}
	if pending.GreaterThan(decimal.Zero) {
		// Stock fantasma: la cola FIFO quedó corta frente al contador denormalizado.
		res.Shortfall = pending
		res.ShortfallRate = lastRate
		res.TotalCost = res.TotalCost.Add(pending.Mul(lastRate))
	}
	res.EffectiveRate = res.TotalCost.Div(quantity)
	return res, nil
}

// WeightedAvgCost costo promedio ponderado al incorporar una entrada a un pool.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func WeightedAvgCost(currentStock, currentCost, inQty, inCost decimal.Decimal) decimal.Decimal {
	sum := currentStock.Add(inQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := currentStock.Mul(currentCost).Add(inQty.Mul(inCost))
	return num.Div(sum)
}
