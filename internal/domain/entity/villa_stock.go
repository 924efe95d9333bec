package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// VillaStock stock actual de un material en una villa/unidad de proyecto.
// Se crea de forma perezosa con el primer movimiento que toque el par (material, villa).
// AvgCost es el costo promedio ponderado del pool de la villa: se fija al trasladar
// stock desde la bodega central y es la tarifa con la que se valoran las salidas.
type VillaStock struct {
	MaterialID   string
	VillaID      string
	CurrentStock decimal.Decimal
	AvgCost      decimal.Decimal
	UpdatedAt    time.Time
}
