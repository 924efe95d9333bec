package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa un tipo de material de obra (cemento, varilla, etc.).
// GlobalStock es el contador denormalizado de la bodega central; se muta únicamente
// a través de movimientos de stock. LastCost guarda la última tarifa de compra y
// sirve de respaldo cuando la cola FIFO quedó corta frente al contador.
type Material struct {
	ID          string
	Name        string
	Unit        string // unidad de medida: kg, m3, unidad, bulto...
	GlobalStock decimal.Decimal
	LastCost    decimal.Decimal
	MinStock    decimal.Decimal // umbral para el reporte de stock bajo
	Active      bool            // baja lógica; nunca se borra mientras tenga movimientos
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
