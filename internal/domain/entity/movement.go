package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Clasificación derivada de (Type, VillaID). Cuatro clases de movimiento:
const (
	KindPurchase    = "PURCHASE"     // IN sin villa: compra externa a bodega central (lote FIFO)
	KindTransfer    = "TRANSFER"     // IN con villa: traslado bodega central -> villa
	KindIssueGlobal = "ISSUE_GLOBAL" // OUT sin villa: consumo directo de bodega central
	KindIssueVilla  = "ISSUE_VILLA"  // OUT con villa: consumo del pool de la villa
)

// Movement asiento del libro de movimientos (append-only).
// Quantity siempre es positiva; Type indica la dirección. RemainingQuantity solo
// tiene significado en lotes PURCHASE: es la parte del lote aún no consumida por
// la cola FIFO y es el único campo que muta después de insertado (solo decrece).
type Movement struct {
	ID                string
	MaterialID        string
	Type              string // IN | OUT
	Quantity          decimal.Decimal
	RemainingQuantity decimal.Decimal
	RatePerUnit       decimal.Decimal
	TotalCost         decimal.Decimal
	Date              time.Time
	VillaID           *string
	SupplierID        *string
	ProjectID         *string
	UsageCategory     string
	PerformedBy       string
	Notes             string
	CreatedAt         time.Time
}

// Kind devuelve la clase del movimiento según tipo y presencia de villa.
func (m *Movement) Kind() string {
	return ClassifyMovement(m.Type, m.VillaID != nil && *m.VillaID != "")
}

// ClassifyMovement deriva la clase de movimiento. Devuelve "" si el tipo no es válido.
func ClassifyMovement(movementType string, hasVilla bool) string {
	switch movementType {
	case MovementTypeIN:
		if hasVilla {
			return KindTransfer
		}
		return KindPurchase
	case MovementTypeOUT:
		if hasVilla {
			return KindIssueVilla
		}
		return KindIssueGlobal
	}
	return ""
}
