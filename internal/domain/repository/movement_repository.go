package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/constructora-pro/internal/domain/entity"
)

// MovementFilter filtros para el historial de movimientos de un material.
type MovementFilter struct {
	VillaID *string
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

// MovementRepository puerto de persistencia del libro de movimientos (append-only).
// UpdateRemaining es la única mutación permitida sobre un asiento existente y
// solo la ejecuta el motor FIFO dentro de la transacción de un ajuste.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// OpenBatches lotes PURCHASE no agotados del material (remaining_quantity > 0,
	// sin villa), ordenados del más antiguo al más reciente (fecha, luego inserción).
	OpenBatches(materialID string) ([]*entity.Movement, error)
	UpdateRemaining(id string, remaining decimal.Decimal) error
	ListByMaterial(materialID string, filter MovementFilter) ([]*entity.Movement, error)
}
