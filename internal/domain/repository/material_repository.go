package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/constructora-pro/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para Material (DIP).
// GetForUpdate bloquea la fila del material (SELECT FOR UPDATE): serializa todos
// los movimientos de un mismo material dentro de la transacción que lo invoque.
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	GetForUpdate(id string) (*entity.Material, error)
	List(search string, limit, offset int) ([]*entity.Material, error)
	Update(material *entity.Material) error
	// UpdateCounters persiste los contadores denormalizados tras un movimiento.
	UpdateCounters(id string, globalStock, lastCost decimal.Decimal) error
	// SoftDelete baja lógica; el material nunca se borra mientras tenga movimientos.
	SoftDelete(id string) error
}
