package inventory

import (
	"context"

	"github.com/tu-usuario/constructora-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que contadores, asiento del libro y
// decrementos de lotes de un mismo ajuste se apliquen como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		materialRepo repository.MaterialRepository,
		villaRepo repository.VillaStockRepository,
		movRepo repository.MovementRepository,
	) error) error
}
