package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrMaterialNotFound       = errors.New("material no encontrado")
	ErrMovementNotFound       = errors.New("movimiento no encontrado")
	ErrUserNotFound           = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists     = errors.New("el email ya está registrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrInvalidMovement        = errors.New("movimiento inválido")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrInsufficientStock      = errors.New("stock insuficiente en bodega central")
	ErrInsufficientVillaStock = errors.New("stock insuficiente en la villa")
)

// StockShortageError falla de precondición en un movimiento de salida:
// la cantidad solicitada supera el stock disponible del pool afectado.
// Available y Unit permiten al caller mostrar un mensaje preciso.
type StockShortageError struct {
	MaterialID string
	VillaID    string // vacío si el faltante es en bodega central
	Requested  decimal.Decimal
	Available  decimal.Decimal
	Unit       string
}

func (e *StockShortageError) Error() string {
	if e.VillaID != "" {
		return fmt.Sprintf("stock insuficiente en villa %s: solicitado %s, disponible %s %s",
			e.VillaID, e.Requested, e.Available, e.Unit)
	}
	return fmt.Sprintf("stock insuficiente en bodega central: solicitado %s, disponible %s %s",
		e.Requested, e.Available, e.Unit)
}

// Is permite errors.Is contra los centinelas ErrInsufficientStock / ErrInsufficientVillaStock.
func (e *StockShortageError) Is(target error) bool {
	if e.VillaID != "" {
		return target == ErrInsufficientVillaStock
	}
	return target == ErrInsufficientStock
}
