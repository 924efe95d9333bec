package inventory

import (
	"context"
	"fmt"

	"github.com/tu-usuario/constructora-pro/internal/domain"
	"github.com/tu-usuario/constructora-pro/internal/domain/entity"
)

// UsageCategoryReversal categoría con la que se registran los movimientos de reversa.
const UsageCategoryReversal = "reversal"

// RevertMovement corrige un movimiento emitiendo movimientos compensatorios
// explícitos a través de AdjustStock; el libro nunca se edita ni se borra.
//
// Compensaciones por clase del movimiento original:
//   - PURCHASE      -> consumo global de la misma cantidad
//   - ISSUE_GLOBAL  -> compra a la tarifa original (reingresa como lote FIFO)
//   - TRANSFER      -> consumo en la villa + compra a la tarifa efectiva original
//   - ISSUE_VILLA   -> compra a la tarifa original + traslado a la misma villa
//
// Cada compensación es un AdjustStock atómico; las clases que requieren dos
// movimientos no son una sola unidad entre sí, igual que si el operador los
// registrara a mano. Las precondiciones normales aplican: revertir una compra
// ya consumida falla con stock insuficiente.
func (uc *AdjustStockUseCase) RevertMovement(ctx context.Context, movementID, performedBy, notes string) ([]*entity.Movement, error) {
	original, err := uc.movRepo.GetByID(movementID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, domain.ErrMovementNotFound
	}
	if original.UsageCategory == UsageCategoryReversal {
		// Una reversa no se revierte: se registra el movimiento contrario a mano.
		return nil, domain.ErrInvalidMovement
	}

	revertNotes := fmt.Sprintf("reversa del movimiento %s", original.ID)
	if notes != "" {
		revertNotes += ": " + notes
	}
	base := AdjustStockInput{
		MaterialID:    original.MaterialID,
		Quantity:      original.Quantity,
		ProjectID:     deref(original.ProjectID),
		UsageCategory: UsageCategoryReversal,
		Notes:         revertNotes,
		PerformedBy:   performedBy,
	}
	rate := original.RatePerUnit

	var inputs []AdjustStockInput
	switch original.Kind() {
	case entity.KindPurchase:
		out := base
		out.Type = entity.MovementTypeOUT
		inputs = []AdjustStockInput{out}
	case entity.KindIssueGlobal:
		in := base
		in.Type = entity.MovementTypeIN
		in.RatePerUnit = &rate
		inputs = []AdjustStockInput{in}
	case entity.KindTransfer:
		issue := base
		issue.Type = entity.MovementTypeOUT
		issue.VillaID = deref(original.VillaID)
		purchase := base
		purchase.Type = entity.MovementTypeIN
		purchase.RatePerUnit = &rate
		inputs = []AdjustStockInput{issue, purchase}
	case entity.KindIssueVilla:
		purchase := base
		purchase.Type = entity.MovementTypeIN
		purchase.RatePerUnit = &rate
		transfer := base
		transfer.Type = entity.MovementTypeIN
		transfer.VillaID = deref(original.VillaID)
		inputs = []AdjustStockInput{purchase, transfer}
	default:
		return nil, domain.ErrInvalidMovement
	}

	movements := make([]*entity.Movement, 0, len(inputs))
	for _, input := range inputs {
		res, err := uc.AdjustStock(ctx, input)
		if err != nil {
			return movements, err
		}
		movements = append(movements, res.Movement)
	}
	return movements, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
