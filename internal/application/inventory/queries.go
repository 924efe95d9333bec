package inventory

import (
	"context"

	"github.com/tu-usuario/constructora-pro/internal/domain"
	"github.com/tu-usuario/constructora-pro/internal/domain/entity"
	"github.com/tu-usuario/constructora-pro/internal/domain/repository"
)

// GetMaterialStock snapshot de solo lectura del stock global de un material.
func (uc *AdjustStockUseCase) GetMaterialStock(ctx context.Context, materialID string) (*entity.Material, error) {
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrMaterialNotFound
	}
	return material, nil
}

// GetVillaStock snapshot de solo lectura del stock de un material en una villa.
// Si el par (material, villa) no ha tenido movimientos devuelve un registro en cero.
func (uc *AdjustStockUseCase) GetVillaStock(ctx context.Context, materialID, villaID string) (*entity.Material, *entity.VillaStock, error) {
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, nil, err
	}
	if material == nil {
		return nil, nil, domain.ErrMaterialNotFound
	}
	villa, err := uc.villaRepo.Get(materialID, villaID)
	if err != nil {
		return nil, nil, err
	}
	return material, villa, nil
}

// GetMovementHistory historial ordenado de movimientos de un material, con
// filtros opcionales de villa y rango de fechas. Solo lectura: lo consumen los
// colaboradores de reportería (PDF/CSV se renderizan fuera de este core).
func (uc *AdjustStockUseCase) GetMovementHistory(ctx context.Context, materialID string, filter repository.MovementFilter) ([]*entity.Movement, error) {
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrMaterialNotFound
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return uc.movRepo.ListByMaterial(materialID, filter)
}
