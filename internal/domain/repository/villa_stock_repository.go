package repository

import "github.com/tu-usuario/constructora-pro/internal/domain/entity"

// VillaStockRepository puerto para consultar/actualizar stock por (material, villa).
// Get/GetForUpdate devuelven un registro en cero si el par aún no existe
// (creación perezosa: el primer Upsert lo materializa).
type VillaStockRepository interface {
	Get(materialID, villaID string) (*entity.VillaStock, error)
	GetForUpdate(materialID, villaID string) (*entity.VillaStock, error)
	Upsert(stock *entity.VillaStock) error
	ListByMaterial(materialID string) ([]*entity.VillaStock, error)
}
