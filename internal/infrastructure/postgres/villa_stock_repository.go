package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/constructora-pro/internal/domain/entity"
	"github.com/tu-usuario/constructora-pro/internal/domain/repository"
)

var _ repository.VillaStockRepository = (*VillaStockRepo)(nil)

// VillaStockRepo implementación de VillaStockRepository sobre PostgreSQL (usable con pool o tx).
type VillaStockRepo struct {
	q Querier
}

// NewVillaStockRepository construye el adaptador de stock por villa. Pasar pool o tx (Querier).
func NewVillaStockRepository(q Querier) *VillaStockRepo {
	return &VillaStockRepo{q: q}
}

// Get obtiene el stock de un material en una villa. Si el par aún no existe
// devuelve un registro en cero (creación perezosa: el primer Upsert lo materializa).
func (r *VillaStockRepo) Get(materialID, villaID string) (*entity.VillaStock, error) {
	query := `
		SELECT material_id, villa_id, current_stock, avg_cost, updated_at
		FROM villa_stock WHERE material_id = $1 AND villa_id = $2`
	return r.getOne(query, materialID, villaID)
}

// GetForUpdate obtiene el stock de la villa y bloquea la fila (SELECT FOR UPDATE).
func (r *VillaStockRepo) GetForUpdate(materialID, villaID string) (*entity.VillaStock, error) {
	query := `
		SELECT material_id, villa_id, current_stock, avg_cost, updated_at
		FROM villa_stock WHERE material_id = $1 AND villa_id = $2
		FOR UPDATE`
	return r.getOne(query, materialID, villaID)
}

func (r *VillaStockRepo) getOne(query, materialID, villaID string) (*entity.VillaStock, error) {
	var s entity.VillaStock
	err := r.q.QueryRow(context.Background(), query, materialID, villaID).Scan(
		&s.MaterialID, &s.VillaID, &s.CurrentStock, &s.AvgCost, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.VillaStock{
				MaterialID:   materialID,
				VillaID:      villaID,
				CurrentStock: decimal.Zero,
				AvgCost:      decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get villa stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el saldo y costo promedio del par (material, villa).
func (r *VillaStockRepo) Upsert(stock *entity.VillaStock) error {
	query := `
		INSERT INTO villa_stock (material_id, villa_id, current_stock, avg_cost, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (material_id, villa_id)
		DO UPDATE SET current_stock = EXCLUDED.current_stock, avg_cost = EXCLUDED.avg_cost, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.MaterialID, stock.VillaID, stock.CurrentStock, stock.AvgCost)
	if err != nil {
		return fmt.Errorf("upsert villa stock: %w", err)
	}
	return nil
}

// ListByMaterial lista los saldos por villa de un material.
func (r *VillaStockRepo) ListByMaterial(materialID string) ([]*entity.VillaStock, error) {
	query := `
		SELECT material_id, villa_id, current_stock, avg_cost, updated_at
		FROM villa_stock WHERE material_id = $1 ORDER BY villa_id ASC`
	rows, err := r.q.Query(context.Background(), query, materialID)
	if err != nil {
		return nil, fmt.Errorf("list villa stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.VillaStock
	for rows.Next() {
		var s entity.VillaStock
		if err := rows.Scan(&s.MaterialID, &s.VillaID, &s.CurrentStock, &s.AvgCost, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan villa stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
