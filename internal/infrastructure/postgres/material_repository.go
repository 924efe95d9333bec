package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/constructora-pro/internal/application/usecase"
	"github.com/tu-usuario/constructora-pro/internal/domain"
	"github.com/tu-usuario/constructora-pro/internal/domain/entity"
	"github.com/tu-usuario/constructora-pro/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, name, unit, global_stock, last_cost, min_stock, active, created_at, updated_at`

// MaterialRepo implementación del puerto MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de persistencia para materiales. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un nuevo material. GlobalStock y LastCost inician en 0.
// name_normalized alimenta la búsqueda insensible a tildes.
func (r *MaterialRepo) Create(material *entity.Material) error {
	query := `
		INSERT INTO materials (id, name, name_normalized, unit, global_stock, last_cost, min_stock, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Name, usecase.NormalizeSearch(material.Name), material.Unit,
		material.GlobalStock, material.LastCost, material.MinStock, material.Active,
		material.CreatedAt, material.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	m, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// GetForUpdate obtiene el material y bloquea su fila (SELECT FOR UPDATE).
// Todos los ajustes de stock de un material pasan por este lock: es el punto
// de serialización por material.
func (r *MaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1 FOR UPDATE`
	m, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get material for update: %w", err)
	}
	return m, nil
}

// List lista materiales activos con búsqueda opcional por nombre y paginación.
// search llega ya normalizado (minúsculas, sin tildes) y se compara contra
// name_normalized.
func (r *MaterialRepo) List(search string, limit, offset int) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE active = true`
	args := []any{}
	pos := 1
	if search != "" {
		query += fmt.Sprintf(" AND name_normalized LIKE $%d", pos)
		args = append(args, "%"+search+"%")
		pos++
	}
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Unit, &m.GlobalStock, &m.LastCost,
			&m.MinStock, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update actualiza los datos maestros. No toca global_stock ni last_cost
// (se manejan vía movimientos con UpdateCounters).
func (r *MaterialRepo) Update(material *entity.Material) error {
	query := `
		UPDATE materials SET name = $2, name_normalized = $3, unit = $4, min_stock = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Name, usecase.NormalizeSearch(material.Name),
		material.Unit, material.MinStock, material.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// UpdateCounters persiste los contadores denormalizados tras un movimiento.
func (r *MaterialRepo) UpdateCounters(id string, globalStock, lastCost decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE materials SET global_stock = $2, last_cost = $3, updated_at = now() WHERE id = $1`,
		id, globalStock, lastCost,
	)
	if err != nil {
		return fmt.Errorf("update material counters: %w", err)
	}
	return nil
}

// SoftDelete baja lógica; los asientos del libro siguen referenciando el material.
func (r *MaterialRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE materials SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete material: %w", err)
	}
	return nil
}

func (r *MaterialRepo) scanOne(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(&m.ID, &m.Name, &m.Unit, &m.GlobalStock, &m.LastCost,
		&m.MinStock, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
