package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/constructora-pro/internal/domain/entity"
	"github.com/tu-usuario/constructora-pro/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, material_id, type, quantity, remaining_quantity, rate_per_unit, total_cost,
		date, villa_id, supplier_id, project_id, usage_category, performed_by, notes, created_at`

// MovementRepo implementación del libro de movimientos sobre PostgreSQL (usable con pool o tx).
// El libro es append-only: solo remaining_quantity se actualiza después del insert.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un asiento del libro.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.MaterialID, movement.Type,
		movement.Quantity, movement.RemainingQuantity, movement.RatePerUnit, movement.TotalCost,
		movement.Date, movement.VillaID, movement.SupplierID, movement.ProjectID,
		movement.UsageCategory, movement.PerformedBy, movement.Notes, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(context.Background(), query, id).Scan(scanTargets(&m)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// OpenBatches lotes de compra no agotados del material, del más antiguo al más
// reciente. Se consulta dentro de la transacción del ajuste, con la fila del
// material ya bloqueada, así que no necesita lock propio.
func (r *MovementRepo) OpenBatches(materialID string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE material_id = $1 AND type = 'IN' AND villa_id IS NULL AND remaining_quantity > 0
		ORDER BY date ASC, created_at ASC`
	rows, err := r.q.Query(context.Background(), query, materialID)
	if err != nil {
		return nil, fmt.Errorf("open batches: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// UpdateRemaining decrementa lo que queda de un lote tras un consumo FIFO.
func (r *MovementRepo) UpdateRemaining(id string, remaining decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE movements SET remaining_quantity = $2 WHERE id = $1`,
		id, remaining,
	)
	if err != nil {
		return fmt.Errorf("update remaining: %w", err)
	}
	return nil
}

// ListByMaterial historial de un material, más reciente primero, con filtros
// opcionales por villa y rango de fechas.
func (r *MovementRepo) ListByMaterial(materialID string, filter repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE material_id = $1`
	args := []any{materialID}
	pos := 2
	if filter.VillaID != nil {
		query += fmt.Sprintf(" AND villa_id = $%d", pos)
		args = append(args, *filter.VillaID)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func scanTargets(m *entity.Movement) []any {
	return []any{
		&m.ID, &m.MaterialID, &m.Type,
		&m.Quantity, &m.RemainingQuantity, &m.RatePerUnit, &m.TotalCost,
		&m.Date, &m.VillaID, &m.SupplierID, &m.ProjectID,
		&m.UsageCategory, &m.PerformedBy, &m.Notes, &m.CreatedAt,
	}
}

func collectMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(scanTargets(&m)...); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
