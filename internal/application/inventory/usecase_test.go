package inventory_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/tu-usuario/constructora-pro/internal/application/inventory"
	"github.com/tu-usuario/constructora-pro/internal/domain"
	"github.com/tu-usuario/constructora-pro/internal/domain/entity"
	"github.com/tu-usuario/constructora-pro/internal/domain/repository"
	"github.com/tu-usuario/constructora-pro/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: simulan el comportamiento transaccional de postgres
// (snapshot al abrir la tx, restore en rollback, mutex en lugar de FOR UPDATE).
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu        sync.Mutex
	materials map[string]*entity.Material
	villas    map[string]*entity.VillaStock // clave material|villa
	movements []*entity.Movement            // orden de inserción

	failMovementCreate bool // simula caída de la BD al persistir el asiento
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		materials: make(map[string]*entity.Material),
		villas:    make(map[string]*entity.VillaStock),
	}
}

func villaKey(materialID, villaID string) string { return materialID + "|" + villaID }

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (s *fakeStore) snapshot() (map[string]entity.Material, map[string]entity.VillaStock, []entity.Movement) {
	mats := map[string]entity.Material{}
	for k, v := range s.materials {
		mats[k] = *v
	}
	villas := map[string]entity.VillaStock{}
	for k, v := range s.villas {
		villas[k] = *v
	}
	movs := make([]entity.Movement, len(s.movements))
	for i, m := range s.movements {
		movs[i] = *m
	}
	return mats, villas, movs
}

func (s *fakeStore) restore(mats map[string]entity.Material, villas map[string]entity.VillaStock, movs []entity.Movement) {
	s.materials = map[string]*entity.Material{}
	for k, v := range mats {
		m := v
		s.materials[k] = &m
	}
	s.villas = map[string]*entity.VillaStock{}
	for k, v := range villas {
		vs := v
		s.villas[k] = &vs
	}
	s.movements = make([]*entity.Movement, len(movs))
	for i := range movs {
		m := movs[i]
		s.movements[i] = &m
	}
}

type fakeMaterialRepo struct{ s *fakeStore }

func (r *fakeMaterialRepo) Create(m *entity.Material) error {
	cp := *m
	r.s.materials[m.ID] = &cp
	return nil
}

func (r *fakeMaterialRepo) GetByID(id string) (*entity.Material, error) {
	m, ok := r.s.materials[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	return r.GetByID(id)
}

func (r *fakeMaterialRepo) List(search string, limit, offset int) ([]*entity.Material, error) {
	return nil, nil
}

func (r *fakeMaterialRepo) Update(m *entity.Material) error {
	cp := *m
	r.s.materials[m.ID] = &cp
	return nil
}

func (r *fakeMaterialRepo) UpdateCounters(id string, globalStock, lastCost decimal.Decimal) error {
	m, ok := r.s.materials[id]
	if !ok {
		return errors.New("material inexistente")
	}
	m.GlobalStock = globalStock
	m.LastCost = lastCost
	m.UpdatedAt = time.Now()
	return nil
}

func (r *fakeMaterialRepo) SoftDelete(id string) error {
	if m, ok := r.s.materials[id]; ok {
		m.Active = false
	}
	return nil
}

type fakeVillaRepo struct{ s *fakeStore }

func (r *fakeVillaRepo) Get(materialID, villaID string) (*entity.VillaStock, error) {
	if v, ok := r.s.villas[villaKey(materialID, villaID)]; ok {
		cp := *v
		return &cp, nil
	}
	return &entity.VillaStock{
		MaterialID:   materialID,
		VillaID:      villaID,
		CurrentStock: decimal.Zero,
		AvgCost:      decimal.Zero,
	}, nil
}

func (r *fakeVillaRepo) GetForUpdate(materialID, villaID string) (*entity.VillaStock, error) {
	return r.Get(materialID, villaID)
}

func (r *fakeVillaRepo) Upsert(v *entity.VillaStock) error {
	cp := *v
	r.s.villas[villaKey(v.MaterialID, v.VillaID)] = &cp
	return nil
}

func (r *fakeVillaRepo) ListByMaterial(materialID string) ([]*entity.VillaStock, error) {
	var out []*entity.VillaStock
	for _, v := range r.s.villas {
		if v.MaterialID == materialID {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeMovementRepo struct{ s *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	if r.s.failMovementCreate {
		return errors.New("db caída: insert movements")
	}
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.Movement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) OpenBatches(materialID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.MaterialID == materialID && m.Type == entity.MovementTypeIN &&
			m.VillaID == nil && m.RemainingQuantity.GreaterThan(decimal.Zero) {
			cp := *m
			out = append(out, &cp)
		}
	}
	// Más antiguo primero; empates por orden de inserción (sort estable).
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeMovementRepo) UpdateRemaining(id string, remaining decimal.Decimal) error {
	for _, m := range r.s.movements {
		if m.ID == id {
			m.RemainingQuantity = remaining
			return nil
		}
	}
	return errors.New("movimiento inexistente")
}

func (r *fakeMovementRepo) ListByMaterial(materialID string, filter repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.MaterialID != materialID {
			continue
		}
		if filter.VillaID != nil {
			if m.VillaID == nil || *m.VillaID != *filter.VillaID {
				continue
			}
		}
		if filter.From != nil && m.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.Date.After(*filter.To) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// fakeTxRunner serializa las transacciones con un mutex y restaura el snapshot
// en rollback: el caso de uso nunca observa estado medio aplicado.
type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	villaRepo repository.VillaStockRepository,
	movRepo repository.MovementRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	mats, villas, movs := r.s.snapshot()
	err := fn(&fakeMaterialRepo{r.s}, &fakeVillaRepo{r.s}, &fakeMovementRepo{r.s})
	if err != nil {
		r.s.restore(mats, villas, movs)
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newUseCase(s *fakeStore) *appinv.AdjustStockUseCase {
	return appinv.NewAdjustStockUseCase(
		&fakeTxRunner{s},
		&fakeMaterialRepo{s},
		&fakeVillaRepo{s},
		&fakeMovementRepo{s},
		logger.NewNop(),
	)
}

func seedMaterial(s *fakeStore, unit string) *entity.Material {
	m := &entity.Material{
		ID:          uuid.New().String(),
		Name:        "Cemento gris",
		Unit:        unit,
		GlobalStock: decimal.Zero,
		LastCost:    decimal.Zero,
		Active:      true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	s.materials[m.ID] = m
	return m
}

func at(day int) *time.Time {
	t := time.Date(2026, 3, day, 10, 0, 0, 0, time.UTC)
	return &t
}

func purchase(qty, rate string, day int, materialID string) appinv.AdjustStockInput {
	r := d(rate)
	return appinv.AdjustStockInput{
		MaterialID:  materialID,
		Type:        entity.MovementTypeIN,
		Quantity:    d(qty),
		RatePerUnit: &r,
		Date:        at(day),
		PerformedBy: "user-1",
	}
}

// Invariantes de §conservación, derivados del libro de movimientos.
func assertConservation(t *testing.T, s *fakeStore, materialID string, villaIDs ...string) {
	t.Helper()
	global := decimal.Zero
	villaSums := map[string]decimal.Decimal{}
	for _, m := range s.movements {
		if m.MaterialID != materialID {
			continue
		}
		switch {
		case m.Type == entity.MovementTypeIN && m.VillaID == nil:
			global = global.Add(m.Quantity)
		case m.Type == entity.MovementTypeOUT && m.VillaID == nil:
			global = global.Sub(m.Quantity)
		case m.Type == entity.MovementTypeIN && m.VillaID != nil:
			// Traslado: sale de bodega central, entra a la villa.
			global = global.Sub(m.Quantity)
			villaSums[*m.VillaID] = villaSums[*m.VillaID].Add(m.Quantity)
		case m.Type == entity.MovementTypeOUT && m.VillaID != nil:
			villaSums[*m.VillaID] = villaSums[*m.VillaID].Sub(m.Quantity)
		}
	}
	mat := s.materials[materialID]
	require.NotNil(t, mat)
	assert.True(t, mat.GlobalStock.Equal(global),
		"contador global %s debe igualar la suma del libro %s", mat.GlobalStock, global)
	assert.False(t, mat.GlobalStock.IsNegative(), "el contador global nunca es negativo")
	for _, villaID := range villaIDs {
		vs, ok := s.villas[villaKey(materialID, villaID)]
		sum := villaSums[villaID]
		if !ok {
			assert.True(t, sum.IsZero(), "villa %s sin registro debe sumar cero en el libro", villaID)
			continue
		}
		assert.True(t, vs.CurrentStock.Equal(sum),
			"contador de villa %s (%s) debe igualar la suma del libro (%s)", villaID, vs.CurrentStock, sum)
		assert.False(t, vs.CurrentStock.IsNegative())
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Compras y traslados
// ──────────────────────────────────────────────────────────────────────────────

// Una compra crea un lote FIFO con remaining = quantity y actualiza contador y última tarifa.
func TestAdjustStock_CompraCreaLoteFIFO(t *testing.T) {
	s := newFakeStore()
	mat := seedMaterial(s, "bulto")
	uc := newUseCase(s)

	res, err := uc.AdjustStock(context.Background(), purchase("100", "50", 1, mat.ID))
	require.NoError(t, err)

	assert.True(t, res.Material.GlobalStock.Equal(d("100")))
	assert.True(t, res.Material.LastCost.Equal(d("50")))
	assert.Equal(t, entity.KindPurchase, res.Movement.Kind())
	assert.True(t, res.Movement.RemainingQuantity.Equal(d("100")), "el lote nace completo")
	assert.True(t, res.Movement.TotalCost.Equal(d("5000")))
	assertConservation(t, s, mat.ID)
}

// Escenario de traslado: compra 100 @ 50 -> traslada 40 a "Unit-7".
// global=60, remaining del lote=60, stock de la villa=40, costo del traslado=2000.
func TestAdjustStock_EscenarioTraslado(t *testing.T) {
	s := newFakeStore()
	mat := seedMaterial(s, "bulto")
	uc := newUseCase(s)
	ctx := context.Background()

	buy, err := uc.AdjustStock(ctx, purchase("100", "50", 1, mat.ID))
	require.NoError(t, err)

	res, err := uc.AdjustStock(ctx, appinv.AdjustStockInput{
		MaterialID:  mat.ID,
		Type:        entity.MovementTypeIN,
		Quantity:    d("40"),
		VillaID:     "Unit-7",
		Date:        at(2),
		PerformedBy: "user-1",
	})
	require.NoError(t, err)

	assert.True(t, res.Material.GlobalStock.Equal(d("60")))
	require.NotNil(t, res.VillaStock)
	assert.True(t, res.VillaStock.CurrentStock.Equal(d("40")), "la villa se crea perezosamente con el primer traslado")
	assert.True(t, res.VillaStock.AvgCost.Equal(d("50")))
	assert.Equal(t, entity.KindTransfer, res.Movement.Kind())
	assert.True(t, res.Movement.TotalCost.Equal(d("2000")), "costo del traslado 40x50")
	assert.True(t, res.Movement.RatePerUnit.Equal(d("50")))

	lote, err := (&fakeMovementRepo{s}).GetByID(buy.Movement.ID)
	require.NoError(t, err)
	assert.True(t, lote.RemainingQuantity.Equal(d("60")), "el lote debe quedar con 60")

	assertConservation(t, s, mat.ID, "Unit-7")
}

// Consumo global con dos lotes: FIFO respeta el orden por fecha.
func TestAdjustStock_ConsumoGlobalFIFO(t *testing.T) {
	s := newFakeStore()
	mat := seedMaterial(s, "kg")
	uc := newUseCase(s)
	ctx := context.Background()

	b1, err := uc.AdjustStock(ctx, purchase("10", "100", 1, mat.ID))
	require.NoError(t, err)
	b2, err := uc.AdjustStock(ctx, purchase("10", "200", 2, mat.ID))
	require.NoError(t, err)

	res, err := uc.AdjustStock(ctx, appinv.AdjustStockInput{
		MaterialID:  mat.ID,
		Type:        entity.MovementTypeOUT,
		Quantity:    d("15"),
		Date:        at(3),
		PerformedBy: "user-1",
	})
	require.NoError(t, err)

	assert.True(t, res.Movement.TotalCost.Equal(d("2000")), "10x100 + 5x200")
	assert.True(t, res.Material.GlobalStock.Equal(d("5")))

	movRepo := &fakeMovementRepo{s}
	m1, _ := movRepo.GetByID(b1.Movement.ID)
	m2, _ := movRepo.GetByID(b2.Movement.ID)
	assert.True(t, m1.RemainingQuantity.IsZero(), "B1 agotado")
	assert.True(t, m2.RemainingQuantity.Equal(d("5")), "B2 con 5")

	assertConservation(t, s, mat.ID)
}

// Conservación para todos los prefijos de una secuencia de movimientos.
func TestAdjustStock_ConservacionPorPrefijos(t *testing.T) {
	s := newFakeStore()
	mat := seedMaterial(s, "m3")
	uc := newUseCase(s)
	ctx := context.Background()

	steps := []appinv.AdjustStockInput{
		purchase("50", "10", 1, mat.ID),
		{MaterialID: mat.ID, Type: entity.MovementTypeIN, Quantity: d("20"), VillaID: "V-1", Date: at(2)},
		purchase("30", "12", 3, mat.ID),
		{MaterialID: mat.ID, Type: entity.MovementTypeOUT, Quantity: d("15"), Date: at(4)},
		{MaterialID: mat.ID, Type: entity.MovementTypeOUT, Quantity: d("8"), VillaID: "V-1", Date: at(5)},
		{MaterialID: mat.ID, Type: entity.MovementTypeIN, Quantity: d("10"), VillaID: "V-2", Date: at(6)},
		{MaterialID: mat.ID, Type: entity.MovementTypeOUT, Quantity: d("10"), VillaID: "V-2", Date: at(7)},
	}
	for i, in := range steps {
		_, err := uc.AdjustStock(ctx, in)
		require.NoError(t, err, "paso %d", i)
		// El invariante se sostiene en cada prefijo, no solo al final.
		assertConservation(t, s, mat.ID, "V-1", "V-2")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Precondiciones y validaciones
// ──────────────────────────────────────────────────────────────────────────────

// Sobregiro global: rechazo con la cantidad disponible y la unidad, sin efectos.
func TestAdjustStock_StockGlobalInsuficiente(t *testing.T) {
	s := newFakeStore()
	mat := seedMaterial(s, "bulto")
	uc := newUseCase(s)
	ctx := context.Background()

	_, err := uc.AdjustStock(ctx, purchase("10", "50", 1, mat.ID))
	require.NoError(t, err)
	movsBefore := len(s.movements)

	_, err = uc.AdjustStock(ctx, appinv.AdjustStockInput{
		MaterialID: mat.ID,
		Type:       entity.MovementTypeOUT,
		Quantity:   d("11"),
		Date:       at(2),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var shortage *domain.StockShortageError
	require.ErrorAs(t, err, &shortage)
	assert.True(t, shortage.Available.Equal(d("10")), "debe reportar lo disponible")
	assert.Equal(t, "bulto", shortage.Unit)

	assert.True(t, s.materials[mat.ID].GlobalStock.Equal(d("10")), "contador intacto")
	assert.Len(t, s.movements, movsBefore, "sin asiento nuevo")
}

// Sobregiro en villa: ErrInsufficientVillaStock, bodega central intacta.
func TestAdjustStock_StockVillaInsuficiente(t *testing.T) {
	s := newFakeStore()
	mat := seedMaterial(s, "kg")
	uc := newUseCase(s)
	ctx := context.Background()

	_, err := uc.AdjustStock(ctx, purchase("50", "10", 1, mat.ID))
	require.NoError(t, err)
	_, err = uc.AdjustStock(ctx, appinv.AdjustStockInput{
		MaterialID: mat.ID, Type: entity.MovementTypeIN, Quantity: d("20"), VillaID: "V-9", Date: at(2),
	})
	require.NoError(t, err)

	_, err = uc.AdjustStock(ctx, appinv.AdjustStockInput{
		MaterialID: mat.ID, Type: entity.MovementTypeOUT, Quantity: d("25"), VillaID: "V-9", Date: at(3),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientVillaStock)

	var shortage *domain.StockShortageError
	require.ErrorAs(t, err, &shortage)
	assert.Equal(t, "V-9", shortage.VillaID)
	assert.True(t, shortage.Available.Equal(d("20")))

	assert.True(t, s.materials[mat.ID].GlobalStock.Equal(d("30")))
	assert.True(t, s.villas[villaKey(mat.ID, "V-9")].CurrentStock.Equal(d("20")))
}

// Entradas inválidas: cantidad no positiva, tipo desconocido, compra sin tarifa,
// material inexistente o dado de baja.
func TestAdjustStock_Validaciones(t *testing.T) {
	s := newFakeStore()
	mat := seedMaterial(s, "kg")
	uc := newUseCase(s)
	ctx := context.Background()

	_, err := uc.AdjustStock(ctx, appinv.AdjustStockInput{MaterialID: mat.ID, Type: entity.MovementTypeIN, Quantity: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidMovement, "cantidad cero")

	_, err = uc.AdjustStock(ctx, appinv.AdjustStockInput{MaterialID: mat.ID, Type: entity.MovementTypeIN, Quantity: d("-5")})
	assert.ErrorIs(t, err, domain.ErrInvalidMovement, "cantidad negativa")

	_, err = uc.AdjustStock(ctx, appinv.AdjustStockInput{MaterialID: mat.ID, Type: "AJUSTE", Quantity: d("5")})
	assert.ErrorIs(t, err, domain.ErrInvalidMovement, "tipo desconocido")

	_, err = uc.AdjustStock(ctx, appinv.AdjustStockInput{MaterialID: mat.ID, Type: entity.MovementTypeIN, Quantity: d("5")})
	assert.ErrorIs(t, err, domain.ErrInvalidMovement, "compra sin tarifa")

	_, err = uc.AdjustStock(ctx, purchase("5", "10", 1, "no-existe"))
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)

	s.materials[mat.ID].Active = false
	_, err = uc.AdjustStock(ctx, purchase("5", "10", 1, mat.ID))
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound, "material dado de baja")

	assert.Empty(t, s.movements, "ninguna validación fallida deja asientos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock fantasma y atomicidad
// ──────────────────────────────────────────────────────────────────────────────

// Deriva simulada: el contador dice 100 pero la cola FIFO solo cubre 40.
// El consumo de 60 tiene éxito y el faltante se valora a la última tarifa.
func TestAdjustStock_StockFantasma(t *testing.T) {
	s := newFakeStore()
	mat := seedMaterial(s, "kg")
	uc := newUseCase(s)
	ctx := context.Background()

	_, err := uc.AdjustStock(ctx, purchase("40", "10", 1, mat.ID))
	require.NoError(t, err)
	// Ajuste fuera de banda: el contador queda por encima de la cola.
	s.materials[mat.ID].GlobalStock = d("100")

	res, err := uc.AdjustStock(ctx, appinv.AdjustStockInput{
		MaterialID: mat.ID, Type: entity.MovementTypeOUT, Quantity: d("60"), Date: at(2),
	})
	require.NoError(t, err, "la disponibilidad la gobierna el contador, no la cola")

	// 40 @ 10 del lote + 20 @ 10 (última tarifa recorrida)
	assert.True(t, res.Movement.TotalCost.Equal(d("600")))
	assert.True(t, res.Material.GlobalStock.Equal(d("40")))

	batches, _ := (&fakeMovementRepo{s}).OpenBatches(mat.ID)
	assert.Empty(t, batches, "la cola queda agotada")
}

// Caída de la BD al insertar el asiento: rollback total, sin estado parcial.
func TestAdjustStock_RollbackSinEstadoParcial(t *testing.T) {
	s := newFakeStore()
	mat := seedMaterial(s, "kg")
	uc := newUseCase(s)
	ctx := context.Background()

	b1, err := uc.AdjustStock(ctx, purchase("30", "10", 1, mat.ID))
	require.NoError(t, err)

	s.failMovementCreate = true
	_, err = uc.AdjustStock(ctx, appinv.AdjustStockInput{
		MaterialID: mat.ID, Type: entity.MovementTypeOUT, Quantity: d("10"), Date: at(2),
	})
	require.Error(t, err)
	s.failMovementCreate = false

	// Contador y decrementos de lote revertidos junto con el asiento ausente.
	assert.True(t, s.materials[mat.ID].GlobalStock.Equal(d("30")), "contador restaurado")
	lote, _ := (&fakeMovementRepo{s}).GetByID(b1.Movement.ID)
	assert.True(t, lote.RemainingQuantity.Equal(d("30")), "remaining restaurado")
	assert.Len(t, s.movements, 1, "solo la compra original")
}

// N salidas concurrentes con stock para N-1: exactamente una falla y el saldo
// final nunca es negativo.
func TestAdjustStock_Concurrencia(t *testing.T) {
	const n = 8
	q := d("5")

	s := newFakeStore()
	mat := seedMaterial(s, "kg")
	uc := newUseCase(s)
	ctx := context.Background()

	r := d("10")
	_, err := uc.AdjustStock(ctx, appinv.AdjustStockInput{
		MaterialID:  mat.ID,
		Type:        entity.MovementTypeIN,
		Quantity:    q.Mul(decimal.NewFromInt(n - 1)),
		RatePerUnit: &r,
		Date:        at(1),
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.AdjustStock(ctx, appinv.AdjustStockInput{
				MaterialID: mat.ID, Type: entity.MovementTypeOUT, Quantity: q,
			})
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactamente una salida debe rechazarse")
	assert.True(t, s.materials[mat.ID].GlobalStock.IsZero(), "saldo final 0, nunca negativo")
	assertConservation(t, s, mat.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reversas
// ──────────────────────────────────────────────────────────────────────────────

// Revertir una compra emite un consumo global por la misma cantidad.
func TestRevertMovement_Compra(t *testing.T) {
	s := newFakeStore()
	mat := seedMaterial(s, "kg")
	uc := newUseCase(s)
	ctx := context.Background()

	buy, err := uc.AdjustStock(ctx, purchase("20", "15", 1, mat.ID))
	require.NoError(t, err)

	movs, err := uc.RevertMovement(ctx, buy.Movement.ID, "user-2", "compra duplicada")
	require.NoError(t, err)
	require.Len(t, movs, 1)

	assert.Equal(t, entity.KindIssueGlobal, movs[0].Kind())
	assert.Equal(t, appinv.UsageCategoryReversal, movs[0].UsageCategory)
	assert.Contains(t, movs[0].Notes, buy.Movement.ID)
	assert.True(t, s.materials[mat.ID].GlobalStock.IsZero())
	assertConservation(t, s, mat.ID)
}

// Revertir un consumo global reingresa la cantidad como lote FIFO a la tarifa original.
func TestRevertMovement_ConsumoGlobal(t *testing.T) {
	s := newFakeStore()
	mat := seedMaterial(s, "kg")
	uc := newUseCase(s)
	ctx := context.Background()

	_, err := uc.AdjustStock(ctx, purchase("20", "15", 1, mat.ID))
	require.NoError(t, err)
	issue, err := uc.AdjustStock(ctx, appinv.AdjustStockInput{
		MaterialID: mat.ID, Type: entity.MovementTypeOUT, Quantity: d("20"), Date: at(2),
	})
	require.NoError(t, err)

	movs, err := uc.RevertMovement(ctx, issue.Movement.ID, "user-2", "")
	require.NoError(t, err)
	require.Len(t, movs, 1)

	assert.Equal(t, entity.KindPurchase, movs[0].Kind())
	assert.True(t, movs[0].RatePerUnit.Equal(d("15")), "reingresa a la tarifa original")
	assert.True(t, movs[0].RemainingQuantity.Equal(d("20")), "vuelve a la cola FIFO")
	assert.True(t, s.materials[mat.ID].GlobalStock.Equal(d("20")))
	assertConservation(t, s, mat.ID)
}

// Revertir un traslado devuelve el stock de la villa a bodega central (dos asientos).
func TestRevertMovement_Traslado(t *testing.T) {
	s := newFakeStore()
	mat := seedMaterial(s, "kg")
	uc := newUseCase(s)
	ctx := context.Background()

	_, err := uc.AdjustStock(ctx, purchase("50", "10", 1, mat.ID))
	require.NoError(t, err)
	tr, err := uc.AdjustStock(ctx, appinv.AdjustStockInput{
		MaterialID: mat.ID, Type: entity.MovementTypeIN, Quantity: d("30"), VillaID: "V-3", Date: at(2),
	})
	require.NoError(t, err)

	movs, err := uc.RevertMovement(ctx, tr.Movement.ID, "user-2", "")
	require.NoError(t, err)
	require.Len(t, movs, 2, "consumo en villa + compra de reingreso")

	assert.True(t, s.villas[villaKey(mat.ID, "V-3")].CurrentStock.IsZero())
	assert.True(t, s.materials[mat.ID].GlobalStock.Equal(d("50")))
	assertConservation(t, s, mat.ID, "V-3")
}

// Una reversa no se revierte; un movimiento inexistente es NotFound.
func TestRevertMovement_Rechazos(t *testing.T) {
	s := newFakeStore()
	mat := seedMaterial(s, "kg")
	uc := newUseCase(s)
	ctx := context.Background()

	buy, err := uc.AdjustStock(ctx, purchase("10", "5", 1, mat.ID))
	require.NoError(t, err)
	movs, err := uc.RevertMovement(ctx, buy.Movement.ID, "user-2", "")
	require.NoError(t, err)

	_, err = uc.RevertMovement(ctx, movs[0].ID, "user-2", "")
	assert.ErrorIs(t, err, domain.ErrInvalidMovement, "reversa de reversa")

	_, err = uc.RevertMovement(ctx, "no-existe", "user-2", "")
	assert.ErrorIs(t, err, domain.ErrMovementNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

// Lectura inmediata tras escritura y filtros del historial.
func TestQueries_SnapshotsEHistorial(t *testing.T) {
	s := newFakeStore()
	mat := seedMaterial(s, "kg")
	uc := newUseCase(s)
	ctx := context.Background()

	_, err := uc.AdjustStock(ctx, purchase("40", "10", 1, mat.ID))
	require.NoError(t, err)
	_, err = uc.AdjustStock(ctx, appinv.AdjustStockInput{
		MaterialID: mat.ID, Type: entity.MovementTypeIN, Quantity: d("15"), VillaID: "V-1", Date: at(2),
	})
	require.NoError(t, err)

	got, err := uc.GetMaterialStock(ctx, mat.ID)
	require.NoError(t, err)
	assert.True(t, got.GlobalStock.Equal(d("25")), "lectura refleja la escritura inmediatamente")

	_, vs, err := uc.GetVillaStock(ctx, mat.ID, "V-1")
	require.NoError(t, err)
	assert.True(t, vs.CurrentStock.Equal(d("15")))

	_, vsEmpty, err := uc.GetVillaStock(ctx, mat.ID, "V-nunca")
	require.NoError(t, err)
	assert.True(t, vsEmpty.CurrentStock.IsZero(), "villa sin movimientos devuelve cero")

	villa := "V-1"
	hist, err := uc.GetMovementHistory(ctx, mat.ID, repository.MovementFilter{VillaID: &villa})
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, entity.KindTransfer, hist[0].Kind())

	_, err = uc.GetMovementHistory(ctx, "no-existe", repository.MovementFilter{})
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
}
