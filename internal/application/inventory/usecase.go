package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/constructora-pro/internal/domain"
	"github.com/tu-usuario/constructora-pro/internal/domain/entity"
	domaininv "github.com/tu-usuario/constructora-pro/internal/domain/inventory"
	"github.com/tu-usuario/constructora-pro/internal/domain/repository"
	"github.com/tu-usuario/constructora-pro/pkg/logger"
)

// AdjustStockUseCase único punto de mutación de stock. Clasifica el movimiento
// (compra, traslado a villa, consumo global, consumo en villa), valida
// precondiciones, invoca el motor FIFO para movimientos que consumen bodega
// central y persiste contadores + asiento + decrementos de lotes en una sola
// transacción. La serialización por material la da el bloqueo de fila
// (GetForUpdate sobre materials) al inicio de cada transacción: dos ajustes
// concurrentes del mismo material se encolan en la BD; materiales distintos no
// se bloquean entre sí.
type AdjustStockUseCase struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
	villaRepo    repository.VillaStockRepository
	movRepo      repository.MovementRepository
	log          *logger.Logger
}

// NewAdjustStockUseCase construye el caso de uso. Los repos sueltos se usan solo
// para lecturas; toda mutación pasa por los repos atados a la tx del TxRunner.
func NewAdjustStockUseCase(
	txRunner TxRunner,
	materialRepo repository.MaterialRepository,
	villaRepo repository.VillaStockRepository,
	movRepo repository.MovementRepository,
	log *logger.Logger,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		txRunner:     txRunner,
		materialRepo: materialRepo,
		villaRepo:    villaRepo,
		movRepo:      movRepo,
		log:          log,
	}
}

// AdjustStockInput entrada para registrar un movimiento de stock.
// RatePerUnit es obligatorio para compras (IN sin villa); en las demás clases la
// tarifa se deriva (FIFO o promedio del pool de la villa) y el campo se ignora.
type AdjustStockInput struct {
	MaterialID    string
	Type          string // IN | OUT
	Quantity      decimal.Decimal
	VillaID       string // vacío = bodega central
	RatePerUnit   *decimal.Decimal
	SupplierID    string
	ProjectID     string
	Date          *time.Time
	UsageCategory string
	Notes         string
	PerformedBy   string
}

// AdjustStockResult estado actualizado tras un movimiento exitoso.
type AdjustStockResult struct {
	Material   *entity.Material
	VillaStock *entity.VillaStock // nil en movimientos sin villa
	Movement   *entity.Movement
}

// AdjustStock valida y clasifica el movimiento, abre la transacción, bloquea la
// fila del material y aplica la lógica de la clase correspondiente. Cualquier
// error deja la base sin mutaciones parciales (rollback del TxRunner).
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, input AdjustStockInput) (*AdjustStockResult, error) {
	if input.MaterialID == "" || !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidMovement
	}
	kind := entity.ClassifyMovement(input.Type, input.VillaID != "")
	if kind == "" {
		return nil, domain.ErrInvalidMovement
	}
	if kind == entity.KindPurchase && (input.RatePerUnit == nil || input.RatePerUnit.LessThan(decimal.Zero)) {
		return nil, domain.ErrInvalidMovement
	}

	now := time.Now()
	date := now
	if input.Date != nil {
		date = *input.Date
	}

	var result *AdjustStockResult
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		villaRepo repository.VillaStockRepository,
		movRepo repository.MovementRepository,
	) error {
		// Bloquea la fila del material (SELECT FOR UPDATE): serializa todos los
		// movimientos de este material, incluida la lectura de lotes FIFO.
		material, err := materialRepo.GetForUpdate(input.MaterialID)
		if err != nil {
			return err
		}
		if material == nil || !material.Active {
			return domain.ErrMaterialNotFound
		}

		var res *AdjustStockResult
		switch kind {
		case entity.KindPurchase:
			res, err = uc.doPurchase(materialRepo, movRepo, material, input, now, date)
		case entity.KindTransfer:
			res, err = uc.doTransfer(materialRepo, villaRepo, movRepo, material, input, now, date)
		case entity.KindIssueGlobal:
			res, err = uc.doIssueGlobal(materialRepo, movRepo, material, input, now, date)
		case entity.KindIssueVilla:
			res, err = uc.doIssueVilla(villaRepo, movRepo, material, input, now, date)
		}
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// doPurchase: entrada externa a bodega central. Crea un lote FIFO
// (remaining_quantity = quantity) y actualiza contador y última tarifa.
func (uc *AdjustStockUseCase) doPurchase(
	materialRepo repository.MaterialRepository,
	movRepo repository.MovementRepository,
	material *entity.Material,
	input AdjustStockInput,
	now, date time.Time,
) (*AdjustStockResult, error) {
	rate := *input.RatePerUnit
	material.GlobalStock = material.GlobalStock.Add(input.Quantity)
	material.LastCost = rate
	if err := materialRepo.UpdateCounters(material.ID, material.GlobalStock, material.LastCost); err != nil {
		return nil, err
	}
	mov := uc.buildMovement(material.ID, entity.MovementTypeIN, input, now, date)
	mov.RemainingQuantity = input.Quantity
	mov.RatePerUnit = rate
	mov.TotalCost = input.Quantity.Mul(rate)
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return &AdjustStockResult{Material: material, Movement: mov}, nil
}

// doTransfer: bodega central -> villa. Consume bodega central vía FIFO; el pool
// de la villa absorbe la cantidad al costo efectivo del traslado (promedio
// ponderado sobre lo que ya tenía).
func (uc *AdjustStockUseCase) doTransfer(
	materialRepo repository.MaterialRepository,
	villaRepo repository.VillaStockRepository,
	movRepo repository.MovementRepository,
	material *entity.Material,
	input AdjustStockInput,
	now, date time.Time,
) (*AdjustStockResult, error) {
	if material.GlobalStock.LessThan(input.Quantity) {
		return nil, &domain.StockShortageError{
			MaterialID: material.ID,
			Requested:  input.Quantity,
			Available:  material.GlobalStock,
			Unit:       material.Unit,
		}
	}
	fifoRes, err := uc.consumeGlobal(movRepo, material, input.Quantity)
	if err != nil {
		return nil, err
	}
	material.GlobalStock = material.GlobalStock.Sub(input.Quantity)
	if err := materialRepo.UpdateCounters(material.ID, material.GlobalStock, material.LastCost); err != nil {
		return nil, err
	}

	villa, err := villaRepo.GetForUpdate(input.MaterialID, input.VillaID)
	if err != nil {
		return nil, err
	}
	villa.AvgCost = domaininv.WeightedAvgCost(villa.CurrentStock, villa.AvgCost, input.Quantity, fifoRes.EffectiveRate)
	villa.CurrentStock = villa.CurrentStock.Add(input.Quantity)
	villa.UpdatedAt = now
	if err := villaRepo.Upsert(villa); err != nil {
		return nil, err
	}

	mov := uc.buildMovement(material.ID, entity.MovementTypeIN, input, now, date)
	mov.RatePerUnit = fifoRes.EffectiveRate
	mov.TotalCost = fifoRes.TotalCost
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return &AdjustStockResult{Material: material, VillaStock: villa, Movement: mov}, nil
}

// doIssueGlobal: consumo directo de bodega central (uso general de obra no
// atado a una villa). Consume lotes FIFO igual que un traslado.
func (uc *AdjustStockUseCase) doIssueGlobal(
	materialRepo repository.MaterialRepository,
	movRepo repository.MovementRepository,
	material *entity.Material,
	input AdjustStockInput,
	now, date time.Time,
) (*AdjustStockResult, error) {
	if material.GlobalStock.LessThan(input.Quantity) {
		return nil, &domain.StockShortageError{
			MaterialID: material.ID,
			Requested:  input.Quantity,
			Available:  material.GlobalStock,
			Unit:       material.Unit,
		}
	}
	fifoRes, err := uc.consumeGlobal(movRepo, material, input.Quantity)
	if err != nil {
		return nil, err
	}
	material.GlobalStock = material.GlobalStock.Sub(input.Quantity)
	if err := materialRepo.UpdateCounters(material.ID, material.GlobalStock, material.LastCost); err != nil {
		return nil, err
	}
	mov := uc.buildMovement(material.ID, entity.MovementTypeOUT, input, now, date)
	mov.RatePerUnit = fifoRes.EffectiveRate
	mov.TotalCost = fifoRes.TotalCost
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return &AdjustStockResult{Material: material, Movement: mov}, nil
}

// doIssueVilla: consumo del pool de la villa. No toca bodega central ni lotes
// FIFO: el costo quedó fijado al trasladar (AvgCost del pool).
func (uc *AdjustStockUseCase) doIssueVilla(
	villaRepo repository.VillaStockRepository,
	movRepo repository.MovementRepository,
	material *entity.Material,
	input AdjustStockInput,
	now, date time.Time,
) (*AdjustStockResult, error) {
	villa, err := villaRepo.GetForUpdate(input.MaterialID, input.VillaID)
	if err != nil {
		return nil, err
	}
	if villa.CurrentStock.LessThan(input.Quantity) {
		return nil, &domain.StockShortageError{
			MaterialID: material.ID,
			VillaID:    input.VillaID,
			Requested:  input.Quantity,
			Available:  villa.CurrentStock,
			Unit:       material.Unit,
		}
	}
	villa.CurrentStock = villa.CurrentStock.Sub(input.Quantity)
	villa.UpdatedAt = now
	if err := villaRepo.Upsert(villa); err != nil {
		return nil, err
	}
	mov := uc.buildMovement(material.ID, entity.MovementTypeOUT, input, now, date)
	mov.RatePerUnit = villa.AvgCost
	mov.TotalCost = input.Quantity.Mul(villa.AvgCost)
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return &AdjustStockResult{Material: material, VillaStock: villa, Movement: mov}, nil
}

// consumeGlobal aplica el motor FIFO sobre los lotes abiertos del material y
// persiste los decrementos. Si la cola quedó corta frente al contador
// denormalizado registra la advertencia de reconciliación y continúa.
func (uc *AdjustStockUseCase) consumeGlobal(
	movRepo repository.MovementRepository,
	material *entity.Material,
	quantity decimal.Decimal,
) (*domaininv.FIFOResult, error) {
	batches, err := movRepo.OpenBatches(material.ID)
	if err != nil {
		return nil, err
	}
	res, err := domaininv.ConsumeFIFO(batches, quantity, material.LastCost)
	if err != nil {
		return nil, err
	}
	for _, c := range res.Consumptions {
		if err := movRepo.UpdateRemaining(c.MovementID, c.Remaining); err != nil {
			return nil, err
		}
	}
	if res.Shortfall.GreaterThan(decimal.Zero) {
		uc.log.Warn().
			Str("material_id", material.ID).
			Str("shortfall", res.Shortfall.String()).
			Str("rate", res.ShortfallRate.String()).
			Msg("reconciliación: cola FIFO corta frente al contador de bodega central, faltante valorado a la última tarifa conocida")
	}
	return res, nil
}

func (uc *AdjustStockUseCase) buildMovement(materialID, movType string, input AdjustStockInput, now, date time.Time) *entity.Movement {
	mov := &entity.Movement{
		ID:            uuid.New().String(),
		MaterialID:    materialID,
		Type:          movType,
		Quantity:      input.Quantity,
		Date:          date,
		UsageCategory: input.UsageCategory,
		PerformedBy:   input.PerformedBy,
		Notes:         input.Notes,
		CreatedAt:     now,
	}
	if input.VillaID != "" {
		v := input.VillaID
		mov.VillaID = &v
	}
	if input.SupplierID != "" {
		s := input.SupplierID
		mov.SupplierID = &s
	}
	if input.ProjectID != "" {
		p := input.ProjectID
		mov.ProjectID = &p
	}
	return mov
}
