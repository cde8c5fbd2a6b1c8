package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/inventory"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore simula la base: el TxRunner falso serializa las transacciones con un
// mutex (equivalente conservador del SELECT FOR UPDATE por artículo) y aplica
// las escrituras solo si fn termina sin error (Commit/Rollback).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	items     map[string]*entity.Item
	movements []*entity.Movement
}

func newMemStore(items ...*entity.Item) *memStore {
	s := &memStore{items: make(map[string]*entity.Item)}
	for _, it := range items {
		s.items[it.ID] = it
	}
	return s
}

func (s *memStore) stockOf(itemID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, m := range s.movements {
		if m.ItemID == itemID {
			total = total.Add(m.Quantity)
		}
	}
	return total
}

func (s *memStore) movementsOf(itemID string) []*entity.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Movement
	for _, m := range s.movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out
}

// memTx vista transaccional: lecturas sobre el store, escrituras en pending.
type memTx struct {
	store       *memStore
	pending     []*entity.Movement
	costUpdates map[string]decimal.Decimal
	deleted     map[string]bool
}

var _ repository.ItemRepository = (*memTx)(nil)
var _ repository.MovementRepository = (*memTx)(nil)

func (t *memTx) Create(_ context.Context, item *entity.Item) error {
	t.store.items[item.ID] = item
	return nil
}

func (t *memTx) GetByID(_ context.Context, id string) (*entity.Item, error) {
	return t.store.items[id], nil
}

func (t *memTx) GetForUpdate(_ context.Context, id string) (*entity.Item, error) {
	return t.store.items[id], nil
}

func (t *memTx) FindByNormalizedName(_ context.Context, normalized, excludeID string) (*entity.Item, error) {
	for _, it := range t.store.items {
		if it.ID != excludeID && domain.NormalizeName(it.Name) == normalized {
			return it, nil
		}
	}
	return nil, nil
}

func (t *memTx) Update(_ context.Context, item *entity.Item) error {
	t.store.items[item.ID] = item
	return nil
}

func (t *memTx) UpdateUnitCost(_ context.Context, itemID string, cost decimal.Decimal) error {
	t.costUpdates[itemID] = cost
	return nil
}

func (t *memTx) Delete(_ context.Context, id string) error {
	t.deleted[id] = true
	return nil
}

func (t *memTx) ListCategories(_ context.Context, _ string) ([]string, error) { return nil, nil }
func (t *memTx) ListUnits(_ context.Context) ([]string, error)                { return nil, nil }

func (t *memTx) Append(_ context.Context, m *entity.Movement) error {
	if err := m.Validate(); err != nil {
		return err
	}
	t.pending = append(t.pending, m)
	return nil
}

func (t *memTx) List(_ context.Context, _ repository.MovementFilter) ([]*repository.MovementWithItem, int, error) {
	return nil, 0, nil
}

func (t *memTx) SumQuantityByItem(_ context.Context, itemID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, m := range t.store.movements {
		if m.ItemID == itemID {
			total = total.Add(m.Quantity)
		}
	}
	for _, m := range t.pending {
		if m.ItemID == itemID {
			total = total.Add(m.Quantity)
		}
	}
	return total, nil
}

func (t *memTx) CountByItemSince(_ context.Context, itemID string, since time.Time) (int, error) {
	n := 0
	for _, m := range t.store.movements {
		if m.ItemID == itemID && !m.EffectiveDate.Before(since) {
			n++
		}
	}
	return n, nil
}

type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) Run(_ context.Context, fn func(repository.ItemRepository, repository.MovementRepository) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx := &memTx{
		store:       r.store,
		costUpdates: make(map[string]decimal.Decimal),
		deleted:     make(map[string]bool),
	}
	if err := fn(tx, tx); err != nil {
		return err
	}
	r.store.movements = append(r.store.movements, tx.pending...)
	for id, cost := range tx.costUpdates {
		if it, ok := r.store.items[id]; ok {
			it.UnitCost = cost
		}
	}
	for id := range tx.deleted {
		delete(r.store.items, id)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func testItem(id, name string) *entity.Item {
	return &entity.Item{
		ID:       id,
		Name:     name,
		Unit:     "pz",
		MinStock: decimal.Zero,
		UnitCost: decimal.NewFromInt(10),
	}
}

func newUseCase(store *memStore) *inventory.RegisterMovementUseCase {
	uc := inventory.NewRegisterMovementUseCase(&memTxRunner{store: store}, 365)
	uc.SetNow(func() time.Time { return testNow })
	return uc
}

// seedStock registra una entrada inicial directa en el store.
func seedStock(store *memStore, itemID string, qty decimal.Decimal) {
	store.movements = append(store.movements, &entity.Movement{
		ID:            "seed-" + itemID,
		ItemID:        itemID,
		Type:          entity.MovementTypeIN,
		Quantity:      qty,
		EffectiveDate: testNow.AddDate(0, 0, -10),
		CreatedAt:     testNow.AddDate(0, 0, -10),
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas (IN)
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateInbound_RegistraCantidadPositiva(t *testing.T) {
	store := newMemStore(testItem("item-1", "Filtro de aceite"))
	uc := newUseCase(store)

	res, err := uc.CreateInbound(context.Background(), inventory.InboundInput{
		ItemID:        "item-1",
		Quantity:      decimal.NewFromInt(5),
		EffectiveDate: testNow,
		CreatedBy:     "operador",
	})
	require.NoError(t, err)
	assert.Equal(t, "Filtro de aceite", res.ItemName)
	assert.Equal(t, entity.MovementTypeIN, res.Movement.Type)
	assert.True(t, store.stockOf("item-1").Equal(decimal.NewFromInt(5)))
}

func TestCreateInbound_CostoSobrescritoEnElMismoCommit(t *testing.T) {
	item := testItem("item-1", "Filtro de aceite")
	store := newMemStore(item)
	uc := newUseCase(store)

	override := decimal.NewFromFloat(12.50)
	_, err := uc.CreateInbound(context.Background(), inventory.InboundInput{
		ItemID:           "item-1",
		Quantity:         decimal.NewFromInt(3),
		EffectiveDate:    testNow,
		UnitCostOverride: &override,
	})
	require.NoError(t, err)
	assert.True(t, item.UnitCost.Equal(override), "el costo del artículo debe quedar sobrescrito")
}

func TestCreateInbound_CantidadInvalida(t *testing.T) {
	store := newMemStore(testItem("item-1", "Filtro"))
	uc := newUseCase(store)

	casos := []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromInt(-2),
		decimal.RequireFromString("1.0001"), // más de 3 decimales
	}
	for _, q := range casos {
		_, err := uc.CreateInbound(context.Background(), inventory.InboundInput{
			ItemID:        "item-1",
			Quantity:      q,
			EffectiveDate: testNow,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %s", q)
	}
	assert.Empty(t, store.movementsOf("item-1"), "el libro no debe tocarse")
}

func TestCreateInbound_CostoNegativoInvalido(t *testing.T) {
	store := newMemStore(testItem("item-1", "Filtro"))
	uc := newUseCase(store)

	override := decimal.NewFromInt(-1)
	_, err := uc.CreateInbound(context.Background(), inventory.InboundInput{
		ItemID:           "item-1",
		Quantity:         decimal.NewFromInt(1),
		EffectiveDate:    testNow,
		UnitCostOverride: &override,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateInbound_ArticuloInexistente(t *testing.T) {
	uc := newUseCase(newMemStore())

	_, err := uc.CreateInbound(context.Background(), inventory.InboundInput{
		ItemID:        "no-existe",
		Quantity:      decimal.NewFromInt(1),
		EffectiveDate: testNow,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas (OUT)
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOutbound_RequiereConfirmacion(t *testing.T) {
	store := newMemStore(testItem("item-1", "Filtro"))
	seedStock(store, "item-1", decimal.NewFromInt(10))
	uc := newUseCase(store)

	_, err := uc.CreateOutbound(context.Background(), inventory.OutboundInput{
		ItemID:        "item-1",
		Quantity:      decimal.NewFromInt(2),
		EffectiveDate: testNow,
		Confirmed:     false,
	})
	assert.ErrorIs(t, err, domain.ErrConfirmationRequired)
	assert.True(t, store.stockOf("item-1").Equal(decimal.NewFromInt(10)), "el stock no debe cambiar")
}

func TestCreateOutbound_PersisteCantidadNegativa(t *testing.T) {
	store := newMemStore(testItem("item-1", "Filtro"))
	seedStock(store, "item-1", decimal.NewFromInt(10))
	uc := newUseCase(store)

	res, err := uc.CreateOutbound(context.Background(), inventory.OutboundInput{
		ItemID:        "item-1",
		Quantity:      decimal.NewFromInt(4),
		EffectiveDate: testNow,
		Confirmed:     true,
	})
	require.NoError(t, err)
	assert.True(t, res.Movement.Quantity.Equal(decimal.NewFromInt(-4)), "la salida se guarda con signo negativo")
	assert.True(t, store.stockOf("item-1").Equal(decimal.NewFromInt(6)))
}

func TestCreateOutbound_StockInsuficiente(t *testing.T) {
	store := newMemStore(testItem("item-1", "Filtro"))
	seedStock(store, "item-1", decimal.NewFromInt(3))
	uc := newUseCase(store)

	_, err := uc.CreateOutbound(context.Background(), inventory.OutboundInput{
		ItemID:        "item-1",
		Quantity:      decimal.NewFromInt(5),
		EffectiveDate: testNow,
		Confirmed:     true,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, store.stockOf("item-1").Equal(decimal.NewFromInt(3)))
}

// TestCreateOutbound_ConcurrenciaSerializada es la propiedad central del motor:
// dos salidas de 8 sobre un stock de 10 no pueden pasar las dos. Una gana, la
// otra ve el stock ya descontado y falla con ErrInsufficientStock.
func TestCreateOutbound_ConcurrenciaSerializada(t *testing.T) {
	store := newMemStore(testItem("item-1", "Filtro"))
	seedStock(store, "item-1", decimal.NewFromInt(10))
	uc := newUseCase(store)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CreateOutbound(context.Background(), inventory.OutboundInput{
				ItemID:        "item-1",
				Quantity:      decimal.NewFromInt(8),
				EffectiveDate: testNow,
				Confirmed:     true,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var oks, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			oks++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, oks, "exactamente una salida debe pasar")
	assert.Equal(t, 1, insufficient, "la otra debe fallar por stock insuficiente")
	assert.True(t, store.stockOf("item-1").Equal(decimal.NewFromInt(2)), "stock final 10 - 8 = 2")
}

// ──────────────────────────────────────────────────────────────────────────────
// Rectificaciones (ADJUSTMENT)
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateAdjustment_DeltaHaciaElObjetivo(t *testing.T) {
	store := newMemStore(testItem("item-1", "Filtro"))
	seedStock(store, "item-1", decimal.NewFromInt(5))
	uc := newUseCase(store)

	res, err := uc.CreateAdjustment(context.Background(), inventory.AdjustmentInput{
		ItemID:        "item-1",
		TargetStock:   decimal.NewFromInt(8),
		EffectiveDate: testNow,
		Note:          "conteo físico",
	})
	require.NoError(t, err)
	assert.True(t, res.Movement.Quantity.Equal(decimal.NewFromInt(3)), "delta = objetivo - actual")
	assert.True(t, store.stockOf("item-1").Equal(decimal.NewFromInt(8)))
}

func TestCreateAdjustment_ObjetivoCeroVaciaElStock(t *testing.T) {
	store := newMemStore(testItem("item-1", "Filtro"))
	seedStock(store, "item-1", decimal.NewFromInt(5))
	uc := newUseCase(store)

	res, err := uc.CreateAdjustment(context.Background(), inventory.AdjustmentInput{
		ItemID:        "item-1",
		TargetStock:   decimal.Zero,
		EffectiveDate: testNow,
		Note:          "merma total",
	})
	require.NoError(t, err)
	assert.True(t, res.Movement.Quantity.Equal(decimal.NewFromInt(-5)))
	assert.True(t, store.stockOf("item-1").IsZero())
}

func TestCreateAdjustment_SinEfectoEsError(t *testing.T) {
	store := newMemStore(testItem("item-1", "Filtro"))
	seedStock(store, "item-1", decimal.NewFromInt(5))
	uc := newUseCase(store)

	_, err := uc.CreateAdjustment(context.Background(), inventory.AdjustmentInput{
		ItemID:        "item-1",
		TargetStock:   decimal.NewFromInt(5),
		EffectiveDate: testNow,
		Note:          "conteo físico",
	})
	assert.ErrorIs(t, err, domain.ErrAdjustmentNotNeeded)
	assert.Len(t, store.movementsOf("item-1"), 1, "solo el asiento inicial")
}

func TestCreateAdjustment_NotaObligatoria(t *testing.T) {
	store := newMemStore(testItem("item-1", "Filtro"))
	uc := newUseCase(store)

	_, err := uc.CreateAdjustment(context.Background(), inventory.AdjustmentInput{
		ItemID:        "item-1",
		TargetStock:   decimal.NewFromInt(2),
		EffectiveDate: testNow,
		Note:          "   ",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateAdjustment_ObjetivoNegativoInvalido(t *testing.T) {
	store := newMemStore(testItem("item-1", "Filtro"))
	uc := newUseCase(store)

	_, err := uc.CreateAdjustment(context.Background(), inventory.AdjustmentInput{
		ItemID:        "item-1",
		TargetStock:   decimal.NewFromInt(-1),
		EffectiveDate: testNow,
		Note:          "conteo",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventana de fecha efectiva
// ──────────────────────────────────────────────────────────────────────────────

func TestValidarFechaEfectiva_FueraDeVentana(t *testing.T) {
	store := newMemStore(testItem("item-1", "Filtro"))
	uc := newUseCase(store)

	casos := map[string]time.Time{
		"muy antigua": testNow.AddDate(0, 0, -400),
		"muy futura":  testNow.AddDate(0, 0, 400),
	}
	for nombre, fecha := range casos {
		_, err := uc.CreateInbound(context.Background(), inventory.InboundInput{
			ItemID:        "item-1",
			Quantity:      decimal.NewFromInt(1),
			EffectiveDate: fecha,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange, nombre)
	}
}

func TestValidarFechaEfectiva_DentroDeVentana(t *testing.T) {
	store := newMemStore(testItem("item-1", "Filtro"))
	uc := newUseCase(store)

	casos := map[string]time.Time{
		"hoy":             testNow,
		"hace 300 días":   testNow.AddDate(0, 0, -300),
		"dentro 300 días": testNow.AddDate(0, 0, 300),
	}
	for nombre, fecha := range casos {
		_, err := uc.CreateInbound(context.Background(), inventory.InboundInput{
			ItemID:        "item-1",
			Quantity:      decimal.NewFromInt(1),
			EffectiveDate: fecha,
		})
		assert.NoError(t, err, nombre)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Despacho desde el request HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterFromRequest_Despacho(t *testing.T) {
	store := newMemStore(testItem("item-1", "Filtro"))
	seedStock(store, "item-1", decimal.NewFromInt(10))
	uc := newUseCase(store)
	date := testNow.Format("2006-01-02")

	res, err := uc.RegisterFromRequest(context.Background(), "operador", dto.CreateMovementRequest{
		ItemID:        "item-1",
		Type:          entity.MovementTypeIN,
		Quantity:      decimal.NewFromInt(2),
		EffectiveDate: date,
	})
	require.NoError(t, err)
	assert.Equal(t, "operador", res.Movement.CreatedBy)

	res, err = uc.RegisterFromRequest(context.Background(), "operador", dto.CreateMovementRequest{
		ItemID:        "item-1",
		Type:          entity.MovementTypeOUT,
		Quantity:      decimal.NewFromInt(1),
		EffectiveDate: date,
		Confirmed:     true,
	})
	require.NoError(t, err)
	assert.True(t, res.Movement.Quantity.Equal(decimal.NewFromInt(-1)))

	target := decimal.NewFromInt(20)
	res, err = uc.RegisterFromRequest(context.Background(), "operador", dto.CreateMovementRequest{
		ItemID:        "item-1",
		Type:          entity.MovementTypeADJUSTMENT,
		TargetStock:   &target,
		EffectiveDate: date,
		Note:          "conteo físico",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeADJUSTMENT, res.Movement.Type)
}

func TestRegisterFromRequest_EntradasInvalidas(t *testing.T) {
	store := newMemStore(testItem("item-1", "Filtro"))
	uc := newUseCase(store)
	date := testNow.Format("2006-01-02")

	casos := map[string]dto.CreateMovementRequest{
		"tipo desconocido":   {ItemID: "item-1", Type: "TRANSFER", Quantity: decimal.NewFromInt(1), EffectiveDate: date},
		"fecha malformada":   {ItemID: "item-1", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1), EffectiveDate: "15/03/2026"},
		"sin item":           {Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1), EffectiveDate: date},
		"ajuste sin destino": {ItemID: "item-1", Type: entity.MovementTypeADJUSTMENT, EffectiveDate: date, Note: "conteo"},
	}
	for nombre, req := range casos {
		_, err := uc.RegisterFromRequest(context.Background(), "operador", req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, nombre)
	}
}
