package movement_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panastock-api/internal/application/dto"
	"github.com/jhoicas/panastock-api/internal/application/movement"
	"github.com/jhoicas/panastock-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func product(id, name, unit, qty string) *entity.Product {
	return &entity.Product{
		ID: id, Name: name, Unit: unit,
		Quantity:  dec(qty),
		UnitPrice: dec("1000"),
	}
}

func testDepartment() *entity.Department {
	return &entity.Department{ID: "dep-1", Name: "Panadería"}
}

func newRegisterUC(store *fakeStore, deps ...*entity.Department) *movement.RegisterMovementUseCase {
	return movement.NewRegisterMovementUseCase(
		&fakeTxRunner{store: store},
		&fakeProductRepo{store: store},
		newFakeDepartmentRepo(deps...),
	)
}

func TestRegister_StockInMultilinea(t *testing.T) {
	store := newFakeStore(
		product("p1", "Harina", "kg", "10"),
		product("p2", "Huevos", "units", "24"),
	)
	uc := newRegisterUC(store)

	mov, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type:         entity.MovementTypeStockIn,
		Supplier:     "Molinos del Valle",
		StockManager: "Ana",
		Products: []dto.MovementLineRequest{
			{ProductID: "p1", Quantity: "25.5", Unit: "kg"},
			{ProductID: "p2", Quantity: "60", Unit: "units"},
		},
	}, "user-1")
	require.NoError(t, err)

	// Fotos previousStock/newStock por línea
	require.Len(t, mov.Lines, 2)
	assert.True(t, mov.Lines[0].PreviousStock.Equal(dec("10")))
	assert.True(t, mov.Lines[0].NewStock.Equal(dec("35.5")))
	assert.True(t, mov.Lines[1].PreviousStock.Equal(dec("24")))
	assert.True(t, mov.Lines[1].NewStock.Equal(dec("84")))

	// Stock vivo actualizado y movimiento persistido
	assert.True(t, store.productQuantity("p1").Equal(dec("35.5")))
	assert.True(t, store.productQuantity("p2").Equal(dec("84")))
	assert.Equal(t, 1, store.movementCount())

	// Totales y metadatos
	assert.True(t, mov.TotalItems.Equal(dec("85.5")))
	assert.Equal(t, "user-1", mov.CreatedBy)
	assert.Equal(t, "Molinos del Valle", mov.Supplier)
}

func TestRegister_DistribucionDescuentaStock(t *testing.T) {
	store := newFakeStore(product("p1", "Pan Francés", "loaves", "100"))
	uc := newRegisterUC(store, testDepartment())

	mov, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type:         entity.MovementTypeDistribution,
		Department:   "dep-1",
		StockManager: "Luis",
		Products: []dto.MovementLineRequest{
			{ProductID: "p1", Quantity: "40", Unit: "loaves"},
		},
	}, "user-2")
	require.NoError(t, err)

	assert.Equal(t, "dep-1", mov.DepartmentID)
	assert.Equal(t, "Panadería", mov.DepartmentName)
	assert.True(t, store.productQuantity("p1").Equal(dec("60")))
}

func TestRegister_RechazoAtomico(t *testing.T) {
	// Una línea sin stock invalida el movimiento COMPLETO: la línea buena
	// tampoco se aplica y no queda movimiento registrado.
	store := newFakeStore(
		product("p1", "Harina", "kg", "50"),
		product("p2", "Mantequilla", "kg", "2"),
	)
	uc := newRegisterUC(store, testDepartment())

	_, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type:       entity.MovementTypeDistribution,
		Department: "dep-1",
		Products: []dto.MovementLineRequest{
			{ProductID: "p1", Quantity: "10", Unit: "kg"},
			{ProductID: "p2", Quantity: "5", Unit: "kg"}, // solo hay 2
		},
	}, "user-1")

	var vErr *movement.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Reasons, 1)
	assert.Equal(t, movement.ReasonInsufficientStock, vErr.Reasons[0].Kind)
	assert.Contains(t, vErr.Reasons[0].Message, "Mantequilla")

	// Nada cambió
	assert.True(t, store.productQuantity("p1").Equal(dec("50")))
	assert.True(t, store.productQuantity("p2").Equal(dec("2")))
	assert.Equal(t, 0, store.movementCount())
}

func TestRegister_FechaExplicita(t *testing.T) {
	store := newFakeStore(product("p1", "Harina", "kg", "0"))
	uc := newRegisterUC(store)

	date := time.Date(2026, time.August, 3, 9, 30, 0, 0, time.UTC)
	mov, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type:     entity.MovementTypeStockIn,
		Supplier: "Proveedor",
		Date:     &dto.Timestamp{Time: date},
		Products: []dto.MovementLineRequest{
			{ProductID: "p1", Quantity: "5", Unit: "kg"},
		},
	}, "u")
	require.NoError(t, err)
	assert.True(t, mov.Date.Equal(date))
}

func TestRegister_LineasRepetidasMismoProducto(t *testing.T) {
	// Dos líneas del mismo producto acumulan su delta en orden.
	store := newFakeStore(product("p1", "Azúcar", "kg", "10"))
	uc := newRegisterUC(store, testDepartment())

	mov, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type:       entity.MovementTypeDistribution,
		Department: "dep-1",
		Products: []dto.MovementLineRequest{
			{ProductID: "p1", Quantity: "4", Unit: "kg"},
			{ProductID: "p1", Quantity: "3", Unit: "kg"},
		},
	}, "u")
	require.NoError(t, err)

	assert.True(t, mov.Lines[0].PreviousStock.Equal(dec("10")))
	assert.True(t, mov.Lines[0].NewStock.Equal(dec("6")))
	assert.True(t, mov.Lines[1].PreviousStock.Equal(dec("6")))
	assert.True(t, mov.Lines[1].NewStock.Equal(dec("3")))
	assert.True(t, store.productQuantity("p1").Equal(dec("3")))
}

func TestRegister_DistribucionesConcurrentes(t *testing.T) {
	// Dos distribuciones simultáneas sobre el mismo producto con stock para
	// una sola: exactamente una gana y la otra se rechaza contra el stock ya
	// confirmado. Nunca stock negativo ni doble descuento.
	store := newFakeStore(product("p1", "Croissant", "units", "10"))
	uc := newRegisterUC(store, testDepartment())

	req := dto.CreateMovementRequest{
		Type:       entity.MovementTypeDistribution,
		Department: "dep-1",
		Products: []dto.MovementLineRequest{
			{ProductID: "p1", Quantity: "7", Unit: "units"},
		},
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Register(context.Background(), req, "u")
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
			continue
		}
		var vErr *movement.ValidationError
		require.ErrorAs(t, err, &vErr, "el perdedor falla con stock insuficiente re-validado")
		assert.Equal(t, movement.ReasonInsufficientStock, vErr.Reasons[0].Kind)
	}
	assert.Equal(t, 1, okCount, "exactamente una distribución gana")
	assert.True(t, store.productQuantity("p1").Equal(dec("3")), "10 - 7, sin doble descuento")
	assert.Equal(t, 1, store.movementCount())
}

func TestRegister_ProductoInexistente(t *testing.T) {
	store := newFakeStore()
	uc := newRegisterUC(store)

	_, err := uc.Register(context.Background(), dto.CreateMovementRequest{
		Type:     entity.MovementTypeStockIn,
		Supplier: "Proveedor",
		Products: []dto.MovementLineRequest{
			{ProductID: "no-existe", ProductName: "Fantasma", Quantity: "1", Unit: "kg"},
		},
	}, "u")

	var vErr *movement.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, movement.ReasonMissingProduct, vErr.Reasons[0].Kind)
}
