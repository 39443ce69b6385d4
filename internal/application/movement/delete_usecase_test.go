package movement_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panastock-api/internal/application/movement"
	"github.com/jhoicas/panastock-api/internal/domain"
	"github.com/jhoicas/panastock-api/internal/domain/entity"
)

func seedMovement(store *fakeStore, m *entity.StockMovement) {
	store.movements[m.ID] = m
}

func TestDelete_DistribucionDevuelveStock(t *testing.T) {
	harina := product("p1", "Harina", "kg", "5")
	store := newFakeStore(harina)
	seedMovement(store, &entity.StockMovement{
		ID:             "m1",
		Type:           entity.MovementTypeDistribution,
		Date:           time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		DepartmentID:   "d1",
		DepartmentName: "Panadería",
		Lines: []entity.ProductLine{{
			ProductID:     "p1",
			ProductName:   "Harina",
			Quantity:      dec("5"),
			Unit:          "kg",
			PreviousStock: dec("10"),
			NewStock:      dec("5"),
		}},
	})

	uc := movement.NewDeleteMovementUseCase(&fakeTxRunner{store: store})
	require.NoError(t, uc.Delete(context.Background(), "m1"))

	assert.True(t, store.productQuantity("p1").Equal(dec("10")), "la distribución revertida devuelve el stock")
	assert.Equal(t, 0, store.movementCount())
}

func TestDelete_StockInSinConsumir(t *testing.T) {
	harina := product("p1", "Harina", "kg", "30")
	store := newFakeStore(harina)
	seedMovement(store, &entity.StockMovement{
		ID:       "m1",
		Type:     entity.MovementTypeStockIn,
		Date:     time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		Supplier: "Molinos SA",
		Lines: []entity.ProductLine{{
			ProductID:     "p1",
			ProductName:   "Harina",
			Quantity:      dec("20"),
			Unit:          "kg",
			PreviousStock: dec("10"),
			NewStock:      dec("30"),
		}},
	})

	uc := movement.NewDeleteMovementUseCase(&fakeTxRunner{store: store})
	require.NoError(t, uc.Delete(context.Background(), "m1"))

	assert.True(t, store.productQuantity("p1").Equal(dec("10")))
	assert.Equal(t, 0, store.movementCount())
}

func TestDelete_StockInConsumidoRechazaConDetalle(t *testing.T) {
	// Entrada de 20 kg, de los que una distribución posterior consumió 15.
	// Revertir la entrada dejaría 5 - 20 < 0: se rechaza nombrando al
	// movimiento consumidor y sin tocar nada.
	harina := product("p1", "Harina", "kg", "5")
	store := newFakeStore(harina)
	seedMovement(store, &entity.StockMovement{
		ID:       "entrada",
		Type:     entity.MovementTypeStockIn,
		Date:     time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		Supplier: "Molinos SA",
		Lines: []entity.ProductLine{{
			ProductID:     "p1",
			ProductName:   "Harina",
			Quantity:      dec("20"),
			Unit:          "kg",
			PreviousStock: dec("0"),
			NewStock:      dec("20"),
		}},
	})
	seedMovement(store, &entity.StockMovement{
		ID:           "consumo",
		Type:         entity.MovementTypeDistribution,
		Date:         time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC),
		DepartmentID: "d1",
		Lines: []entity.ProductLine{{
			ProductID:     "p1",
			ProductName:   "Harina",
			Quantity:      dec("15"),
			Unit:          "kg",
			PreviousStock: dec("20"),
			NewStock:      dec("5"),
		}},
	})

	uc := movement.NewDeleteMovementUseCase(&fakeTxRunner{store: store})
	err := uc.Delete(context.Background(), "entrada")

	var rErr *movement.ReversalError
	require.ErrorAs(t, err, &rErr)
	assert.Equal(t, "entrada", rErr.MovementID)
	require.Len(t, rErr.Conflicts, 1)

	c := rErr.Conflicts[0]
	assert.Equal(t, "p1", c.ProductID)
	assert.Equal(t, "Harina", c.ProductName)
	assert.True(t, c.Available.Equal(dec("5")))
	assert.True(t, c.ToReverse.Equal(dec("20")))
	assert.Equal(t, []string{"consumo"}, c.ConsumedBy)

	// Nada cambió: el rechazo es atómico.
	assert.True(t, store.productQuantity("p1").Equal(dec("5")))
	assert.Equal(t, 2, store.movementCount())
}

func TestDelete_MultilineaRechazaSoloPorElCorto(t *testing.T) {
	// Un stock_in con dos líneas: solo una fue consumida. El conflicto lista
	// únicamente el producto corto.
	harina := product("p1", "Harina", "kg", "2")
	azucar := product("p2", "Azúcar", "kg", "50")
	store := newFakeStore(harina, azucar)
	seedMovement(store, &entity.StockMovement{
		ID:       "entrada",
		Type:     entity.MovementTypeStockIn,
		Date:     time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		Supplier: "Molinos SA",
		Lines: []entity.ProductLine{
			{ProductID: "p1", ProductName: "Harina", Quantity: dec("10"), Unit: "kg"},
			{ProductID: "p2", ProductName: "Azúcar", Quantity: dec("10"), Unit: "kg"},
		},
	})

	uc := movement.NewDeleteMovementUseCase(&fakeTxRunner{store: store})
	err := uc.Delete(context.Background(), "entrada")

	var rErr *movement.ReversalError
	require.ErrorAs(t, err, &rErr)
	require.Len(t, rErr.Conflicts, 1)
	assert.Equal(t, "Harina", rErr.Conflicts[0].ProductName)

	assert.True(t, store.productQuantity("p2").Equal(dec("50")), "el producto sano tampoco se toca")
}

func TestDelete_MovimientoInexistente(t *testing.T) {
	store := newFakeStore()
	uc := movement.NewDeleteMovementUseCase(&fakeTxRunner{store: store})
	assert.ErrorIs(t, uc.Delete(context.Background(), "nope"), domain.ErrNotFound)
}
