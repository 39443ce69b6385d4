package movement_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panastock-api/internal/application/dto"
	"github.com/jhoicas/panastock-api/internal/domain/entity"
)

// El stock vivo de un producto siempre es la suma de sus entradas menos la
// suma de sus distribuciones: ningún camino del motor crea ni pierde stock.
func TestRegister_ConservacionDeStock(t *testing.T) {
	store := newFakeStore(
		product("p1", "Harina", "kg", "0"),
		product("p2", "Huevos", "units", "0"),
	)
	uc := newRegisterUC(store, testDepartment())

	history := []dto.CreateMovementRequest{
		{
			Type: entity.MovementTypeStockIn, Supplier: "Molinos del Valle", StockManager: "Ana",
			Products: []dto.MovementLineRequest{
				{ProductID: "p1", Quantity: "50", Unit: "kg"},
				{ProductID: "p2", Quantity: "120", Unit: "units"},
			},
		},
		{
			Type: entity.MovementTypeDistribution, Department: "dep-1", StockManager: "Luis",
			Products: []dto.MovementLineRequest{
				{ProductID: "p1", Quantity: "12.5", Unit: "kg"},
				{ProductID: "p2", Quantity: "36", Unit: "units"},
			},
		},
		{
			Type: entity.MovementTypeStockIn, Supplier: "Granja El Sol", StockManager: "Ana",
			Products: []dto.MovementLineRequest{
				{ProductID: "p2", Quantity: "60", Unit: "units"},
			},
		},
		{
			Type: entity.MovementTypeDistribution, Department: "dep-1", StockManager: "Luis",
			Products: []dto.MovementLineRequest{
				{ProductID: "p1", Quantity: "7.25", Unit: "kg"},
				{ProductID: "p2", Quantity: "100", Unit: "units"},
			},
		},
	}
	for i, req := range history {
		_, err := uc.Register(context.Background(), req, "user-1")
		require.NoError(t, err, "movimiento %d", i)
	}

	// Recalcular desde el libro y comparar contra el stock vivo.
	expected := map[string]decimal.Decimal{
		"p1": decimal.Zero,
		"p2": decimal.Zero,
	}
	for _, m := range store.movements {
		for _, l := range m.Lines {
			if m.IsStockIn() {
				expected[l.ProductID] = expected[l.ProductID].Add(l.Quantity)
			} else {
				expected[l.ProductID] = expected[l.ProductID].Sub(l.Quantity)
			}
		}
	}

	assert.Equal(t, 4, store.movementCount())
	assert.True(t, store.productQuantity("p1").Equal(expected["p1"]),
		"p1: libro %s vs stock %s", expected["p1"], store.productQuantity("p1"))
	assert.True(t, store.productQuantity("p2").Equal(expected["p2"]),
		"p2: libro %s vs stock %s", expected["p2"], store.productQuantity("p2"))

	// Y los valores absolutos esperados del historial.
	assert.True(t, store.productQuantity("p1").Equal(dec("30.25")))
	assert.True(t, store.productQuantity("p2").Equal(dec("44")))
}
