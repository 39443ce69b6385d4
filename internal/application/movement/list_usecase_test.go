package movement_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panastock-api/internal/application/dto"
	"github.com/jhoicas/panastock-api/internal/application/movement"
	"github.com/jhoicas/panastock-api/internal/domain"
	"github.com/jhoicas/panastock-api/internal/domain/entity"
)

func mov(id, typ string, date time.Time) *entity.StockMovement {
	return &entity.StockMovement{ID: id, Type: typ, Date: date}
}

func TestList_FechaInvalida(t *testing.T) {
	store := newFakeStore()
	uc := movement.NewListMovementsUseCase(&fakeMovementRepo{store: store}, time.UTC)

	_, _, err := uc.List(context.Background(), dto.ListMovementsRequest{StartDate: "10/08/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = uc.List(context.Background(), dto.ListMovementsRequest{EndDate: "2026-13-40"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_Paginacion(t *testing.T) {
	store := newFakeStore()
	for i := 0; i < 5; i++ {
		seedMovement(store, mov(string(rune('a'+i)), entity.MovementTypeStockIn,
			time.Date(2026, 8, 10+i, 0, 0, 0, 0, time.UTC)))
	}
	uc := movement.NewListMovementsUseCase(&fakeMovementRepo{store: store}, time.UTC)

	_, page, err := uc.List(context.Background(), dto.ListMovementsRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.Pages)

	// Valores fuera de rango caen en los defaults.
	_, page, err = uc.List(context.Background(), dto.ListMovementsRequest{Page: 0, Limit: -1})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Limit)
}

func TestGroupByDay_AgrupaPorDiaLocal(t *testing.T) {
	bogota := time.FixedZone("America/Bogota", -5*3600)
	uc := movement.NewListMovementsUseCase(&fakeMovementRepo{store: newFakeStore()}, bogota)

	// 02:00 UTC del día 12 es todavía el día 11 en Bogotá: cae en el mismo
	// grupo que los movimientos de la tarde anterior.
	movs := []*entity.StockMovement{
		mov("m3", entity.MovementTypeStockIn, time.Date(2026, 8, 12, 2, 0, 0, 0, time.UTC)),
		mov("m2", entity.MovementTypeDistribution, time.Date(2026, 8, 11, 20, 0, 0, 0, time.UTC)),
		mov("m1", entity.MovementTypeStockIn, time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)),
	}

	groups := uc.GroupByDay(movs)
	require.Len(t, groups, 2)
	assert.Equal(t, "2026-08-11", groups[0].Date)
	require.Len(t, groups[0].Movements, 2)
	assert.Equal(t, "m3", groups[0].Movements[0].ID)
	assert.Equal(t, "m2", groups[0].Movements[1].ID)
	assert.Equal(t, "2026-08-10", groups[1].Date)
}

func TestGroupByDay_Vacio(t *testing.T) {
	uc := movement.NewListMovementsUseCase(&fakeMovementRepo{store: newFakeStore()}, time.UTC)
	assert.Empty(t, uc.GroupByDay(nil))
}
