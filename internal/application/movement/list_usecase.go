package movement

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/panastock-api/internal/application/dto"
	"github.com/jhoicas/panastock-api/internal/domain"
	"github.com/jhoicas/panastock-api/internal/domain/entity"
	"github.com/jhoicas/panastock-api/internal/domain/repository"
)

// ListMovementsUseCase consulta paginada y filtrada del libro de movimientos.
type ListMovementsUseCase struct {
	movRepo  repository.StockMovementRepository
	location *time.Location // zona horaria para agrupar por día calendario
}

// NewListMovementsUseCase construye el caso de uso. loc nil usa la zona local.
func NewListMovementsUseCase(movRepo repository.StockMovementRepository, loc *time.Location) *ListMovementsUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &ListMovementsUseCase{movRepo: movRepo, location: loc}
}

// List devuelve la página pedida con metadatos de paginación, orden fecha
// descendente. type y department vacíos significan "todos".
func (uc *ListMovementsUseCase) List(ctx context.Context, in dto.ListMovementsRequest) ([]*entity.StockMovement, dto.Pagination, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	filter := repository.MovementFilter{
		Type:         in.Type,
		DepartmentID: in.Department,
		Limit:        limit,
		Offset:       (page - 1) * limit,
	}
	var err error
	if filter.From, err = parseDay(in.StartDate, uc.location, false); err != nil {
		return nil, dto.Pagination{}, err
	}
	if filter.To, err = parseDay(in.EndDate, uc.location, true); err != nil {
		return nil, dto.Pagination{}, err
	}

	movs, total, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	return movs, dto.NewPagination(page, limit, total), nil
}

// GetByID devuelve un movimiento puntual (nil si no existe).
func (uc *ListMovementsUseCase) GetByID(id string) (*entity.StockMovement, error) {
	return uc.movRepo.GetByID(id)
}

// GroupByDay agrupa movimientos por día calendario local: días más recientes
// primero y, dentro de cada día, movimientos más recientes primero. Asume la
// entrada ya ordenada por fecha descendente (como la devuelve List).
func (uc *ListMovementsUseCase) GroupByDay(movs []*entity.StockMovement) []dto.DayGroupDTO {
	var groups []dto.DayGroupDTO
	index := make(map[string]int)
	for _, m := range movs {
		day := m.Date.In(uc.location).Format("2006-01-02")
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, dto.DayGroupDTO{Date: day})
		}
		groups[i].Movements = append(groups[i].Movements, dto.FromMovement(m))
	}
	return groups
}

// parseDay interpreta YYYY-MM-DD en la zona dada. end=true devuelve el
// instante exclusivo del día siguiente (ventana [from, to)).
func parseDay(s string, loc *time.Location, end bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha inválida %q (se espera YYYY-MM-DD)", domain.ErrInvalidInput, s)
	}
	if end {
		t = t.AddDate(0, 0, 1)
	}
	return &t, nil
}
