package movement_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panastock-api/internal/application/movement"
	"github.com/jhoicas/panastock-api/internal/domain/analytics"
	"github.com/jhoicas/panastock-api/internal/domain/entity"
	"github.com/jhoicas/panastock-api/internal/domain/repository"
)

// fakeStore estado compartido en memoria para los fakes. txMu serializa
// transacciones completas (como las filas bloqueadas en PostgreSQL); dataMu
// protege los mapas en accesos individuales.
type fakeStore struct {
	txMu      sync.Mutex
	dataMu    sync.Mutex
	products  map[string]*entity.Product
	movements map[string]*entity.StockMovement
}

func newFakeStore(products ...*entity.Product) *fakeStore {
	s := &fakeStore{
		products:  make(map[string]*entity.Product),
		movements: make(map[string]*entity.StockMovement),
	}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

func (s *fakeStore) productQuantity(id string) decimal.Decimal {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	return s.products[id].Quantity
}

func (s *fakeStore) movementCount() int {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	return len(s.movements)
}

func (s *fakeStore) snapshot() (map[string]*entity.Product, map[string]*entity.StockMovement) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	ps := make(map[string]*entity.Product, len(s.products))
	for id, p := range s.products {
		cp := *p
		ps[id] = &cp
	}
	ms := make(map[string]*entity.StockMovement, len(s.movements))
	for id, m := range s.movements {
		ms[id] = m
	}
	return ps, ms
}

func (s *fakeStore) restore(ps map[string]*entity.Product, ms map[string]*entity.StockMovement) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	s.products = ps
	s.movements = ms
}

// fakeTxRunner serializa transacciones con un mutex y revierte el estado si
// el callback falla, imitando Commit/Rollback.
type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()
	ps, ms := r.store.snapshot()
	err := fn(&fakeMovementRepo{store: r.store}, &fakeProductRepo{store: r.store})
	if err != nil {
		r.store.restore(ps, ms)
	}
	return err
}

var _ movement.TxRunner = (*fakeTxRunner)(nil)

// fakeProductRepo repositorio de productos en memoria.
type fakeProductRepo struct {
	store *fakeStore
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByName(name string) (*entity.Product, error) {
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	for _, p := range r.store.products {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, int, error) {
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	out := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	return r.Create(p)
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) UpdateQuantity(id string, quantity decimal.Decimal) error {
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	if p, ok := r.store.products[id]; ok {
		p.Quantity = quantity
	}
	return nil
}

// fakeMovementRepo libro de movimientos en memoria.
type fakeMovementRepo struct {
	store *fakeStore
}

var _ repository.StockMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	r.store.movements[m.ID] = m
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	m, ok := r.store.movements[id]
	if !ok {
		return nil, nil
	}
	return m, nil
}

func (r *fakeMovementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.DepartmentID != "" && m.DepartmentID != filter.DepartmentID {
			continue
		}
		out = append(out, m)
	}
	return out, len(out), nil
}

func (r *fakeMovementRepo) Delete(id string) error {
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	delete(r.store.movements, id)
	return nil
}

func (r *fakeMovementRepo) ListUsageEvents(_ context.Context, productID string, from, to time.Time) ([]analytics.UsageEvent, error) {
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	var events []analytics.UsageEvent
	for _, m := range r.store.movements {
		if !m.IsDistribution() || m.Date.Before(from) || !m.Date.Before(to) {
			continue
		}
		for _, l := range m.Lines {
			if l.ProductID == productID {
				events = append(events, analytics.UsageEvent{
					Date:         m.Date,
					QuantityUsed: l.Quantity,
					MovementID:   m.ID,
					DepartmentID: m.DepartmentID,
					UsedBy:       m.StockManager,
				})
			}
		}
	}
	return events, nil
}

func (r *fakeMovementRepo) ListDistributionsAfter(_ context.Context, productIDs []string, after time.Time) ([]*entity.StockMovement, error) {
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	wanted := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = struct{}{}
	}
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if !m.IsDistribution() || !m.Date.After(after) {
			continue
		}
		for _, l := range m.Lines {
			if _, ok := wanted[l.ProductID]; ok {
				out = append(out, m)
				break
			}
		}
	}
	return out, nil
}

// fakeDepartmentRepo repositorio de departamentos en memoria.
type fakeDepartmentRepo struct {
	departments map[string]*entity.Department
}

var _ repository.DepartmentRepository = (*fakeDepartmentRepo)(nil)

func newFakeDepartmentRepo(ds ...*entity.Department) *fakeDepartmentRepo {
	r := &fakeDepartmentRepo{departments: make(map[string]*entity.Department)}
	for _, d := range ds {
		r.departments[d.ID] = d
	}
	return r
}

func (r *fakeDepartmentRepo) Create(d *entity.Department) error {
	r.departments[d.ID] = d
	return nil
}

func (r *fakeDepartmentRepo) GetByID(id string) (*entity.Department, error) {
	return r.departments[id], nil
}

func (r *fakeDepartmentRepo) List() ([]*entity.Department, error) {
	out := make([]*entity.Department, 0, len(r.departments))
	for _, d := range r.departments {
		out = append(out, d)
	}
	return out, nil
}
