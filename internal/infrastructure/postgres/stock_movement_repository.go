package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panastock-api/internal/domain/analytics"
	"github.com/jhoicas/panastock-api/internal/domain/entity"
	"github.com/jhoicas/panastock-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const (
	movementsTable     = "stock_movements"
	movementLinesTable = "stock_movement_lines"
)

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL.
// Cabecera en stock_movements y líneas en stock_movement_lines; los filtros
// del listado se arman dinámicamente con squirrel.
type StockMovementRepo struct {
	q       Querier
	builder squirrel.StatementBuilderType
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{
		q:       q,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// movementRow fila de cabecera para scany.
type movementRow struct {
	ID             string          `db:"id"`
	Type           string          `db:"type"`
	Date           time.Time       `db:"date"`
	StockManager   string          `db:"stock_manager"`
	Notes          string          `db:"notes"`
	Supplier       string          `db:"supplier"`
	DepartmentID   string          `db:"department_id"`
	DepartmentName string          `db:"department_name"`
	TotalItems     decimal.Decimal `db:"total_items"`
	TotalValue     decimal.Decimal `db:"total_value"`
	CreatedAt      time.Time       `db:"created_at"`
	CreatedBy      string          `db:"created_by"`
}

func (row movementRow) toEntity() *entity.StockMovement {
	return &entity.StockMovement{
		ID:             row.ID,
		Type:           row.Type,
		Date:           row.Date,
		StockManager:   row.StockManager,
		Notes:          row.Notes,
		Supplier:       row.Supplier,
		DepartmentID:   row.DepartmentID,
		DepartmentName: row.DepartmentName,
		TotalItems:     row.TotalItems,
		TotalValue:     row.TotalValue,
		CreatedAt:      row.CreatedAt,
		CreatedBy:      row.CreatedBy,
	}
}

// lineRow fila de línea para scany.
type lineRow struct {
	MovementID    string          `db:"movement_id"`
	ProductID     string          `db:"product_id"`
	ProductName   string          `db:"product_name"`
	Quantity      decimal.Decimal `db:"quantity"`
	Unit          string          `db:"unit"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	PreviousStock decimal.Decimal `db:"previous_stock"`
	NewStock      decimal.Decimal `db:"new_stock"`
}

func (row lineRow) toEntity() entity.ProductLine {
	return entity.ProductLine{
		ProductID:     row.ProductID,
		ProductName:   row.ProductName,
		Quantity:      row.Quantity,
		Unit:          row.Unit,
		UnitPrice:     row.UnitPrice,
		PreviousStock: row.PreviousStock,
		NewStock:      row.NewStock,
	}
}

const movementColumns = `id, type, date, stock_manager, notes, supplier, department_id, department_name, total_items, total_value, created_at, created_by`

// Create persiste la cabecera y todas las líneas del movimiento.
func (r *StockMovementRepo) Create(mov *entity.StockMovement) error {
	ctx := context.Background()

	insertHeader := r.builder.
		Insert(movementsTable).
		Columns("id", "type", "date", "stock_manager", "notes", "supplier",
			"department_id", "department_name", "total_items", "total_value",
			"created_at", "created_by").
		Values(mov.ID, mov.Type, mov.Date, mov.StockManager, mov.Notes, mov.Supplier,
			mov.DepartmentID, mov.DepartmentName, mov.TotalItems, mov.TotalValue,
			mov.CreatedAt, mov.CreatedBy)
	sql, args, err := insertHeader.ToSql()
	if err != nil {
		return fmt.Errorf("build insert movement: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}

	if len(mov.Lines) == 0 {
		return nil
	}
	insertLines := r.builder.
		Insert(movementLinesTable).
		Columns("movement_id", "line_no", "product_id", "product_name",
			"quantity", "unit", "unit_price", "previous_stock", "new_stock")
	for i, l := range mov.Lines {
		insertLines = insertLines.Values(mov.ID, i+1, l.ProductID, l.ProductName,
			l.Quantity, l.Unit, l.UnitPrice, l.PreviousStock, l.NewStock)
	}
	sql, args, err = insertLines.ToSql()
	if err != nil {
		return fmt.Errorf("build insert movement lines: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movement lines: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento con sus líneas. Devuelve nil sin error si no existe.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	ctx := context.Background()

	var rows []movementRow
	err := pgxscan.Select(ctx, r.q, &rows,
		`SELECT `+movementColumns+` FROM `+movementsTable+` WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get movement: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	mov := rows[0].toEntity()

	lines, err := r.linesFor(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	mov.Lines = lines[id]
	return mov, nil
}

// List devuelve la página filtrada (orden fecha DESC, desempate created_at
// DESC) y el total sin paginar con los mismos filtros.
func (r *StockMovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	where := squirrel.And{}
	if filter.Type != "" {
		where = append(where, squirrel.Eq{"type": filter.Type})
	}
	if filter.DepartmentID != "" {
		where = append(where, squirrel.Eq{"department_id": filter.DepartmentID})
	}
	if filter.From != nil {
		where = append(where, squirrel.GtOrEq{"date": *filter.From})
	}
	if filter.To != nil {
		where = append(where, squirrel.Lt{"date": *filter.To})
	}

	countQ := r.builder.Select("count(*)").From(movementsTable)
	if len(where) > 0 {
		countQ = countQ.Where(where)
	}
	sql, args, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count movements: %w", err)
	}
	var total int
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	listQ := r.builder.
		Select("id", "type", "date", "stock_manager", "notes", "supplier",
			"department_id", "department_name", "total_items", "total_value",
			"created_at", "created_by").
		From(movementsTable).
		OrderBy("date DESC", "created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))
	if len(where) > 0 {
		listQ = listQ.Where(where)
	}
	sql, args, err = listQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list movements: %w", err)
	}
	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	if len(rows) == 0 {
		return nil, total, nil
	}

	ids := make([]string, 0, len(rows))
	movs := make([]*entity.StockMovement, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
		movs = append(movs, row.toEntity())
	}
	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, mov := range movs {
		mov.Lines = lines[mov.ID]
	}
	return movs, total, nil
}

// linesFor carga las líneas de varios movimientos en una consulta, agrupadas por movimiento.
func (r *StockMovementRepo) linesFor(ctx context.Context, movementIDs []string) (map[string][]entity.ProductLine, error) {
	q := r.builder.
		Select("movement_id", "product_id", "product_name", "quantity", "unit",
			"unit_price", "previous_stock", "new_stock").
		From(movementLinesTable).
		Where(squirrel.Eq{"movement_id": movementIDs}).
		OrderBy("movement_id", "line_no")
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lines query: %w", err)
	}
	var rows []lineRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("get movement lines: %w", err)
	}
	out := make(map[string][]entity.ProductLine, len(movementIDs))
	for _, row := range rows {
		out[row.MovementID] = append(out[row.MovementID], row.toEntity())
	}
	return out, nil
}

// Delete borra el movimiento y sus líneas. El ajuste de stock que revierte el
// movimiento corre en la misma transacción a cargo del caso de uso.
func (r *StockMovementRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx,
		`DELETE FROM `+movementLinesTable+` WHERE movement_id = $1`, id); err != nil {
		return fmt.Errorf("delete movement lines: %w", err)
	}
	if _, err := r.q.Exec(ctx,
		`DELETE FROM `+movementsTable+` WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}

// usageEventRow fila de evento de consumo para scany.
type usageEventRow struct {
	Date         time.Time       `db:"date"`
	QuantityUsed decimal.Decimal `db:"quantity_used"`
	MovementID   string          `db:"movement_id"`
	DepartmentID string          `db:"department_id"`
	UsedBy       string          `db:"used_by"`
}

// ListUsageEvents devuelve las líneas distribution de un producto en [from, to)
// como eventos de consumo, orden ascendente por fecha.
func (r *StockMovementRepo) ListUsageEvents(ctx context.Context, productID string, from, to time.Time) ([]analytics.UsageEvent, error) {
	q := r.builder.
		Select("m.date AS date", "l.quantity AS quantity_used",
			"m.id AS movement_id", "m.department_id AS department_id",
			"m.stock_manager AS used_by").
		From(movementLinesTable + " l").
		Join(movementsTable + " m ON m.id = l.movement_id").
		Where(squirrel.Eq{"m.type": entity.MovementTypeDistribution}).
		Where(squirrel.Eq{"l.product_id": productID}).
		Where(squirrel.GtOrEq{"m.date": from}).
		Where(squirrel.Lt{"m.date": to}).
		OrderBy("m.date ASC", "m.created_at ASC")
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build usage events query: %w", err)
	}
	var rows []usageEventRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list usage events: %w", err)
	}
	events := make([]analytics.UsageEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, analytics.UsageEvent{
			Date:         row.Date,
			QuantityUsed: row.QuantityUsed,
			MovementID:   row.MovementID,
			DepartmentID: row.DepartmentID,
			UsedBy:       row.UsedBy,
		})
	}
	return events, nil
}

// ListDistributionsAfter devuelve los movimientos distribution posteriores a
// after que tocan alguno de los productos dados (con líneas), para el chequeo
// de reversa al borrar una entrada.
func (r *StockMovementRepo) ListDistributionsAfter(ctx context.Context, productIDs []string, after time.Time) ([]*entity.StockMovement, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	q := r.builder.
		Select("DISTINCT m.id AS id", "m.type AS type", "m.date AS date",
			"m.stock_manager AS stock_manager", "m.notes AS notes", "m.supplier AS supplier",
			"m.department_id AS department_id", "m.department_name AS department_name",
			"m.total_items AS total_items", "m.total_value AS total_value",
			"m.created_at AS created_at", "m.created_by AS created_by").
		From(movementsTable + " m").
		Join(movementLinesTable + " l ON l.movement_id = m.id").
		Where(squirrel.Eq{"m.type": entity.MovementTypeDistribution}).
		Where(squirrel.Eq{"l.product_id": productIDs}).
		Where(squirrel.Gt{"m.date": after}).
		OrderBy("m.date ASC")
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build distributions query: %w", err)
	}
	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list distributions: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(rows))
	movs := make([]*entity.StockMovement, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
		movs = append(movs, row.toEntity())
	}
	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, mov := range movs {
		mov.Lines = lines[mov.ID]
	}
	return movs, nil
}
