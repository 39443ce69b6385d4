package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/panastock-api/internal/domain/entity"
	"github.com/jhoicas/panastock-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL.
// Cabecera en invoices y líneas en invoice_items.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la factura con sus líneas.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	ctx := context.Background()
	query := `
		INSERT INTO invoices (id, number, customer_id, customer_name, department_id, total, movement_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.Number, invoice.CustomerID, invoice.CustomerName,
		invoice.DepartmentID, invoice.Total, invoice.MovementID,
		invoice.CreatedAt, invoice.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	for i, it := range invoice.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO invoice_items (invoice_id, line_no, product_id, product_name, quantity, unit, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			invoice.ID, i+1, it.ProductID, it.ProductName, it.Quantity, it.Unit, it.UnitPrice, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una factura con sus líneas. Devuelve nil sin error si no existe.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	ctx := context.Background()
	query := `
		SELECT id, number, customer_id, customer_name, department_id, total, movement_id, created_at, created_by
		FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.Number, &inv.CustomerID, &inv.CustomerName,
		&inv.DepartmentID, &inv.Total, &inv.MovementID, &inv.CreatedAt, &inv.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT product_id, product_name, quantity, unit, unit_price, subtotal
		FROM invoice_items WHERE invoice_id = $1 ORDER BY line_no`, id)
	if err != nil {
		return nil, fmt.Errorf("get invoice items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.Quantity, &it.Unit, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		inv.Items = append(inv.Items, it)
	}
	return &inv, rows.Err()
}

// NextNumber reserva el siguiente consecutivo de factura (secuencia de la DB,
// segura bajo concurrencia).
func (r *InvoiceRepo) NextNumber() (string, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('invoice_number_seq')`).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("next invoice number: %w", err)
	}
	return fmt.Sprintf("FV-%06d", n), nil
}
