package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mayondo-api/internal/domain"
	"github.com/jhoicas/mayondo-api/internal/domain/entity"
	"github.com/jhoicas/mayondo-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, number, code, product_name, product_type, quantity, unit_price,
	transport_required, total_amount, customer_name, sales_agent, payment_type, date, created_at`

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta. Con Number en cero lo asigna la secuencia y se devuelve en s.Number.
func (r *SaleRepo) Create(ctx context.Context, s *entity.SaleEntry) error {
	args := []any{
		s.ID, s.Code, s.Product.Name, s.Product.Type, s.Quantity, s.UnitPrice,
		s.TransportRequired, s.TotalAmount, s.CustomerName, s.SalesAgent, s.PaymentType,
		s.Date, s.CreatedAt,
	}
	var query string
	if s.Number == 0 {
		query = `
			INSERT INTO sales (id, code, product_name, product_type, quantity, unit_price,
				transport_required, total_amount, customer_name, sales_agent, payment_type, date, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING number`
	} else {
		query = `
			INSERT INTO sales (id, code, product_name, product_type, quantity, unit_price,
				transport_required, total_amount, customer_name, sales_agent, payment_type, date, created_at, number)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING number`
		args = append(args, s.Number)
	}
	if err := r.q.QueryRow(ctx, query, args...).Scan(&s.Number); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// Update reemplaza los datos editables de la venta (number y code no cambian).
func (r *SaleRepo) Update(ctx context.Context, s *entity.SaleEntry) error {
	query := `
		UPDATE sales
		SET product_name = $2, product_type = $3, quantity = $4, unit_price = $5,
		    transport_required = $6, total_amount = $7, customer_name = $8, sales_agent = $9,
		    payment_type = $10, date = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.Product.Name, s.Product.Type, s.Quantity, s.UnitPrice,
		s.TransportRequired, s.TotalAmount, s.CustomerName, s.SalesAgent,
		s.PaymentType, s.Date,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una venta.
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene una venta; (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.SaleEntry, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	s, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// List ventas dentro del rango (inclusivo por día), ordenadas por fecha y código.
func (r *SaleRepo) List(ctx context.Context, filter repository.SaleFilter) ([]entity.SaleEntry, error) {
	var (
		where []string
		args  []any
	)
	if filter.From != nil {
		args = append(args, *filter.From)
		where = append(where, fmt.Sprintf("date >= $%d::date", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where = append(where, fmt.Sprintf("date <= $%d::date", len(args)))
	}
	query := `SELECT ` + saleColumns + ` FROM sales`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date, code`
	return r.queryList(ctx, "list sales", query, args...)
}

// Count total de ventas.
func (r *SaleRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sales`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}

// LastCodeWithPrefix mayor código con el prefijo (vacío si no hay).
func (r *SaleRepo) LastCodeWithPrefix(ctx context.Context, prefix string) (string, error) {
	var code string
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(code), '') FROM sales WHERE code LIKE $1`,
		prefix+"%",
	).Scan(&code)
	if err != nil {
		return "", fmt.Errorf("last sale code: %w", err)
	}
	return code, nil
}

// Search coincidencia parcial sin distinguir mayúsculas en código, cliente, producto y vendedor.
func (r *SaleRepo) Search(ctx context.Context, q string, limit int) ([]entity.SaleEntry, error) {
	query := `
		SELECT ` + saleColumns + ` FROM sales
		WHERE code ILIKE $1 OR customer_name ILIKE $1 OR product_name ILIKE $1
		   OR product_type ILIKE $1 OR sales_agent ILIKE $1
		ORDER BY date DESC, code DESC
		LIMIT $2`
	return r.queryList(ctx, "search sales", query, likePattern(q), limit)
}

func (r *SaleRepo) queryList(ctx context.Context, op, query string, args ...any) ([]entity.SaleEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	list := make([]entity.SaleEntry, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		list = append(list, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func scanSale(row pgx.Row) (*entity.SaleEntry, error) {
	var s entity.SaleEntry
	err := row.Scan(
		&s.ID, &s.Number, &s.Code, &s.Product.Name, &s.Product.Type, &s.Quantity, &s.UnitPrice,
		&s.TransportRequired, &s.TotalAmount, &s.CustomerName, &s.SalesAgent, &s.PaymentType,
		&s.Date, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
