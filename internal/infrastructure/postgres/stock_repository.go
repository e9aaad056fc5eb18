package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mayondo-api/internal/domain"
	"github.com/jhoicas/mayondo-api/internal/domain/entity"
	"github.com/jhoicas/mayondo-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `id, code, product_name, product_type, quantity, unit_cost, total_cost,
	supplier_name, origin, date, created_at, updated_at`

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Create inserta una entrada de stock. Código repetido → domain.ErrDuplicate.
func (r *StockRepo) Create(ctx context.Context, e *entity.StockEntry) error {
	query := `
		INSERT INTO stock_entries (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Code, e.Product.Name, e.Product.Type, e.Quantity, e.UnitCost, e.TotalCost,
		e.SupplierName, e.Origin, e.Date, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock entry: %w", err)
	}
	return nil
}

// Update reemplaza los datos editables de una entrada.
func (r *StockRepo) Update(ctx context.Context, e *entity.StockEntry) error {
	query := `
		UPDATE stock_entries
		SET product_name = $2, product_type = $3, quantity = $4, unit_cost = $5, total_cost = $6,
		    supplier_name = $7, origin = $8, date = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		e.ID, e.Product.Name, e.Product.Type, e.Quantity, e.UnitCost, e.TotalCost,
		e.SupplierName, e.Origin, e.Date, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una entrada.
func (r *StockRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene una entrada; (nil, nil) si no existe.
func (r *StockRepo) GetByID(ctx context.Context, id string) (*entity.StockEntry, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_entries WHERE id = $1`
	e, err := scanStockEntry(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock entry: %w", err)
	}
	return e, nil
}

// List devuelve el libro completo ordenado por fecha y código.
func (r *StockRepo) List(ctx context.Context) ([]entity.StockEntry, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_entries ORDER BY date, code`
	return r.queryList(ctx, "list stock entries", query)
}

// ListByProduct filtra por igualdad exacta (sensible a mayúsculas) de nombre y tipo.
func (r *StockRepo) ListByProduct(ctx context.Context, p entity.ProductIdentity) ([]entity.StockEntry, error) {
	query := `
		SELECT ` + stockColumns + ` FROM stock_entries
		WHERE product_name = $1 AND product_type = $2
		ORDER BY date, code`
	return r.queryList(ctx, "list stock by product", query, p.Name, p.Type)
}

// ListByProductForUpdate bloquea las filas de la identidad (SELECT FOR UPDATE) hasta el fin de la tx.
func (r *StockRepo) ListByProductForUpdate(ctx context.Context, p entity.ProductIdentity) ([]entity.StockEntry, error) {
	query := `
		SELECT ` + stockColumns + ` FROM stock_entries
		WHERE product_name = $1 AND product_type = $2
		ORDER BY date, code
		FOR UPDATE`
	return r.queryList(ctx, "lock stock by product", query, p.Name, p.Type)
}

// SetQuantity actualiza la existencia y recalcula total_cost en la misma sentencia.
func (r *StockRepo) SetQuantity(ctx context.Context, id string, quantity int) error {
	query := `
		UPDATE stock_entries
		SET quantity = $2, total_cost = $2 * unit_cost, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, quantity)
	if err != nil {
		return fmt.Errorf("set stock quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LastCodeWithPrefix mayor código con el prefijo (vacío si no hay).
func (r *StockRepo) LastCodeWithPrefix(ctx context.Context, prefix string) (string, error) {
	var code string
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(code), '') FROM stock_entries WHERE code LIKE $1`,
		prefix+"%",
	).Scan(&code)
	if err != nil {
		return "", fmt.Errorf("last stock code: %w", err)
	}
	return code, nil
}

// Search coincidencia parcial sin distinguir mayúsculas en código, producto y proveedor.
func (r *StockRepo) Search(ctx context.Context, q string, limit int) ([]entity.StockEntry, error) {
	query := `
		SELECT ` + stockColumns + ` FROM stock_entries
		WHERE code ILIKE $1 OR product_name ILIKE $1 OR product_type ILIKE $1 OR supplier_name ILIKE $1
		ORDER BY date DESC, code DESC
		LIMIT $2`
	return r.queryList(ctx, "search stock", query, likePattern(q), limit)
}

func (r *StockRepo) queryList(ctx context.Context, op, query string, args ...any) ([]entity.StockEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	list := make([]entity.StockEntry, 0)
	for rows.Next() {
		e, err := scanStockEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		list = append(list, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func scanStockEntry(row pgx.Row) (*entity.StockEntry, error) {
	var e entity.StockEntry
	err := row.Scan(
		&e.ID, &e.Code, &e.Product.Name, &e.Product.Type, &e.Quantity, &e.UnitCost, &e.TotalCost,
		&e.SupplierName, &e.Origin, &e.Date, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
