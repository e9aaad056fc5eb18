package repository

import (
	"context"

	"github.com/jhoicas/mayondo-api/internal/domain/entity"
)

// CustomerRepository registro de clientes. Create devuelve domain.ErrDuplicate si el nombre ya existe.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	List(ctx context.Context) ([]entity.Customer, error)
}

// SupplierRepository registro de proveedores. Create devuelve domain.ErrDuplicate si el nombre ya existe.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	List(ctx context.Context) ([]entity.Supplier, error)
}
