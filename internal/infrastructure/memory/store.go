// Package memory implementa los libros de stock y ventas en memoria.
// Se usa en modo STORAGE_DRIVER=memory (desarrollo/demo) y como fixture en tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/mayondo-api/internal/domain"
	"github.com/jhoicas/mayondo-api/internal/domain/entity"
	"github.com/jhoicas/mayondo-api/internal/domain/repository"
)

// Store estado compartido de todos los repositorios en memoria.
// txMu serializa las unidades de trabajo (Run) y las escrituras fuera de ellas.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	stock         map[string]entity.StockEntry
	sales         map[string]entity.SaleEntry
	saleSeq       int64
	customers     map[string]entity.Customer
	suppliers     map[string]entity.Supplier
	notifications []entity.Notification
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		stock:     make(map[string]entity.StockEntry),
		sales:     make(map[string]entity.SaleEntry),
		customers: make(map[string]entity.Customer),
		suppliers: make(map[string]entity.Supplier),
	}
}

// StockRepository adaptador del libro de stock.
func (s *Store) StockRepository() *StockRepo { return &StockRepo{s: s} }

// SaleRepository adaptador del libro de ventas.
func (s *Store) SaleRepository() *SaleRepo { return &SaleRepo{s: s} }

// CustomerRepository adaptador de clientes.
func (s *Store) CustomerRepository() *CustomerRepo { return &CustomerRepo{s: s} }

// SupplierRepository adaptador de proveedores.
func (s *Store) SupplierRepository() *SupplierRepo { return &SupplierRepo{s: s} }

// NotificationRepository adaptador de notificaciones.
func (s *Store) NotificationRepository() *NotificationRepo { return &NotificationRepo{s: s} }

type snapshot struct {
	stock   map[string]entity.StockEntry
	sales   map[string]entity.SaleEntry
	saleSeq int64
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		stock:   make(map[string]entity.StockEntry, len(s.stock)),
		sales:   make(map[string]entity.SaleEntry, len(s.sales)),
		saleSeq: s.saleSeq,
	}
	for k, v := range s.stock {
		snap.stock[k] = v
	}
	for k, v := range s.sales {
		snap.sales[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock = snap.stock
	s.sales = snap.sales
	s.saleSeq = snap.saleSeq
}

// Run ejecuta fn como unidad de trabajo: serializada con las demás escrituras y con
// restauración del estado si fn devuelve error.
func (s *Store) Run(_ context.Context, fn func(stockRepo repository.StockRepository, saleRepo repository.SaleRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(&StockRepo{s: s, inTx: true}, &SaleRepo{s: s, inTx: true}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) lockWrite(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.txMu.Lock()
	return s.txMu.Unlock
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// ── Stock ─────────────────────────────────────────────────────────────────────

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo libro de stock en memoria.
type StockRepo struct {
	s    *Store
	inTx bool
}

// Create guarda una entrada nueva; asigna ID si viene vacío.
func (r *StockRepo) Create(_ context.Context, entry *entity.StockEntry) error {
	defer r.s.lockWrite(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if _, ok := r.s.stock[entry.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, e := range r.s.stock {
		if entry.Code != "" && e.Code == entry.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.stock[entry.ID] = *entry
	return nil
}

// Update reemplaza una entrada existente.
func (r *StockRepo) Update(_ context.Context, entry *entity.StockEntry) error {
	defer r.s.lockWrite(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.stock[entry.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.stock[entry.ID] = *entry
	return nil
}

// Delete elimina una entrada.
func (r *StockRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.stock[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.stock, id)
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *StockRepo) GetByID(_ context.Context, id string) (*entity.StockEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.stock[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// List devuelve todas las entradas ordenadas por fecha y código.
func (r *StockRepo) List(_ context.Context) ([]entity.StockEntry, error) {
	return r.filter(func(entity.StockEntry) bool { return true }), nil
}

// ListByProduct filtra por identidad exacta.
func (r *StockRepo) ListByProduct(_ context.Context, product entity.ProductIdentity) ([]entity.StockEntry, error) {
	return r.filter(func(e entity.StockEntry) bool { return entity.Matches(e.Product, product) }), nil
}

// ListByProductForUpdate en memoria el bloqueo lo da Run.
func (r *StockRepo) ListByProductForUpdate(ctx context.Context, product entity.ProductIdentity) ([]entity.StockEntry, error) {
	return r.ListByProduct(ctx, product)
}

// SetQuantity actualiza existencias y total.
func (r *StockRepo) SetQuantity(_ context.Context, id string, quantity int) error {
	defer r.s.lockWrite(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.stock[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Quantity = quantity
	e.RecomputeTotalCost()
	r.s.stock[id] = e
	return nil
}

// LastCodeWithPrefix mayor código con el prefijo dado.
func (r *StockRepo) LastCodeWithPrefix(_ context.Context, prefix string) (string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	last := ""
	for _, e := range r.s.stock {
		if strings.HasPrefix(e.Code, prefix) && e.Code > last {
			last = e.Code
		}
	}
	return last, nil
}

// Search coincidencia parcial, sin distinguir mayúsculas, en código, producto y proveedor.
func (r *StockRepo) Search(_ context.Context, query string, limit int) ([]entity.StockEntry, error) {
	q := strings.ToLower(query)
	list := r.filter(func(e entity.StockEntry) bool {
		return containsFold(e.Code, q) || containsFold(e.Product.Name, q) ||
			containsFold(e.Product.Type, q) || containsFold(e.SupplierName, q)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *StockRepo) filter(keep func(entity.StockEntry) bool) []entity.StockEntry {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]entity.StockEntry, 0, len(r.s.stock))
	for _, e := range r.s.stock {
		if keep(e) {
			list = append(list, e)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		return list[i].Code < list[j].Code
	})
	return list
}

// ── Ventas ────────────────────────────────────────────────────────────────────

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo libro de ventas en memoria.
type SaleRepo struct {
	s    *Store
	inTx bool
}

// Create guarda la venta; asigna ID y Number si vienen vacíos.
func (r *SaleRepo) Create(_ context.Context, sale *entity.SaleEntry) error {
	defer r.s.lockWrite(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	if _, ok := r.s.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range r.s.sales {
		if sale.Code != "" && existing.Code == sale.Code {
			return domain.ErrDuplicate
		}
	}
	if sale.Number == 0 {
		r.s.saleSeq++
		sale.Number = r.s.saleSeq
	}
	r.s.sales[sale.ID] = *sale
	return nil
}

// Update reemplaza una venta existente.
func (r *SaleRepo) Update(_ context.Context, sale *entity.SaleEntry) error {
	defer r.s.lockWrite(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[sale.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.sales[sale.ID] = *sale
	return nil
}

// Delete elimina una venta.
func (r *SaleRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.sales, id)
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.SaleEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	s, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// List ventas dentro del rango (inclusivo), ordenadas por fecha y código.
func (r *SaleRepo) List(_ context.Context, filter repository.SaleFilter) ([]entity.SaleEntry, error) {
	return r.filter(func(s entity.SaleEntry) bool {
		if filter.From != nil && s.Date.Before(*filter.From) {
			return false
		}
		if filter.To != nil && s.Date.After(*filter.To) {
			return false
		}
		return true
	}), nil
}

// Count total de ventas registradas.
func (r *SaleRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.sales), nil
}

// LastCodeWithPrefix mayor código con el prefijo dado.
func (r *SaleRepo) LastCodeWithPrefix(_ context.Context, prefix string) (string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	last := ""
	for _, s := range r.s.sales {
		if strings.HasPrefix(s.Code, prefix) && s.Code > last {
			last = s.Code
		}
	}
	return last, nil
}

// Search coincidencia parcial en código, cliente, producto y vendedor.
func (r *SaleRepo) Search(_ context.Context, query string, limit int) ([]entity.SaleEntry, error) {
	q := strings.ToLower(query)
	list := r.filter(func(s entity.SaleEntry) bool {
		return containsFold(s.Code, q) || containsFold(s.CustomerName, q) ||
			containsFold(s.Product.Name, q) || containsFold(s.Product.Type, q) ||
			containsFold(s.SalesAgent, q)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *SaleRepo) filter(keep func(entity.SaleEntry) bool) []entity.SaleEntry {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]entity.SaleEntry, 0, len(r.s.sales))
	for _, s := range r.s.sales {
		if keep(s) {
			list = append(list, s)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		return list[i].Code < list[j].Code
	})
	return list
}
