package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/mayondo-api/internal/domain"
	"github.com/jhoicas/mayondo-api/internal/domain/entity"
	"github.com/jhoicas/mayondo-api/internal/domain/repository"
)

var (
	_ repository.CustomerRepository     = (*CustomerRepo)(nil)
	_ repository.SupplierRepository     = (*SupplierRepo)(nil)
	_ repository.NotificationRepository = (*NotificationRepo)(nil)
)

// CustomerRepo clientes en memoria (nombre único).
type CustomerRepo struct{ s *Store }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.customers {
		if existing.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	r.s.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepo) List(_ context.Context) ([]entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]entity.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// SupplierRepo proveedores en memoria (nombre único).
type SupplierRepo struct{ s *Store }

func (r *SupplierRepo) Create(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.suppliers {
		if existing.Name == sp.Name {
			return domain.ErrDuplicate
		}
	}
	if sp.ID == "" {
		sp.ID = uuid.New().String()
	}
	r.s.suppliers[sp.ID] = *sp
	return nil
}

func (r *SupplierRepo) List(_ context.Context) ([]entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]entity.Supplier, 0, len(r.s.suppliers))
	for _, sp := range r.s.suppliers {
		list = append(list, sp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// NotificationRepo notificaciones en memoria, en orden de creación.
type NotificationRepo struct{ s *Store }

func (r *NotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	r.s.notifications = append(r.s.notifications, *n)
	return nil
}

func (r *NotificationRepo) ListUnread(_ context.Context, audience string, limit int) ([]entity.Notification, error) {
	return r.latest(audience, limit, true), nil
}

func (r *NotificationRepo) ListRecent(_ context.Context, audience string, limit int) ([]entity.Notification, error) {
	return r.latest(audience, limit, false), nil
}

// latest recorre de la más reciente a la más antigua.
func (r *NotificationRepo) latest(audience string, limit int, unreadOnly bool) []entity.Notification {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]entity.Notification, 0)
	for i := len(r.s.notifications) - 1; i >= 0; i-- {
		n := r.s.notifications[i]
		if n.Audience != audience || (unreadOnly && n.IsRead) {
			continue
		}
		list = append(list, n)
		if limit > 0 && len(list) == limit {
			break
		}
	}
	return list
}

func (r *NotificationRepo) MarkRead(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.notifications {
		if r.s.notifications[i].ID == id {
			r.s.notifications[i].IsRead = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *NotificationRepo) MarkAllRead(_ context.Context, audience string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for i := range r.s.notifications {
		if r.s.notifications[i].Audience == audience && !r.s.notifications[i].IsRead {
			r.s.notifications[i].IsRead = true
			n++
		}
	}
	return n, nil
}
