package order

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/entities"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/service/order"
)

// maxIDAttempts bounds collision retries. With 900000 possible ids the
// chance of exhausting it before the store is nearly full is negligible.
const maxIDAttempts = 32

// Repository keeps orders in memory. Records are never handed out directly:
// every read and write returns a copy.
type Repository struct {
	mu    sync.RWMutex
	ids   IDGenerator
	byID  map[string]*entities.Order
	order []string
}

func New(ids IDGenerator) *Repository {
	if ids == nil {
		ids = RandomIDGenerator{}
	}
	return &Repository{
		ids:  ids,
		byID: make(map[string]*entities.Order),
	}
}

func (r *Repository) Create(ctx context.Context, orderCreate entities.OrderCreate, createdAt time.Time) (*entities.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if orderCreate.Name == nil || orderCreate.Email == nil {
		return nil, fmt.Errorf("in-memory order repository create: %w", order.ErrMissingRequiredFields)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.nextID()
	if err != nil {
		return nil, err
	}

	var phone *string
	if orderCreate.Phone != nil && strings.TrimSpace(*orderCreate.Phone) != "" {
		p := strings.TrimSpace(*orderCreate.Phone)
		phone = &p
	}

	record := &entities.Order{
		ID:        id,
		Name:      strings.TrimSpace(*orderCreate.Name),
		Email:     strings.TrimSpace(*orderCreate.Email),
		Phone:     phone,
		Status:    entities.OrderPending,
		CreatedAt: createdAt,
	}

	r.byID[id] = record
	r.order = append(r.order, id)

	return record.Clone(), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byID[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return record.Clone(), nil
}

func (r *Repository) GetAll(ctx context.Context) ([]entities.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]entities.Order, 0, len(r.order))
	for _, id := range r.order {
		orders = append(orders, *r.byID[id].Clone())
	}
	return orders, nil
}

// Update runs mutate on a working copy under the write lock and stores the
// result only if mutate succeeds, so a transition is all-or-nothing.
func (r *Repository) Update(ctx context.Context, id string, mutate func(*entities.Order) error) (*entities.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.byID[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}

	working := record.Clone()
	if err := mutate(working); err != nil {
		return nil, err
	}
	working.ID = record.ID

	r.byID[id] = working
	return working.Clone(), nil
}

func (r *Repository) CountByStatus(ctx context.Context) (map[entities.OrderStatusType]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[entities.OrderStatusType]int, len(entities.OrderStatuses))
	for _, status := range entities.OrderStatuses {
		counts[status] = 0
	}
	for _, record := range r.byID {
		counts[record.Status]++
	}
	return counts, nil
}

// nextID must be called with the write lock held.
func (r *Repository) nextID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := r.ids.Next()
		if _, taken := r.byID[id]; !taken {
			return id, nil
		}
	}
	return "", order.ErrIDSpaceExhausted
}
