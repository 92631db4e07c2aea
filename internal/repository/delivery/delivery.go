package delivery

import (
	"context"
	"sync"

	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/entities"
)

// Repository is the in-memory journal of notification attempts, grouped by order.
type Repository struct {
	mu      sync.RWMutex
	byOrder map[string][]entities.Delivery
}

func New() *Repository {
	return &Repository{
		byOrder: make(map[string][]entities.Delivery),
	}
}

func (r *Repository) Record(ctx context.Context, d entities.Delivery) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byOrder[d.OrderID] = append(r.byOrder[d.OrderID], d)
	return nil
}

// GetByOrderID returns attempts in the order they were recorded.
func (r *Repository) GetByOrderID(ctx context.Context, orderID string) ([]entities.Delivery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	deliveries := r.byOrder[orderID]
	out := make([]entities.Delivery, len(deliveries))
	copy(out, deliveries)
	return out, nil
}
