//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"
	"time"

	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, orderCreate entities.OrderCreate, createdAt time.Time) (*entities.Order, error)
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	GetAll(ctx context.Context) ([]entities.Order, error)
	Update(ctx context.Context, id string, mutate func(*entities.Order) error) (*entities.Order, error)
}

type ProofStorage interface {
	Save(ctx context.Context, fileName string, content []byte) (string, error)
	Remove(ctx context.Context, ref string) error
}

type DeliveryJournal interface {
	GetByOrderID(ctx context.Context, orderID string) ([]entities.Delivery, error)
}

// Outbox accepts notification intents for asynchronous delivery. Enqueue
// must not block and has no way to fail the caller.
type Outbox interface {
	Enqueue(intents ...entities.Intent)
}

type Clock interface {
	Now() time.Time
}
