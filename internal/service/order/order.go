package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/entities"
)

// Channels notified per lifecycle event, in dispatch order.
var eventChannels = map[entities.OrderEventType][]entities.NotificationChannel{
	entities.OrderEventCreated: {
		entities.ChannelRealtime,
		entities.ChannelAdminEmail,
		entities.ChannelChat,
	},
	entities.OrderEventProofUploaded: {
		entities.ChannelRealtime,
		entities.ChannelAdminEmail,
		entities.ChannelChat,
	},
	entities.OrderEventApproved: {
		entities.ChannelCustomerEmail,
		entities.ChannelAdminEmail,
		entities.ChannelChat,
		entities.ChannelRealtime,
	},
	entities.OrderEventRejected: {
		entities.ChannelAdminEmail,
		entities.ChannelChat,
		entities.ChannelRealtime,
	},
}

type Service struct {
	repository Repository
	proofs     ProofStorage
	journal    DeliveryJournal
	outbox     Outbox
	clock      Clock
}

func New(
	repository Repository,
	proofs ProofStorage,
	journal DeliveryJournal,
	outbox Outbox,
	clock Clock,
) *Service {
	return &Service{
		repository: repository,
		proofs:     proofs,
		journal:    journal,
		outbox:     outbox,
		clock:      clock,
	}
}

func (s *Service) CreateOrder(ctx context.Context, orderCreate entities.OrderCreate) (*entities.Transition, error) {
	if isBlank(orderCreate.Name) || isBlank(orderCreate.Email) {
		return nil, ErrMissingRequiredFields
	}
	if !isValidEmail(*orderCreate.Email) {
		return nil, ErrInvalidEmail
	}

	created, err := s.repository.Create(ctx, orderCreate, s.clock.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return s.commit(created, entities.OrderEventCreated), nil
}

func (s *Service) UploadProof(ctx context.Context, orderID string, proof entities.ProofUpload) (*entities.Transition, error) {
	current, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(proof.FileName) == "" {
		return nil, ErrMissingProof
	}
	if !canTransition(current.Status, entities.OrderPaymentReview) {
		return nil, fmt.Errorf("%w: cannot upload proof for %s order", ErrInvalidTransition, current.Status)
	}

	ref, err := s.proofs.Save(ctx, proof.FileName, proof.Content)
	if err != nil {
		return nil, fmt.Errorf("save proof: %w", err)
	}

	updated, err := s.repository.Update(ctx, orderID, func(o *entities.Order) error {
		// Re-checked under the store lock: another upload may have won.
		if !canTransition(o.Status, entities.OrderPaymentReview) {
			return fmt.Errorf("%w: cannot upload proof for %s order", ErrInvalidTransition, o.Status)
		}
		o.Screenshot = &ref
		o.Status = entities.OrderPaymentReview
		return nil
	})
	if err != nil {
		if removeErr := s.proofs.Remove(ctx, ref); removeErr != nil {
			err = errors.Join(err, removeErr)
		}
		return nil, fmt.Errorf("commit proof: %w", err)
	}

	return s.commit(updated, entities.OrderEventProofUploaded), nil
}

func (s *Service) ApproveOrder(ctx context.Context, orderID string) (*entities.Transition, error) {
	return s.decide(ctx, orderID, entities.OrderApproved, entities.OrderEventApproved)
}

func (s *Service) RejectOrder(ctx context.Context, orderID string) (*entities.Transition, error) {
	return s.decide(ctx, orderID, entities.OrderRejected, entities.OrderEventRejected)
}

func (s *Service) GetOrderStatus(ctx context.Context, orderID string) (entities.OrderStatusType, error) {
	o, err := s.getOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	return o.Status, nil
}

func (s *Service) GetOrders(ctx context.Context) ([]entities.Order, error) {
	orders, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

func (s *Service) GetOrderDeliveries(ctx context.Context, orderID string) ([]entities.Delivery, error) {
	if _, err := s.getOrder(ctx, orderID); err != nil {
		return nil, err
	}

	deliveries, err := s.journal.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deliveries: %w", err)
	}
	return deliveries, nil
}

// decide moves an order into a terminal status. Repeating the same decision
// is accepted and notifies again; switching between terminal statuses is not.
func (s *Service) decide(
	ctx context.Context,
	orderID string,
	target entities.OrderStatusType,
	event entities.OrderEventType,
) (*entities.Transition, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, ErrOrderNotFound
	}

	updated, err := s.repository.Update(ctx, orderID, func(o *entities.Order) error {
		if !canTransition(o.Status, target) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, target)
		}
		o.Status = target
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s order: %w", event, err)
	}

	return s.commit(updated, event), nil
}

func (s *Service) getOrder(ctx context.Context, orderID string) (*entities.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, ErrOrderNotFound
	}

	o, err := s.repository.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return o, nil
}

// commit builds the intents for an already stored change and hands them to
// the outbox. Delivery outcome never changes the operation result.
func (s *Service) commit(o *entities.Order, event entities.OrderEventType) *entities.Transition {
	now := s.clock.Now().UTC()

	channels := eventChannels[event]
	intents := make([]entities.Intent, 0, len(channels))
	for _, channel := range channels {
		intents = append(intents, entities.NewIntent(event, channel, o, now))
	}

	s.outbox.Enqueue(intents...)

	return &entities.Transition{
		Order:   o,
		Intents: intents,
	}
}
