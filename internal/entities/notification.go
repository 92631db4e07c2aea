package entities

import (
	"time"

	"github.com/google/uuid"
)

type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "created"
	OrderEventProofUploaded OrderEventType = "proof_uploaded"
	OrderEventApproved      OrderEventType = "approved"
	OrderEventRejected      OrderEventType = "rejected"
)

func (e OrderEventType) String() string {
	return string(e)
}

type NotificationChannel string

const (
	ChannelAdminEmail    NotificationChannel = "admin_email"
	ChannelCustomerEmail NotificationChannel = "customer_email"
	ChannelChat          NotificationChannel = "chat"
	ChannelRealtime      NotificationChannel = "realtime"
)

func (c NotificationChannel) String() string {
	return string(c)
}

// Intent is a notification waiting in the outbox. Order is a snapshot taken
// when the transition was committed.
type Intent struct {
	ID        uuid.UUID
	Event     OrderEventType
	Channel   NotificationChannel
	Order     Order
	CreatedAt time.Time
}

func NewIntent(event OrderEventType, channel NotificationChannel, order *Order, now time.Time) Intent {
	return Intent{
		ID:        uuid.New(),
		Event:     event,
		Channel:   channel,
		Order:     *order.Clone(),
		CreatedAt: now,
	}
}

// Transition is the result of a lifecycle operation: the committed order
// plus the notifications it produced.
type Transition struct {
	Order   *Order
	Intents []Intent
}

// Delivery is one recorded notification attempt.
type Delivery struct {
	IntentID    uuid.UUID
	OrderID     string
	Event       OrderEventType
	Channel     NotificationChannel
	AttemptedAt time.Time
	Error       string
}

func (d Delivery) Succeeded() bool {
	return d.Error == ""
}

// Realtime event names pushed to dashboards.
const (
	RealtimeOrderCreated = "order:created"
	RealtimeOrderUpdated = "order:updated"
)

type RealtimeEvent struct {
	Name    string
	OrderID string
	Payload any
}

type EmailMessage struct {
	FromName    string
	FromAddress string
	To          string
	Subject     string
	HTML        string
}
