package entities

import "time"

type Order struct {
	ID         string
	Name       string
	Email      string
	Phone      *string
	Status     OrderStatusType
	Screenshot *string
	CreatedAt  time.Time
}

// Clone returns a deep copy so callers never share pointers with the store.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	if o.Phone != nil {
		phone := *o.Phone
		c.Phone = &phone
	}
	if o.Screenshot != nil {
		screenshot := *o.Screenshot
		c.Screenshot = &screenshot
	}
	return &c
}

type OrderStatusType string

const (
	OrderPending       OrderStatusType = "pending"
	OrderPaymentReview OrderStatusType = "payment_review"
	OrderApproved      OrderStatusType = "approved"
	OrderRejected      OrderStatusType = "rejected"
)

// OrderStatusNotFound is reported by the status lookup for unknown ids.
const OrderStatusNotFound = "not_found"

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) IsTerminal() bool {
	return s == OrderApproved || s == OrderRejected
}

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatusType{
	OrderPending,
	OrderPaymentReview,
	OrderApproved,
	OrderRejected,
}

type OrderCreate struct {
	Name  *string
	Email *string
	Phone *string
}

type ProofUpload struct {
	FileName string
	Content  []byte
}
