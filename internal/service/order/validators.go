package order

import (
	"net/mail"
	"strings"

	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/entities"
)

// allowedTransitions lists the target statuses reachable from each status.
// Terminal statuses only allow re-entering themselves.
var allowedTransitions = map[entities.OrderStatusType][]entities.OrderStatusType{
	entities.OrderPending: {
		entities.OrderPaymentReview,
		entities.OrderApproved,
		entities.OrderRejected,
	},
	entities.OrderPaymentReview: {
		entities.OrderApproved,
		entities.OrderRejected,
	},
	entities.OrderApproved: {entities.OrderApproved},
	entities.OrderRejected: {entities.OrderRejected},
}

func canTransition(from, to entities.OrderStatusType) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}
