package orders_get

import (
	"encoding/json"
	"net/http"

	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/generated/dto"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetOrders(r.Context())
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("get orders")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	ordersDTO := make([]dto.Order, 0, len(orders))
	for _, o := range orders {
		ordersDTO = append(ordersDTO, dto.Order{
			Id:         o.ID,
			Name:       o.Name,
			Email:      o.Email,
			Phone:      o.Phone,
			Status:     dto.OrderStatus(o.Status),
			Screenshot: o.Screenshot,
			CreatedAt:  o.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(ordersDTO)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
