package order_status_get

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/entities"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/generated/dto"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/service/order"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/pkg/logger"
	"github.com/gorilla/mux"
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
	orderID := mux.Vars(r)["orderId"]

	status, err := h.service.GetOrderStatus(r.Context(), orderID)
	if err != nil {
		if !errors.Is(err, order.ErrOrderNotFound) {
			h.log.With(
				logger.NewField("error", err),
			).Error("get order status")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		h.writeResponse(w, dto.OrderStatusResponse{Status: entities.OrderStatusNotFound})
		return
	}

	h.writeResponse(w, dto.OrderStatusResponse{
		Success: true,
		Status:  status.String(),
	})
}

func (h *Handler) writeResponse(w http.ResponseWriter, response dto.OrderStatusResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
