package order_reject_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlekSi/pointer"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/generated/dto"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/service/order"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/pkg/logger"
	"github.com/gorilla/mux"
)

const messageInvalidTransition = "Order cannot be rejected in its current status"

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
	orderID := mux.Vars(r)["id"]

	transition, err := h.service.RejectOrder(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			h.writeResponse(w, dto.OperationResponse{})
		case errors.Is(err, order.ErrInvalidTransition):
			h.log.With(
				logger.NewField("order_id", orderID),
				logger.NewField("error", err),
			).Warn("invalid status transition")
			h.writeResponse(w, dto.OperationResponse{Message: pointer.To(messageInvalidTransition)})
		default:
			h.log.With(
				logger.NewField("order_id", orderID),
				logger.NewField("error", err),
			).Error("reject order")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	h.log.With(
		logger.NewField("order_id", transition.Order.ID),
		logger.NewField("intents", len(transition.Intents)),
	).Info("order rejected")

	h.writeResponse(w, dto.OperationResponse{Success: true})
}

func (h *Handler) writeResponse(w http.ResponseWriter, response dto.OperationResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
