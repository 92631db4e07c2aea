package order_notifications_get

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
	orderID := mux.Vars(r)["id"]

	deliveries, err := h.service.GetOrderDeliveries(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.log.With(
			logger.NewField("order_id", orderID),
			logger.NewField("error", err),
		).Error("get order deliveries")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	deliveriesDTO := make([]dto.Delivery, 0, len(deliveries))
	for _, d := range deliveries {
		deliveriesDTO = append(deliveriesDTO, deliveryToDTO(d))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(deliveriesDTO)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func deliveryToDTO(d entities.Delivery) dto.Delivery {
	delivery := dto.Delivery{
		IntentId:    d.IntentID.String(),
		Event:       d.Event.String(),
		Channel:     d.Channel.String(),
		AttemptedAt: d.AttemptedAt,
		Success:     d.Succeeded(),
	}
	if !d.Succeeded() {
		delivery.Error = &d.Error
	}
	return delivery
}
