package order_create_post

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/AlekSi/pointer"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/entities"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/generated/dto"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/service/order"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/pkg/logger"
)

const (
	messageMissingFields = "Name and Email required"
	messageInvalidEmail  = "Invalid email address"
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
	orderCreateDTO, err := decodeRequest(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	orderCreateEntity := entities.OrderCreate{
		Name:  orderCreateDTO.Name,
		Email: orderCreateDTO.Email,
		Phone: orderCreateDTO.Phone,
	}

	transition, err := h.service.CreateOrder(r.Context(), orderCreateEntity)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrMissingRequiredFields):
			h.writeResponse(w, dto.OrderCreateResponse{Message: pointer.To(messageMissingFields)})
		case errors.Is(err, order.ErrInvalidEmail):
			h.writeResponse(w, dto.OrderCreateResponse{Message: pointer.To(messageInvalidEmail)})
		default:
			h.log.With(
				logger.NewField("error", err),
			).Error("create order")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	h.writeResponse(w, dto.OrderCreateResponse{
		Success: true,
		OrderId: &transition.Order.ID,
	})
}

// decodeRequest accepts the storefront form as JSON or as a form post.
func decodeRequest(r *http.Request) (dto.OrderCreateRequest, error) {
	var req dto.OrderCreateRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}

	if err := r.ParseForm(); err != nil {
		return req, err
	}
	req.Name = formValue(r, "name")
	req.Email = formValue(r, "email")
	req.Phone = formValue(r, "phone")
	return req, nil
}

func formValue(r *http.Request, key string) *string {
	if _, ok := r.PostForm[key]; !ok {
		return nil
	}
	v := r.PostForm.Get(key)
	return &v
}

func (h *Handler) writeResponse(w http.ResponseWriter, response dto.OrderCreateResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
