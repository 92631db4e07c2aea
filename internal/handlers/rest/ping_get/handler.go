package ping_get

import (
	"encoding/json"
	"net/http"

	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/generated/dto"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/pkg/logger"
)

type Handler struct {
	log   handlerLogger
	clock Clock
}

func New(log handlerLogger, clock Clock) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:   handlerLog,
		clock: clock,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := dto.PingResponse{
		Message:    "pong",
		ServerTime: h.clock.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(res)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
