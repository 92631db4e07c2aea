package proof_upload_post

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/AlekSi/pointer"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/entities"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/generated/dto"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/service/order"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/pkg/logger"
)

const (
	fieldOrderID    = "orderId"
	fieldScreenshot = "screenshot"

	messageOrderNotFound  = "Order not found"
	messageMissingProof   = "Payment screenshot required"
	messageAlreadyHandled = "Payment proof can no longer be submitted for this order"
)

type Handler struct {
	log      handlerLogger
	service  Service
	maxBytes int64
}

func New(log handlerLogger, service Service, maxBytes int64) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:      handlerLog,
		service:  service,
		maxBytes: maxBytes,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) || errors.Is(err, multipart.ErrMessageTooLarge) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	proof, err := readProof(r)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("read payment screenshot")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	_, err = h.service.UploadProof(r.Context(), r.FormValue(fieldOrderID), proof)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			h.writeResponse(w, dto.OperationResponse{Message: pointer.To(messageOrderNotFound)})
		case errors.Is(err, order.ErrMissingProof):
			h.writeResponse(w, dto.OperationResponse{Message: pointer.To(messageMissingProof)})
		case errors.Is(err, order.ErrInvalidTransition):
			h.writeResponse(w, dto.OperationResponse{Message: pointer.To(messageAlreadyHandled)})
		default:
			h.log.With(
				logger.NewField("error", err),
			).Error("upload proof")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	h.writeResponse(w, dto.OperationResponse{Success: true})
}

// readProof returns an empty upload when no file was attached.
func readProof(r *http.Request) (entities.ProofUpload, error) {
	file, header, err := r.FormFile(fieldScreenshot)
	if errors.Is(err, http.ErrMissingFile) {
		return entities.ProofUpload{}, nil
	}
	if err != nil {
		return entities.ProofUpload{}, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return entities.ProofUpload{}, err
	}

	return entities.ProofUpload{
		FileName: header.Filename,
		Content:  content,
	}, nil
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
