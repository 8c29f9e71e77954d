package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/MRKIKSY/backendpaystacktestmode/internal/service"
)

const (
	msgPaymentOK     = "Payment successful"
	msgPaymentFailed = "Payment failed"
	msgPaymentError  = "An error occurred while verifying payment"
)

type PaymentHandler struct {
	svc service.PaymentService
}

func NewPaymentHandler(svc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reference string `json:"reference"`
	}
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: msgPaymentFailed})
		return
	}

	res, err := h.svc.Verify(r.Context(), req.Reference)
	switch {
	case errors.Is(err, service.ErrEmptyReference):
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: msgPaymentFailed})
	case err != nil:
		slog.ErrorContext(r.Context(), "verify payment", "reference", req.Reference, "err", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: msgPaymentError})
	case res.Successful:
		writeJSON(w, http.StatusOK, messageResponse{Message: msgPaymentOK, Data: res.Payload})
	default:
		slog.InfoContext(r.Context(), "payment not successful", "reference", req.Reference)
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: msgPaymentFailed})
	}
}
