package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/MRKIKSY/backendpaystacktestmode/internal/auth"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/service"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeText(w, http.StatusBadRequest, msgBadBody)
		return
	}

	token, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		slog.InfoContext(r.Context(), "admin login rejected", "username", req.Username)
		writeText(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "issue admin token", "err", err)
		writeText(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
