package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"sitework-backend/internal/security"
)

type AuthHandler struct {
	tokens security.TokenManager
}

func NewAuthHandler(tokens security.TokenManager) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

type tokenRequest struct {
	APIKey     string `json:"api_key"`
	ClientName string `json:"client_name"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Token exchanges the deployment API key for a bearer token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, "invalid request body", http.StatusBadRequest)
		return
	}

	req.ClientName = strings.TrimSpace(req.ClientName)
	if req.ClientName == "" {
		req.ClientName = "default"
	}

	token, err := h.tokens.ExchangeAPIKey(req.APIKey, req.ClientName)
	if err != nil {
		writeErrorMsg(w, "invalid api key", http.StatusUnauthorized)
		return
	}
	writeData(w, tokenResponse{Token: token}, http.StatusOK)
}
