package handler

import (
	"net/http"
)

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type meResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	IsOwner  bool   `json:"isOwner"`
	IsTenant bool   `json:"isTenant"`
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, meResponse{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		IsOwner:  u.IsOwner,
		IsTenant: u.IsTenant,
	})
}
