package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"personalsite/internal/auth"
	"personalsite/internal/entities"
	"personalsite/internal/service"
)

type PaymentHandler struct {
	Service *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	var req entities.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	payment, err := h.Service.Create(claims, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, payment)
}

// Confirm re-checks the payment intent with Stripe and settles the local
// payment and appointment records.
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	payment, err := h.Service.Confirm(claims, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	payment, err := h.Service.Get(claims, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}
