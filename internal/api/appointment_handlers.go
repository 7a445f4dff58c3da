package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"personalsite/internal/auth"
	"personalsite/internal/entities"
	"personalsite/internal/service"
)

type AppointmentHandler struct {
	Service *service.AppointmentService
}

func NewAppointmentHandler(svc *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Service: svc}
}

// CheckAvailability answers GET /appointments/availability?date=YYYY-MM-DD.
func (h *AppointmentHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.CheckAvailability(r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	var req entities.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	appt, err := h.Service.Create(claims, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, appt)
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	appts, err := h.Service.ListByUser(claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"appointments": appts})
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	appt, err := h.Service.Get(claims, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, appt)
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	var req entities.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	appt, err := h.Service.Update(claims, mux.Vars(r)["id"], req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, appt)
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	appt, err := h.Service.Cancel(claims, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, appt)
}
