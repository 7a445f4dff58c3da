package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"personalsite/internal/auth"
	"personalsite/internal/repository"
	"personalsite/internal/service"
	"personalsite/internal/utils"
)

type AdminHandler struct {
	Admin        *service.AdminService
	Appointments *service.AppointmentService
	Payments     *service.PaymentService
}

func NewAdminHandler(admin *service.AdminService, appointments *service.AppointmentService, payments *service.PaymentService) *AdminHandler {
	return &AdminHandler{Admin: admin, Appointments: appointments, Payments: payments}
}

// ListAppointments answers GET /admin/appointments with optional status and
// date range filters.
func (h *AdminHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	page, limit := utils.ParsePagination(r)
	q := r.URL.Query()
	filter := repository.AppointmentFilter{
		Status:    q.Get("status"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	}

	list, err := h.Appointments.AdminList(filter, page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *AdminHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	page, limit := utils.ParsePagination(r)
	q := r.URL.Query()
	filter := repository.PaymentFilter{
		Status:    q.Get("status"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	}

	list, err := h.Payments.AdminList(filter, page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// DeleteAppointment removes an appointment entirely, unlike the user-facing
// cancel which only transitions its status.
func (h *AdminHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Not authorized to access this route", http.StatusUnauthorized)
		return
	}

	if err := h.Appointments.Delete(claims, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Appointment deleted")
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Admin.Stats()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
