package entities

type AdminStats struct {
	TotalUsers         int64                 `json:"totalUsers"`
	TotalAppointments  int64                 `json:"totalAppointments"`
	TotalPayments      int64                 `json:"totalPayments"`
	RecentAppointments []AppointmentResponse `json:"recentAppointments"`
}
