package service

import (
	"personalsite/internal/entities"
	"personalsite/internal/repository"
)

const recentAppointmentsLimit = 10

type AdminService struct {
	repo *repository.AdminRepository
}

func NewAdminService(repo *repository.AdminRepository) *AdminService {
	return &AdminService{repo: repo}
}

func (s *AdminService) Stats() (*entities.AdminStats, error) {
	users, appointments, payments, err := s.repo.Counts()
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.RecentAppointments(recentAppointmentsLimit)
	if err != nil {
		return nil, err
	}

	stats := &entities.AdminStats{
		TotalUsers:         users,
		TotalAppointments:  appointments,
		TotalPayments:      payments,
		RecentAppointments: make([]entities.AppointmentResponse, 0, len(recent)),
	}
	for i := range recent {
		stats.RecentAppointments = append(stats.RecentAppointments, *appointmentResponse(&recent[i]))
	}
	return stats, nil
}
