package service

import (
	"fmt"
	"time"

	"personalsite/internal/entities"
	apperrors "personalsite/internal/errors"
	"personalsite/internal/schedule"
)

// nextDayLookahead bounds the forward search for the next free day.
const nextDayLookahead = 30

// BookedTimesLister is the repository capability the availability engine
// consumes: the HH:MM labels of every non-cancelled booking on a date.
type BookedTimesLister interface {
	ListBookedTimes(date time.Time) ([]string, error)
}

type AvailabilityService struct {
	hours schedule.BusinessHours
	repo  BookedTimesLister
}

func NewAvailabilityService(hours schedule.BusinessHours, repo BookedTimesLister) *AvailabilityService {
	return &AvailabilityService{hours: hours, repo: repo}
}

// FreeSlots returns the candidate slots for date with booked ones removed,
// order preserved. Closed days return empty without touching the repository.
func (s *AvailabilityService) FreeSlots(date time.Time) ([]string, error) {
	candidates := s.hours.SlotsForDay(date)
	if len(candidates) == 0 {
		return nil, nil
	}

	booked, err := s.repo.ListBookedTimes(date)
	if err != nil {
		return nil, fmt.Errorf("error listing booked times for %s: %w", date.Format(schedule.DateLayout), err)
	}

	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[schedule.NormalizeTime(t)] = struct{}{}
	}

	var free []string
	for _, slot := range candidates {
		if _, ok := taken[slot]; !ok {
			free = append(free, slot)
		}
	}
	return free, nil
}

// NextAvailableDay walks forward from the day after `after`, at most
// nextDayLookahead days, and returns the first date with a free slot. Days are
// checked in order so the earliest qualifying date wins; closed days are
// skipped without a repository query. A nil date means nothing was found
// within the window, which is a valid outcome.
func (s *AvailabilityService) NextAvailableDay(after time.Time) (*time.Time, error) {
	for i := 1; i <= nextDayLookahead; i++ {
		day := after.AddDate(0, 0, i)
		if !s.hours.IsWorkingDay(day) {
			continue
		}
		free, err := s.FreeSlots(day)
		if err != nil {
			return nil, err
		}
		if len(free) > 0 {
			return &day, nil
		}
	}
	return nil, nil
}

// CheckAvailability is the availability query entry point. A missing or
// malformed date is invalid input; an empty result is not.
func (s *AvailabilityService) CheckAvailability(dateStr string) (*entities.AvailabilityResult, error) {
	if dateStr == "" {
		return nil, apperrors.ErrInvalidInput("date is required")
	}
	date, err := s.hours.ParseDate(dateStr)
	if err != nil {
		return nil, apperrors.ErrInvalidInput("invalid date, expected YYYY-MM-DD")
	}

	free, err := s.FreeSlots(date)
	if err != nil {
		return nil, err
	}

	result := &entities.AvailabilityResult{
		Date:           date.Format(schedule.DateLayout),
		AvailableSlots: free,
	}
	if result.AvailableSlots == nil {
		result.AvailableSlots = []string{}
	}

	if len(free) == 0 {
		next, err := s.NextAvailableDay(date)
		if err != nil {
			return nil, err
		}
		if next != nil {
			formatted := next.Format(schedule.DateLayout)
			result.NextAvailableDay = &formatted
		}
	}
	return result, nil
}
