package services

import (
	"context"
	"time"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	"github.com/CoderFake/healthcare-system/internal/domain/repositories"
	"github.com/CoderFake/healthcare-system/pkg/utils"
)

// DashboardStats is the summary shown on the home screen
type DashboardStats struct {
	Date              string                        `json:"date"`
	Doctors           int64                         `json:"doctors"`
	Patients          int64                         `json:"patients"`
	TodayAppointments int64                         `json:"today_appointments"`
	WeekAppointments  int64                         `json:"week_appointments"`
	Today             []*entities.AppointmentDetail `json:"today"`
}

// DashboardService aggregates counts across repositories
type DashboardService struct {
	store repositories.Registry
	now   func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(store repositories.Registry) *DashboardService {
	return &DashboardService{store: store, now: time.Now}
}

// Stats counts doctors, patients, today's appointments and those of the next
// seven days, and lists today's appointments by time.
func (s *DashboardService) Stats(ctx context.Context) (_ *DashboardStats, err error) {
	ctx, done := track(ctx, "DashboardService.Stats")
	defer done(&err)

	now := s.now()
	today := now.Format(utils.DateLayout)
	weekEnd := now.AddDate(0, 0, 6).Format(utils.DateLayout)

	stats := &DashboardStats{Date: today}
	if stats.Doctors, err = s.store.Doctors().Count(ctx); err != nil {
		return nil, err
	}
	if stats.Patients, err = s.store.Patients().Count(ctx); err != nil {
		return nil, err
	}
	if stats.WeekAppointments, err = s.store.Appointments().CountBetween(ctx, today, weekEnd); err != nil {
		return nil, err
	}
	if stats.Today, err = s.store.Appointments().ListByDate(ctx, today); err != nil {
		return nil, err
	}
	stats.TodayAppointments = int64(len(stats.Today))
	return stats, nil
}
