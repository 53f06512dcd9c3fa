package booking

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// stubRepo implements both repository contracts in memory so the use
// cases can be exercised without a database.
type stubRepo struct {
	salon    *models.Salon
	staff    *models.Staff
	services []models.Service
	client   *models.Client
	windows  []models.AvailabilityWindow
	busy     []domain.Interval

	reservations map[uint]*models.Reservation

	events   []models.ScoreEvent
	snapshot *models.ScoreSnapshot

	created      *models.Reservation
	createErr    error
	lastBlocking []domain.Status

	updateCalls int
	updatedEv   *models.ScoreEvent
	updateErr   error
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		salon: &models.Salon{
			ID:                     1,
			Name:                   "Studio Aurora",
			Slug:                   "studio-aurora",
			Timezone:               "UTC",
			MinAdvanceMinutes:      120,
			SlotGranularityMinutes: 15,
		},
		staff: &models.Staff{ID: 7, SalonID: 1, Name: "Marina"},
		services: []models.Service{
			{ID: 3, SalonID: 1, Name: "Haircut", DurationMin: 30, Price: 50, Active: true},
		},
		reservations: map[uint]*models.Reservation{},
	}
}

func (s *stubRepo) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	if s.salon == nil || s.salon.ID != id {
		return nil, errors.New("salon not found")
	}
	return s.salon, nil
}

func (s *stubRepo) GetSalonBySlug(_ context.Context, slug string) (*models.Salon, error) {
	if s.salon == nil || s.salon.Slug != slug {
		return nil, errors.New("salon not found")
	}
	return s.salon, nil
}

func (s *stubRepo) GetStaff(_ context.Context, salonID, staffID uint) (*models.Staff, error) {
	if s.staff == nil || s.staff.ID != staffID || s.staff.SalonID != salonID {
		return nil, errors.New("staff not found")
	}
	return s.staff, nil
}

func (s *stubRepo) ListServices(_ context.Context, salonID uint, ids []uint) ([]models.Service, error) {
	out := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		found := false
		for _, svc := range s.services {
			if svc.ID == id && svc.SalonID == salonID && svc.Active {
				out = append(out, svc)
				found = true
				break
			}
		}
		if !found {
			return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
		}
	}
	return out, nil
}

func (s *stubRepo) GetOrCreateClient(_ context.Context, salonID uint, name, phone, email string) (*models.Client, error) {
	if s.client == nil {
		s.client = &models.Client{ID: 42, SalonID: salonID, Name: name, Phone: phone, Email: email}
	}
	return s.client, nil
}

func (s *stubRepo) ListWindowsForDate(_ context.Context, _ uint, _ time.Time) ([]models.AvailabilityWindow, error) {
	return s.windows, nil
}

func (s *stubRepo) ReplaceRecurringWindows(_ context.Context, _ uint, windows []models.AvailabilityWindow) error {
	s.windows = windows
	return nil
}

func (s *stubRepo) ListWindowsForStaff(_ context.Context, _ uint) ([]models.AvailabilityWindow, error) {
	return s.windows, nil
}

func (s *stubRepo) ListBusyIntervals(
	_ context.Context,
	_ uint,
	_ time.Time,
	_ time.Time,
	statuses []domain.Status,
) ([]domain.Interval, error) {
	s.lastBlocking = statuses
	return s.busy, nil
}

func (s *stubRepo) CreateReservation(_ context.Context, r *models.Reservation, blocking []domain.Status) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.lastBlocking = blocking
	r.ID = 101
	s.created = r
	s.reservations[r.ID] = r
	return nil
}

func (s *stubRepo) GetReservationForSalon(_ context.Context, reservationID, salonID uint) (*models.Reservation, error) {
	r, ok := s.reservations[reservationID]
	if !ok || r.SalonID != salonID {
		return nil, errors.New("reservation not found")
	}
	return r, nil
}

func (s *stubRepo) UpdateReservationStatus(
	_ context.Context,
	_ *models.Reservation,
	_ domain.Status,
	_ bool,
	ev *models.ScoreEvent,
) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updateCalls++
	s.updatedEv = ev
	if ev != nil {
		s.events = append(s.events, *ev)
	}
	return nil
}

func (s *stubRepo) ListReservationsForPeriod(_ context.Context, _ uint, _, _ time.Time) ([]models.Reservation, error) {
	out := make([]models.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		out = append(out, *r)
	}
	return out, nil
}

func (s *stubRepo) AppendScoreEvent(_ context.Context, ev *models.ScoreEvent) error {
	s.events = append(s.events, *ev)
	return nil
}

func (s *stubRepo) ListScoreEvents(_ context.Context, clientID uint) ([]models.ScoreEvent, error) {
	out := make([]models.ScoreEvent, 0, len(s.events))
	for _, ev := range s.events {
		if ev.ClientID == clientID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (s *stubRepo) GetScoreSnapshot(_ context.Context, clientID uint) (*models.ScoreSnapshot, error) {
	if s.snapshot == nil {
		return &models.ScoreSnapshot{ClientID: clientID}, nil
	}
	return s.snapshot, nil
}

func (s *stubRepo) SaveScoreSnapshot(_ context.Context, snap *models.ScoreSnapshot) error {
	s.snapshot = snap
	return nil
}
