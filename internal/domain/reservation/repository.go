package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	GetSalonBySlug(
		ctx context.Context,
		slug string,
	) (*models.Salon, error)

	// -------- Staff --------
	GetStaff(
		ctx context.Context,
		salonID uint,
		staffID uint,
	) (*models.Staff, error)

	// -------- Services --------
	// ListServices returns active services in the order of ids; any id
	// missing from the salon fails the lookup.
	ListServices(
		ctx context.Context,
		salonID uint,
		ids []uint,
	) ([]models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		salonID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Availability --------
	// ListWindowsForDate returns the staff member's recurring rows for the
	// date's weekday plus every exception row for the exact date.
	ListWindowsForDate(
		ctx context.Context,
		staffID uint,
		date time.Time,
	) ([]models.AvailabilityWindow, error)

	ReplaceRecurringWindows(
		ctx context.Context,
		staffID uint,
		windows []models.AvailabilityWindow,
	) error

	ListWindowsForStaff(
		ctx context.Context,
		staffID uint,
	) ([]models.AvailabilityWindow, error)

	// ListBusyIntervals returns the [start, end) intervals of reservations
	// in the given statuses for the staff member within [dayStart, dayEnd).
	ListBusyIntervals(
		ctx context.Context,
		staffID uint,
		dayStart time.Time,
		dayEnd time.Time,
		statuses []Status,
	) ([]Interval, error)

	// -------- Reservation (create / conflict) --------
	// CreateReservation runs the conflict check and the insert as one
	// atomic unit; a losing concurrent writer gets ErrSlotUnavailable.
	CreateReservation(
		ctx context.Context,
		r *models.Reservation,
		blocking []Status,
	) error

	// -------- Reservation (state change) --------
	GetReservationForSalon(
		ctx context.Context,
		reservationID uint,
		salonID uint,
	) (*models.Reservation, error)

	// UpdateReservationStatus persists an already-applied transition with an
	// optimistic guard on the previous status and latch, and, when ev is
	// non-nil, appends the trust ledger entry and refreshes the score
	// snapshot in the same transaction.
	UpdateReservationStatus(
		ctx context.Context,
		r *models.Reservation,
		from Status,
		wasLateMarked bool,
		ev *models.ScoreEvent,
	) error

	// -------- Listings --------
	ListReservationsForPeriod(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Reservation, error)
}
