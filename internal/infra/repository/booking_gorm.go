package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/trust"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type BookingGormRepository struct {
	db       *gorm.DB
	trustCfg trust.Config
}

func NewBookingGormRepository(db *gorm.DB, trustCfg trust.Config) *BookingGormRepository {
	return &BookingGormRepository{db: db, trustCfg: trustCfg}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *BookingGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *BookingGormRepository) GetSalonBySlug(
	ctx context.Context,
	slug string,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&salon).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

func (r *BookingGormRepository) GetStaff(
	ctx context.Context,
	salonID uint,
	staffID uint,
) (*models.Staff, error) {

	var staff models.Staff
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", staffID, salonID).
		First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *BookingGormRepository) ListServices(
	ctx context.Context,
	salonID uint,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND id IN ? AND active = true", salonID, ids).
		Find(&services).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	// Preserve the order the client picked; any unknown id fails the whole
	// lookup instead of silently shortening the reservation.
	ordered := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
		}
		ordered = append(ordered, s)
	}

	return ordered, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) GetOrCreateClient(
	ctx context.Context,
	salonID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND phone = ?", salonID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		SalonID: salonID,
		Name:    name,
		Phone:   phone,
		Email:   email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Availability windows
// --------------------------------------------------

func (r *BookingGormRepository) ListWindowsForDate(
	ctx context.Context,
	staffID uint,
	date time.Time,
) ([]models.AvailabilityWindow, error) {

	weekday := int(date.Weekday())
	day := date.Format("2006-01-02")

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where(
			"staff_id = ? AND ((is_exception = false AND weekday = ?) OR (is_exception = true AND date = ?))",
			staffID, weekday, day,
		).
		Order("id ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}

	return windows, nil
}

func (r *BookingGormRepository) ListWindowsForStaff(
	ctx context.Context,
	staffID uint,
) ([]models.AvailabilityWindow, error) {

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Order("is_exception ASC, weekday ASC, id ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}

	return windows, nil
}

func (r *BookingGormRepository) ReplaceRecurringWindows(
	ctx context.Context,
	staffID uint,
	windows []models.AvailabilityWindow,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("staff_id = ? AND is_exception = false", staffID).
			Delete(&models.AvailabilityWindow{}).Error; err != nil {
			return err
		}

		for i := range windows {
			windows[i].ID = 0
			windows[i].StaffID = staffID
			windows[i].IsException = false
		}
		if len(windows) == 0 {
			return nil
		}
		return tx.Create(&windows).Error
	})
}

// --------------------------------------------------
// Busy intervals
// --------------------------------------------------

func (r *BookingGormRepository) ListBusyIntervals(
	ctx context.Context,
	staffID uint,
	dayStart time.Time,
	dayEnd time.Time,
	statuses []domain.Status,
) ([]domain.Interval, error) {

	var rows []models.Reservation
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"staff_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			staffID, statuses, dayEnd, dayStart,
		).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	intervals := make([]domain.Interval, 0, len(rows))
	for _, row := range rows {
		intervals = append(intervals, domain.Interval{
			Start: row.StartTime,
			End:   row.EndTime,
		})
	}

	return intervals, nil
}

// --------------------------------------------------
// Reservation (create / conflict)
// --------------------------------------------------

// CreateReservation holds the conflict check and the insert in one
// transaction: conflicting rows are locked FOR UPDATE so a concurrent
// writer for an overlapping window blocks and then sees the new row. The
// table's exclusion constraint catches anything that slips through from
// another process, and both paths surface as slot_unavailable.
func (r *BookingGormRepository) CreateReservation(
	ctx context.Context,
	reservation *models.Reservation,
	blocking []domain.Status,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflicts int64
		if err := tx.
			Model(&models.Reservation{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"staff_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				reservation.StaffID, blocking, reservation.EndTime, reservation.StartTime,
			).
			Count(&conflicts).Error; err != nil {
			return err
		}

		if conflicts > 0 {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}

		return tx.Create(reservation).Error
	})

	if err != nil {
		if httperr.IsExclusionConflict(err) {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}
		return err
	}

	return nil
}

// --------------------------------------------------
// Reservation (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetReservationForSalon(
	ctx context.Context,
	reservationID uint,
	salonID uint,
) (*models.Reservation, error) {

	var reservation models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Where("id = ? AND salon_id = ?", reservationID, salonID).
		First(&reservation).Error; err != nil {
		return nil, err
	}

	return &reservation, nil
}

// UpdateReservationStatus writes a transition that was already validated by
// the domain. The UPDATE is guarded by the status and latch the caller read,
// so a concurrent change makes it a no-op and the caller gets invalid_state
// instead of a silently re-applied transition. The trust ledger append and
// the snapshot refresh ride the same transaction.
func (r *BookingGormRepository) UpdateReservationStatus(
	ctx context.Context,
	reservation *models.Reservation,
	from domain.Status,
	wasLateMarked bool,
	ev *models.ScoreEvent,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		res := tx.
			Model(&models.Reservation{}).
			Where(
				"id = ? AND status = ? AND is_late_marked = ?",
				reservation.ID, string(from), wasLateMarked,
			).
			Updates(map[string]any{
				"status":            reservation.Status,
				"is_late_marked":    reservation.IsLateMarked,
				"status_changed_at": reservation.StatusChangedAt,
				"cancelled_at":      reservation.CancelledAt,
				"completed_at":      reservation.CompletedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness(httperr.CodeInvalidState)
		}

		if ev == nil {
			return nil
		}

		if ev.ID == uuid.Nil {
			ev.ID = uuid.New()
		}
		if err := tx.Create(ev).Error; err != nil {
			// Duplicate (reservation, kind): the event is already in the
			// ledger from an earlier attempt, never double-penalize.
			if !httperr.IsUniqueViolation(err) {
				return err
			}
		}

		return r.refreshSnapshot(tx, ev.ClientID)
	})
}

// refreshSnapshot replays the ledger inside the transaction so the cached
// score can never drift from the events it summarizes.
func (r *BookingGormRepository) refreshSnapshot(tx *gorm.DB, clientID uint) error {

	var events []models.ScoreEvent
	if err := tx.
		Where("client_id = ?", clientID).
		Order("created_at ASC, id ASC").
		Find(&events).Error; err != nil {
		return err
	}

	eval := r.trustCfg.Evaluate(events, time.Now())

	snap := models.ScoreSnapshot{
		ClientID:        clientID,
		Score:           eval.Score,
		Level:           string(eval.Level),
		RequiresDeposit: eval.RequiresDeposit,
	}

	return tx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "level", "requires_deposit", "updated_at"}),
		}).
		Create(&snap).Error
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *BookingGormRepository) ListReservationsForPeriod(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Reservation, error) {

	var reservations []models.Reservation

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Where(
			"staff_id = ? AND start_time >= ? AND start_time < ?",
			staffID, start, end,
		).
		Order("start_time ASC").
		Find(&reservations).Error

	if err != nil {
		return nil, err
	}

	return reservations, nil
}

// --------------------------------------------------
// Trust ledger
// --------------------------------------------------

func (r *BookingGormRepository) AppendScoreEvent(
	ctx context.Context,
	ev *models.ScoreEvent,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if ev.ID == uuid.Nil {
			ev.ID = uuid.New()
		}
		if err := tx.Create(ev).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return nil
			}
			return err
		}
		return r.refreshSnapshot(tx, ev.ClientID)
	})
}

func (r *BookingGormRepository) ListScoreEvents(
	ctx context.Context,
	clientID uint,
) ([]models.ScoreEvent, error) {

	var events []models.ScoreEvent
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at ASC, id ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

func (r *BookingGormRepository) GetScoreSnapshot(
	ctx context.Context,
	clientID uint,
) (*models.ScoreSnapshot, error) {

	var snap models.ScoreSnapshot
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		First(&snap).Error; err != nil {
		return nil, err
	}

	return &snap, nil
}

func (r *BookingGormRepository) SaveScoreSnapshot(
	ctx context.Context,
	snap *models.ScoreSnapshot,
) error {

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "level", "requires_deposit", "updated_at"}),
		}).
		Create(snap).Error
}

// Compile-time checks
var _ domain.Repository = (*BookingGormRepository)(nil)
var _ trust.Repository = (*BookingGormRepository)(nil)
