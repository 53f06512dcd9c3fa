package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	bookUC         *booking.BookReservation
	changeStatusUC *booking.ChangeReservationStatus
	listByDateUC   *booking.ListReservationsByDate
	listByMonthUC  *booking.ListReservationsByMonth
}

func NewReservationHandler(
	bookUC *booking.BookReservation,
	changeStatusUC *booking.ChangeReservationStatus,
	listByDateUC *booking.ListReservationsByDate,
	listByMonthUC *booking.ListReservationsByMonth,
) *ReservationHandler {
	return &ReservationHandler{
		bookUC:         bookUC,
		changeStatusUC: changeStatusUC,
		listByDateUC:   listByDateUC,
		listByMonthUC:  listByMonthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReservationRequest struct {
	StaffID     uint   `json:"staff_id"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceIDs  []uint `json:"service_ids" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE (staff dashboard)
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	// Cashiers can book on behalf of another staff member.
	targetStaff := req.StaffID
	if targetStaff == 0 {
		targetStaff = staffID
	}

	reservation, err := h.bookUC.Execute(c.Request.Context(), booking.BookReservationInput{
		SalonID:      salonID,
		StaffID:      targetStaff,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		ServiceIDs:   req.ServiceIDs,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
		ActorStaffID: &staffID,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(201, reservation)
}

// ======================================================
// CHANGE STATUS
// ======================================================

func (h *ReservationHandler) ChangeStatus(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_reservation_id", "Invalid reservation id.")
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	reservation, err := h.changeStatusUC.Execute(c.Request.Context(), booking.ChangeStatusInput{
		SalonID:       salonID,
		ReservationID: uint(id),
		NewStatus:     req.Status,
		ActorStaffID:  staffID,
	})
	if err != nil {
		mapStatusError(c, err)
		return
	}

	c.JSON(200, reservation)
}

// ======================================================
// LIST
// ======================================================

func (h *ReservationHandler) ListByDate(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	reservations, err := h.listByDateUC.Execute(c.Request.Context(), staffID, salonID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_reservations", "Could not list reservations.")
		return
	}

	c.JSON(200, reservations)
}

func (h *ReservationHandler) ListByMonth(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Year and month are required.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	reservations, err := h.listByMonthUC.Execute(c.Request.Context(), staffID, salonID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_reservations", "Could not list reservations.")
		return
	}

	c.JSON(200, gin.H{
		"year":         year,
		"month":        month,
		"reservations": reservations,
	})
}

// ======================================================
// ERROR MAPPING
// ======================================================

func mapBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, httperr.CodeSlotUnavailable):
		httperr.Conflict(c, httperr.CodeSlotUnavailable, "The requested slot is no longer available.")
	case httperr.IsBusiness(err, httperr.CodePastDate):
		httperr.BadRequest(c, httperr.CodePastDate, "The requested time is in the past.")
	case httperr.IsBusiness(err, httperr.CodeTooSoon):
		httperr.BadRequest(c, httperr.CodeTooSoon, "The requested time is too soon.")
	case httperr.IsBusiness(err, httperr.CodeEmptyServices):
		httperr.BadRequest(c, httperr.CodeEmptyServices, "At least one service is required.")
	case httperr.IsBusiness(err, httperr.CodeServiceNotFound):
		httperr.BadRequest(c, httperr.CodeServiceNotFound, "Unknown or inactive service.")
	case httperr.IsBusiness(err, httperr.CodeStaffNotFound):
		httperr.BadRequest(c, httperr.CodeStaffNotFound, "Unknown staff member.")
	case httperr.IsBusiness(err, httperr.CodeStaffUnavailable):
		httperr.BadRequest(c, httperr.CodeStaffUnavailable, "Staff member does not work that day.")
	case httperr.IsBusiness(err, httperr.CodeOutsideWorkingHours):
		httperr.BadRequest(c, httperr.CodeOutsideWorkingHours, "Outside working hours.")
	case httperr.IsBusiness(err, httperr.CodeInvalidDateOrTime):
		httperr.BadRequest(c, httperr.CodeInvalidDateOrTime, "Invalid date or time.")
	default:
		httperr.Internal(c, "failed_to_create_reservation", "Could not create the reservation.")
	}
}

func mapStatusError(c *gin.Context, err error) {
	switch {
	case httperr.IsInvalidTransition(err):
		httperr.Conflict(c, httperr.CodeInvalidTransition, err.Error())
	case httperr.IsBusiness(err, httperr.CodeInvalidState):
		httperr.Conflict(c, httperr.CodeInvalidState, "The reservation changed concurrently, reload and retry.")
	case httperr.IsBusiness(err, "reservation_not_found"):
		httperr.NotFound(c, "reservation_not_found", "Reservation not found.")
	default:
		httperr.Internal(c, "failed_to_change_status", "Could not change the reservation status.")
	}
}
