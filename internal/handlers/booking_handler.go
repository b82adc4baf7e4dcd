package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/barberflow/booking-api/internal/httperr"
	"github.com/barberflow/booking-api/internal/httpresp"
	"github.com/barberflow/booking-api/internal/middleware"
	ucBooking "github.com/barberflow/booking-api/internal/usecase/booking"
)

type BookingHandler struct {
	reserve  *ucBooking.Reserve
	cancel   *ucBooking.Cancel
	listings *ucBooking.Listings
	loc      *time.Location
}

func NewBookingHandler(
	reserve *ucBooking.Reserve,
	cancel *ucBooking.Cancel,
	listings *ucBooking.Listings,
	loc *time.Location,
) *BookingHandler {
	return &BookingHandler{
		reserve:  reserve,
		cancel:   cancel,
		listings: listings,
		loc:      loc,
	}
}

// --------- Requests ---------

type ReserveRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	Master    string `json:"master" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:MM
}

// --------- Handlers ---------

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(int64)
	username := c.GetString(middleware.ContextUsername)

	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	date, err := parseDate(req.Date, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	booking, err := h.reserve.Execute(c.Request.Context(), ucBooking.ReserveInput{
		UserID:    userID,
		Username:  username,
		ServiceID: req.ServiceID,
		Master:    req.Master,
		Date:      date,
		Time:      req.Time,
	})

	if err != nil {
		switch {
		case httperr.IsBusiness(err, "slot_taken"):
			// The slot was valid when listed but another claim won the
			// race. The client should re-fetch slots and pick again.
			httperr.Conflict(c, "slot_taken", "This slot was just taken, please pick another.")
		case httperr.IsBusiness(err, "master_not_found"):
			httperr.NotFound(c, "master_not_found", "Unknown master.")
		case httperr.IsBusiness(err, "service_not_found"):
			httperr.NotFound(c, "service_not_found", "Unknown service.")
		case httperr.IsBusiness(err, "invalid_slot"):
			httperr.BadRequest(c, "invalid_slot", "This time is not bookable for the selected master and date.")
		default:
			httperr.Internal(c, "failed_to_create_booking", "Could not create the booking.")
		}
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) My(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(int64)

	bookings, err := h.listings.MyBookings(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not load bookings.")
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(int64)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	removed, err := h.cancel.Execute(c.Request.Context(), uint(id), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_cancel_booking", "Could not cancel the booking.")
		return
	}

	// Not-found and not-owned produce the same answer on purpose.
	if !removed {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
