package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/barberflow/booking-api/internal/httperr"
	"github.com/barberflow/booking-api/internal/httpresp"
	ucBooking "github.com/barberflow/booking-api/internal/usecase/booking"
)

// AdminHandler serves the staff day report. Authorization is handled by the
// admin middleware in front of it.
type AdminHandler struct {
	listings *ucBooking.Listings
	loc      *time.Location
}

func NewAdminHandler(listings *ucBooking.Listings, loc *time.Location) *AdminHandler {
	return &AdminHandler{listings: listings, loc: loc}
}

func (h *AdminHandler) BookingsByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	date, err := parseDate(dateStr, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	bookings, err := h.listings.OnDate(c.Request.Context(), date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not load bookings.")
		return
	}

	httpresp.List(c, bookings)
}
