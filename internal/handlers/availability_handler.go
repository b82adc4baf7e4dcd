package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/barberflow/booking-api/internal/httperr"
	ucBooking "github.com/barberflow/booking-api/internal/usecase/booking"
)

type AvailabilityHandler struct {
	availability *ucBooking.Availability
	loc          *time.Location
}

func NewAvailabilityHandler(availability *ucBooking.Availability, loc *time.Location) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability, loc: loc}
}

type DateResponse struct {
	Date      string `json:"date"` // YYYY-MM-DD
	DayOffset int    `json:"day_offset"`
	Weekday   int    `json:"weekday"` // 0 = Monday .. 6 = Sunday
}

func (h *AvailabilityHandler) Dates(c *gin.Context) {
	master := c.Param("master")

	options, err := h.availability.Dates(c.Request.Context(), master)
	if err != nil {
		if httperr.IsBusiness(err, "master_not_found") {
			httperr.NotFound(c, "master_not_found", "Unknown master.")
			return
		}
		httperr.Internal(c, "availability_failed", "Could not compute dates.")
		return
	}

	dates := make([]DateResponse, 0, len(options))
	for _, opt := range options {
		dates = append(dates, DateResponse{
			Date:      opt.Date.Format("2006-01-02"),
			DayOffset: opt.DayOffset,
			Weekday:   opt.Weekday,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"master": master,
		"dates":  dates,
	})
}

func (h *AvailabilityHandler) Slots(c *gin.Context) {
	master := c.Param("master")

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

	slots, err := h.availability.Slots(c.Request.Context(), master, date)
	if err != nil {
		if httperr.IsBusiness(err, "master_not_found") {
			httperr.NotFound(c, "master_not_found", "Unknown master.")
			return
		}
		httperr.Internal(c, "availability_failed", "Could not compute slots.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"master": master,
		"date":   dateStr,
		"slots":  slots,
	})
}
