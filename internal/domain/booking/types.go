package booking

import "time"

// DateOption is one bookable day offered to the client. DayOffset and
// Weekday carry enough for the front end to render "today / tomorrow /
// weekday" labels; the text itself is not our concern.
type DateOption struct {
	Date      time.Time `json:"date"`
	DayOffset int       `json:"day_offset"`
	Weekday   int       `json:"weekday"` // 0 = Monday .. 6 = Sunday
}

// ClaimInput carries one validated reservation request.
type ClaimInput struct {
	UserID    int64
	Username  string
	ServiceID uint
	Master    string
	Date      time.Time // midnight, shop timezone
	Time      string    // "HH:MM", aligned to the slot grid
}
