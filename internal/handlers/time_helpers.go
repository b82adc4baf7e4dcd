package handlers

import "time"

func parseDate(dateStr string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, loc)
}
