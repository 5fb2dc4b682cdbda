package service

import (
	"time"

	"github.com/snc99/Pay-Wise-BE/internal/apperr"
)

// parseEventDate accepts "2006-01-02" or RFC3339 and rejects future dates.
func parseEventDate(raw, field string) (time.Time, error) {
	var t time.Time
	var err error
	if t, err = time.Parse(dayDateFormat, raw); err != nil {
		if t, err = time.Parse(time.RFC3339, raw); err != nil {
			return time.Time{}, apperr.WithField(apperr.Validation, "Validasi gagal", field, "Format tanggal tidak valid.")
		}
	}
	if t.After(time.Now()) {
		return time.Time{}, apperr.WithField(apperr.Validation, "Validasi gagal", field, "Tanggal tidak boleh lebih dari sekarang.")
	}
	return t, nil
}
