package dto

import (
	"fmt"
	"time"
)

// DateLayout formato de fechas en requests y responses.
const DateLayout = "2006-01-02"

// ParseDay interpreta YYYY-MM-DD como medianoche local. Vacío devuelve el día de now.
func ParseDay(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	d, err := time.ParseInLocation(DateLayout, s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return d, nil
}

// IsFutureDay indica si day cae después del día de now.
func IsFutureDay(day, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.After(today.Add(24*time.Hour - time.Nanosecond))
}

// FormatDay devuelve YYYY-MM-DD (vacío para la fecha cero).
func FormatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseRange interpreta un rango YYYY-MM-DD inclusivo; cualquiera de los extremos puede ir vacío
// (sin límite). to se extiende hasta el final del día.
func ParseRange(from, to string, now time.Time) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if from != "" {
		d, err := time.ParseInLocation(DateLayout, from, now.Location())
		if err != nil {
			return nil, nil, fmt.Errorf("from inválido: %w", err)
		}
		start = &d
	}
	if to != "" {
		d, err := time.ParseInLocation(DateLayout, to, now.Location())
		if err != nil {
			return nil, nil, fmt.Errorf("to inválido: %w", err)
		}
		d = d.Add(24*time.Hour - time.Nanosecond)
		end = &d
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, nil, fmt.Errorf("from no puede ser posterior a to")
	}
	return start, end, nil
}
