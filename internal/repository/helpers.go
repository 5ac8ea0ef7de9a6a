package repository

import (
	"fmt"
	"time"

	"github.com/alexanderramin/diarist/internal/domain"
)

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// parseDateColumn parses a YYYY-MM-DD column, naming the column on failure.
func parseDateColumn(column, value string) (domain.Date, error) {
	d, err := domain.ParseDate(value)
	if err != nil {
		return domain.Date{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return d, nil
}
