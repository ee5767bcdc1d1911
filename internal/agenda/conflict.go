package agenda

import (
	"context"
	"fmt"

	"medoffice-agenda/internal/models"
)

// dayLister is the slice of the backend client the checker needs. The
// lookup is day-scoped on purpose: recurring candidates land on dates
// outside the loaded week.
type dayLister interface {
	ListByDate(ctx context.Context, date models.Date) ([]models.Appointment, error)
}

// ConflictChecker decides whether a candidate time range collides with an
// existing appointment on the same date.
type ConflictChecker struct {
	client dayLister
}

// NewConflictChecker creates a checker backed by the given client.
func NewConflictChecker(client dayLister) *ConflictChecker {
	return &ConflictChecker{client: client}
}

// Overlaps implements the half-open interval test: [s1,e1) and [s2,e2)
// conflict iff s1 < e2 && e1 > s2. Touching boundaries do not conflict.
func Overlaps(s1, e1, s2, e2 models.ClockTime) bool {
	return s1 < e2 && e1 > s2
}

// HasConflict reports whether any non-cancelled appointment on the given
// date overlaps [start,end). excludeID skips one appointment (the one
// being edited); pass 0 to exclude nothing.
func (c *ConflictChecker) HasConflict(ctx context.Context, date models.Date, start, end models.ClockTime, excludeID int64) (bool, error) {
	existing, err := c.client.ListByDate(ctx, date)
	if err != nil {
		return false, fmt.Errorf("check conflicts on %s: %w", date, err)
	}

	for i := range existing {
		other := &existing[i]
		if excludeID != 0 && other.ID == excludeID {
			continue
		}
		if other.Status == models.StatusCancelled {
			continue
		}
		if Overlaps(start, end, other.StartTime, other.EndTime) {
			return true, nil
		}
	}
	return false, nil
}
