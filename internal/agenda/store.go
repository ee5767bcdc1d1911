package agenda

import (
	"context"
	"sync"
	"sync/atomic"

	"medoffice-agenda/internal/models"
)

// rangeLister is the slice of the backend client the store needs.
type rangeLister interface {
	ListRange(ctx context.Context, from, to models.Date) ([]models.Appointment, error)
}

// AppointmentStore caches the appointments of the currently displayed
// week. Each load carries a generation number; a response that resolves
// after a newer load has started is discarded instead of clobbering
// fresher data.
type AppointmentStore struct {
	client rangeLister

	generation atomic.Uint64

	mu           sync.Mutex
	window       WeekWindow
	appointments []models.Appointment
}

// NewAppointmentStore creates an empty store backed by the given client.
func NewAppointmentStore(client rangeLister) *AppointmentStore {
	return &AppointmentStore{client: client}
}

// LoadWeek fetches the appointments for the window with a single range
// query and replaces the cached set atomically. On fetch failure the
// previous data is retained and the error surfaced. A stale response
// returns ErrStaleLoad and leaves the cache untouched.
func (s *AppointmentStore) LoadWeek(ctx context.Context, window WeekWindow) ([]models.Appointment, error) {
	generation := s.generation.Add(1)

	appointments, err := s.client.ListRange(ctx, window.Monday(), window.Saturday())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation.Load() {
		return nil, ErrStaleLoad
	}
	s.window = window
	s.appointments = appointments
	return s.snapshot(), nil
}

// Appointments returns a copy of the cached set.
func (s *AppointmentStore) Appointments() []models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Window returns the window of the last applied load.
func (s *AppointmentStore) Window() WeekWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window
}

func (s *AppointmentStore) snapshot() []models.Appointment {
	out := make([]models.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out
}
