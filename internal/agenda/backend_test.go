package agenda

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"medoffice-agenda/internal/models"
)

// fakeBackend is an in-memory stand-in for the REST collaborator. It
// records call counts so tests can assert on the exact network traffic
// an operation produces.
type fakeBackend struct {
	mu           sync.Mutex
	nextID       int64
	appointments map[int64]models.Appointment
	patients     map[int64]models.Patient

	listRangeCalls int
	listAllCalls   int
	listDateCalls  int
	createCalls    int
	updateCalls    int
	deleteCalls    int
	statusCalls    int

	failCreateOn map[models.Date]bool
	failDeleteID map[int64]bool
	listRangeErr error

	// onListRange, when set, runs before a range listing resolves. Used
	// to interleave loads in the stale-response test.
	onListRange func()
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		nextID:       1,
		appointments: make(map[int64]models.Appointment),
		patients:     make(map[int64]models.Patient),
		failCreateOn: make(map[models.Date]bool),
		failDeleteID: make(map[int64]bool),
	}
}

func (f *fakeBackend) addPatient(p models.Patient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patients[p.ID] = p
}

func (f *fakeBackend) addAppointment(a models.Appointment) models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a.ID == 0 {
		a.ID = f.nextID
		f.nextID++
	} else if a.ID >= f.nextID {
		f.nextID = a.ID + 1
	}
	f.appointments[a.ID] = a
	return a
}

func (f *fakeBackend) appointmentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.appointments)
}

func (f *fakeBackend) ListRange(ctx context.Context, from, to models.Date) ([]models.Appointment, error) {
	if f.onListRange != nil {
		hook := f.onListRange
		f.onListRange = nil
		hook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listRangeCalls++
	if f.listRangeErr != nil {
		return nil, f.listRangeErr
	}
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.Date.Before(from) || a.Date.After(to) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeBackend) ListAll(ctx context.Context) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listAllCalls++
	out := make([]models.Appointment, 0, len(f.appointments))
	for _, a := range f.appointments {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeBackend) ListByDate(ctx context.Context, date models.Date) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listDateCalls++
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeBackend) Get(ctx context.Context, id int64) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appointments[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (f *fakeBackend) Create(ctx context.Context, appointment models.Appointment) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.failCreateOn[appointment.Date] {
		return nil, fmt.Errorf("backend rejected create on %s", appointment.Date)
	}
	appointment.ID = f.nextID
	f.nextID++
	if appointment.Status == "" {
		appointment.Status = models.StatusPlanned
	}
	f.appointments[appointment.ID] = appointment
	return &appointment, nil
}

func (f *fakeBackend) Update(ctx context.Context, appointment models.Appointment) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if _, ok := f.appointments[appointment.ID]; !ok {
		return nil, errors.New("appointment not found")
	}
	f.appointments[appointment.ID] = appointment
	return &appointment, nil
}

func (f *fakeBackend) UpdateStatus(ctx context.Context, id int64, action models.StatusAction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	a, ok := f.appointments[id]
	if !ok {
		return errors.New("appointment not found")
	}
	switch action {
	case models.ActionConfirm:
		a.Status = models.StatusConfirmed
	case models.ActionCancel:
		a.Status = models.StatusCancelled
	case models.ActionComplete:
		a.Status = models.StatusDone
	}
	f.appointments[id] = a
	return nil
}

func (f *fakeBackend) Reschedule(ctx context.Context, id int64, date models.Date, start models.ClockTime) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appointments[id]
	if !ok {
		return errors.New("appointment not found")
	}
	duration := a.EndTime - a.StartTime
	a.Date = date
	a.StartTime = start
	a.EndTime = start + duration
	a.Status = models.StatusRescheduled
	f.appointments[id] = a
	return nil
}

func (f *fakeBackend) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.failDeleteID[id] {
		return fmt.Errorf("backend rejected delete of %d", id)
	}
	delete(f.appointments, id)
	return nil
}

func (f *fakeBackend) GetPatient(ctx context.Context, id int64) (*models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.patients[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeBackend) UpdatePatient(ctx context.Context, patient models.Patient) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.patients[patient.ID]; !ok {
		return errors.New("patient not found")
	}
	f.patients[patient.ID] = patient
	return nil
}
