package agenda

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"medoffice-agenda/internal/models"
)

// Client is the backend surface the agenda consumes. *api.Client
// satisfies it; tests may substitute their own.
type Client interface {
	ListRange(ctx context.Context, from, to models.Date) ([]models.Appointment, error)
	ListAll(ctx context.Context) ([]models.Appointment, error)
	ListByDate(ctx context.Context, date models.Date) ([]models.Appointment, error)
	Get(ctx context.Context, id int64) (*models.Appointment, error)
	Create(ctx context.Context, appointment models.Appointment) (*models.Appointment, error)
	Update(ctx context.Context, appointment models.Appointment) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, action models.StatusAction) error
	Reschedule(ctx context.Context, id int64, date models.Date, start models.ClockTime) error
	Delete(ctx context.Context, id int64) error
	GetPatient(ctx context.Context, id int64) (*models.Patient, error)
	UpdatePatient(ctx context.Context, patient models.Patient) error
}

// Outcome is the single notification a user action produces: either one
// success or one error message, partial-batch counts included.
type Outcome struct {
	OK      bool
	Message string
}

func success(format string, args ...any) Outcome {
	return Outcome{OK: true, Message: fmt.Sprintf(format, args...)}
}

func failure(format string, args ...any) Outcome {
	return Outcome{OK: false, Message: fmt.Sprintf(format, args...)}
}

// Detail is the data shown when a calendar block is selected.
type Detail struct {
	Appointment       models.Appointment
	PatientName       string
	Pathology         string
	RemainingSessions int
	DateLabel         string
	TimeLabel         string
}

// Agenda orchestrates the weekly calendar: week navigation, the cached
// appointment set, edits with recurring-series reconciliation, and block
// selection. All backend interaction goes through the Client.
type Agenda struct {
	client     Client
	store      *AppointmentStore
	conflicts  *ConflictChecker
	sessions   *SessionsTracker
	reconciler *Reconciler
	logger     *zap.Logger
	now        func() time.Time
	grid       Grid

	window     WeekWindow
	selectedID int64
}

// AgendaOption configures optional agenda behavior.
type AgendaOption func(*Agenda)

// WithGrid overrides the reference calendar grid.
func WithGrid(grid Grid) AgendaOption {
	return func(a *Agenda) { a.grid = grid }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) AgendaOption {
	return func(a *Agenda) {
		a.now = now
		a.reconciler.now = now
	}
}

// New wires an agenda around the given backend client.
func New(client Client, logger *zap.Logger, opts ...AgendaOption) *Agenda {
	conflicts := NewConflictChecker(client)
	sessions := NewSessionsTracker(client)
	a := &Agenda{
		client:     client,
		store:      NewAppointmentStore(client),
		conflicts:  conflicts,
		sessions:   sessions,
		reconciler: NewReconciler(client, conflicts, sessions, logger),
		logger:     logger,
		now:        time.Now,
		grid:       DefaultGrid,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Window returns the currently displayed week.
func (a *Agenda) Window() WeekWindow {
	return a.window
}

// Sessions exposes the patient session tracker, also used by form
// auto-fill and the front desk "add sessions" action.
func (a *Agenda) Sessions() *SessionsTracker {
	return a.sessions
}

// OpenWeek displays the week containing the anchor date.
func (a *Agenda) OpenWeek(ctx context.Context, anchor models.Date) ([]models.Appointment, error) {
	return a.setWindow(ctx, WeekOf(anchor))
}

// NextWeek steps the displayed week forward.
func (a *Agenda) NextWeek(ctx context.Context) ([]models.Appointment, error) {
	return a.setWindow(ctx, a.window.Shift(1))
}

// PreviousWeek steps the displayed week backward.
func (a *Agenda) PreviousWeek(ctx context.Context) ([]models.Appointment, error) {
	return a.setWindow(ctx, a.window.Shift(-1))
}

func (a *Agenda) setWindow(ctx context.Context, window WeekWindow) ([]models.Appointment, error) {
	a.window = window
	a.selectedID = 0
	appointments, err := a.store.LoadWeek(ctx, window)
	if errors.Is(err, ErrStaleLoad) {
		// A newer load owns the display; nothing to surface.
		return a.store.Appointments(), nil
	}
	return appointments, err
}

// Blocks lays the cached week out on the calendar grid.
func (a *Agenda) Blocks() []Block {
	return a.grid.Layout(a.store.Appointments(), a.window, a.now())
}

// Select marks a block as the selected one (deselecting any previous
// selection) and assembles its detail view, with the remaining session
// count computed live.
func (a *Agenda) Select(ctx context.Context, id int64) (*Detail, error) {
	appointment, err := a.client.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentGone
	}
	a.selectedID = id

	detail := &Detail{
		Appointment: *appointment,
		DateLabel:   appointment.Date.Time().Format("Monday 02 January 2006"),
		TimeLabel:   appointment.StartTime.String() + " - " + appointment.EndTime.String(),
	}

	patient, err := a.client.GetPatient(ctx, appointment.PatientID)
	if err != nil {
		return nil, err
	}
	if patient != nil {
		detail.PatientName = patient.FullName()
		detail.Pathology = patient.Pathology
		detail.RemainingSessions = RemainingSessions(patient)
	}
	return detail, nil
}

// SelectedID returns the id of the selected block, 0 when none.
func (a *Agenda) SelectedID() int64 {
	return a.selectedID
}

// Save validates and persists the form, reconciles the recurring series
// when the flag changed, and refreshes the displayed week. The outcome
// message carries partial-batch counts; the save reports success as long
// as the anchor write itself succeeded.
func (a *Agenda) Save(ctx context.Context, form AppointmentForm) (*models.Appointment, Outcome) {
	if err := form.Validate(a.now()); err != nil {
		return nil, failure("invalid appointment: %v", err)
	}

	var prev *models.Appointment
	if form.ID != 0 {
		existing, err := a.client.Get(ctx, form.ID)
		if err != nil {
			return nil, failure("could not load appointment: %v", err)
		}
		if existing == nil {
			return nil, failure("%v", ErrAppointmentGone)
		}
		prev = existing
	}

	appointment := form.toAppointment()
	if prev != nil {
		appointment.SeriesID = prev.SeriesID
	}
	// Stamp the series id the moment the flag turns on so every generated
	// occurrence shares it.
	if appointment.IsRecurring && appointment.SeriesID == "" {
		appointment.SeriesID = uuid.NewString()
	}

	var saved *models.Appointment
	var err error
	if form.ID == 0 {
		saved, err = a.client.Create(ctx, appointment)
	} else {
		saved, err = a.client.Update(ctx, appointment)
	}
	if err != nil {
		return nil, failure("could not save appointment: %v", err)
	}

	report, recErr := a.reconciler.Reconcile(ctx, prev, saved)
	if recErr != nil {
		a.logger.Warn("series reconciliation failed", zap.Int64("id", saved.ID), zap.Error(recErr))
	}

	a.refresh(ctx)
	return saved, saveOutcome(report, recErr)
}

func saveOutcome(report ReconcileReport, recErr error) Outcome {
	switch {
	case recErr != nil:
		return success("appointment saved, but recurring series could not be reconciled: %v", recErr)
	case report.Action == SeriesGrown && report.Candidates > 0:
		return success("appointment saved, created %d of %d recurring occurrences",
			report.Created, report.Candidates)
	case report.Action == SeriesShrunk && report.Candidates > 0:
		return success("appointment saved, deleted %d of %d future occurrences",
			report.Deleted, report.Candidates)
	default:
		return success("appointment saved")
	}
}

// Confirm transitions an appointment to confirmed.
func (a *Agenda) Confirm(ctx context.Context, id int64) Outcome {
	return a.transition(ctx, id, models.ActionConfirm, "appointment confirmed")
}

// Cancel transitions an appointment to cancelled.
func (a *Agenda) Cancel(ctx context.Context, id int64) Outcome {
	return a.transition(ctx, id, models.ActionCancel, "appointment cancelled")
}

// Complete transitions an appointment to done.
func (a *Agenda) Complete(ctx context.Context, id int64) Outcome {
	return a.transition(ctx, id, models.ActionComplete, "appointment completed")
}

func (a *Agenda) transition(ctx context.Context, id int64, action models.StatusAction, message string) Outcome {
	if err := a.client.UpdateStatus(ctx, id, action); err != nil {
		return failure("could not %s appointment: %v", action, err)
	}
	a.refresh(ctx)
	return success("%s", message)
}

// Reschedule moves an appointment to a new date and start time.
func (a *Agenda) Reschedule(ctx context.Context, id int64, date models.Date, start models.ClockTime) Outcome {
	if date.Before(models.DateOf(a.now())) {
		return failure("new date must not be in the past")
	}
	if err := a.client.Reschedule(ctx, id, date, start); err != nil {
		return failure("could not reschedule appointment: %v", err)
	}
	a.refresh(ctx)
	return success("appointment rescheduled to %s %s", date, start)
}

// DeleteAppointment removes an appointment after explicit user
// confirmation (the confirmation dialog is the caller's concern).
func (a *Agenda) DeleteAppointment(ctx context.Context, id int64) Outcome {
	if err := a.client.Delete(ctx, id); err != nil {
		return failure("could not delete appointment: %v", err)
	}
	if a.selectedID == id {
		a.selectedID = 0
	}
	a.refresh(ctx)
	return success("appointment deleted")
}

// refresh reloads the displayed week after a mutation. Failures are
// logged only: the mutation itself already reported its outcome.
func (a *Agenda) refresh(ctx context.Context) {
	if _, err := a.store.LoadWeek(ctx, a.window); err != nil && !errors.Is(err, ErrStaleLoad) {
		a.logger.Warn("week refresh failed", zap.Error(err))
	}
}
