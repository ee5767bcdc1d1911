package agenda

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medoffice-agenda/internal/models"
)

var testNow = time.Date(2023, time.December, 28, 10, 0, 0, 0, time.UTC)

func newTestAgenda(backend *fakeBackend) *Agenda {
	return New(backend, zap.NewNop(), WithClock(func() time.Time { return testNow }))
}

func TestAgenda_Navigation(t *testing.T) {
	backend := newFakeBackend()
	agenda := newTestAgenda(backend)
	ctx := context.Background()

	_, err := agenda.OpenWeek(ctx, models.NewDate(2024, time.January, 3))
	require.NoError(t, err)
	assert.Equal(t, models.NewDate(2024, time.January, 1), agenda.Window().Monday())

	_, err = agenda.NextWeek(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.NewDate(2024, time.January, 8), agenda.Window().Monday())

	_, err = agenda.PreviousWeek(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.NewDate(2024, time.January, 1), agenda.Window().Monday())
	assert.Equal(t, 3, backend.listRangeCalls)
}

func TestAgenda_SaveEditNotesIssuesSingleUpdate(t *testing.T) {
	backend := newFakeBackend()
	backend.addPatient(models.Patient{ID: 7, FirstName: "Anna", LastName: "Kovacs", PlannedSessions: 10})
	existing := backend.addAppointment(models.Appointment{
		PatientID: 7,
		Date:      models.NewDate(2024, time.January, 2),
		StartTime: models.NewClockTime(9, 0),
		EndTime:   models.NewClockTime(9, 30),
		Type:      models.TypeSession,
		Status:    models.StatusConfirmed,
	})

	agenda := newTestAgenda(backend)
	ctx := context.Background()
	_, err := agenda.OpenWeek(ctx, existing.Date)
	require.NoError(t, err)

	saved, outcome := agenda.Save(ctx, AppointmentForm{
		ID:        existing.ID,
		PatientID: existing.PatientID,
		Date:      existing.Date,
		StartTime: existing.StartTime,
		EndTime:   existing.EndTime,
		Type:      existing.Type,
		Status:    existing.Status,
		Notes:     "bring previous scan results",
	})
	require.NotNil(t, saved)
	assert.True(t, outcome.OK)
	assert.Equal(t, "appointment saved", outcome.Message)

	assert.Equal(t, 1, backend.updateCalls)
	assert.Equal(t, 0, backend.createCalls)
	assert.Equal(t, 0, backend.deleteCalls)
	assert.Equal(t, 1, backend.appointmentCount())

	stored, err := backend.Get(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "bring previous scan results", stored.Notes)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
}

func TestAgenda_SaveRejectsInvalidFormWithoutNetworkCalls(t *testing.T) {
	backend := newFakeBackend()
	agenda := newTestAgenda(backend)

	saved, outcome := agenda.Save(context.Background(), AppointmentForm{
		PatientID: 7,
		Date:      models.NewDate(2024, time.January, 2),
		StartTime: models.NewClockTime(10, 0),
		EndTime:   models.NewClockTime(9, 0),
		Type:      models.TypeSession,
	})
	assert.Nil(t, saved)
	assert.False(t, outcome.OK)
	assert.Contains(t, outcome.Message, "end time must be after start time")
	assert.Equal(t, 0, backend.createCalls)
	assert.Equal(t, 0, backend.updateCalls)
}

func TestAgenda_SaveRecurringReportsPartialBatch(t *testing.T) {
	backend := newFakeBackend()
	backend.addPatient(models.Patient{ID: 7, FirstName: "Anna", LastName: "Kovacs", PlannedSessions: 4, CompletedSessions: 1})
	// The second week is taken by someone else.
	backend.addAppointment(models.Appointment{
		PatientID: 9,
		Date:      models.NewDate(2024, time.January, 8),
		StartTime: models.NewClockTime(9, 0),
		EndTime:   models.NewClockTime(9, 30),
		Status:    models.StatusConfirmed,
	})

	agenda := newTestAgenda(backend)
	ctx := context.Background()
	_, err := agenda.OpenWeek(ctx, models.NewDate(2024, time.January, 1))
	require.NoError(t, err)

	saved, outcome := agenda.Save(ctx, AppointmentForm{
		PatientID:   7,
		Date:        models.NewDate(2024, time.January, 1),
		StartTime:   models.NewClockTime(9, 0),
		EndTime:     models.NewClockTime(9, 30),
		Type:        models.TypeSession,
		IsRecurring: true,
	})
	require.NotNil(t, saved)
	assert.True(t, outcome.OK)
	assert.Equal(t, "appointment saved, created 1 of 2 recurring occurrences", outcome.Message)
	assert.NotEmpty(t, saved.SeriesID)

	// Anchor plus one generated occurrence plus the stranger's booking.
	assert.Equal(t, 3, backend.appointmentCount())
	generated, err := backend.ListByDate(ctx, models.NewDate(2024, time.January, 15))
	require.NoError(t, err)
	require.Len(t, generated, 1)
	assert.Equal(t, saved.SeriesID, generated[0].SeriesID)
}

func TestAgenda_SaveClearingRecurringDeletesFutureOccurrences(t *testing.T) {
	backend := newFakeBackend()
	backend.addPatient(models.Patient{ID: 7, FirstName: "Anna", LastName: "Kovacs", PlannedSessions: 10})
	anchor := backend.addAppointment(models.Appointment{
		PatientID:   7,
		Date:        models.NewDate(2024, time.January, 1),
		StartTime:   models.NewClockTime(9, 0),
		EndTime:     models.NewClockTime(9, 30),
		Type:        models.TypeSession,
		Status:      models.StatusPlanned,
		IsRecurring: true,
		SeriesID:    "series-a",
	})
	for _, day := range []int{8, 15} {
		backend.addAppointment(models.Appointment{
			PatientID:   7,
			Date:        models.NewDate(2024, time.January, day),
			StartTime:   models.NewClockTime(9, 0),
			EndTime:     models.NewClockTime(9, 30),
			Type:        models.TypeSession,
			Status:      models.StatusPlanned,
			IsRecurring: true,
			SeriesID:    "series-a",
		})
	}

	agenda := newTestAgenda(backend)
	ctx := context.Background()
	_, err := agenda.OpenWeek(ctx, anchor.Date)
	require.NoError(t, err)

	saved, outcome := agenda.Save(ctx, AppointmentForm{
		ID:          anchor.ID,
		PatientID:   anchor.PatientID,
		Date:        anchor.Date,
		StartTime:   anchor.StartTime,
		EndTime:     anchor.EndTime,
		Type:        anchor.Type,
		Status:      anchor.Status,
		IsRecurring: false,
	})
	require.NotNil(t, saved)
	assert.True(t, outcome.OK)
	assert.Equal(t, "appointment saved, deleted 2 of 2 future occurrences", outcome.Message)
	assert.Equal(t, 2, backend.deleteCalls)
	assert.Equal(t, 1, backend.appointmentCount())
}

func TestAgenda_SelectBuildsDetail(t *testing.T) {
	backend := newFakeBackend()
	backend.addPatient(models.Patient{
		ID: 7, FirstName: "Anna", LastName: "Kovacs",
		Pathology: "lower back pain", PlannedSessions: 4, CompletedSessions: 1,
	})
	appointment := backend.addAppointment(models.Appointment{
		PatientID: 7,
		Date:      models.NewDate(2024, time.January, 1),
		StartTime: models.NewClockTime(9, 0),
		EndTime:   models.NewClockTime(9, 30),
		Status:    models.StatusPlanned,
	})

	agenda := newTestAgenda(backend)
	detail, err := agenda.Select(context.Background(), appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna Kovacs", detail.PatientName)
	assert.Equal(t, "lower back pain", detail.Pathology)
	assert.Equal(t, 3, detail.RemainingSessions)
	assert.Equal(t, "Monday 01 January 2024", detail.DateLabel)
	assert.Equal(t, "09:00 - 09:30", detail.TimeLabel)
	assert.Equal(t, appointment.ID, agenda.SelectedID())
}

func TestAgenda_SelectMissingAppointment(t *testing.T) {
	backend := newFakeBackend()
	agenda := newTestAgenda(backend)

	detail, err := agenda.Select(context.Background(), 424242)
	assert.Nil(t, detail)
	assert.ErrorIs(t, err, ErrAppointmentGone)
	assert.Zero(t, agenda.SelectedID())
}

func TestAgenda_StatusTransitions(t *testing.T) {
	backend := newFakeBackend()
	appointment := backend.addAppointment(models.Appointment{
		PatientID: 7,
		Date:      models.NewDate(2024, time.January, 1),
		StartTime: models.NewClockTime(9, 0),
		EndTime:   models.NewClockTime(9, 30),
		Status:    models.StatusPlanned,
	})

	agenda := newTestAgenda(backend)
	ctx := context.Background()
	_, err := agenda.OpenWeek(ctx, appointment.Date)
	require.NoError(t, err)

	outcome := agenda.Confirm(ctx, appointment.ID)
	assert.True(t, outcome.OK)
	assert.Equal(t, "appointment confirmed", outcome.Message)

	outcome = agenda.Complete(ctx, appointment.ID)
	assert.True(t, outcome.OK)

	outcome = agenda.Cancel(ctx, 424242)
	assert.False(t, outcome.OK)
	assert.Contains(t, outcome.Message, "could not cancel appointment")
}

func TestAgenda_RescheduleRejectsPastDate(t *testing.T) {
	backend := newFakeBackend()
	appointment := backend.addAppointment(models.Appointment{
		PatientID: 7,
		Date:      models.NewDate(2024, time.January, 1),
		StartTime: models.NewClockTime(9, 0),
		EndTime:   models.NewClockTime(9, 30),
		Status:    models.StatusConfirmed,
	})
	agenda := newTestAgenda(backend)
	ctx := context.Background()

	outcome := agenda.Reschedule(ctx, appointment.ID, models.NewDate(2023, time.June, 1), models.NewClockTime(9, 0))
	assert.False(t, outcome.OK)
	assert.Equal(t, "new date must not be in the past", outcome.Message)

	outcome = agenda.Reschedule(ctx, appointment.ID, models.NewDate(2024, time.January, 3), models.NewClockTime(14, 0))
	assert.True(t, outcome.OK)
	assert.Equal(t, "appointment rescheduled to 2024-01-03 14:00", outcome.Message)
}

func TestAgenda_DeleteClearsSelection(t *testing.T) {
	backend := newFakeBackend()
	backend.addPatient(models.Patient{ID: 7, FirstName: "Anna", LastName: "Kovacs"})
	appointment := backend.addAppointment(models.Appointment{
		PatientID: 7,
		Date:      models.NewDate(2024, time.January, 1),
		StartTime: models.NewClockTime(9, 0),
		EndTime:   models.NewClockTime(9, 30),
		Status:    models.StatusPlanned,
	})

	agenda := newTestAgenda(backend)
	ctx := context.Background()
	_, err := agenda.OpenWeek(ctx, appointment.Date)
	require.NoError(t, err)
	_, err = agenda.Select(ctx, appointment.ID)
	require.NoError(t, err)

	outcome := agenda.DeleteAppointment(ctx, appointment.ID)
	assert.True(t, outcome.OK)
	assert.Zero(t, agenda.SelectedID())
	assert.Equal(t, 0, backend.appointmentCount())
}
