package agenda

import (
	"errors"
	"strings"
	"time"

	"medoffice-agenda/internal/models"
	"medoffice-agenda/internal/utils"
)

// AppointmentForm carries the fields of the appointment edit form. All
// checks run client-side before any network call; a failed validation
// blocks submission with one consolidated message.
type AppointmentForm struct {
	ID          int64                    `validate:"min=0"`
	PatientID   int64                    `validate:"required,gt=0"`
	Date        models.Date              `validate:"-"`
	StartTime   models.ClockTime         `validate:"min=0,max=1439"`
	EndTime     models.ClockTime         `validate:"min=0,max=1439"`
	Type        models.AppointmentType   `validate:"required,oneof=session intake_interview report"`
	Status      models.AppointmentStatus `validate:"omitempty,oneof=planned confirmed in_progress done cancelled rescheduled"`
	IsRecurring bool
	Notes       string `validate:"max=2000"`
}

// Validate checks the form against the submission rules: required fields,
// end after start, date not in the past. Errors are joined into a single
// message so the caller reports exactly one.
func (f *AppointmentForm) Validate(now time.Time) error {
	var problems []string

	if err := utils.Validate(f); err != nil {
		problems = append(problems, utils.FormatValidationError(err))
	}
	if f.Date.IsZero() {
		problems = append(problems, "date is required")
	} else if f.Date.Before(models.DateOf(now)) {
		problems = append(problems, "date must not be in the past")
	}
	if f.EndTime <= f.StartTime {
		problems = append(problems, "end time must be after start time")
	}
	if f.StartTime%30 != 0 || f.EndTime%30 != 0 {
		problems = append(problems, "times must fall on half-hour boundaries")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// toAppointment maps the form onto a domain appointment. New appointments
// are always planned; the backend keeps the authoritative status.
func (f *AppointmentForm) toAppointment() models.Appointment {
	status := f.Status
	if f.ID == 0 || status == "" {
		status = models.StatusPlanned
	}
	return models.Appointment{
		ID:          f.ID,
		PatientID:   f.PatientID,
		Date:        f.Date,
		StartTime:   f.StartTime,
		EndTime:     f.EndTime,
		Type:        f.Type,
		Status:      status,
		IsRecurring: f.IsRecurring,
		Notes:       f.Notes,
	}
}
