package agenda

import "errors"

var (
	// ErrStaleLoad marks a week load whose response arrived after a newer
	// load had already been started. Its result is discarded.
	ErrStaleLoad = errors.New("week load superseded by a newer one")

	// ErrAppointmentGone is returned when the appointment being edited no
	// longer exists on the backend.
	ErrAppointmentGone = errors.New("appointment no longer exists")

	// ErrPatientGone is returned when a referenced patient record cannot
	// be found on the backend.
	ErrPatientGone = errors.New("patient no longer exists")
)
