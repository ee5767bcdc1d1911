package models

// AppointmentStatus represents the status of an appointment.
type AppointmentStatus string

const (
	StatusPlanned     AppointmentStatus = "planned"
	StatusConfirmed   AppointmentStatus = "confirmed"
	StatusInProgress  AppointmentStatus = "in_progress"
	StatusDone        AppointmentStatus = "done"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusRescheduled AppointmentStatus = "rescheduled"
)

// AppointmentType represents the kind of consultation.
type AppointmentType string

const (
	TypeSession         AppointmentType = "session"
	TypeIntakeInterview AppointmentType = "intake_interview"
	TypeReport          AppointmentType = "report"
)

// StatusAction is a status transition accepted by the backend.
type StatusAction string

const (
	ActionConfirm  StatusAction = "confirm"
	ActionCancel   StatusAction = "cancel"
	ActionComplete StatusAction = "complete"
)

// Appointment represents a scheduled consultation. The ID is assigned by
// the backend; a zero ID means the appointment has not been persisted yet.
type Appointment struct {
	ID          int64             `json:"id"`
	PatientID   int64             `json:"patientId"`
	Date        Date              `json:"date"`
	StartTime   ClockTime         `json:"startTime"`
	EndTime     ClockTime         `json:"endTime"`
	Type        AppointmentType   `json:"type"`
	Status      AppointmentStatus `json:"status"`
	IsRecurring bool              `json:"isRecurring"`
	SeriesID    string            `json:"seriesId,omitempty"`
	Notes       string            `json:"notes,omitempty"`
}

// IsTerminal reports whether the appointment can no longer change slot,
// i.e. it is done or cancelled.
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusDone || a.Status == StatusCancelled
}

// SameSlot reports whether other occupies the same patient, time range and
// type as a. Used as the legacy fallback for grouping recurring occurrences
// that predate series ids.
func (a *Appointment) SameSlot(other *Appointment) bool {
	return a.PatientID == other.PatientID &&
		a.StartTime == other.StartTime &&
		a.EndTime == other.EndTime &&
		a.Type == other.Type
}
