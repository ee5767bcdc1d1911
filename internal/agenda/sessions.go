package agenda

import (
	"context"
	"fmt"

	"medoffice-agenda/internal/models"
)

// patientClient is the slice of the backend client the tracker needs.
type patientClient interface {
	GetPatient(ctx context.Context, id int64) (*models.Patient, error)
	UpdatePatient(ctx context.Context, patient models.Patient) error
}

// SessionsTracker derives and mutates a patient's session budget.
type SessionsTracker struct {
	client patientClient
}

// NewSessionsTracker creates a tracker backed by the given client.
func NewSessionsTracker(client patientClient) *SessionsTracker {
	return &SessionsTracker{client: client}
}

// RemainingSessions is planned minus completed, floored at zero. It is
// always recomputed, never stored.
func RemainingSessions(p *models.Patient) int {
	remaining := p.PlannedSessions - p.CompletedSessions
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Remaining fetches the patient record and computes the live remaining
// session count. A missing patient counts as zero remaining sessions.
func (t *SessionsTracker) Remaining(ctx context.Context, patientID int64) (int, error) {
	patient, err := t.client.GetPatient(ctx, patientID)
	if err != nil {
		return 0, fmt.Errorf("resolve remaining sessions: %w", err)
	}
	if patient == nil {
		return 0, nil
	}
	return RemainingSessions(patient), nil
}

// AddSessions increments the patient's planned session count by n and
// persists the record. Used when a block of sessions is sold
// mid-treatment.
func (t *SessionsTracker) AddSessions(ctx context.Context, patientID int64, n int) (*models.Patient, error) {
	if n <= 0 {
		return nil, fmt.Errorf("session count must be positive, got %d", n)
	}
	patient, err := t.client.GetPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("add sessions: %w", err)
	}
	if patient == nil {
		return nil, ErrPatientGone
	}
	patient.PlannedSessions += n
	if err := t.client.UpdatePatient(ctx, *patient); err != nil {
		return nil, fmt.Errorf("add sessions: %w", err)
	}
	return patient, nil
}
