package agenda

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"medoffice-agenda/internal/models"
)

// seriesClient is the slice of the backend client the reconciler needs.
type seriesClient interface {
	ListAll(ctx context.Context) ([]models.Appointment, error)
	Create(ctx context.Context, appointment models.Appointment) (*models.Appointment, error)
	Delete(ctx context.Context, id int64) error
}

// SeriesAction tells which direction a reconciliation pass took.
type SeriesAction string

const (
	SeriesUntouched SeriesAction = ""
	SeriesGrown     SeriesAction = "grown"
	SeriesShrunk    SeriesAction = "shrunk"
)

// ReconcileReport summarizes one reconciliation pass. The batch is
// best-effort: failed occurrences are counted, never rolled back.
type ReconcileReport struct {
	Action SeriesAction
	// Candidates is the number of occurrences the pass considered.
	Candidates int
	Created    int
	Deleted    int
	Skipped    int
	Failed     int
}

// Reconciler keeps a weekly recurring series consistent with the edit
// just made to its anchor appointment and with the patient's remaining
// session budget.
type Reconciler struct {
	client    seriesClient
	conflicts *ConflictChecker
	sessions  *SessionsTracker
	logger    *zap.Logger
	now       func() time.Time
}

// NewReconciler wires a reconciler from its collaborators.
func NewReconciler(client seriesClient, conflicts *ConflictChecker, sessions *SessionsTracker, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		client:    client,
		conflicts: conflicts,
		sessions:  sessions,
		logger:    logger,
		now:       time.Now,
	}
}

// Reconcile compares the appointment's recurrence flag before and after a
// save and grows or shrinks the series accordingly. prev is nil when the
// anchor was just created. The anchor itself has already been persisted
// by the caller; only the generated occurrences are handled here.
func (r *Reconciler) Reconcile(ctx context.Context, prev, anchor *models.Appointment) (ReconcileReport, error) {
	wasRecurring := prev != nil && prev.IsRecurring

	switch {
	case !wasRecurring && anchor.IsRecurring:
		return r.grow(ctx, anchor)
	case wasRecurring && !anchor.IsRecurring:
		return r.shrink(ctx, anchor)
	default:
		// Ordinary update; the series is untouched.
		return ReconcileReport{}, nil
	}
}

// grow creates one weekly occurrence per remaining session beyond the
// anchor. Conflicting dates are skipped with no alternate-slot search;
// each create is independent, so one failure never aborts the rest.
func (r *Reconciler) grow(ctx context.Context, anchor *models.Appointment) (ReconcileReport, error) {
	remaining, err := r.sessions.Remaining(ctx, anchor.PatientID)
	if err != nil {
		return ReconcileReport{}, fmt.Errorf("grow series: %w", err)
	}
	// The anchor occurrence itself accounts for one session.
	if remaining <= 1 {
		return ReconcileReport{Action: SeriesGrown}, nil
	}

	report := ReconcileReport{Action: SeriesGrown, Candidates: remaining - 1}
	for i := 1; i < remaining; i++ {
		date := anchor.Date.AddDays(7 * i)

		conflict, err := r.conflicts.HasConflict(ctx, date, anchor.StartTime, anchor.EndTime, 0)
		if err != nil {
			report.Failed++
			r.logger.Warn("occurrence conflict check failed",
				zap.String("date", date.String()), zap.Error(err))
			continue
		}
		if conflict {
			report.Skipped++
			continue
		}

		occurrence := models.Appointment{
			PatientID:   anchor.PatientID,
			Date:        date,
			StartTime:   anchor.StartTime,
			EndTime:     anchor.EndTime,
			Type:        anchor.Type,
			Status:      models.StatusPlanned,
			IsRecurring: true,
			SeriesID:    anchor.SeriesID,
			Notes:       fmt.Sprintf("occurrence %d of %d", i+1, remaining),
		}
		if _, err := r.client.Create(ctx, occurrence); err != nil {
			report.Failed++
			r.logger.Warn("occurrence create failed",
				zap.String("date", date.String()), zap.Error(err))
			continue
		}
		report.Created++
	}
	return report, nil
}

// shrink deletes the future occurrences of the anchor's series: strictly
// after today, not done, not cancelled, never the anchor itself. Matching
// prefers the series id and falls back to the slot heuristic for legacy
// records without one. Deletions are independent of each other.
func (r *Reconciler) shrink(ctx context.Context, anchor *models.Appointment) (ReconcileReport, error) {
	all, err := r.client.ListAll(ctx)
	if err != nil {
		return ReconcileReport{}, fmt.Errorf("shrink series: %w", err)
	}

	today := models.DateOf(r.now())
	report := ReconcileReport{Action: SeriesShrunk}
	for i := range all {
		candidate := &all[i]
		if candidate.ID == anchor.ID {
			continue
		}
		if !candidate.IsRecurring || candidate.IsTerminal() {
			continue
		}
		if !candidate.Date.After(today) {
			continue
		}
		if !r.inSeries(anchor, candidate) {
			continue
		}

		report.Candidates++
		if err := r.client.Delete(ctx, candidate.ID); err != nil {
			report.Failed++
			r.logger.Warn("occurrence delete failed",
				zap.Int64("id", candidate.ID), zap.Error(err))
			continue
		}
		report.Deleted++
	}
	return report, nil
}

// inSeries decides series membership for a shrink candidate.
func (r *Reconciler) inSeries(anchor, candidate *models.Appointment) bool {
	if anchor.SeriesID != "" && candidate.SeriesID != "" {
		return candidate.SeriesID == anchor.SeriesID
	}
	return anchor.SameSlot(candidate)
}
