// Package render draws a computed calendar layout. Layout math lives in
// the agenda package; this is one swappable presentation of it.
package render

import (
	"fmt"
	"io"

	"medoffice-agenda/internal/agenda"
)

var stateMarkers = map[agenda.BlockState]string{
	agenda.BlockActive:    "*",
	agenda.BlockCollapsed: " ",
	agenda.BlockCancelled: "x",
}

// WriteWeek renders the week as one section per day: the date header
// followed by the day's blocks in grid order. Active blocks are marked
// with '*', cancelled ones with 'x'.
func WriteWeek(w io.Writer, window agenda.WeekWindow, blocks []agenda.Block) error {
	byDay := make([][]agenda.Block, agenda.DaysPerWeek)
	for _, b := range blocks {
		byDay[b.DayIndex] = append(byDay[b.DayIndex], b)
	}

	for i, day := range window.Days() {
		if _, err := fmt.Fprintf(w, "%s %s\n", day.Weekday().String()[:3], day); err != nil {
			return err
		}
		if len(byDay[i]) == 0 {
			if _, err := fmt.Fprintln(w, "  (no appointments)"); err != nil {
				return err
			}
			continue
		}
		for _, b := range byDay[i] {
			if err := writeBlock(w, b); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeBlock(w io.Writer, b agenda.Block) error {
	a := b.Appointment
	recurring := ""
	if a.IsRecurring {
		recurring = " (recurring)"
	}
	_, err := fmt.Fprintf(w, "  %s %s-%s %-16s patient #%d %s%s\n",
		stateMarkers[b.State], a.StartTime, a.EndTime, a.Type, a.PatientID, a.Status, recurring)
	return err
}

// WriteOutcome prints the single notification line of a user action.
func WriteOutcome(w io.Writer, outcome agenda.Outcome) error {
	prefix := "ok"
	if !outcome.OK {
		prefix = "error"
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", prefix, outcome.Message)
	return err
}

// WriteDetail prints the selected appointment's detail view.
func WriteDetail(w io.Writer, d *agenda.Detail) error {
	name := d.PatientName
	if name == "" {
		name = fmt.Sprintf("patient #%d", d.Appointment.PatientID)
	}
	_, err := fmt.Fprintf(w, "%s\n%s %s\n%s / %s\nremaining sessions: %d\n%s\n",
		name, d.DateLabel, d.TimeLabel, d.Appointment.Type,
		pathologyOrDash(d.Pathology), d.RemainingSessions, d.Appointment.Notes)
	return err
}

func pathologyOrDash(p string) string {
	if p == "" {
		return "-"
	}
	return p
}
