package agenda

import (
	"sort"
	"time"

	"medoffice-agenda/internal/models"
)

// Grid describes the vertical extent of the calendar, one layout unit
// per minute.
type Grid struct {
	OpeningHour int
	ClosingHour int
}

// DefaultGrid is the reference 8:00-19:00 grid.
var DefaultGrid = Grid{OpeningHour: 8, ClosingHour: 19}

// Height returns the grid height in minutes.
func (g Grid) Height() int {
	return (g.ClosingHour - g.OpeningHour) * 60
}

// activeLeadMinutes is how long before its start time an appointment is
// already shown as active.
const activeLeadMinutes = 5

// BlockState drives how a calendar block is presented.
type BlockState string

const (
	// BlockActive exposes the inline actions: the appointment is in
	// progress or its time window contains "now".
	BlockActive BlockState = "active"
	// BlockCollapsed hides the actions until the block is clicked.
	BlockCollapsed BlockState = "collapsed"
	// BlockCancelled renders the appointment struck out, with no actions.
	BlockCancelled BlockState = "cancelled"
)

// Block is one appointment positioned on the week grid. Offsets and
// heights are in minutes relative to the opening hour.
type Block struct {
	DayIndex    int
	TopOffset   int
	Height      int
	State       BlockState
	Appointment models.Appointment
}

// Layout projects appointments onto day columns and vertical offsets.
// It is a pure function of its inputs so that rendering (terminal, test
// harness, or anything else) stays a separate concern. Appointments
// outside the window are not rendered.
func (g Grid) Layout(appointments []models.Appointment, window WeekWindow, now time.Time) []Block {
	blocks := make([]Block, 0, len(appointments))
	for i := range appointments {
		a := appointments[i]
		dayIndex, ok := window.DayIndex(a.Date)
		if !ok {
			continue
		}
		blocks = append(blocks, Block{
			DayIndex:    dayIndex,
			TopOffset:   a.StartTime.Minutes() - g.OpeningHour*60,
			Height:      a.EndTime.Minutes() - a.StartTime.Minutes(),
			State:       blockState(&a, now),
			Appointment: a,
		})
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].DayIndex != blocks[j].DayIndex {
			return blocks[i].DayIndex < blocks[j].DayIndex
		}
		return blocks[i].TopOffset < blocks[j].TopOffset
	})
	return blocks
}

// Layout projects appointments on the reference grid.
func Layout(appointments []models.Appointment, window WeekWindow, now time.Time) []Block {
	return DefaultGrid.Layout(appointments, window, now)
}

func blockState(a *models.Appointment, now time.Time) BlockState {
	if a.Status == models.StatusCancelled {
		return BlockCancelled
	}
	if a.Status == models.StatusInProgress {
		return BlockActive
	}
	if a.Date == models.DateOf(now) {
		minute := models.NewClockTime(now.Hour(), now.Minute())
		if minute >= a.StartTime-activeLeadMinutes && minute <= a.EndTime {
			return BlockActive
		}
	}
	return BlockCollapsed
}
