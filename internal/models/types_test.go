package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.January, 8)

	encoded, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-08"`, string(encoded))

	var decoded Date
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, d, decoded)
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("08/01/2024")
	require.Error(t, err)
}

func TestDate_AddDaysCrossesMonth(t *testing.T) {
	d := NewDate(2023, time.December, 28)
	assert.Equal(t, NewDate(2024, time.January, 4), d.AddDays(7))
	assert.Equal(t, NewDate(2023, time.December, 21), d.AddDays(-7))
}

func TestDate_Ordering(t *testing.T) {
	earlier := NewDate(2024, time.January, 1)
	later := NewDate(2024, time.January, 2)

	assert.True(t, earlier.Before(later))
	assert.True(t, later.After(earlier))
	assert.False(t, earlier.Before(earlier))
	assert.False(t, earlier.After(earlier))
}

func TestClockTime_Components(t *testing.T) {
	c := NewClockTime(14, 30)
	assert.Equal(t, 14, c.Hour())
	assert.Equal(t, 30, c.Minute())
	assert.Equal(t, 870, c.Minutes())
	assert.Equal(t, "14:30", c.String())
}

func TestClockTime_JSONRoundTrip(t *testing.T) {
	c := NewClockTime(9, 5)

	encoded, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `"09:05"`, string(encoded))

	var decoded ClockTime
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, c, decoded)
}

func TestParseClockTime_Invalid(t *testing.T) {
	_, err := ParseClockTime("9h30")
	require.Error(t, err)
}

func TestAppointment_IsTerminal(t *testing.T) {
	a := Appointment{Status: StatusDone}
	assert.True(t, a.IsTerminal())
	a.Status = StatusCancelled
	assert.True(t, a.IsTerminal())
	a.Status = StatusConfirmed
	assert.False(t, a.IsTerminal())
}

func TestAppointment_SameSlot(t *testing.T) {
	a := Appointment{
		PatientID: 7,
		Date:      NewDate(2024, time.January, 1),
		StartTime: NewClockTime(9, 0),
		EndTime:   NewClockTime(9, 30),
		Type:      TypeSession,
	}
	b := a
	b.ID = 99
	b.Date = NewDate(2024, time.January, 8)
	assert.True(t, a.SameSlot(&b), "same slot on a different week")

	b.StartTime = NewClockTime(10, 0)
	assert.False(t, a.SameSlot(&b))
}

func TestPatient_FullName(t *testing.T) {
	p := Patient{FirstName: "Anna", LastName: "Kovacs"}
	assert.Equal(t, "Anna Kovacs", p.FullName())

	p.FirstName = ""
	assert.Equal(t, "Kovacs", p.FullName())
}
