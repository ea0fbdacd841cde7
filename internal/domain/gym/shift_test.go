package gym

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

func TestShiftInputNormalize(t *testing.T) {
	tests := []struct {
		name  string
		in    ShiftInput
		field string
	}{
		{"valid", ShiftInput{Date: " 2024-03-11 ", Time: "07:30", Capacity: 1, ModalityID: "m1"}, ""},
		{"missing date", ShiftInput{Time: "07:30", Capacity: 1, ModalityID: "m1"}, "date"},
		{"bad date", ShiftInput{Date: "11/03/2024", Time: "07:30", Capacity: 1, ModalityID: "m1"}, "date"},
		{"missing time", ShiftInput{Date: "2024-03-11", Capacity: 1, ModalityID: "m1"}, "time"},
		{"bad time", ShiftInput{Date: "2024-03-11", Time: "25:00", Capacity: 1, ModalityID: "m1"}, "time"},
		{"zero capacity", ShiftInput{Date: "2024-03-11", Time: "07:30", Capacity: 0, ModalityID: "m1"}, "capacity"},
		{"missing modality", ShiftInput{Date: "2024-03-11", Time: "07:30", Capacity: 3}, "modalityId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Normalize()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var be httperr.BusinessError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, httperr.CodeValidation, be.Code)
			assert.Equal(t, tt.field, be.Field)
		})
	}
}

func TestShiftInputNormalizePadsClock(t *testing.T) {
	in := ShiftInput{Date: "2024-03-11", Time: "7:05", Capacity: 1, ModalityID: "m1"}
	require.NoError(t, in.Normalize())
	assert.Equal(t, "07:05", in.Time)
	assert.Equal(t, "2024-03-11", in.Date)
}

func TestBookRespectsCapacity(t *testing.T) {
	s := &models.Shift{Capacity: 2, BookedClients: []string{"c1", "c2"}}

	err := Book(s, "c3")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeCapacityExceeded))
	assert.Equal(t, []string{"c1", "c2"}, s.BookedClients)
}

func TestBookTwiceIsAlreadyBooked(t *testing.T) {
	s := &models.Shift{Capacity: 5}

	require.NoError(t, Book(s, "c1"))
	err := Book(s, "c1")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyBooked))
	assert.Equal(t, []string{"c1"}, s.BookedClients)
}

func TestUnbook(t *testing.T) {
	s := &models.Shift{Capacity: 3, BookedClients: []string{"c1", "c2"}}

	assert.False(t, Unbook(s, "c9"))
	assert.Equal(t, []string{"c1", "c2"}, s.BookedClients)

	assert.True(t, Unbook(s, "c1"))
	assert.Equal(t, []string{"c2"}, s.BookedClients)
}

func TestRescheduleKeepsBookings(t *testing.T) {
	s := &models.Shift{Date: "2024-03-11", Time: "07:00", Capacity: 3, ModalityID: "m1", BookedClients: []string{"c1", "c2"}}

	err := Reschedule(s, ShiftInput{Date: "2024-03-12", Time: "08:00", Capacity: 1, ModalityID: "m2"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
	assert.Equal(t, "2024-03-11", s.Date)

	require.NoError(t, Reschedule(s, ShiftInput{Date: "2024-03-12", Time: "08:00", Capacity: 2, ModalityID: "m2"}))
	assert.Equal(t, "2024-03-12", s.Date)
	assert.Equal(t, "m2", s.ModalityID)
	assert.Equal(t, []string{"c1", "c2"}, s.BookedClients)
}

func TestSortAndFilterShifts(t *testing.T) {
	shifts := []models.Shift{
		{ID: "late", Date: "2024-03-12", Time: "18:00", Capacity: 1},
		{ID: "early", Date: "2024-03-11", Time: "07:00", Capacity: 2, BookedClients: []string{"c1"}},
		{ID: "noon", Date: "2024-03-12", Time: "12:00", Capacity: 1, BookedClients: []string{"c2"}},
		{ID: "past", Date: "2024-03-01", Time: "09:00", Capacity: 1},
	}

	SortShifts(shifts)
	assert.Equal(t, []string{"past", "early", "noon", "late"}, shiftIDs(shifts))

	now := time.Date(2024, time.March, 11, 6, 0, 0, 0, time.UTC)
	up := Upcoming(shifts, now)
	assert.Equal(t, []string{"early", "noon", "late"}, shiftIDs(up))

	assert.Equal(t, []string{"early"}, shiftIDs(BookedBy(up, "c1")))
	assert.Equal(t, []string{"late"}, shiftIDs(Available(up, "c1")))
}

func TestIsUpcomingAtStartMinute(t *testing.T) {
	s := models.Shift{Date: "2024-03-11", Time: "07:00"}

	assert.True(t, IsUpcoming(s, time.Date(2024, time.March, 11, 7, 0, 0, 0, time.UTC)))
	assert.False(t, IsUpcoming(s, time.Date(2024, time.March, 11, 7, 1, 0, 0, time.UTC)))
	assert.False(t, IsUpcoming(s, time.Date(2024, time.March, 12, 6, 0, 0, 0, time.UTC)))
}

func shiftIDs(shifts []models.Shift) []string {
	out := make([]string, 0, len(shifts))
	for _, s := range shifts {
		out = append(out, s.ID)
	}
	return out
}
