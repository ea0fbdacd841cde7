package gym

import (
	"sort"
	"strings"
	"time"

	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/timezone"
)

const (
	DateLayout = timezone.DateLayout
	TimeLayout = timezone.ClockLayout
)

// ===============================
// Validations
// ===============================

type ShiftInput struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	Capacity   int    `json:"capacity"`
	ModalityID string `json:"modalityId"`
}

// Normalize trims the input and reports the first invalid field.
func (in *ShiftInput) Normalize() error {
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.ModalityID = strings.TrimSpace(in.ModalityID)

	d, err := time.Parse(DateLayout, in.Date)
	if err != nil {
		return httperr.ErrValidation("date")
	}
	t, err := time.Parse(TimeLayout, in.Time)
	if err != nil {
		return httperr.ErrValidation("time")
	}
	// stored zero-padded; listings and cutoffs compare these as strings
	in.Date = timezone.Today(d)
	in.Time = timezone.Clock(t)

	if in.Capacity < 1 {
		return httperr.ErrValidation("capacity")
	}
	if in.ModalityID == "" {
		return httperr.ErrValidation("modalityId")
	}
	return nil
}

// ===============================
// Booking
// ===============================

// Book adds clientID to the shift or explains why it cannot.
func Book(s *models.Shift, clientID string) error {
	if s.IsBooked(clientID) {
		return httperr.ErrBusiness(httperr.CodeAlreadyBooked)
	}
	if s.IsFull() {
		return httperr.ErrBusiness(httperr.CodeCapacityExceeded)
	}
	s.BookedClients = append(s.BookedClients, clientID)
	return nil
}

// Unbook removes clientID and reports whether anything changed.
func Unbook(s *models.Shift, clientID string) bool {
	out := s.BookedClients[:0:0]
	for _, id := range s.BookedClients {
		if id != clientID {
			out = append(out, id)
		}
	}
	if len(out) == len(s.BookedClients) {
		return false
	}
	s.BookedClients = out
	return true
}

// Reschedule applies an admin edit. Bookings are kept; a capacity below the
// current head count is rejected.
func Reschedule(s *models.Shift, in ShiftInput) error {
	if in.Capacity < len(s.BookedClients) {
		return httperr.ErrValidation("capacity")
	}
	s.Date = in.Date
	s.Time = in.Time
	s.Capacity = in.Capacity
	s.ModalityID = in.ModalityID
	return nil
}

// ===============================
// Listing
// ===============================

// SortShifts orders by date then time.
func SortShifts(shifts []models.Shift) {
	sort.SliceStable(shifts, func(i, j int) bool {
		return shifts[i].SortKey() < shifts[j].SortKey()
	})
}

// IsUpcoming reports whether s starts at or after now, in now's location.
func IsUpcoming(s models.Shift, now time.Time) bool {
	return s.SortKey() >= timezone.Today(now)+" "+timezone.Clock(now)
}

func Upcoming(shifts []models.Shift, now time.Time) []models.Shift {
	out := []models.Shift{}
	for _, s := range shifts {
		if IsUpcoming(s, now) {
			out = append(out, s)
		}
	}
	return out
}

// BookedBy keeps the shifts clientID is booked into.
func BookedBy(shifts []models.Shift, clientID string) []models.Shift {
	out := []models.Shift{}
	for _, s := range shifts {
		if s.IsBooked(clientID) {
			out = append(out, s)
		}
	}
	return out
}

// Available keeps the shifts clientID could still book.
func Available(shifts []models.Shift, clientID string) []models.Shift {
	out := []models.Shift{}
	for _, s := range shifts {
		if !s.IsBooked(clientID) && !s.IsFull() {
			out = append(out, s)
		}
	}
	return out
}
