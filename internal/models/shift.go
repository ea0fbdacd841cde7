package models

import "time"

// Shift is a capacity-bounded class slot. Date is YYYY-MM-DD and Time is
// HH:MM, both in the gym's local timezone.
type Shift struct {
	ID            string   `json:"id"`
	Date          string   `json:"date"`
	Time          string   `json:"time"`
	Capacity      int      `json:"capacity"`
	ModalityID    string   `json:"modalityId"`
	BookedClients []string `json:"bookedClients"`

	// Version is the store revision the shift was read at.
	Version int64 `json:"version"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s Shift) IsBooked(clientID string) bool {
	for _, id := range s.BookedClients {
		if id == clientID {
			return true
		}
	}
	return false
}

func (s Shift) IsFull() bool {
	return len(s.BookedClients) >= s.Capacity
}

// SortKey is the combined date-time value shifts are ordered by.
func (s Shift) SortKey() string {
	return s.Date + " " + s.Time
}
