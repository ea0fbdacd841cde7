package dto

import "github.com/BruksfildServices01/gym-scheduler/internal/models"

type BookedClientDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ShiftListDTO is a shift as the admin schedule shows it: modality and
// booked clients resolved to names.
type ShiftListDTO struct {
	ID           string            `json:"id"`
	Date         string            `json:"date"`
	Time         string            `json:"time"`
	Capacity     int               `json:"capacity"`
	ModalityID   string            `json:"modalityId"`
	ModalityName string            `json:"modalityName"`
	Booked       []BookedClientDTO `json:"booked"`
	Full         bool              `json:"full"`
	Version      int64             `json:"version"`
}

// NewShiftList keeps the order of shifts. Ids that no longer resolve keep
// an empty name.
func NewShiftList(shifts []models.Shift, modalities []models.Modality, clients []models.Client) []ShiftListDTO {
	modalityNames := make(map[string]string, len(modalities))
	for _, m := range modalities {
		modalityNames[m.ID] = m.Name
	}
	clientNames := make(map[string]string, len(clients))
	for _, c := range clients {
		clientNames[c.ID] = c.Name
	}

	out := make([]ShiftListDTO, 0, len(shifts))
	for _, s := range shifts {
		booked := make([]BookedClientDTO, 0, len(s.BookedClients))
		for _, id := range s.BookedClients {
			booked = append(booked, BookedClientDTO{ID: id, Name: clientNames[id]})
		}
		out = append(out, ShiftListDTO{
			ID:           s.ID,
			Date:         s.Date,
			Time:         s.Time,
			Capacity:     s.Capacity,
			ModalityID:   s.ModalityID,
			ModalityName: modalityNames[s.ModalityID],
			Booked:       booked,
			Full:         s.IsFull(),
			Version:      s.Version,
		})
	}
	return out
}
