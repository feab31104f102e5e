package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
)

type BookingDTO struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Time2     string `json:"time2,omitempty"`
	TimeLabel string `json:"time_label"`

	ProfID   string `json:"prof_id"`
	ProfName string `json:"prof_name"`

	ClientID     string `json:"client_id,omitempty"`
	ClientName   string `json:"client_name,omitempty"`
	ClientUnit   string `json:"client_unit,omitempty"`
	ClientGender string `json:"client_gender,omitempty"`

	Description   string `json:"description"`
	ManicureType  string `json:"manicure_type,omitempty"`
	ManicureLabel string `json:"manicure_label,omitempty"`
	PairID        string `json:"pair_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func FromEntry(e booking.Entry) BookingDTO {
	switch v := e.(type) {
	case *booking.Block:
		return BookingDTO{
			ID:          v.ID,
			Type:        string(booking.KindBlock),
			Date:        v.Date,
			Time:        v.Time,
			TimeLabel:   v.Time,
			ProfID:      v.ProfID,
			ProfName:    v.ProfName,
			Description: v.Description,
			CreatedAt:   v.CreatedAt,
		}
	case *booking.Appointment:
		return BookingDTO{
			ID:            v.ID,
			Type:          string(booking.KindAppointment),
			Date:          v.Date,
			Time:          v.Time,
			Time2:         v.Time2,
			TimeLabel:     v.TimeLabel(),
			ProfID:        v.ProfID,
			ProfName:      v.ProfName,
			ClientID:      v.ClientID,
			ClientName:    v.ClientName,
			ClientUnit:    v.ClientUnit,
			ClientGender:  string(v.ClientGender),
			Description:   v.Description,
			ManicureType:  string(v.ManicureType),
			ManicureLabel: v.ManicureType.Label(),
			PairID:        v.PairID,
			CreatedAt:     v.CreatedAt,
		}
	}
	return BookingDTO{}
}

func FromEntries(entries []booking.Entry) []BookingDTO {
	out := make([]BookingDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromEntry(e))
	}
	return out
}

func FromAppointments(aps []*booking.Appointment) []BookingDTO {
	out := make([]BookingDTO, 0, len(aps))
	for _, a := range aps {
		out = append(out, FromEntry(a))
	}
	return out
}
