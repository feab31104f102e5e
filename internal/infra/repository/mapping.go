package repository

import (
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func toEntry(m models.Booking) booking.Entry {
	if m.Type == string(booking.KindBlock) {
		return &booking.Block{
			ID:          m.ID,
			Date:        m.Date,
			Time:        m.Time,
			ProfID:      m.ProfID,
			ProfName:    m.ProfName,
			Description: m.Description,
			CreatedAt:   m.CreatedAt,
		}
	}

	return &booking.Appointment{
		ID:           m.ID,
		Date:         m.Date,
		Time:         m.Time,
		Time2:        deref(m.Time2),
		ProfID:       m.ProfID,
		ProfName:     m.ProfName,
		ClientID:     deref(m.ClientID),
		ClientName:   deref(m.ClientName),
		ClientUnit:   deref(m.ClientUnit),
		ClientGender: booking.Gender(deref(m.ClientGender)),
		Description:  m.Description,
		ManicureType: booking.ManicureType(deref(m.ManicureType)),
		PairID:       deref(m.PairID),
		CreatedAt:    m.CreatedAt,
	}
}

func toEntries(rows []models.Booking) []booking.Entry {
	out := make([]booking.Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, toEntry(r))
	}
	return out
}

func toModel(e booking.Entry) models.Booking {
	switch v := e.(type) {
	case *booking.Block:
		return models.Booking{
			ID:          v.ID,
			Date:        v.Date,
			Time:        v.Time,
			ProfID:      v.ProfID,
			ProfName:    v.ProfName,
			Description: v.Description,
			Type:        string(booking.KindBlock),
		}
	case *booking.Appointment:
		return models.Booking{
			ID:           v.ID,
			Date:         v.Date,
			Time:         v.Time,
			Time2:        ptr(v.Time2),
			ProfID:       v.ProfID,
			ProfName:     v.ProfName,
			ClientID:     ptr(v.ClientID),
			ClientName:   ptr(v.ClientName),
			ClientUnit:   ptr(v.ClientUnit),
			ClientGender: ptr(string(v.ClientGender)),
			Description:  v.Description,
			Type:         string(booking.KindAppointment),
			ManicureType: ptr(string(v.ManicureType)),
			PairID:       ptr(v.PairID),
		}
	}
	panic("repository: unknown booking entry type")
}

func toProfessional(u models.User) booking.Professional {
	return booking.Professional{
		ID:          u.ID,
		Name:        u.Name,
		Gender:      booking.Gender(u.Gender),
		Description: u.Description,
		Maca:        u.Maca,
		Manicure:    u.Manicure,
	}
}

func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
