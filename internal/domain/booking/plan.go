package booking

import (
	"strings"

	"github.com/google/uuid"
)

const DefaultDescription = "Atendimento"

const BlockDescription = "Bloqueio Profissional"

type AppointmentPlan struct {
	Requester    Session
	Professional Professional
	Date         string
	Slot         SlotStatus
	Description  string
	ManicureType ManicureType
}

// PlanAppointment builds the records of one logical reservation: a single
// appointment, or two linked ones when the slot carries a PairTime.
func PlanAppointment(p AppointmentPlan) []Entry {
	desc := strings.TrimSpace(p.Description)
	if desc == "" {
		desc = DefaultDescription
	}

	base := Appointment{
		Date:         p.Date,
		ProfID:       p.Professional.ID,
		ProfName:     p.Professional.Name,
		ClientID:     p.Requester.UserID,
		ClientName:   p.Requester.Name,
		ClientUnit:   p.Requester.Unit,
		ClientGender: p.Requester.Gender,
		Description:  desc,
		ManicureType: p.ManicureType,
	}

	if p.Slot.PairTime == "" {
		single := base
		single.ID = uuid.NewString()
		single.Time = p.Slot.Time
		return []Entry{&single}
	}

	pairID := uuid.NewString()

	first := base
	first.ID = uuid.NewString()
	first.Time = p.Slot.Time
	first.Time2 = p.Slot.PairTime
	first.PairID = pairID

	second := base
	second.ID = uuid.NewString()
	second.Time = p.Slot.PairTime
	second.PairID = pairID

	return []Entry{&first, &second}
}

func PlanBlocks(prof Professional, date string, times []string) []Entry {
	out := make([]Entry, 0, len(times))
	for _, t := range times {
		out = append(out, &Block{
			ID:          uuid.NewString(),
			Date:        date,
			Time:        t,
			ProfID:      prof.ID,
			ProfName:    prof.Name,
			Description: BlockDescription,
		})
	}
	return out
}

// IsPairedService reports whether the requested service spans two slots.
func IsPairedService(prof Professional, mt ManicureType) bool {
	return prof.Manicure && mt == ManicureBoth
}
