package booking

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

type SlotState string

const (
	SlotAvailable              SlotState = "available"
	SlotOccupiedByProfessional SlotState = "occupied-by-professional"
	SlotOccupiedBySharedMaca   SlotState = "occupied-by-shared-resource"
	SlotGenderRestricted       SlotState = "occupied-by-gender-restriction"
	SlotInsufficientPair       SlotState = "insufficient-pair"
)

type SlotStatus struct {
	Time  string    `json:"time"`
	State SlotState `json:"state"`

	// PairTime is the second label of a bookable paired slot.
	PairTime string `json:"pair_time,omitempty"`
	// HeldBy is the client gender holding a gender-restricted slot.
	HeldBy Gender `json:"held_by,omitempty"`
}

func (s SlotStatus) Available() bool {
	return s.State == SlotAvailable
}

type ClassifyInput struct {
	Schedule     Schedule
	Professional Professional

	// RequesterGender is the gender of the resident asking for the slot.
	RequesterGender Gender
	Paired          bool

	// Entries are every record on the date, for all professionals.
	Entries []Entry
	// MacaProfIDs are the professionals sharing the reclined-service resource.
	MacaProfIDs map[string]bool
}

// Classify returns one status per schedule label, in schedule order.
func Classify(in ClassifyInput) []SlotStatus {
	byTime := indexByTime(in.Entries)

	labels := in.Schedule.Labels()
	out := make([]SlotStatus, 0, len(labels))
	for _, t := range labels {
		out = append(out, classifyAt(in, byTime, t))
	}
	return out
}

// CheckSlot classifies a single label.
func CheckSlot(in ClassifyInput, t string) (SlotStatus, error) {
	if !in.Schedule.Contains(t) {
		return SlotStatus{}, httperr.ErrBusiness("invalid_time")
	}
	return classifyAt(in, indexByTime(in.Entries), t), nil
}

func classifyAt(in ClassifyInput, byTime map[string][]Entry, t string) SlotStatus {
	st := SlotStatus{Time: t}
	here := byTime[t]
	profID := in.Professional.ID

	// 1. agenda do próprio profissional
	if ownsCell(here, profID) {
		st.State = SlotOccupiedByProfessional
		return st
	}

	// 2. maca compartilhada
	if in.Professional.Maca && macaTaken(here, profID, in.MacaProfIDs) {
		st.State = SlotOccupiedBySharedMaca
		return st
	}

	// 3. gênero
	if g, ok := oppositeGender(here, in.RequesterGender); ok {
		st.State = SlotGenderRestricted
		st.HeldBy = g
		return st
	}

	// 4. mão + pé precisa do horário seguinte
	if in.Paired {
		next, ok := in.Schedule.Next(t)
		if !ok {
			st.State = SlotInsufficientPair
			return st
		}
		nextEntries := byTime[next]
		if ownsCell(nextEntries, profID) {
			st.State = SlotInsufficientPair
			return st
		}
		if _, taken := oppositeGender(nextEntries, in.RequesterGender); taken {
			st.State = SlotInsufficientPair
			return st
		}
		st.PairTime = next
	}

	st.State = SlotAvailable
	return st
}

func indexByTime(entries []Entry) map[string][]Entry {
	out := make(map[string][]Entry, len(entries))
	for _, e := range entries {
		t := e.Cell().Time
		out[t] = append(out[t], e)
	}
	return out
}

func ownsCell(entries []Entry, profID string) bool {
	for _, e := range entries {
		if e.Cell().ProfID == profID {
			return true
		}
	}
	return false
}

func macaTaken(entries []Entry, profID string, macaProfs map[string]bool) bool {
	for _, e := range entries {
		ap, ok := e.(*Appointment)
		if !ok || ap.ProfID == profID {
			continue
		}
		if macaProfs[ap.ProfID] {
			return true
		}
	}
	return false
}

func oppositeGender(entries []Entry, g Gender) (Gender, bool) {
	for _, e := range entries {
		ap, ok := e.(*Appointment)
		if !ok {
			continue
		}
		if ap.ClientGender != g {
			return ap.ClientGender, true
		}
	}
	return "", false
}
