package booking

import "context"

// Snapshot is the state of one date as read inside a write transaction.
type Snapshot struct {
	Entries     []Entry
	MacaProfIDs map[string]bool
}

type ListFilter struct {
	ClientID string
	ProfID   string
	Kind     Kind
	Date     string
	FromDate string
}

// DeleteScope restricts which record a delete may touch. Empty fields
// mean no restriction.
type DeleteScope struct {
	ClientID string
	ProfID   string
	Kind     Kind
}

type Repository interface {
	// -------- Professionals --------
	GetProfessional(ctx context.Context, id string) (Professional, error)
	ListProfessionals(ctx context.Context) ([]Professional, error)

	// -------- Reads --------
	GetBooking(ctx context.Context, id string) (Entry, error)
	ListBookingsForDate(ctx context.Context, date string) ([]Entry, error)
	ListBookings(ctx context.Context, f ListFilter) ([]Entry, error)

	// -------- Writes --------

	// CreateBookings inserts every entry in one transaction, after check
	// accepted a fresh snapshot of date. A cell already taken is a conflict.
	CreateBookings(ctx context.Context, date string, entries []Entry, check func(Snapshot) error) error

	// DeleteBooking removes the record and its pair siblings atomically and
	// returns what was removed.
	DeleteBooking(ctx context.Context, id string, scope DeleteScope) ([]Entry, error)
}

// MacaSet returns the ids of professionals sharing the reclined-service resource.
func MacaSet(profs []Professional) map[string]bool {
	out := make(map[string]bool)
	for _, p := range profs {
		if p.Maca {
			out[p.ID] = true
		}
	}
	return out
}

// Allows reports whether e is inside the scope.
func (s DeleteScope) Allows(e Entry) bool {
	if s.Kind != "" && e.Kind() != s.Kind {
		return false
	}
	if s.ProfID != "" && e.Cell().ProfID != s.ProfID {
		return false
	}
	if s.ClientID != "" {
		ap, ok := e.(*Appointment)
		if !ok || ap.ClientID != s.ClientID {
			return false
		}
	}
	return true
}
