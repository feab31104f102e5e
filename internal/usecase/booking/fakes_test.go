package booking

import (
	"context"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// memRepo keeps records in memory and mimics the transactional contract
// of the gorm repository: check runs against the current state and a
// rejected write leaves nothing behind.
type memRepo struct {
	mu      sync.Mutex
	profs   []domain.Professional
	entries []domain.Entry

	listFn func(ctx context.Context, f domain.ListFilter) ([]domain.Entry, error)
}

func (m *memRepo) GetProfessional(_ context.Context, id string) (domain.Professional, error) {
	for _, p := range m.profs {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Professional{}, httperr.ErrNotFound("professional_not_found")
}

func (m *memRepo) ListProfessionals(context.Context) ([]domain.Professional, error) {
	return m.profs, nil
}

func (m *memRepo) GetBooking(_ context.Context, id string) (domain.Entry, error) {
	for _, e := range m.entries {
		if e.EntryID() == id {
			return e, nil
		}
	}
	return nil, httperr.ErrNotFound("booking_not_found")
}

func (m *memRepo) ListBookingsForDate(ctx context.Context, date string) ([]domain.Entry, error) {
	return m.ListBookings(ctx, domain.ListFilter{Date: date})
}

func (m *memRepo) ListBookings(ctx context.Context, f domain.ListFilter) ([]domain.Entry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, f)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.Entry
	for _, e := range m.entries {
		c := e.Cell()
		if f.Date != "" && c.Date != f.Date {
			continue
		}
		if f.FromDate != "" && c.Date < f.FromDate {
			continue
		}
		if f.ProfID != "" && c.ProfID != f.ProfID {
			continue
		}
		if f.Kind != "" && e.Kind() != f.Kind {
			continue
		}
		if f.ClientID != "" {
			ap, ok := e.(*domain.Appointment)
			if !ok || ap.ClientID != f.ClientID {
				continue
			}
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *memRepo) CreateBookings(
	_ context.Context,
	date string,
	entries []domain.Entry,
	check func(domain.Snapshot) error,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var day []domain.Entry
	for _, e := range m.entries {
		if e.Cell().Date == date {
			day = append(day, e)
		}
	}

	if check != nil {
		if err := check(domain.Snapshot{Entries: day, MacaProfIDs: domain.MacaSet(m.profs)}); err != nil {
			return err
		}
	}

	taken := make(map[domain.Cell]bool)
	for _, e := range m.entries {
		taken[e.Cell()] = true
	}
	for _, e := range entries {
		if taken[e.Cell()] {
			return httperr.ErrConflict("slot_unavailable")
		}
		taken[e.Cell()] = true
	}

	m.entries = append(m.entries, entries...)
	return nil
}

func (m *memRepo) DeleteBooking(_ context.Context, id string, scope domain.DeleteScope) ([]domain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var target domain.Entry
	for _, e := range m.entries {
		if e.EntryID() == id {
			target = e
		}
	}
	if target == nil {
		return nil, httperr.ErrNotFound("booking_not_found")
	}
	if !scope.Allows(target) {
		return nil, httperr.ErrForbidden("not_owner")
	}

	pairID := ""
	if ap, ok := target.(*domain.Appointment); ok {
		pairID = ap.PairID
	}

	var kept, deleted []domain.Entry
	for _, e := range m.entries {
		ap, ok := e.(*domain.Appointment)
		if e.EntryID() == id || (pairID != "" && ok && ap.PairID == pairID) {
			deleted = append(deleted, e)
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept

	domain.SortUpcoming(deleted)
	return deleted, nil
}

type notifierSpy struct {
	mu   sync.Mutex
	sent map[string][]string
}

func (n *notifierSpy) Enqueue(recipientID, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sent == nil {
		n.sent = make(map[string][]string)
	}
	n.sent[recipientID] = append(n.sent[recipientID], text)
}

var fixedNow = time.Date(2030, 1, 9, 12, 0, 0, 0, time.UTC)

func testDeps(repo domain.Repository, n Notifier) Deps {
	return Deps{
		Repo:     repo,
		Schedule: domain.MustSchedule([]string{"08:00", "09:00", "10:00", "11:00", "12:00", "20:00", "21:00"}),
		Location: time.UTC,
		Notifier: n,
		Now:      func() time.Time { return fixedNow },
	}
}

var (
	ana = domain.Session{UserID: "res-ana", Name: "Ana", Unit: "101", Gender: domain.GenderFemale, Role: domain.RoleResident}
	bob = domain.Session{UserID: "res-bob", Name: "Bob", Unit: "202", Gender: domain.GenderMale, Role: domain.RoleResident}

	admin = domain.Session{UserID: "adm", Name: "Admin", Role: domain.RoleAdmin}

	carla = domain.Professional{ID: "prof-carla", Name: "Carla", Gender: domain.GenderFemale, Manicure: true}
	davi  = domain.Professional{ID: "prof-davi", Name: "Davi", Gender: domain.GenderMale, Maca: true}
	eva   = domain.Professional{ID: "prof-eva", Name: "Eva", Gender: domain.GenderFemale, Maca: true}
)

func sessionOf(p domain.Professional) domain.Session {
	return domain.Session{UserID: p.ID, Name: p.Name, Gender: p.Gender, Role: domain.RoleProfessional}
}

func newRepo() *memRepo {
	return &memRepo{profs: []domain.Professional{carla, davi, eva}}
}
