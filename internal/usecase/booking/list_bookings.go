package booking

import (
	"context"
	"sort"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// ======================================================
// OUTPUT
// ======================================================

type DayBlocks struct {
	Date   string
	Blocks []domain.Entry
}

type Listing struct {
	Upcoming []domain.Entry
	History  []domain.Entry

	// Blocks is only filled for professionals: upcoming blocks by date.
	Blocks []DayBlocks
}

// ======================================================
// USE CASE
// ======================================================

type ListBookings struct {
	deps Deps
}

func NewListBookings(deps Deps) *ListBookings {
	return &ListBookings{deps: deps.withDefaults()}
}

func (uc *ListBookings) Execute(ctx context.Context, session domain.Session) (*Listing, error) {
	f := domain.ListFilter{Kind: domain.KindAppointment}

	switch session.Role {
	case domain.RoleResident:
		f.ClientID = session.UserID
	case domain.RoleProfessional:
		f.ProfID = session.UserID
	case domain.RoleAdmin:
	default:
		return nil, httperr.ErrForbidden("forbidden")
	}

	appts, err := uc.deps.Repo.ListBookings(ctx, f)
	if err != nil {
		return nil, err
	}

	today := uc.deps.today()

	out := &Listing{}
	out.Upcoming, out.History = domain.SplitByDay(appts, today)

	if session.Role == domain.RoleProfessional {
		blocks, err := uc.deps.Repo.ListBookings(ctx, domain.ListFilter{
			ProfID:   session.UserID,
			Kind:     domain.KindBlock,
			FromDate: today,
		})
		if err != nil {
			return nil, err
		}
		out.Blocks = groupByDate(blocks)
	}

	return out, nil
}

func groupByDate(entries []domain.Entry) []DayBlocks {
	byDate := make(map[string][]domain.Entry)
	for _, e := range entries {
		d := e.Cell().Date
		byDate[d] = append(byDate[d], e)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]DayBlocks, 0, len(dates))
	for _, d := range dates {
		day := byDate[d]
		domain.SortUpcoming(day)
		out = append(out, DayBlocks{Date: d, Blocks: day})
	}
	return out
}
