package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type CalendarEntry struct {
	Entry domain.Entry
	// Maca marks professionals that use the shared reclined chair.
	Maca bool
}

type CalendarRow struct {
	Time    string
	Entries []CalendarEntry
}

type DayCalendar struct {
	deps Deps
}

func NewDayCalendar(deps Deps) *DayCalendar {
	return &DayCalendar{deps: deps.withDefaults()}
}

// Execute lists every record of date under its time label. A paired
// appointment appears once, under its first label.
func (uc *DayCalendar) Execute(ctx context.Context, session domain.Session, date string) ([]CalendarRow, error) {
	if session.Role != domain.RoleProfessional && session.Role != domain.RoleAdmin {
		return nil, httperr.ErrForbidden("forbidden")
	}
	if date == "" {
		return nil, httperr.ErrBusiness("date_required")
	}
	if _, err := parseDate(uc.deps, date); err != nil {
		return nil, err
	}

	entries, err := uc.deps.Repo.ListBookingsForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	profs, err := uc.deps.Repo.ListProfessionals(ctx)
	if err != nil {
		return nil, err
	}
	maca := domain.MacaSet(profs)

	domain.SortUpcoming(entries)
	entries = domain.Dedup(entries)

	byTime := make(map[string][]CalendarEntry)
	for _, e := range entries {
		t := e.Cell().Time
		byTime[t] = append(byTime[t], CalendarEntry{Entry: e, Maca: maca[e.Cell().ProfID]})
	}

	labels := uc.deps.Schedule.Labels()
	out := make([]CalendarRow, 0, len(labels))
	for _, t := range labels {
		out = append(out, CalendarRow{Time: t, Entries: byTime[t]})
	}
	return out, nil
}

func parseDate(d Deps, date string) (time.Time, error) {
	t, err := timezone.ParseDate(date, d.Location)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date")
	}
	return t, nil
}
