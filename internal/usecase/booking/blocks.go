package booking

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// ======================================================
// CREATE
// ======================================================

type CreateBlocks struct {
	deps Deps
}

func NewCreateBlocks(deps Deps) *CreateBlocks {
	return &CreateBlocks{deps: deps.withDefaults()}
}

func (uc *CreateBlocks) Execute(
	ctx context.Context,
	session domain.Session,
	date string,
	times []string,
) ([]domain.Entry, error) {

	if session.Role != domain.RoleProfessional {
		return nil, httperr.ErrForbidden("forbidden")
	}

	if err := uc.deps.checkDate(date); err != nil {
		return nil, err
	}

	labels, err := uc.uniqueLabels(times)
	if err != nil {
		return nil, err
	}

	prof, err := uc.deps.Repo.GetProfessional(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	entries := domain.PlanBlocks(prof, date, labels)

	// a própria agenda precisa estar livre; reservas de outros não importam
	err = uc.deps.Repo.CreateBookings(ctx, date, entries, func(snap domain.Snapshot) error {
		for _, e := range snap.Entries {
			c := e.Cell()
			if c.ProfID != prof.ID {
				continue
			}
			for _, t := range labels {
				if c.Time == t {
					return httperr.ErrConflict("slot_unavailable")
				}
			}
		}
		return nil
	})
	if err != nil {
		if httperr.KindOf(err) == httperr.KindConflict {
			uc.deps.Metrics.ObserveConflict("block_overlap")
		}
		return nil, err
	}

	uc.deps.Metrics.ObserveCreated(string(domain.KindBlock), false, len(entries))

	uc.deps.Audit.Dispatch(audit.Event{
		ActorID:  session.UserID,
		Action:   audit.ActionBlockCreated,
		Entity:   string(domain.KindBlock),
		EntityID: entries[0].EntryID(),
		Metadata: map[string]any{"date": date, "times": labels},
	})

	return entries, nil
}

func (uc *CreateBlocks) uniqueLabels(times []string) ([]string, error) {
	seen := make(map[string]bool, len(times))
	out := make([]string, 0, len(times))

	for _, t := range times {
		t = strings.TrimSpace(t)
		if !uc.deps.Schedule.Contains(t) {
			return nil, httperr.ErrBusiness("invalid_time")
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}

	if len(out) == 0 {
		return nil, httperr.ErrBusiness("times_required")
	}
	return out, nil
}

// ======================================================
// GRID
// ======================================================

type GridSlot struct {
	Time    string `json:"time"`
	Blocked bool   `json:"blocked"`
	// Booked is set when a resident already holds the cell.
	Booked  bool   `json:"booked"`
	EntryID string `json:"entry_id,omitempty"`
}

type BlockGrid struct {
	deps Deps
}

func NewBlockGrid(deps Deps) *BlockGrid {
	return &BlockGrid{deps: deps.withDefaults()}
}

// Execute returns one cell per label of date in the professional's agenda.
func (uc *BlockGrid) Execute(ctx context.Context, session domain.Session, date string) ([]GridSlot, error) {
	if session.Role != domain.RoleProfessional {
		return nil, httperr.ErrForbidden("forbidden")
	}
	if date == "" {
		return nil, httperr.ErrBusiness("date_required")
	}
	if _, err := parseDate(uc.deps, date); err != nil {
		return nil, err
	}

	entries, err := uc.deps.Repo.ListBookings(ctx, domain.ListFilter{ProfID: session.UserID, Date: date})
	if err != nil {
		return nil, err
	}

	byTime := make(map[string]domain.Entry, len(entries))
	for _, e := range entries {
		byTime[e.Cell().Time] = e
	}

	labels := uc.deps.Schedule.Labels()
	out := make([]GridSlot, 0, len(labels))
	for _, t := range labels {
		g := GridSlot{Time: t}
		if e, ok := byTime[t]; ok {
			g.EntryID = e.EntryID()
			g.Blocked = e.Kind() == domain.KindBlock
			g.Booked = e.Kind() == domain.KindAppointment
		}
		out = append(out, g)
	}
	return out, nil
}
