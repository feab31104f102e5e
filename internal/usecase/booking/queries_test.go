package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

func TestAvailabilityPreview(t *testing.T) {
	repo := newRepo()
	repo.entries = []domain.Entry{
		&domain.Appointment{ID: "a1", Date: "2030-01-10", Time: "08:00", ProfID: davi.ID, ClientGender: domain.GenderMale},
		&domain.Block{ID: "b1", Date: "2030-01-10", Time: "10:00", ProfID: carla.ID},
	}
	uc := NewGetAvailability(testDeps(repo, nil))

	res, err := uc.Execute(context.Background(), ana, carla.ID, "2030-01-10", "both")
	require.NoError(t, err)
	assert.True(t, res.Paired)

	states := make(map[string]domain.SlotStatus)
	for _, s := range res.Slots {
		states[s.Time] = s
	}
	assert.Equal(t, domain.SlotGenderRestricted, states["08:00"].State)
	assert.Equal(t, domain.GenderMale, states["08:00"].HeldBy)
	assert.Equal(t, domain.SlotInsufficientPair, states["09:00"].State)
	assert.Equal(t, domain.SlotOccupiedByProfessional, states["10:00"].State)
	assert.Equal(t, "12:00", states["11:00"].PairTime)
	assert.Equal(t, domain.SlotInsufficientPair, states["21:00"].State)
}

func TestAvailabilitySurfacesReadErrors(t *testing.T) {
	repo := newRepo()
	repo.listFn = func(context.Context, domain.ListFilter) ([]domain.Entry, error) {
		return nil, errors.New("connection refused")
	}
	uc := NewGetAvailability(testDeps(repo, nil))

	_, err := uc.Execute(context.Background(), ana, carla.ID, "2030-01-10", "")
	assert.EqualError(t, err, "connection refused")

	_, err = uc.Execute(context.Background(), ana, carla.ID, "2030-01-01", "")
	assert.True(t, httperr.IsBusiness(err, "date_in_past"))
}

func TestListBookingsByRole(t *testing.T) {
	repo := newRepo()
	repo.entries = []domain.Entry{
		&domain.Appointment{ID: "p1", Date: "2030-01-10", Time: "09:00", Time2: "10:00", PairID: "x", ProfID: carla.ID, ClientID: ana.UserID},
		&domain.Appointment{ID: "p2", Date: "2030-01-10", Time: "10:00", PairID: "x", ProfID: carla.ID, ClientID: ana.UserID},
		&domain.Appointment{ID: "old", Date: "2030-01-02", Time: "08:00", ProfID: carla.ID, ClientID: ana.UserID},
		&domain.Appointment{ID: "older", Date: "2030-01-01", Time: "08:00", ProfID: davi.ID, ClientID: bob.UserID},
		&domain.Block{ID: "blk2", Date: "2030-01-12", Time: "08:00", ProfID: carla.ID},
		&domain.Block{ID: "blk1", Date: "2030-01-11", Time: "09:00", ProfID: carla.ID},
		&domain.Block{ID: "blk0", Date: "2030-01-05", Time: "09:00", ProfID: carla.ID},
	}
	uc := NewListBookings(testDeps(repo, nil))
	ctx := context.Background()

	mine, err := uc.Execute(ctx, ana)
	require.NoError(t, err)
	require.Len(t, mine.Upcoming, 1)
	assert.Equal(t, "p1", mine.Upcoming[0].EntryID())
	require.Len(t, mine.History, 1)
	assert.Nil(t, mine.Blocks)

	prof, err := uc.Execute(ctx, sessionOf(carla))
	require.NoError(t, err)
	assert.Len(t, prof.Upcoming, 1)
	require.Len(t, prof.Blocks, 2)
	assert.Equal(t, "2030-01-11", prof.Blocks[0].Date)
	assert.Equal(t, "2030-01-12", prof.Blocks[1].Date)

	all, err := uc.Execute(ctx, admin)
	require.NoError(t, err)
	require.Len(t, all.History, 2)
	assert.Equal(t, "old", all.History[0].EntryID())
	assert.Equal(t, "older", all.History[1].EntryID())

	again, err := uc.Execute(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, all, again)
}

func TestCreateBlocks(t *testing.T) {
	repo := newRepo()
	repo.entries = []domain.Entry{
		&domain.Appointment{ID: "a", Date: "2030-01-10", Time: "09:00", ProfID: davi.ID},
	}
	uc := NewCreateBlocks(testDeps(repo, nil))
	ctx := context.Background()

	out, err := uc.Execute(ctx, sessionOf(carla), "2030-01-10", []string{"09:00", "10:00", "09:00"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, domain.KindBlock, out[0].Kind())

	_, err = uc.Execute(ctx, sessionOf(carla), "2030-01-10", []string{"10:00", "11:00"})
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
	assert.Len(t, repo.entries, 3)

	_, err = uc.Execute(ctx, sessionOf(carla), "2030-01-10", []string{"07:00"})
	assert.True(t, httperr.IsBusiness(err, "invalid_time"))

	_, err = uc.Execute(ctx, sessionOf(carla), "2030-01-10", nil)
	assert.True(t, httperr.IsBusiness(err, "times_required"))

	_, err = uc.Execute(ctx, ana, "2030-01-10", []string{"12:00"})
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))

	grid, err := NewBlockGrid(testDeps(repo, nil)).Execute(ctx, sessionOf(carla), "2030-01-10")
	require.NoError(t, err)
	require.Len(t, grid, 7)
	assert.False(t, grid[0].Blocked)
	assert.True(t, grid[1].Blocked)
	assert.True(t, grid[2].Blocked)
}

func TestDayCalendarShowsPairOnce(t *testing.T) {
	repo := newRepo()
	seedPair(t, repo)
	repo.entries = append(repo.entries,
		&domain.Appointment{ID: "m", Date: "2030-01-10", Time: "09:00", ProfID: davi.ID, ClientGender: domain.GenderFemale},
		&domain.Block{ID: "b", Date: "2030-01-10", Time: "12:00", ProfID: eva.ID},
	)
	uc := NewDayCalendar(testDeps(repo, nil))

	rows, err := uc.Execute(context.Background(), admin, "2030-01-10")
	require.NoError(t, err)
	require.Len(t, rows, 7)

	byTime := make(map[string]CalendarRow)
	for _, r := range rows {
		byTime[r.Time] = r
	}

	require.Len(t, byTime["09:00"].Entries, 2)
	first := byTime["09:00"].Entries[0]
	ap, ok := first.Entry.(*domain.Appointment)
	require.True(t, ok)
	assert.Equal(t, "09:00+10:00", ap.TimeLabel())
	assert.False(t, first.Maca)
	assert.True(t, byTime["09:00"].Entries[1].Maca)

	assert.Empty(t, byTime["10:00"].Entries)
	assert.Len(t, byTime["12:00"].Entries, 1)

	_, err = uc.Execute(context.Background(), ana, "2030-01-10")
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))
}
