package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func (r *BookingGormRepository) isPostgres(tx *gorm.DB) bool {
	return tx.Dialector.Name() == "postgres"
}

func (r *BookingGormRepository) forUpdate(tx *gorm.DB) *gorm.DB {
	if r.isPostgres(tx) {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// --------------------------------------------------
// Professionals
// --------------------------------------------------

func (r *BookingGormRepository) GetProfessional(
	ctx context.Context,
	id string,
) (booking.Professional, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, string(booking.RoleProfessional)).
		First(&u).Error; err != nil {
		return booking.Professional{}, translateRead(err, "professional_not_found")
	}
	return toProfessional(u), nil
}

func (r *BookingGormRepository) ListProfessionals(
	ctx context.Context,
) ([]booking.Professional, error) {

	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("role = ?", string(booking.RoleProfessional)).
		Order("name ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}

	out := make([]booking.Professional, 0, len(users))
	for _, u := range users {
		out = append(out, toProfessional(u))
	}
	return out, nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id string,
) (booking.Entry, error) {

	var row models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error; err != nil {
		return nil, translateRead(err, "booking_not_found")
	}
	return toEntry(row), nil
}

func (r *BookingGormRepository) ListBookingsForDate(
	ctx context.Context,
	date string,
) ([]booking.Entry, error) {
	return r.ListBookings(ctx, booking.ListFilter{Date: date})
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	f booking.ListFilter,
) ([]booking.Entry, error) {

	q := r.db.WithContext(ctx).Model(&models.Booking{})

	if f.ClientID != "" {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.ProfID != "" {
		q = q.Where("prof_id = ?", f.ProfID)
	}
	if f.Kind != "" {
		q = q.Where("type = ?", string(f.Kind))
	}
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}
	if f.FromDate != "" {
		q = q.Where("date >= ?", f.FromDate)
	}

	var rows []models.Booking
	if err := q.
		Order("date ASC").
		Order("time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return toEntries(rows), nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *BookingGormRepository) CreateBookings(
	ctx context.Context,
	date string,
	entries []booking.Entry,
	check func(booking.Snapshot) error,
) error {

	rows := make([]models.Booking, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, toModel(e))
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// serializa escritas do mesmo dia (gênero e maca cruzam profissionais)
		if r.isPostgres(tx) {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "bookings:"+date).Error; err != nil {
				return err
			}
		}

		snap, err := r.snapshot(tx, date)
		if err != nil {
			return err
		}

		if check != nil {
			if err := check(snap); err != nil {
				return err
			}
		}

		if err := tx.Create(&rows).Error; err != nil {
			return translateWrite(err, "slot_unavailable")
		}
		return nil
	})
}

func (r *BookingGormRepository) snapshot(tx *gorm.DB, date string) (booking.Snapshot, error) {
	var rows []models.Booking
	if err := tx.
		Where("date = ?", date).
		Order("time ASC").
		Find(&rows).Error; err != nil {
		return booking.Snapshot{}, err
	}

	var macaIDs []string
	if err := tx.Model(&models.User{}).
		Where("role = ? AND maca = ?", string(booking.RoleProfessional), true).
		Pluck("id", &macaIDs).Error; err != nil {
		return booking.Snapshot{}, err
	}

	set := make(map[string]bool, len(macaIDs))
	for _, id := range macaIDs {
		set[id] = true
	}

	return booking.Snapshot{Entries: toEntries(rows), MacaProfIDs: set}, nil
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	id string,
	scope booking.DeleteScope,
) ([]booking.Entry, error) {

	var deleted []models.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var row models.Booking
		if err := r.forUpdate(tx).Where("id = ?", id).First(&row).Error; err != nil {
			return translateRead(err, "booking_not_found")
		}

		if !scope.Allows(toEntry(row)) {
			return httperr.ErrForbidden("not_owner")
		}

		rows := []models.Booking{row}

		// o par é achado pelo pair_id, não pelo id recebido
		if row.PairID != nil {
			var siblings []models.Booking
			if err := r.forUpdate(tx).
				Where("pair_id = ? AND id <> ?", *row.PairID, row.ID).
				Find(&siblings).Error; err != nil {
				return err
			}
			rows = append(rows, siblings...)
		}

		ids := make([]string, 0, len(rows))
		for _, r := range rows {
			ids = append(ids, r.ID)
		}

		res := tx.Where("id IN ?", ids).Delete(&models.Booking{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(ids)) {
			// alguém apagou parte do par no meio do caminho
			return httperr.ErrNotFound("booking_not_found")
		}

		deleted = rows
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := toEntries(deleted)
	booking.SortUpcoming(out)
	return out, nil
}

// Compile-time check
var _ booking.Repository = (*BookingGormRepository)(nil)
