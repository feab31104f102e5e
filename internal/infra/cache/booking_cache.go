package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
)

const (
	bookingsGenKey = "salon:bookings:gen"
	usersGenKey    = "salon:users:gen"
)

// BookingRepository caches the list reads of a booking.Repository in redis.
// Writes go straight to the wrapped repository and bump a generation
// counter, which orphans every cached list at once. A nil client turns
// the cache off.
type BookingRepository struct {
	next   booking.Repository
	client *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

func NewBookingRepository(
	next booking.Repository,
	client *redis.Client,
	ttl time.Duration,
	logger *logging.Logger,
) *BookingRepository {
	if logger == nil {
		logger = logging.Discard()
	}
	return &BookingRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *BookingRepository) enabled() bool {
	return r.client != nil && r.ttl > 0
}

// Invalidate drops every cached booking list.
func (r *BookingRepository) Invalidate(ctx context.Context) {
	r.bump(ctx, bookingsGenKey)
}

// InvalidateUsers drops the cached professionals list.
func (r *BookingRepository) InvalidateUsers(ctx context.Context) {
	r.bump(ctx, usersGenKey)
}

func (r *BookingRepository) bump(ctx context.Context, key string) {
	if !r.enabled() {
		return
	}
	if err := r.client.Incr(ctx, key).Err(); err != nil {
		r.logger.Warn("cache invalidate failed", "key", key, "error", err)
	}
}

// --------------------------------------------------
// Cached reads
// --------------------------------------------------

func (r *BookingRepository) ListProfessionals(ctx context.Context) ([]booking.Professional, error) {
	var out []booking.Professional
	key, hit := r.get(ctx, usersGenKey, "professionals", &out)
	if hit {
		return out, nil
	}

	out, err := r.next.ListProfessionals(ctx)
	if err != nil {
		return nil, err
	}
	r.set(ctx, key, out)
	return out, nil
}

func (r *BookingRepository) ListBookingsForDate(ctx context.Context, date string) ([]booking.Entry, error) {
	return r.ListBookings(ctx, booking.ListFilter{Date: date})
}

func (r *BookingRepository) ListBookings(ctx context.Context, f booking.ListFilter) ([]booking.Entry, error) {
	name := fmt.Sprintf("list:c=%s:p=%s:k=%s:d=%s:f=%s", f.ClientID, f.ProfID, f.Kind, f.Date, f.FromDate)

	var wire []wireEntry
	key, hit := r.get(ctx, bookingsGenKey, name, &wire)
	if hit {
		return fromWire(wire), nil
	}

	entries, err := r.next.ListBookings(ctx, f)
	if err != nil {
		return nil, err
	}
	r.set(ctx, key, toWire(entries))
	return entries, nil
}

// --------------------------------------------------
// Pass-through
// --------------------------------------------------

func (r *BookingRepository) GetProfessional(ctx context.Context, id string) (booking.Professional, error) {
	return r.next.GetProfessional(ctx, id)
}

func (r *BookingRepository) GetBooking(ctx context.Context, id string) (booking.Entry, error) {
	return r.next.GetBooking(ctx, id)
}

func (r *BookingRepository) CreateBookings(
	ctx context.Context,
	date string,
	entries []booking.Entry,
	check func(booking.Snapshot) error,
) error {
	if err := r.next.CreateBookings(ctx, date, entries, check); err != nil {
		return err
	}
	r.Invalidate(ctx)
	return nil
}

func (r *BookingRepository) DeleteBooking(
	ctx context.Context,
	id string,
	scope booking.DeleteScope,
) ([]booking.Entry, error) {
	deleted, err := r.next.DeleteBooking(ctx, id, scope)
	if err != nil {
		return nil, err
	}
	r.Invalidate(ctx)
	return deleted, nil
}

// --------------------------------------------------
// redis
// --------------------------------------------------

func (r *BookingRepository) key(ctx context.Context, genKey, name string) (string, error) {
	gen, err := r.client.Get(ctx, genKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d:%s", genKey, gen, name), nil
}

// get resolves the key for the current generation and reads it. The key
// is returned even on a miss so the caller fills exactly the generation it
// read from; a write landing in between leaves that key orphaned.
func (r *BookingRepository) get(ctx context.Context, genKey, name string, dst any) (string, bool) {
	if !r.enabled() {
		return "", false
	}

	key, err := r.key(ctx, genKey, name)
	if err != nil {
		r.logger.Warn("cache read failed", "name", name, "error", err)
		return "", false
	}

	raw, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return key, false
	}
	if err != nil {
		r.logger.Warn("cache read failed", "name", name, "error", err)
		return key, false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		r.logger.Warn("cache decode failed", "name", name, "error", err)
		return key, false
	}
	return key, true
}

func (r *BookingRepository) set(ctx context.Context, key string, v any) {
	if !r.enabled() || key == "" {
		return
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		r.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

// Compile-time check
var _ booking.Repository = (*BookingRepository)(nil)
