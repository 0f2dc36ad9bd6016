package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"swiftship/internal/apperr"
	"swiftship/internal/domain"
	"swiftship/internal/ports/bookingtx"
)

// BookingRepo represents the booking record store.
type BookingRepo struct {
	db *pgxpool.Pool
}

// NewBookingRepo creates a new BookingRepo.
func NewBookingRepo(db *pgxpool.Pool) *BookingRepo {
	return &BookingRepo{db: db}
}

const bookingColumns = `booking_id, user_id, status, date, amount, driver_earning,
    pickup_locations, drop_locations, items, driver, completion_date, service_plan`

type rowScanner interface{ Scan(...any) error }

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b       domain.Booking
		pickups []byte
		drops   []byte
		items   []byte
		driver  []byte
	)
	err := row.Scan(&b.BookingID, &b.UserID, &b.Status, &b.Date, &b.Amount, &b.DriverEarning,
		&pickups, &drops, &items, &driver, &b.CompletionDate, &b.ServicePlan)
	if err != nil {
		return nil, err
	}
	for _, dec := range []struct {
		raw []byte
		dst any
	}{
		{pickups, &b.PickupLocations},
		{drops, &b.DropLocations},
		{items, &b.Items},
		{driver, &b.Driver},
	} {
		if len(dec.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(dec.raw, dec.dst); err != nil {
			return nil, fmt.Errorf("decode booking document: %w", err)
		}
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	defer rows.Close()
	out := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// WithTx opens a transaction and executes fn within it.
func (r *BookingRepo) WithTx(ctx context.Context, fn func(tx bookingtx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	wrapped := &TxRepo{tx: tx}

	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// TxRepo is the booking store bound to a single transaction.
type TxRepo struct {
	tx pgx.Tx
}

// ClaimAvailableDriver atomically marks one available driver of the given
// vehicle type unavailable and returns their snapshot. The availability
// predicate lives in the same statement as the flip, so two concurrent
// bookings can never claim the same driver. Returns nil when no driver
// matches.
func (r *TxRepo) ClaimAvailableDriver(ctx context.Context, vt domain.VehicleType) (*domain.DriverSnapshot, error) {
	row := r.tx.QueryRow(ctx, `
        UPDATE drivers
        SET is_available = false, updated_at = now()
        WHERE id = (
            SELECT id FROM drivers
            WHERE is_available AND vehicle_type = $1 AND profile_status = 'Complete'
            ORDER BY id
            LIMIT 1
            FOR UPDATE SKIP LOCKED
        )
        RETURNING id, name, phone, vehicle_type, vehicle_number
    `, vt)

	var s domain.DriverSnapshot
	if err := row.Scan(&s.ID, &s.Name, &s.Phone, &s.VehicleType, &s.VehicleNumber); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("claim available %s driver: %w", vt, err)
	}
	return &s, nil
}

// InsertBooking persists a new booking document.
func (r *TxRepo) InsertBooking(ctx context.Context, b *domain.Booking) error {
	pickups, err := json.Marshal(b.PickupLocations)
	if err != nil {
		return fmt.Errorf("encode pickup locations: %w", err)
	}
	drops, err := json.Marshal(b.DropLocations)
	if err != nil {
		return fmt.Errorf("encode drop locations: %w", err)
	}
	items, err := json.Marshal(b.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	driver, err := json.Marshal(b.Driver)
	if err != nil {
		return fmt.Errorf("encode driver snapshot: %w", err)
	}

	_, err = r.tx.Exec(ctx, `
        INSERT INTO bookings (booking_id, user_id, status, date, amount, driver_earning,
                              pickup_locations, drop_locations, items, driver, driver_id,
                              completion_date, service_plan)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
    `, b.BookingID, b.UserID, b.Status, b.Date, b.Amount, b.DriverEarning,
		pickups, drops, items, driver, b.Driver.ID, b.CompletionDate, b.ServicePlan)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("insert booking %s: %w", b.BookingID, err)
	}
	return nil
}

// Insert persists a booking outside a transaction. Used by the
// client-supplied-driver path, which never touches the driver directory.
func (r *BookingRepo) Insert(ctx context.Context, b *domain.Booking) error {
	return r.WithTx(ctx, func(tx bookingtx.Repository) error {
		return tx.InsertBooking(ctx, b)
	})
}

// ListByUser returns all bookings created by a customer, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+bookingColumns+`
        FROM bookings
        WHERE user_id = $1
        ORDER BY date DESC
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings for user %s: %w", userID, err)
	}
	return collectBookings(rows)
}

// GetByBookingID returns a booking by its public ID, or nil when none matches.
func (r *BookingRepo) GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE booking_id = $1`, bookingID))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	return b, nil
}

// ListActiveByDriver returns Pending and In Transit bookings assigned to a
// driver, oldest first.
func (r *BookingRepo) ListActiveByDriver(ctx context.Context, driverID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+bookingColumns+`
        FROM bookings
        WHERE driver_id = $1 AND status IN ('Pending', 'In Transit')
        ORDER BY date ASC
    `, driverID)
	if err != nil {
		return nil, fmt.Errorf("list active bookings for driver %s: %w", driverID, err)
	}
	return collectBookings(rows)
}

// UpdateStatusByDriver applies a status transition scoped to the assigned
// driver. Terminal bookings never match, so a re-transition reports as a
// miss. Returns the updated booking, or nil when nothing matched.
func (r *BookingRepo) UpdateStatusByDriver(
	ctx context.Context,
	bookingID, driverID string,
	status domain.BookingStatus,
	completionDate *time.Time,
) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `
        UPDATE bookings
        SET status = $3,
            completion_date = COALESCE($4, completion_date),
            updated_at = now()
        WHERE booking_id = $1
          AND driver_id = $2
          AND status IN ('Pending', 'In Transit')
        RETURNING `+bookingColumns, bookingID, driverID, status, completionDate))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("update booking %s status: %w", bookingID, err)
	}
	return b, nil
}

// EarningsBetween sums driver earnings over bookings Delivered within the
// given completion window.
func (r *BookingRepo) EarningsBetween(ctx context.Context, driverID string, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `
        SELECT COALESCE(SUM(driver_earning), 0)
        FROM bookings
        WHERE driver_id = $1
          AND status = 'Delivered'
          AND completion_date BETWEEN $2 AND $3
    `, driverID, from, to).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum earnings for driver %s: %w", driverID, err)
	}
	return total, nil
}

// ListHistoryByDriver returns terminal bookings for a driver, most recently
// completed first.
func (r *BookingRepo) ListHistoryByDriver(ctx context.Context, driverID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+bookingColumns+`
        FROM bookings
        WHERE driver_id = $1 AND status IN ('Delivered', 'Cancelled')
        ORDER BY completion_date DESC NULLS LAST
    `, driverID)
	if err != nil {
		return nil, fmt.Errorf("list history for driver %s: %w", driverID, err)
	}
	return collectBookings(rows)
}

// DeleteHistoryByDriver bulk-deletes exactly the driver's terminal bookings.
// Active bookings are untouched. Irreversible.
func (r *BookingRepo) DeleteHistoryByDriver(ctx context.Context, driverID string) (int64, error) {
	ct, err := r.db.Exec(ctx, `
        DELETE FROM bookings
        WHERE driver_id = $1 AND status IN ('Delivered', 'Cancelled')
    `, driverID)
	if err != nil {
		return 0, fmt.Errorf("delete history for driver %s: %w", driverID, err)
	}
	return ct.RowsAffected(), nil
}

// CancelActive moves a still-active booking to Cancelled. Returns false when
// the booking does not exist or is already terminal.
func (r *BookingRepo) CancelActive(ctx context.Context, bookingID string) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE bookings
        SET status = 'Cancelled', updated_at = now()
        WHERE booking_id = $1 AND status IN ('Pending', 'In Transit')
    `, bookingID)
	if err != nil {
		return false, fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}
	return ct.RowsAffected() > 0, nil
}
