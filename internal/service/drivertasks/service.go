package drivertasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"swiftship/internal/apperr"
	"swiftship/internal/domain"
	"swiftship/internal/logx"
)

// Service serves the driver-facing task lifecycle: assigned work, status
// transitions, availability, stats and history.
type Service struct {
	bookings         bookingStore
	drivers          driverDirectory
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates and configures a driver task Service.
func NewService(b bookingStore, d driverDirectory, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		bookings:         b,
		drivers:          d,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Tasks returns the driver's active bookings (Pending, In Transit), oldest
// first.
func (s *Service) Tasks(ctx context.Context, driverID string) ([]domain.Booking, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.bookings.ListActiveByDriver(ctx, driverID)
}

// UpdateStatus moves one of the driver's bookings to In Transit or
// Delivered. Delivered stamps the completion date. A miss on the
// booking-plus-driver filter reports ErrNotFound whether the booking does
// not exist, is terminal, or belongs to another driver.
func (s *Service) UpdateStatus(ctx context.Context, driverID, bookingID string, status domain.BookingStatus) (*domain.Booking, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return nil, apperr.ErrInvalid
	}
	if !status.DriverSettable() {
		return nil, fmt.Errorf("%w: %q", apperr.ErrInvalidStatus, status)
	}

	var completionDate *time.Time
	if status == domain.StatusDelivered {
		now := s.now()
		completionDate = &now
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	b, err := s.bookings.UpdateStatusByDriver(ctx, bookingID, driverID, status, completionDate)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.ErrNotFound
	}

	s.logger.Info("task status updated",
		logx.String("event", "task_status_updated"),
		logx.String("booking_id", bookingID),
		logx.String("driver_id", driverID),
		logx.String("status", string(status)),
	)
	return b, nil
}

// SetAvailability is the driver's manual toggle. Nothing in the system ever
// re-enables a claimed driver automatically; this is the only path back.
func (s *Service) SetAvailability(ctx context.Context, driverID string, available bool) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.drivers.SetAvailability(ctx, driverID, available)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, apperr.ErrNotFound
	}
	return available, nil
}

// Stats derives the driver's dashboard numbers fresh per call: active task
// counts, earnings for deliveries completed today, and the average rating
// (default 5 with no ratings).
func (s *Service) Stats(ctx context.Context, driverID string) (domain.DriverStats, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	active, err := s.bookings.ListActiveByDriver(ctx, driverID)
	if err != nil {
		return domain.DriverStats{}, err
	}

	stats := domain.DriverStats{}
	for _, b := range active {
		switch b.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusInTransit:
			stats.InTransit++
		}
	}

	startOfDay, endOfDay := dayBounds(s.now())
	stats.EarningsToday, err = s.bookings.EarningsBetween(ctx, driverID, startOfDay, endOfDay)
	if err != nil {
		return domain.DriverStats{}, err
	}

	driver, err := s.drivers.GetByID(ctx, driverID)
	if err != nil {
		return domain.DriverStats{}, err
	}
	if driver == nil {
		return domain.DriverStats{}, apperr.ErrNotFound
	}
	stats.Rating = driver.AverageRating()

	return stats, nil
}

func dayBounds(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), now.Location())
	return start, end
}

// History returns the driver's terminal bookings, most recently completed
// first.
func (s *Service) History(ctx context.Context, driverID string) ([]domain.Booking, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.bookings.ListHistoryByDriver(ctx, driverID)
}

// ClearHistory bulk-deletes the driver's Delivered and Cancelled bookings.
// Active bookings are never touched.
func (s *Service) ClearHistory(ctx context.Context, driverID string) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	deleted, err := s.bookings.DeleteHistoryByDriver(ctx, driverID)
	if err != nil {
		return 0, err
	}
	s.logger.Info("ride history cleared",
		logx.String("driver_id", driverID),
		logx.Int64("deleted", deleted),
	)
	return deleted, nil
}

// UpdateProfile applies the driver's partial profile update and marks the
// profile Complete, making the driver eligible for matching.
func (s *Service) UpdateProfile(ctx context.Context, u domain.PartialDriverProfile) (*domain.Driver, error) {
	if strings.TrimSpace(u.ID) == "" {
		return nil, apperr.ErrInvalid
	}
	if u.VehicleType != nil && !u.VehicleType.Valid() {
		return nil, fmt.Errorf("%w: unknown vehicle type %q", apperr.ErrInvalid, *u.VehicleType)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	driver, err := s.drivers.UpdateProfile(ctx, u)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, apperr.ErrNotFound
	}
	return driver, nil
}

// FindAvailable is the public pre-booking probe: classify the items and
// look up one matching driver without claiming them.
func (s *Service) FindAvailable(ctx context.Context, items []domain.Item) (*domain.Driver, domain.VehicleType, error) {
	if len(items) == 0 {
		return nil, "", fmt.Errorf("%w: item list is required", apperr.ErrInvalid)
	}

	vt := domain.RequiredVehicleType(items)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	driver, err := s.drivers.FindAvailable(ctx, vt)
	if err != nil {
		return nil, vt, err
	}
	if driver == nil {
		return nil, vt, fmt.Errorf("%w: no available %s drivers found", apperr.ErrNotFound, vt)
	}
	return driver, vt, nil
}
