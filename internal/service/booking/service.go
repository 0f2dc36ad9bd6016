package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"swiftship/internal/apperr"
	"swiftship/internal/domain"
	"swiftship/internal/logx"
	"swiftship/internal/ports/bookingtx"
)

// driverCommission is the driver's fixed share of the booking amount,
// computed once at creation and never recomputed.
const driverCommission = 0.10

// bookingIDAttempts bounds insert retries on a booking-ID collision.
const bookingIDAttempts = 3

const defaultServicePlan = "standard"

// DriverInfo is a client-supplied driver for demo/mock booking flows. When
// present, the driver directory is not touched at all.
type DriverInfo struct {
	Name          string
	Phone         string
	VehicleType   domain.VehicleType
	VehicleNumber string
}

// CreateInput carries everything a customer submits to book a shipment.
type CreateInput struct {
	PickupLocations []domain.Location
	DropLocations   []domain.Location
	Items           []domain.Item
	Amount          float64
	ServicePlan     string
	DriverInfo      *DriverInfo
}

// Service orchestrates booking creation and customer reads.
type Service struct {
	bookings         bookingStore
	users            userDirectory
	operationTimeout time.Duration
	logger           logx.Logger
	created          counter
	now              func() time.Time
	newID            func() string
}

// NewService creates and configures a booking Service.
func NewService(b bookingStore, u userDirectory, timeout time.Duration, logger logx.Logger, created counter) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		bookings:         b,
		users:            u,
		operationTimeout: timeout,
		logger:           logger,
		created:          created,
		now:              func() time.Time { return time.Now().UTC() },
		newID:            NewBookingID,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateCreate(in *CreateInput) error {
	if len(in.PickupLocations) == 0 {
		return fmt.Errorf("%w: pickup locations are required", apperr.ErrInvalid)
	}
	if len(in.DropLocations) == 0 {
		return fmt.Errorf("%w: drop locations are required", apperr.ErrInvalid)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: item list is required", apperr.ErrInvalid)
	}
	if in.Amount <= 0 {
		return fmt.Errorf("%w: amount is required", apperr.ErrInvalid)
	}
	for _, loc := range append(append([]domain.Location{}, in.PickupLocations...), in.DropLocations...) {
		if strings.TrimSpace(loc.Address) == "" ||
			strings.TrimSpace(loc.Name) == "" ||
			strings.TrimSpace(loc.Phone) == "" {
			return fmt.Errorf("%w: each location needs address, name and phone", apperr.ErrInvalid)
		}
	}
	for _, item := range in.Items {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("%w: each item needs a name", apperr.ErrInvalid)
		}
		if item.PickupLocationIndex < 0 || item.PickupLocationIndex >= len(in.PickupLocations) {
			return fmt.Errorf("%w: item %q references an unknown pickup location", apperr.ErrInvalid, item.Name)
		}
		if item.DropLocationIndex < 0 || item.DropLocationIndex >= len(in.DropLocations) {
			return fmt.Errorf("%w: item %q references an unknown drop location", apperr.ErrInvalid, item.Name)
		}
	}
	if in.DriverInfo != nil && strings.TrimSpace(in.DriverInfo.Name) == "" {
		return fmt.Errorf("%w: supplied driver needs a name", apperr.ErrInvalid)
	}
	return nil
}

// Create books a shipment for a customer. With client-supplied driver info a
// fresh snapshot identifier is synthesized and the driver directory is left
// alone; otherwise one available driver of the required vehicle type is
// claimed and the booking inserted in the same transaction, so a failed
// insert never leaves a driver flipped unavailable.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*domain.Booking, error) {
	if err := validateCreate(&in); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	plan := in.ServicePlan
	if strings.TrimSpace(plan) == "" {
		plan = defaultServicePlan
	}

	b := &domain.Booking{
		UserID:          userID,
		Status:          domain.StatusPending,
		Date:            s.now(),
		Amount:          in.Amount,
		DriverEarning:   in.Amount * driverCommission,
		PickupLocations: in.PickupLocations,
		DropLocations:   in.DropLocations,
		Items:           in.Items,
		ServicePlan:     plan,
	}

	var err error
	if in.DriverInfo != nil {
		err = s.createWithSuppliedDriver(ctx, b, in.DriverInfo)
	} else {
		err = s.createWithClaimedDriver(ctx, b, domain.RequiredVehicleType(in.Items))
	}
	if err != nil {
		return nil, err
	}

	if s.created != nil {
		s.created.Inc()
	}
	s.logger.Info("booking created",
		logx.String("event", "booking_created"),
		logx.String("booking_id", b.BookingID),
		logx.String("driver_id", b.Driver.ID),
		logx.String("vehicle_type", string(b.Driver.VehicleType)),
		logx.Float64("amount", b.Amount),
	)
	return b, nil
}

func (s *Service) createWithSuppliedDriver(ctx context.Context, b *domain.Booking, info *DriverInfo) error {
	b.Driver = domain.DriverSnapshot{
		ID:            uuid.NewString(),
		Name:          info.Name,
		Phone:         info.Phone,
		VehicleType:   info.VehicleType,
		VehicleNumber: info.VehicleNumber,
	}
	return s.insertWithFreshID(ctx, b, func(ctx context.Context) error {
		return s.bookings.Insert(ctx, b)
	})
}

func (s *Service) createWithClaimedDriver(ctx context.Context, b *domain.Booking, vt domain.VehicleType) error {
	return s.insertWithFreshID(ctx, b, func(ctx context.Context) error {
		return s.bookings.WithTx(ctx, func(tx bookingtx.Repository) error {
			snap, err := tx.ClaimAvailableDriver(ctx, vt)
			if err != nil {
				return err
			}
			if snap == nil {
				return fmt.Errorf("%w: sorry, no available %s drivers found", apperr.ErrNoDriver, vt)
			}
			b.Driver = *snap
			return tx.InsertBooking(ctx, b)
		})
	})
}

// insertWithFreshID runs the insert path with a newly generated booking ID,
// regenerating on a unique-key conflict.
func (s *Service) insertWithFreshID(ctx context.Context, b *domain.Booking, insert func(context.Context) error) error {
	var err error
	for attempt := 1; attempt <= bookingIDAttempts; attempt++ {
		b.BookingID = s.newID()
		err = insert(ctx)
		if !errors.Is(err, apperr.ErrConflict) {
			return err
		}
		s.logger.Warn("booking id collision, regenerating",
			logx.String("booking_id", b.BookingID),
			logx.Int("attempt", attempt),
		)
	}
	return err
}

// ListForUser returns the customer's bookings, newest first.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.bookings.ListByUser(ctx, userID)
}

// GetByBookingID resolves a booking by its public ID along with the owning
// customer's display name.
func (s *Service) GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, string, error) {
	if strings.TrimSpace(bookingID) == "" {
		return nil, "", apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	b, err := s.bookings.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	if b == nil {
		return nil, "", apperr.ErrNotFound
	}

	customerName := ""
	if u, err := s.users.GetByID(ctx, b.UserID); err == nil && u != nil {
		customerName = u.Name
	}
	return b, customerName, nil
}
