package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"swiftship/internal/apperr"
	"swiftship/internal/domain"
)

// DriverRepo represents the driver directory.
type DriverRepo struct{ db *pgxpool.Pool }

// NewDriverRepo creates a new DriverRepo.
func NewDriverRepo(db *pgxpool.Pool) *DriverRepo { return &DriverRepo{db: db} }

const driverColumns = `id, name, email, phone, vehicle_type, vehicle_number,
    is_available, profile_status, address, license_number, gender, experience, ratings`

func scanDriver(row interface{ Scan(...any) error }) (*domain.Driver, error) {
	var (
		d       domain.Driver
		ratings []byte
	)
	err := row.Scan(&d.ID, &d.Name, &d.Email, &d.Phone, &d.VehicleType, &d.VehicleNumber,
		&d.IsAvailable, &d.ProfileStatus, &d.Address, &d.LicenseNumber, &d.Gender,
		&d.Experience, &ratings)
	if err != nil {
		return nil, err
	}
	if len(ratings) > 0 {
		if err := json.Unmarshal(ratings, &d.Ratings); err != nil {
			return nil, fmt.Errorf("decode ratings: %w", err)
		}
	}
	return &d, nil
}

// Create persists a new driver and returns its ID. Signup defaults apply:
// available, profile pending, no ratings.
func (r *DriverRepo) Create(ctx context.Context, d *domain.Driver) (string, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	_, err := r.db.Exec(ctx, `
        INSERT INTO drivers (id, name, email, phone, vehicle_type, vehicle_number,
                             is_available, profile_status, address, license_number,
                             gender, experience, ratings)
        VALUES ($1,$2,$3,$4,$5,$6,true,'Pending',$7,$8,$9,$10,'[]')
    `, d.ID, d.Name, d.Email, d.Phone, d.VehicleType, d.VehicleNumber,
		d.Address, d.LicenseNumber, d.Gender, d.Experience)
	if err != nil {
		if IsDuplicate(err) {
			return "", apperr.ErrConflict
		}
		return "", fmt.Errorf("create driver: %w", err)
	}
	return d.ID, nil
}

// GetByID returns a driver by ID, or nil when no driver matches.
func (r *DriverRepo) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx,
		`SELECT `+driverColumns+` FROM drivers WHERE id=$1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver %s: %w", id, err)
	}
	return d, nil
}

// FindAvailable is a read-only probe for an available driver with a
// completed profile and the given vehicle type. Ties break on lowest id.
func (r *DriverRepo) FindAvailable(ctx context.Context, vt domain.VehicleType) (*domain.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx, `
        SELECT `+driverColumns+`
        FROM drivers
        WHERE is_available AND vehicle_type=$1 AND profile_status='Complete'
        ORDER BY id
        LIMIT 1
    `, vt))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find available %s driver: %w", vt, err)
	}
	return d, nil
}

// SetAvailability flips the driver's own availability toggle. Returns true
// if a row was affected.
func (r *DriverRepo) SetAvailability(ctx context.Context, id string, available bool) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE drivers SET is_available=$2, updated_at=now() WHERE id=$1
    `, id, available)
	if err != nil {
		return false, fmt.Errorf("set driver %s availability: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// UpdateProfile applies a partial profile update and marks the profile
// Complete. Returns the updated driver, or nil when no row matched.
func (r *DriverRepo) UpdateProfile(ctx context.Context, u domain.PartialDriverProfile) (*domain.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx, `
        UPDATE drivers
        SET
            name           = COALESCE($2, name),
            address        = COALESCE($3, address),
            license_number = COALESCE($4, license_number),
            vehicle_type   = COALESCE($5, vehicle_type),
            vehicle_number = COALESCE($6, vehicle_number),
            phone          = COALESCE($7, phone),
            gender         = COALESCE($8, gender),
            experience     = COALESCE($9, experience),
            profile_status = 'Complete',
            updated_at     = now()
        WHERE id = $1
        RETURNING `+driverColumns+`
    `, u.ID, u.Name, u.Address, u.LicenseNumber, u.VehicleType, u.VehicleNumber,
		u.Phone, u.Gender, u.Experience))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		if IsDuplicate(err) {
			return nil, apperr.ErrConflict
		}
		return nil, fmt.Errorf("update driver %s profile: %w", u.ID, err)
	}
	return d, nil
}

// AddRating appends a rating to the driver's ratings list.
func (r *DriverRepo) AddRating(ctx context.Context, id string, rating domain.Rating) (bool, error) {
	buf, err := json.Marshal(rating)
	if err != nil {
		return false, fmt.Errorf("encode rating: %w", err)
	}
	ct, err := r.db.Exec(ctx, `
        UPDATE drivers
        SET ratings = ratings || $2::jsonb, updated_at = now()
        WHERE id = $1
    `, id, buf)
	if err != nil {
		return false, fmt.Errorf("add rating for driver %s: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}
