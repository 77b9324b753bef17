package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wheelhouse/car-rental-backend/internal/vehicle"
)

// Repository defines storage access for bookings. Create and Transition pair
// a booking write with a vehicle availability write; both must observe the
// two writes as one atomic unit.
type Repository interface {
	// Create inserts the booking and flips the vehicle to booked in one
	// transaction. The vehicle row is locked first; Create fills in the id,
	// total price, vehicle snapshot and timestamps.
	Create(ctx context.Context, b *Booking) error

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, error)

	// Transition moves the booking to the target status and, for terminal
	// targets, frees the vehicle, in one transaction. The terminal check is
	// re-run under lock so concurrent transitions cannot both apply.
	Transition(ctx context.Context, id string, to Status) (*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the vehicle row so a concurrent creation for the same vehicle
	// blocks until this transaction settles.
	const vehicleQuery = `
		SELECT vehicle_name, registration_number, daily_rent_price, availability_status
		FROM vehicles
		WHERE id = $1
		FOR UPDATE
	`

	var availability string
	err = tx.QueryRow(ctx, vehicleQuery, b.VehicleID).
		Scan(&b.VehicleName, &b.VehicleRegistration, &b.DailyRentPrice, &availability)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrVehicleNotFound
		}
		return fmt.Errorf("lock vehicle failed: %w", err)
	}

	if vehicle.AvailabilityStatus(availability) != vehicle.StatusAvailable {
		return ErrVehicleUnavailable
	}

	b.TotalPrice = Price(b.DailyRentPrice, DurationDays(b.RentStartDate, b.RentEndDate))

	const insertQuery = `
		INSERT INTO bookings (customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRow(ctx, insertQuery,
		b.CustomerID, b.VehicleID, b.RentStartDate, b.RentEndDate, b.TotalPrice, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert booking failed: %w", err)
	}

	const flipQuery = `
		UPDATE vehicles SET availability_status = 'booked', updated_at = now() WHERE id = $1
	`
	if _, err := tx.Exec(ctx, flipQuery, b.VehicleID); err != nil {
		return fmt.Errorf("mark vehicle booked failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	sql, args, err := selectBookings().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	query := selectBookings().OrderBy("b.created_at DESC")

	if filter.CustomerID != "" {
		query = query.Where(squirrel.Eq{"b.customer_id": filter.CustomerID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func (r *pgxRepository) Transition(ctx context.Context, id string, to Status) (*Booking, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transition tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	const lockQuery = `
		SELECT customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status, created_at
		FROM bookings
		WHERE id = $1
		FOR UPDATE
	`

	b := &Booking{ID: id}
	err = tx.QueryRow(ctx, lockQuery, id).Scan(
		&b.CustomerID, &b.VehicleID, &b.RentStartDate, &b.RentEndDate,
		&b.TotalPrice, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock booking failed: %w", err)
	}

	// Re-check under lock: a concurrent transition may have closed the
	// booking between the caller's read and this transaction.
	if b.Status.Terminal() {
		return nil, ErrAlreadyClosed
	}

	const updateQuery = `
		UPDATE bookings SET status = $1, updated_at = now() WHERE id = $2 RETURNING updated_at
	`
	if err := tx.QueryRow(ctx, updateQuery, to, id).Scan(&b.UpdatedAt); err != nil {
		return nil, fmt.Errorf("update booking status failed: %w", err)
	}
	b.Status = to

	// Both terminal states end the active rental and make the vehicle
	// bookable again.
	if to.Terminal() {
		const freeQuery = `
			UPDATE vehicles SET availability_status = 'available', updated_at = now() WHERE id = $1
		`
		if _, err := tx.Exec(ctx, freeQuery, b.VehicleID); err != nil {
			return nil, fmt.Errorf("free vehicle failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transition tx failed: %w", err)
	}

	// Re-read the joined view so the caller gets the customer and vehicle
	// snapshot, same as GetByID.
	return r.GetByID(ctx, id)
}

func selectBookings() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(
		"b.id", "b.customer_id", "u.name", "u.email",
		"b.vehicle_id", "v.vehicle_name", "v.registration_number", "v.daily_rent_price",
		"b.rent_start_date", "b.rent_end_date", "b.total_price", "b.status",
		"b.created_at", "b.updated_at",
	).
		From("bookings b").
		Join("users u ON b.customer_id = u.id").
		Join("vehicles v ON b.vehicle_id = v.id")
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.CustomerID, &b.CustomerName, &b.CustomerEmail,
		&b.VehicleID, &b.VehicleName, &b.VehicleRegistration, &b.DailyRentPrice,
		&b.RentStartDate, &b.RentEndDate, &b.TotalPrice, &b.Status,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}
