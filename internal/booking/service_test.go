package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelhouse/car-rental-backend/internal/auth"
	"github.com/wheelhouse/car-rental-backend/internal/user"
)

// fakeVehicle is the slice of vehicle state the booking repository touches.
type fakeVehicle struct {
	name      string
	reg       string
	dailyRate float64
	available bool
}

// fakeRepository implements Repository in memory, mirroring the transactional
// behavior of the pgx implementation: availability checks, booking writes and
// vehicle flips happen as one unit.
type fakeRepository struct {
	bookings map[string]*Booking
	vehicles map[string]*fakeVehicle
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		bookings: make(map[string]*Booking),
		vehicles: make(map[string]*fakeVehicle),
	}
}

func (r *fakeRepository) Create(ctx context.Context, b *Booking) error {
	v, ok := r.vehicles[b.VehicleID]
	if !ok {
		return ErrVehicleNotFound
	}
	if !v.available {
		return ErrVehicleUnavailable
	}

	b.ID = uuid.New().String()
	b.VehicleName = v.name
	b.VehicleRegistration = v.reg
	b.DailyRentPrice = v.dailyRate
	b.TotalPrice = Price(v.dailyRate, DurationDays(b.RentStartDate, b.RentEndDate))
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt

	v.available = false
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepository) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if filter.CustomerID != "" && b.CustomerID != filter.CustomerID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeRepository) Transition(ctx context.Context, id string, to Status) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	if b.Status.Terminal() {
		return nil, ErrAlreadyClosed
	}

	b.Status = to
	b.UpdatedAt = time.Now()
	if to.Terminal() {
		if v, ok := r.vehicles[b.VehicleID]; ok {
			v.available = true
		}
	}

	copied := *b
	return &copied, nil
}

// fakeUserService serves GetByID from a map; the booking service uses nothing
// else from the user module.
type fakeUserService struct {
	users map[string]*user.User
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserService) Register(ctx context.Context, req user.RegisterRequest) (*user.User, error) {
	panic("not used")
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (*user.User, error) {
	panic("not used")
}

func (f *fakeUserService) List(ctx context.Context) ([]*user.User, error) {
	panic("not used")
}

func (f *fakeUserService) Update(ctx context.Context, id string, req user.UpdateRequest) (*user.User, error) {
	panic("not used")
}

type fixture struct {
	repo    *fakeRepository
	svc     *service
	nowDate time.Time

	customer  *user.User
	admin     *user.User
	vehicleID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := newFakeRepository()
	customer := &user.User{
		ID:    uuid.New().String(),
		Name:  "Nora Renter",
		Email: "nora@example.com",
		Role:  auth.RoleCustomer,
	}
	admin := &user.User{
		ID:    uuid.New().String(),
		Name:  "Adam Admin",
		Email: "adam@example.com",
		Role:  auth.RoleAdmin,
	}
	users := &fakeUserService{users: map[string]*user.User{
		customer.ID: customer,
		admin.ID:    admin,
	}}

	vehicleID := uuid.New().String()
	repo.vehicles[vehicleID] = &fakeVehicle{
		name:      "Toyota Corolla",
		reg:       "ABC-123",
		dailyRate: 50,
		available: true,
	}

	nowDate := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	svc := &service{
		repo:  repo,
		users: users,
		now:   func() time.Time { return nowDate },
	}

	return &fixture{
		repo:      repo,
		svc:       svc,
		nowDate:   nowDate,
		customer:  customer,
		admin:     admin,
		vehicleID: vehicleID,
	}
}

func (f *fixture) createRequest() CreateRequest {
	return CreateRequest{
		CustomerID:    f.customer.ID,
		VehicleID:     f.vehicleID,
		RentStartDate: "2026-09-10",
		RentEndDate:   "2026-09-13",
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("customer books an available vehicle", func(t *testing.T) {
		f := newFixture(t)

		b, err := f.svc.Create(ctx, f.customer.Identity(), f.createRequest())
		require.NoError(t, err)

		assert.Equal(t, StatusActive, b.Status)
		assert.Equal(t, f.customer.ID, b.CustomerID)
		assert.Equal(t, "Toyota Corolla", b.VehicleName)
		// 3 days at 50 per day, fixed at creation.
		assert.Equal(t, 150.0, b.TotalPrice)
		assert.False(t, f.repo.vehicles[f.vehicleID].available, "vehicle should flip to booked")
	})

	t.Run("admin books on behalf of a customer", func(t *testing.T) {
		f := newFixture(t)

		b, err := f.svc.Create(ctx, f.admin.Identity(), f.createRequest())
		require.NoError(t, err)
		assert.Equal(t, f.customer.ID, b.CustomerID)
	})

	t.Run("missing fields are reported in a fixed order", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(ctx, f.customer.Identity(), CreateRequest{})
		assert.ErrorIs(t, err, ErrCustomerIDRequired)

		_, err = f.svc.Create(ctx, f.customer.Identity(), CreateRequest{CustomerID: f.customer.ID})
		assert.ErrorIs(t, err, ErrVehicleIDRequired)

		_, err = f.svc.Create(ctx, f.customer.Identity(), CreateRequest{
			CustomerID: f.customer.ID,
			VehicleID:  f.vehicleID,
		})
		assert.ErrorIs(t, err, ErrStartDateRequired)

		_, err = f.svc.Create(ctx, f.customer.Identity(), CreateRequest{
			CustomerID:    f.customer.ID,
			VehicleID:     f.vehicleID,
			RentStartDate: "2026-09-10",
		})
		assert.ErrorIs(t, err, ErrEndDateRequired)
	})

	t.Run("unknown customer", func(t *testing.T) {
		f := newFixture(t)

		req := f.createRequest()
		req.CustomerID = uuid.New().String()

		_, err := f.svc.Create(ctx, f.admin.Identity(), req)
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})

	t.Run("malformed customer id reads as unknown customer", func(t *testing.T) {
		f := newFixture(t)

		req := f.createRequest()
		req.CustomerID = "not-a-uuid"

		_, err := f.svc.Create(ctx, f.admin.Identity(), req)
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})

	t.Run("unknown customer wins over malformed dates", func(t *testing.T) {
		f := newFixture(t)

		req := f.createRequest()
		req.CustomerID = uuid.New().String()
		req.RentStartDate = "not-a-date"

		_, err := f.svc.Create(ctx, f.admin.Identity(), req)
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})

	t.Run("admin account cannot be the renter", func(t *testing.T) {
		f := newFixture(t)

		req := f.createRequest()
		req.CustomerID = f.admin.ID

		_, err := f.svc.Create(ctx, f.admin.Identity(), req)
		assert.ErrorIs(t, err, ErrAdminRenter)
	})

	t.Run("customer cannot book for someone else", func(t *testing.T) {
		f := newFixture(t)

		other := auth.Identity{ID: uuid.New().String(), Role: auth.RoleCustomer}

		_, err := f.svc.Create(ctx, other, f.createRequest())
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("malformed dates", func(t *testing.T) {
		f := newFixture(t)

		req := f.createRequest()
		req.RentStartDate = "10/09/2026"
		_, err := f.svc.Create(ctx, f.customer.Identity(), req)
		assert.ErrorIs(t, err, ErrInvalidStartDate)

		req = f.createRequest()
		req.RentEndDate = "sometime"
		_, err = f.svc.Create(ctx, f.customer.Identity(), req)
		assert.ErrorIs(t, err, ErrInvalidEndDate)
	})

	t.Run("end date must be after start date", func(t *testing.T) {
		f := newFixture(t)

		req := f.createRequest()
		req.RentEndDate = req.RentStartDate
		_, err := f.svc.Create(ctx, f.customer.Identity(), req)
		assert.ErrorIs(t, err, ErrInvalidDateRange)

		req = f.createRequest()
		req.RentStartDate, req.RentEndDate = req.RentEndDate, req.RentStartDate
		_, err = f.svc.Create(ctx, f.customer.Identity(), req)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		f := newFixture(t)

		req := f.createRequest()
		req.VehicleID = uuid.New().String()

		_, err := f.svc.Create(ctx, f.customer.Identity(), req)
		assert.ErrorIs(t, err, ErrVehicleNotFound)
	})

	t.Run("vehicle already booked", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(ctx, f.customer.Identity(), f.createRequest())
		require.NoError(t, err)

		_, err = f.svc.Create(ctx, f.customer.Identity(), f.createRequest())
		assert.ErrorIs(t, err, ErrVehicleUnavailable)
	})
}

func TestUpdateBookingStatus(t *testing.T) {
	ctx := context.Background()

	create := func(t *testing.T, f *fixture) *Booking {
		t.Helper()
		b, err := f.svc.Create(ctx, f.customer.Identity(), f.createRequest())
		require.NoError(t, err)
		return b
	}

	t.Run("admin marks booking returned and frees the vehicle", func(t *testing.T) {
		f := newFixture(t)
		b := create(t, f)

		updated, err := f.svc.UpdateStatus(ctx, f.admin.Identity(), b.ID, "returned")
		require.NoError(t, err)

		assert.Equal(t, StatusReturned, updated.Status)
		assert.True(t, f.repo.vehicles[f.vehicleID].available)
	})

	t.Run("owner cancels before the rental starts and frees the vehicle", func(t *testing.T) {
		f := newFixture(t)
		b := create(t, f)

		updated, err := f.svc.UpdateStatus(ctx, f.customer.Identity(), b.ID, "cancelled")
		require.NoError(t, err)

		assert.Equal(t, StatusCancelled, updated.Status)
		assert.True(t, f.repo.vehicles[f.vehicleID].available)
	})

	t.Run("cancellation is rejected once the rental period has begun", func(t *testing.T) {
		f := newFixture(t)
		b := create(t, f)

		// Same calendar day as the rental start.
		f.svc.now = func() time.Time { return time.Date(2026, 9, 10, 0, 5, 0, 0, time.UTC) }
		_, err := f.svc.UpdateStatus(ctx, f.customer.Identity(), b.ID, "cancelled")
		assert.ErrorIs(t, err, ErrCancelTooLate)

		// Mid-rental.
		f.svc.now = func() time.Time { return time.Date(2026, 9, 11, 12, 0, 0, 0, time.UTC) }
		_, err = f.svc.UpdateStatus(ctx, f.customer.Identity(), b.ID, "cancelled")
		assert.ErrorIs(t, err, ErrCancelTooLate)

		assert.False(t, f.repo.vehicles[f.vehicleID].available, "vehicle must stay booked")
	})

	t.Run("returns stay legal after the rental starts", func(t *testing.T) {
		f := newFixture(t)
		b := create(t, f)

		f.svc.now = func() time.Time { return time.Date(2026, 9, 12, 8, 0, 0, 0, time.UTC) }
		updated, err := f.svc.UpdateStatus(ctx, f.admin.Identity(), b.ID, "returned")
		require.NoError(t, err)
		assert.Equal(t, StatusReturned, updated.Status)
	})

	t.Run("only admins may mark a booking returned", func(t *testing.T) {
		f := newFixture(t)
		b := create(t, f)

		_, err := f.svc.UpdateStatus(ctx, f.customer.Identity(), b.ID, "returned")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admins may not cancel on behalf of the customer", func(t *testing.T) {
		f := newFixture(t)
		b := create(t, f)

		_, err := f.svc.UpdateStatus(ctx, f.admin.Identity(), b.ID, "cancelled")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("an unrelated customer may not touch the booking", func(t *testing.T) {
		f := newFixture(t)
		b := create(t, f)

		stranger := auth.Identity{ID: uuid.New().String(), Role: auth.RoleCustomer}
		_, err := f.svc.UpdateStatus(ctx, stranger, b.ID, "cancelled")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("terminal bookings permit no further transitions", func(t *testing.T) {
		f := newFixture(t)
		b := create(t, f)

		_, err := f.svc.UpdateStatus(ctx, f.admin.Identity(), b.ID, "returned")
		require.NoError(t, err)

		_, err = f.svc.UpdateStatus(ctx, f.admin.Identity(), b.ID, "returned")
		assert.ErrorIs(t, err, ErrAlreadyClosed)

		_, err = f.svc.UpdateStatus(ctx, f.customer.Identity(), b.ID, "cancelled")
		assert.ErrorIs(t, err, ErrAlreadyClosed)
	})

	t.Run("status value validation", func(t *testing.T) {
		f := newFixture(t)
		b := create(t, f)

		_, err := f.svc.UpdateStatus(ctx, f.admin.Identity(), b.ID, "")
		assert.ErrorIs(t, err, ErrStatusRequired)

		_, err = f.svc.UpdateStatus(ctx, f.admin.Identity(), b.ID, "completed")
		assert.ErrorIs(t, err, ErrInvalidStatus)

		_, err = f.svc.UpdateStatus(ctx, f.admin.Identity(), b.ID, "active")
		assert.ErrorIs(t, err, ErrAlreadyActive)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.UpdateStatus(ctx, f.admin.Identity(), uuid.New().String(), "returned")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListBookings(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t)

	// A second customer with their own vehicle and booking.
	other := &user.User{
		ID:    uuid.New().String(),
		Name:  "Omar Other",
		Email: "omar@example.com",
		Role:  auth.RoleCustomer,
	}
	f.svc.users.(*fakeUserService).users[other.ID] = other

	otherVehicleID := uuid.New().String()
	f.repo.vehicles[otherVehicleID] = &fakeVehicle{
		name: "Honda CB500", reg: "XYZ-789", dailyRate: 25, available: true,
	}

	_, err := f.svc.Create(ctx, f.customer.Identity(), f.createRequest())
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, other.Identity(), CreateRequest{
		CustomerID:    other.ID,
		VehicleID:     otherVehicleID,
		RentStartDate: "2026-09-15",
		RentEndDate:   "2026-09-16",
	})
	require.NoError(t, err)

	t.Run("customers see only their own bookings", func(t *testing.T) {
		list, err := f.svc.List(ctx, f.customer.Identity())
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, f.customer.ID, list[0].CustomerID)
	})

	t.Run("admins see all bookings", func(t *testing.T) {
		list, err := f.svc.List(ctx, f.admin.Identity())
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})
}
