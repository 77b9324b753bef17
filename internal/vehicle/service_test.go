package vehicle

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository stores vehicles in memory and enforces the unique
// registration number, like the database constraint does.
type fakeRepository struct {
	vehicles       map[string]*Vehicle
	activeBookings map[string]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		vehicles:       make(map[string]*Vehicle),
		activeBookings: make(map[string]bool),
	}
}

func (r *fakeRepository) Create(ctx context.Context, v *Vehicle) error {
	for _, existing := range r.vehicles {
		if existing.RegistrationNumber == v.RegistrationNumber {
			return ErrRegistrationTaken
		}
	}
	v.ID = uuid.New().String()
	v.CreatedAt = time.Now()
	v.UpdatedAt = v.CreatedAt
	copied := *v
	r.vehicles[v.ID] = &copied
	return nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (r *fakeRepository) List(ctx context.Context) ([]*Vehicle, error) {
	var out []*Vehicle
	for _, v := range r.vehicles {
		copied := *v
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeRepository) Update(ctx context.Context, v *Vehicle) error {
	stored, ok := r.vehicles[v.ID]
	if !ok {
		return ErrNotFound
	}
	for id, existing := range r.vehicles {
		if id != v.ID && existing.RegistrationNumber == v.RegistrationNumber {
			return ErrRegistrationTaken
		}
	}
	*stored = *v
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeRepository) UpdatePhoto(ctx context.Context, id string, photoPath, thumbnailPath *string) error {
	v, ok := r.vehicles[id]
	if !ok {
		return ErrNotFound
	}
	v.PhotoPath = photoPath
	v.ThumbnailPath = thumbnailPath
	return nil
}

func (r *fakeRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.vehicles[id]; !ok {
		return ErrNotFound
	}
	delete(r.vehicles, id)
	return nil
}

func (r *fakeRepository) HasActiveBooking(ctx context.Context, id string) (bool, error) {
	return r.activeBookings[id], nil
}

// fakeStorage records saved blobs in memory.
type fakeStorage struct {
	files map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (s *fakeStorage) Save(ctx context.Context, path string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	s.files[path] = data
	return nil
}

func (s *fakeStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, ErrPhotoNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Delete(ctx context.Context, path string) error {
	delete(s.files, path)
	return nil
}

func newTestService() (Service, *fakeRepository, *fakeStorage) {
	repo := newFakeRepository()
	store := newFakeStorage()
	return NewService(repo, store), repo, store
}

func validCreateRequest() CreateRequest {
	return CreateRequest{
		VehicleName:        "Toyota Corolla",
		Type:               "car",
		RegistrationNumber: "ABC-123",
		DailyRentPrice:     50,
	}
}

func TestCreateVehicle(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a vehicle with default availability", func(t *testing.T) {
		svc, _, _ := newTestService()

		v, err := svc.Create(ctx, validCreateRequest())
		require.NoError(t, err)

		assert.NotEmpty(t, v.ID)
		assert.Equal(t, TypeCar, v.Type)
		assert.Equal(t, StatusAvailable, v.AvailabilityStatus)
		assert.Equal(t, 50.0, v.DailyRentPrice)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		svc, _, _ := newTestService()

		req := validCreateRequest()
		req.RegistrationNumber = "  "
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrRegistrationRequired)

		req = validCreateRequest()
		req.VehicleName = ""
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrNameRequired)

		req = validCreateRequest()
		req.Type = "boat"
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidType)

		req = validCreateRequest()
		req.AvailabilityStatus = "maybe"
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidStatus)

		req = validCreateRequest()
		req.DailyRentPrice = -1
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrNegativePrice)
	})

	t.Run("rejects duplicate registration numbers", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Create(ctx, validCreateRequest())
		require.NoError(t, err)

		req := validCreateRequest()
		req.VehicleName = "Another Corolla"
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrRegistrationTaken)
	})
}

func TestUpdateVehicle(t *testing.T) {
	ctx := context.Background()

	strPtr := func(s string) *string { return &s }
	floatPtr := func(f float64) *float64 { return &f }

	setup := func(t *testing.T) (Service, *Vehicle) {
		t.Helper()
		svc, _, _ := newTestService()
		v, err := svc.Create(ctx, validCreateRequest())
		require.NoError(t, err)
		return svc, v
	}

	t.Run("updates provided fields only", func(t *testing.T) {
		svc, v := setup(t)

		updated, err := svc.Update(ctx, v.ID, UpdateRequest{
			VehicleName:    strPtr("Toyota Corolla Hybrid"),
			DailyRentPrice: floatPtr(60),
		})
		require.NoError(t, err)

		assert.Equal(t, "Toyota Corolla Hybrid", updated.VehicleName)
		assert.Equal(t, 60.0, updated.DailyRentPrice)
		assert.Equal(t, "ABC-123", updated.RegistrationNumber)
	})

	t.Run("rejects invalid updates", func(t *testing.T) {
		svc, v := setup(t)

		_, err := svc.Update(ctx, v.ID, UpdateRequest{Type: strPtr("submarine")})
		assert.ErrorIs(t, err, ErrInvalidType)

		_, err = svc.Update(ctx, v.ID, UpdateRequest{DailyRentPrice: floatPtr(-5)})
		assert.ErrorIs(t, err, ErrNegativePrice)

		_, err = svc.Update(ctx, v.ID, UpdateRequest{AvailabilityStatus: strPtr("lost")})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Update(ctx, uuid.New().String(), UpdateRequest{VehicleName: strPtr("X")})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteVehicle(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes a vehicle without active bookings", func(t *testing.T) {
		svc, repo, _ := newTestService()
		v, err := svc.Create(ctx, validCreateRequest())
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, v.ID))
		_, ok := repo.vehicles[v.ID]
		assert.False(t, ok)
	})

	t.Run("refuses while a booking is active", func(t *testing.T) {
		svc, repo, _ := newTestService()
		v, err := svc.Create(ctx, validCreateRequest())
		require.NoError(t, err)
		repo.activeBookings[v.ID] = true

		err = svc.Delete(ctx, v.ID)
		assert.ErrorIs(t, err, ErrHasActiveBooking)
		_, ok := repo.vehicles[v.ID]
		assert.True(t, ok, "vehicle should survive a refused delete")
	})
}

func TestVehiclePhotos(t *testing.T) {
	ctx := context.Background()

	t.Run("photo lookup without an upload", func(t *testing.T) {
		svc, _, _ := newTestService()
		v, err := svc.Create(ctx, validCreateRequest())
		require.NoError(t, err)

		_, err = svc.Photo(ctx, v.ID)
		assert.ErrorIs(t, err, ErrPhotoNotFound)

		_, err = svc.Thumbnail(ctx, v.ID)
		assert.ErrorIs(t, err, ErrPhotoNotFound)
	})

	t.Run("streams a stored photo", func(t *testing.T) {
		svc, repo, store := newTestService()
		v, err := svc.Create(ctx, validCreateRequest())
		require.NoError(t, err)

		path := "vehicles/" + v.ID + "/photo.jpg"
		require.NoError(t, store.Save(ctx, path, bytes.NewReader([]byte("jpeg-bytes"))))
		require.NoError(t, repo.UpdatePhoto(ctx, v.ID, &path, nil))

		rc, err := svc.Photo(ctx, v.ID)
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, []byte("jpeg-bytes"), data)
	})
}
