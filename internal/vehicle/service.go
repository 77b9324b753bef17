package vehicle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/wheelhouse/car-rental-backend/internal/pkg/storage"
)

// CreateRequest carries the fields needed to register a vehicle.
type CreateRequest struct {
	VehicleName        string
	Type               string
	RegistrationNumber string
	DailyRentPrice     float64
	AvailabilityStatus string
}

// UpdateRequest carries optional field updates for a vehicle.
type UpdateRequest struct {
	VehicleName        *string
	Type               *string
	RegistrationNumber *string
	DailyRentPrice     *float64
	AvailabilityStatus *string
}

// Service defines business logic for the vehicle directory.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Vehicle, error)
	List(ctx context.Context) ([]*Vehicle, error)
	GetByID(ctx context.Context, id string) (*Vehicle, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Vehicle, error)
	Delete(ctx context.Context, id string) error

	AttachPhoto(ctx context.Context, id string, header *multipart.FileHeader) (*Vehicle, error)
	Photo(ctx context.Context, id string) (io.ReadCloser, error)
	Thumbnail(ctx context.Context, id string) (io.ReadCloser, error)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
}

// NewService creates a new vehicle Service.
func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Vehicle, error) {
	if strings.TrimSpace(req.RegistrationNumber) == "" {
		return nil, ErrRegistrationRequired
	}
	if strings.TrimSpace(req.VehicleName) == "" {
		return nil, ErrNameRequired
	}
	if !Type(req.Type).Valid() {
		return nil, ErrInvalidType
	}
	status := AvailabilityStatus(req.AvailabilityStatus)
	if status == "" {
		status = StatusAvailable
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if req.DailyRentPrice < 0 {
		return nil, ErrNegativePrice
	}

	v := &Vehicle{
		VehicleName:        strings.TrimSpace(req.VehicleName),
		Type:               Type(req.Type),
		RegistrationNumber: strings.TrimSpace(req.RegistrationNumber),
		DailyRentPrice:     req.DailyRentPrice,
		AvailabilityStatus: status,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		if errors.Is(err, ErrRegistrationTaken) {
			return nil, ErrRegistrationTaken
		}
		log.Error().Err(err).Msg("failed to create vehicle")
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return v, nil
}

func (s *service) List(ctx context.Context) ([]*Vehicle, error) {
	return s.repo.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Vehicle, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.VehicleName != nil {
		if strings.TrimSpace(*req.VehicleName) == "" {
			return nil, ErrNameRequired
		}
		v.VehicleName = strings.TrimSpace(*req.VehicleName)
	}
	if req.Type != nil {
		if !Type(*req.Type).Valid() {
			return nil, ErrInvalidType
		}
		v.Type = Type(*req.Type)
	}
	if req.RegistrationNumber != nil {
		if strings.TrimSpace(*req.RegistrationNumber) == "" {
			return nil, ErrRegistrationRequired
		}
		v.RegistrationNumber = strings.TrimSpace(*req.RegistrationNumber)
	}
	if req.DailyRentPrice != nil {
		if *req.DailyRentPrice < 0 {
			return nil, ErrNegativePrice
		}
		v.DailyRentPrice = *req.DailyRentPrice
	}
	if req.AvailabilityStatus != nil {
		if !AvailabilityStatus(*req.AvailabilityStatus).Valid() {
			return nil, ErrInvalidStatus
		}
		v.AvailabilityStatus = AvailabilityStatus(*req.AvailabilityStatus)
	}

	if err := s.repo.Update(ctx, v); err != nil {
		if errors.Is(err, ErrRegistrationTaken) {
			return nil, ErrRegistrationTaken
		}
		log.Error().Err(err).Str("vehicle_id", id).Msg("failed to update vehicle")
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	return v, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	active, err := s.repo.HasActiveBooking(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check active bookings: %w", err)
	}
	if active {
		return ErrHasActiveBooking
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Best-effort cleanup of stored photos.
	if v.PhotoPath != nil {
		_ = s.storage.Delete(ctx, *v.PhotoPath)
	}
	if v.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *v.ThumbnailPath)
	}

	return nil
}

func (s *service) AttachPhoto(ctx context.Context, id string, header *multipart.FileHeader) (*Vehicle, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrUnsupportedPhotoFormat
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Buffer the upload so it can be read twice: once for the original,
	// once for the thumbnail.
	photoBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	photoID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))
	photoPath := fmt.Sprintf("vehicles/%s/%s%s", v.ID, photoID, ext)

	if err := s.storage.Save(ctx, photoPath, bytes.NewReader(photoBytes)); err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	var thumbnailPath *string
	thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(photoBytes), 200, 200)
	if err != nil {
		log.Warn().Err(err).Str("vehicle_id", v.ID).Msg("thumbnail generation failed")
	} else {
		tPath := fmt.Sprintf("vehicles/%s/%s_thumb.jpg", v.ID, photoID)
		if err := s.storage.Save(ctx, tPath, thumbReader); err == nil {
			thumbnailPath = &tPath
		}
	}

	oldPhoto, oldThumb := v.PhotoPath, v.ThumbnailPath
	v.PhotoPath = &photoPath
	v.ThumbnailPath = thumbnailPath

	if err := s.repo.UpdatePhoto(ctx, v.ID, v.PhotoPath, v.ThumbnailPath); err != nil {
		_ = s.storage.Delete(ctx, photoPath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	// Previous photo files are orphaned once the record points elsewhere.
	if oldPhoto != nil {
		_ = s.storage.Delete(ctx, *oldPhoto)
	}
	if oldThumb != nil {
		_ = s.storage.Delete(ctx, *oldThumb)
	}

	return v, nil
}

func (s *service) Photo(ctx context.Context, id string) (io.ReadCloser, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.PhotoPath == nil {
		return nil, ErrPhotoNotFound
	}
	return s.storage.Get(ctx, *v.PhotoPath)
}

func (s *service) Thumbnail(ctx context.Context, id string) (io.ReadCloser, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.ThumbnailPath == nil {
		return nil, ErrPhotoNotFound
	}
	return s.storage.Get(ctx, *v.ThumbnailPath)
}
