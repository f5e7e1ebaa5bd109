package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
	"github.com/rbe-dev-920/tce-serv/internal/repo"
)

// DeviceService implements business logic for SAEIV devices.
type DeviceService struct {
	devices repo.DeviceRepo
}

// NewDeviceService constructs a DeviceService backed by the provided repo.
func NewDeviceService(devices repo.DeviceRepo) *DeviceService {
	return &DeviceService{devices: devices}
}

// Create validates and persists a new device. Status defaults to active.
func (s *DeviceService) Create(ctx context.Context, d domain.Device) (domain.Device, error) {
	if d.Status == "" {
		d.Status = domain.DeviceStatusActive
	}
	if err := validateDevice(d); err != nil {
		return domain.Device{}, err
	}
	result, err := s.devices.Create(ctx, d)
	if err != nil {
		return domain.Device{}, fmt.Errorf("service.DeviceService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single device by ID.
func (s *DeviceService) GetByID(ctx context.Context, id uuid.UUID) (domain.Device, error) {
	result, err := s.devices.GetByID(ctx, id)
	if err != nil {
		return domain.Device{}, fmt.Errorf("service.DeviceService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns a page of devices plus a total count.
func (s *DeviceService) ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Device, int, error) {
	devices, total, err := s.devices.ListPaged(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("service.DeviceService.ListPaged: %w", err)
	}
	if devices == nil {
		devices = []domain.Device{}
	}
	return devices, total, nil
}

// Update validates and overwrites an existing device.
func (s *DeviceService) Update(ctx context.Context, d domain.Device) (domain.Device, error) {
	if err := validateDevice(d); err != nil {
		return domain.Device{}, err
	}
	result, err := s.devices.Update(ctx, d)
	if err != nil {
		return domain.Device{}, fmt.Errorf("service.DeviceService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a device by ID.
func (s *DeviceService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.devices.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.DeviceService.Delete: %w", err)
	}
	return nil
}

func validateDevice(d domain.Device) error {
	if strings.TrimSpace(d.Serial) == "" {
		return fmt.Errorf("%w: serial is required", domain.ErrValidation)
	}
	if !d.Status.Valid() {
		return fmt.Errorf("%w: unknown device status %q", domain.ErrValidation, d.Status)
	}
	return nil
}
