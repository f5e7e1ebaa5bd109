package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
	"github.com/rbe-dev-920/tce-serv/internal/repo"
)

// LineService implements business logic for lines, including the rule that
// the operating window is declared completely or not at all.
type LineService struct {
	lines      repo.LineRepo
	directions repo.DirectionRepo
}

// NewLineService constructs a LineService backed by the provided repos.
func NewLineService(lines repo.LineRepo, directions repo.DirectionRepo) *LineService {
	return &LineService{lines: lines, directions: directions}
}

// Create validates and persists a new line.
func (s *LineService) Create(ctx context.Context, l domain.Line) (domain.Line, error) {
	if err := validateLine(l); err != nil {
		return domain.Line{}, err
	}
	result, err := s.lines.Create(ctx, l)
	if err != nil {
		return domain.Line{}, fmt.Errorf("service.LineService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single line by ID.
func (s *LineService) GetByID(ctx context.Context, id uuid.UUID) (domain.Line, error) {
	result, err := s.lines.GetByID(ctx, id)
	if err != nil {
		return domain.Line{}, fmt.Errorf("service.LineService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns a page of lines plus a total count.
func (s *LineService) ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Line, int, error) {
	lines, total, err := s.lines.ListPaged(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("service.LineService.ListPaged: %w", err)
	}
	if lines == nil {
		lines = []domain.Line{}
	}
	return lines, total, nil
}

// Directions returns the directions of a line ordered by ordinal.
// Returns domain.ErrNotFound if the line does not exist.
func (s *LineService) Directions(ctx context.Context, lineID uuid.UUID) ([]domain.Direction, error) {
	if _, err := s.lines.GetByID(ctx, lineID); err != nil {
		return nil, fmt.Errorf("service.LineService.Directions: %w", err)
	}
	directions, err := s.directions.ListByLineID(ctx, lineID)
	if err != nil {
		return nil, fmt.Errorf("service.LineService.Directions: %w", err)
	}
	if directions == nil {
		directions = []domain.Direction{}
	}
	return directions, nil
}

// Update validates and overwrites an existing line.
// Trips already scheduled under the previous window are not re-checked.
func (s *LineService) Update(ctx context.Context, l domain.Line) (domain.Line, error) {
	if err := validateLine(l); err != nil {
		return domain.Line{}, err
	}
	result, err := s.lines.Update(ctx, l)
	if err != nil {
		return domain.Line{}, fmt.Errorf("service.LineService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a line by ID.
func (s *LineService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.lines.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.LineService.Delete: %w", err)
	}
	return nil
}

func validateLine(l domain.Line) error {
	if strings.TrimSpace(l.Code) == "" {
		return fmt.Errorf("%w: code is required", domain.ErrValidation)
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if (l.OperatingStart == nil) != (l.OperatingEnd == nil) {
		return fmt.Errorf("%w: operatingStart and operatingEnd must be set together", domain.ErrValidation)
	}
	return nil
}
