package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
	"github.com/rbe-dev-920/tce-serv/internal/service"
)

func TestLineCreate_validation(t *testing.T) {
	svc := service.NewLineService(&lineRepoMock{}, &directionRepoMock{})
	open := domain.TimeOfDay(300)

	tests := []struct {
		name    string
		line    domain.Line
		wantMsg string
	}{
		{name: "missing code", line: domain.Line{Name: "Gare - Campus"}, wantMsg: "code is required"},
		{name: "missing name", line: domain.Line{Code: "A"}, wantMsg: "name is required"},
		{name: "half window", line: domain.Line{Code: "A", Name: "Gare - Campus", OperatingStart: &open}, wantMsg: "must be set together"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.line)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}

func TestLineDirections(t *testing.T) {
	lineID := uuid.New()

	t.Run("unknown line", func(t *testing.T) {
		lines := &lineRepoMock{
			getByIDFn: func(context.Context, uuid.UUID) (domain.Line, error) {
				return domain.Line{}, domain.ErrNotFound
			},
		}
		svc := service.NewLineService(lines, &directionRepoMock{})

		_, err := svc.Directions(context.Background(), lineID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("empty result is a non-nil slice", func(t *testing.T) {
		lines := &lineRepoMock{
			getByIDFn: func(context.Context, uuid.UUID) (domain.Line, error) {
				return domain.Line{ID: lineID}, nil
			},
		}
		directions := &directionRepoMock{
			listByLineIDFn: func(context.Context, uuid.UUID) ([]domain.Direction, error) {
				return nil, nil
			},
		}
		svc := service.NewLineService(lines, directions)

		got, err := svc.Directions(context.Background(), lineID)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
