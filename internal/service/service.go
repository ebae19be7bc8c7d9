package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/glekoz/uvsearch/internal/models"
	"github.com/glekoz/uvsearch/internal/repository"
)

type RepoAPI interface {
	FindByMinute(ctx context.Context, minute string) ([]map[string]any, error)
	LatestUV(ctx context.Context, location string) (*float64, error)
	Ping(ctx context.Context) error
}

type Service struct {
	repo   RepoAPI
	logger *slog.Logger
}

func New(repo RepoAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Search returns the observations recorded within the given minute. A key
// that cannot be parsed matches nothing, but storage must still be reachable
// for the empty result to be reported.
func (s *Service) Search(ctx context.Context, date, hour, minute string) ([]models.Observation, error) {
	key, err := models.ParseMinuteKey(date, hour, minute)
	if err != nil {
		s.logger.DebugContext(ctx, "unmatchable search key", slog.String("error", err.Error()))
		if err := s.repo.Ping(ctx); err != nil {
			return nil, err
		}
		return []models.Observation{}, nil
	}

	rows, err := s.repo.FindByMinute(ctx, key.String())
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", key, err)
	}

	observations := make([]models.Observation, 0, len(rows))
	for _, row := range rows {
		observations = append(observations, models.Observation(row))
	}
	s.logger.DebugContext(ctx, "search observations",
		slog.String("key", key.String()),
		slog.Int("matches", len(observations)),
	)

	return observations, nil
}

// LatestUV looks the location up as a suburb name or a postcode.
func (s *Service) LatestUV(ctx context.Context, location string) (models.UVReading, error) {
	if location == "" {
		return models.UVReading{}, ErrEmptyLocation
	}

	uv, err := s.repo.LatestUV(ctx, location)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.UVReading{}, ErrNotFound
		}
		return models.UVReading{}, err
	}

	return models.UVReading{Location: location, UVIndex: uv}, nil
}

func (s *Service) Health(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		s.logger.WarnContext(ctx, "health check failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}
