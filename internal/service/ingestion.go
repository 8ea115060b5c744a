// Package service wires the prediction engine to storage and the Riot API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/champ-predictor/internal/logger"
	"github.com/yourusername/champ-predictor/internal/metrics"
	"github.com/yourusername/champ-predictor/internal/models"
	"github.com/yourusername/champ-predictor/internal/repository"
	"github.com/yourusername/champ-predictor/internal/riot"
)

// MatchSource is the part of the Riot client the crawler needs
type MatchSource interface {
	GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error)
	GetMatch(ctx context.Context, matchID string) (*riot.MatchDTO, error)
}

// IngestionService crawls player match histories into the match store
type IngestionService struct {
	source     MatchSource
	matchRepo  repository.MatchRepository
	validator  *MatchValidator
	logger     *logger.IngestionLogger
	perPage    int
	skipQueues map[int32]bool
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(
	source MatchSource,
	matchRepo repository.MatchRepository,
	log *logrus.Logger,
	perPage int,
	skipQueues []int,
) *IngestionService {
	if perPage <= 0 {
		perPage = 20
	}

	skip := make(map[int32]bool, len(skipQueues))
	for _, q := range skipQueues {
		skip[int32(q)] = true
	}

	return &IngestionService{
		source:     source,
		matchRepo:  matchRepo,
		validator:  NewMatchValidator(),
		logger:     logger.NewIngestionLogger(log),
		perPage:    perPage,
		skipQueues: skip,
	}
}

// IngestPlayer stores the player's recent matches and returns the players met
// in them, which are candidates for the next crawl step.
func (s *IngestionService) IngestPlayer(ctx context.Context, puuid string, m *IngestionMetrics) ([]string, error) {
	ids, err := s.source.GetMatchIDs(ctx, puuid, s.perPage)
	if err != nil {
		m.add(func(m *IngestionMetrics) { m.Errors++ })
		return nil, err
	}

	var (
		discovered []string
		stored     int
		ignored    int
	)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return discovered, err
		}

		puuids, result, err := s.ingestMatch(ctx, id)
		metrics.RecordMatchIngested(result)
		discovered = append(discovered, puuids...)

		switch result {
		case "stored":
			stored++
			m.add(func(m *IngestionMetrics) { m.MatchesFetched++; m.MatchesStored++ })
		case "duplicate":
			m.add(func(m *IngestionMetrics) { m.Duplicates++ })
		case "ignored":
			ignored++
			m.add(func(m *IngestionMetrics) { m.MatchesFetched++; m.Ignored++ })
		case "invalid":
			ignored++
			m.add(func(m *IngestionMetrics) { m.MatchesFetched++; m.ValidationErrors++ })
		default:
			m.add(func(m *IngestionMetrics) { m.Errors++ })
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return discovered, err
			}
			s.logger.WithError(err).WithField("match_id", id).Warn("Failed to ingest match")
		}
	}

	m.add(func(m *IngestionMetrics) { m.PlayersCrawled++ })
	s.logger.LogPlayerCrawled(puuid, len(ids), stored, ignored)
	return discovered, nil
}

// ingestMatch returns the match participants and one of
// "stored", "duplicate", "ignored", "invalid" or "failed"
func (s *IngestionService) ingestMatch(ctx context.Context, matchID string) ([]string, string, error) {
	exists, err := s.matchRepo.Exists(ctx, matchID)
	if err != nil {
		return nil, "failed", err
	}
	if exists {
		return nil, "duplicate", nil
	}

	dto, err := s.source.GetMatch(ctx, matchID)
	if err != nil {
		return nil, "failed", err
	}
	puuids := dto.PUUIDs()

	if s.skipQueues[dto.Info.QueueID] {
		s.logger.LogMatchIgnored(matchID, fmt.Sprintf("queue %d is skipped", dto.Info.QueueID))
		return puuids, "ignored", nil
	}

	match, err := dto.ToMatch()
	if errors.Is(err, riot.ErrNoWinner) {
		s.logger.LogMatchIgnored(matchID, "no winning team")
		return puuids, "ignored", nil
	}
	if err != nil {
		s.logger.LogMatchIgnored(matchID, err.Error())
		return puuids, "invalid", nil
	}

	if problems := s.validator.Validate(match); len(problems) > 0 {
		s.logger.LogMatchIgnored(matchID, strings.Join(problems, "; "))
		return puuids, "invalid", nil
	}

	if err := s.matchRepo.Create(ctx, match); err != nil {
		if errors.Is(err, models.ErrDuplicateKey) {
			return puuids, "duplicate", nil
		}
		return puuids, "failed", err
	}

	s.logger.LogMatchStored(matchID, match.QueueID, string(match.WinningTeam))
	return puuids, "stored", nil
}

// Crawl walks outward from the seed players, visiting at most maxPlayers
// players. Each visited player's matches introduce new players to visit.
func (s *IngestionService) Crawl(ctx context.Context, seeds []string, maxPlayers int) (*IngestionMetrics, error) {
	m := NewIngestionMetrics()

	if len(seeds) == 0 {
		m.Finish()
		return m, fmt.Errorf("at least one seed player is required")
	}

	queue := append([]string(nil), seeds...)
	visited := make(map[string]bool)

	for len(queue) > 0 && len(visited) < maxPlayers {
		puuid := queue[0]
		queue = queue[1:]
		if visited[puuid] {
			continue
		}
		visited[puuid] = true

		discovered, err := s.IngestPlayer(ctx, puuid, m)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				m.Finish()
				return m, ctxErr
			}
			s.logger.WithError(err).WithField("puuid", puuid).Warn("Failed to crawl player")
			continue
		}

		for _, next := range discovered {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}

	m.Finish()
	s.logger.Infof("Crawl complete: %s", m)
	return m, nil
}
