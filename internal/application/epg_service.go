package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alorle/tvdesk/internal/epg"
	"github.com/alorle/tvdesk/internal/metrics"
	"github.com/alorle/tvdesk/internal/port/driven"
)

// Schedule describes the programmes of one channel around the current time.
type Schedule struct {
	Current  *epg.Program  `json:"current"`
	Next     *epg.Program  `json:"next"`
	Programs []epg.Program `json:"programs"`
}

// EPGService loads XMLTV guides and answers schedule queries from the last
// loaded guide. The guide is persisted so that it survives restarts.
type EPGService struct {
	fetcher driven.EPGFetcher
	repo    driven.GuideRepository
	logger  *slog.Logger
	now     func() time.Time

	// persistMu pairs each repository write with the matching swap of
	// guide, so the stored and served guides never diverge.
	persistMu sync.Mutex

	mu    sync.RWMutex
	guide epg.Guide
}

// NewEPGService creates a new EPG service.
func NewEPGService(fetcher driven.EPGFetcher, repo driven.GuideRepository, logger *slog.Logger) *EPGService {
	return &EPGService{
		fetcher: fetcher,
		repo:    repo,
		logger:  logger,
		now:     time.Now,
		guide:   epg.NewGuide("", time.Time{}, nil),
	}
}

// Restore loads the persisted guide, if any.
func (s *EPGService) Restore(ctx context.Context) error {
	g, err := s.repo.Load(ctx)
	if errors.Is(err, epg.ErrGuideNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restoring guide: %w", err)
	}

	s.mu.Lock()
	s.guide = g
	s.mu.Unlock()

	s.logger.Info("guide restored", "url", g.URL, "fetched_at", g.FetchedAt, "channels", len(g.Programs))
	return nil
}

// Load fetches the guide at url for the given channel ids, replaces the
// current guide and persists it. On failure the current guide is kept.
func (s *EPGService) Load(ctx context.Context, url string, channelIDs []string) (epg.Guide, error) {
	url = strings.TrimSpace(url)
	now := s.now().UTC()

	s.logger.Info("loading guide", "url", url, "channels", len(channelIDs))

	g, err := s.fetcher.FetchGuide(ctx, url, channelIDs, now)
	metrics.RecordEPGLoad(err)
	if err != nil {
		s.logger.Error("failed to load guide", "url", url, "error", err)
		return epg.Guide{}, fmt.Errorf("loading guide: %w", err)
	}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if err := s.repo.Save(ctx, g); err != nil {
		s.logger.Error("failed to persist guide", "url", url, "error", err)
		return epg.Guide{}, fmt.Errorf("saving guide: %w", err)
	}

	s.mu.Lock()
	s.guide = g
	s.mu.Unlock()

	s.logger.Info("guide loaded", "url", url, "channels_with_programs", len(g.Programs))
	return g, nil
}

// Current returns the programme on air on channelID.
func (s *EPGService) Current(channelID string) (epg.Program, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.guide.Current(channelID, s.now().UTC())
}

// Next returns the programme following the current one on channelID.
func (s *EPGService) Next(channelID string) (epg.Program, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.guide.Next(channelID, s.now().UTC())
}

// Programs returns every known programme of channelID, oldest first.
func (s *EPGService) Programs(channelID string) []epg.Program {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.guide.ForChannel(channelID)
}

// Schedule combines Current, Next and Programs for channelID.
func (s *EPGService) Schedule(channelID string) Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now().UTC()
	sched := Schedule{Programs: s.guide.ForChannel(channelID)}
	if p, ok := s.guide.Current(channelID, now); ok {
		sched.Current = &p
	}
	if p, ok := s.guide.Next(channelID, now); ok {
		sched.Next = &p
	}
	return sched
}

// Guide returns the current guide.
func (s *EPGService) Guide() epg.Guide {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.guide
}

// Clear drops the current guide and its persisted copy.
func (s *EPGService) Clear(ctx context.Context) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clearing guide: %w", err)
	}

	s.mu.Lock()
	s.guide = epg.NewGuide("", time.Time{}, nil)
	s.mu.Unlock()

	s.logger.Info("guide cleared")
	return nil
}
