package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/generals-arena/tournament-api/internal/domain/game"
	"github.com/generals-arena/tournament-api/internal/domain/tournament"
	"github.com/generals-arena/tournament-api/internal/platform/cache"
	"github.com/generals-arena/tournament-api/internal/platform/logging"
)

const (
	defaultPollInterval = 10 * time.Second
	defaultPollWorkers  = 8
)

type DriverConfig struct {
	// PollInterval is the fixed delay between resolution attempts for
	// unresolved games.
	PollInterval time.Duration
	// Workers caps concurrent game resolutions per tick.
	Workers int
}

type TickResult struct {
	Games     int `json:"games"`
	Resolved  int `json:"resolved"`
	Pending   int `json:"pending"`
	Abandoned int `json:"abandoned"`
	Failed    int `json:"failed"`
}

// ResolutionDriver owns the retry timer the matcher itself deliberately does
// not have: it polls pending games on a fixed interval, fans each attempt out
// to a worker pool, persists the retry counter and deletes abandoned games.
type ResolutionDriver struct {
	tournamentRepo tournament.Repository
	gameRepo       game.Repository
	matcher        *MatcherService
	cacheStore     *cache.Store
	cfg            DriverConfig
	logger         *logging.Logger
}

func NewResolutionDriver(
	tournamentRepo tournament.Repository,
	gameRepo game.Repository,
	matcher *MatcherService,
	cacheStore *cache.Store,
	cfg DriverConfig,
	logger *logging.Logger,
) *ResolutionDriver {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultPollWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &ResolutionDriver{
		tournamentRepo: tournamentRepo,
		gameRepo:       gameRepo,
		matcher:        matcher,
		cacheStore:     cacheStore,
		cfg:            cfg,
		logger:         logger,
	}
}

// Run polls until ctx is cancelled.
func (d *ResolutionDriver) Run(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	d.logger.Info("resolution driver starting", "interval", d.cfg.PollInterval.String(), "workers", d.cfg.Workers)
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("resolution driver stopped")
			return
		case <-ticker.C:
			if _, err := d.Tick(ctx); err != nil {
				d.logger.ErrorContext(ctx, "resolution tick failed", "error", err)
			}
		}
	}
}

// Tick runs one resolution pass over every pending game of every tournament.
func (d *ResolutionDriver) Tick(ctx context.Context) (TickResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolutionDriver.Tick")
	defer span.End()

	tournaments, err := d.tournamentRepo.List(ctx)
	if err != nil {
		return TickResult{}, fmt.Errorf("list tournaments: %w", err)
	}
	return d.tick(ctx, tournaments)
}

// TickTournament runs one resolution pass over a single tournament's pending
// games, for operator-triggered runs.
func (d *ResolutionDriver) TickTournament(ctx context.Context, tournamentID string) (TickResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolutionDriver.TickTournament")
	defer span.End()

	t, exists, err := d.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return TickResult{}, fmt.Errorf("get tournament %s: %w", tournamentID, err)
	}
	if !exists {
		return TickResult{}, fmt.Errorf("%w: tournament %s", ErrNotFound, tournamentID)
	}
	return d.tick(ctx, []tournament.Tournament{t})
}

func (d *ResolutionDriver) tick(ctx context.Context, tournaments []tournament.Tournament) (TickResult, error) {
	pending := make([]game.Game, 0)
	for _, t := range tournaments {
		games, err := d.gameRepo.ListPendingByTournament(ctx, t.ID)
		if err != nil {
			return TickResult{}, fmt.Errorf("list pending games for %s: %w", t.ID, err)
		}
		pending = append(pending, games...)
	}

	result := TickResult{Games: len(pending)}
	if len(pending) == 0 {
		return result, nil
	}

	workerCount := d.cfg.Workers
	if workerCount > len(pending) {
		workerCount = len(pending)
	}
	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return TickResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var resolved, stillPending, abandoned, failed atomic.Int32
	var workers sync.WaitGroup

	for _, g := range pending {
		g := g
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			switch d.resolveOne(ctx, g) {
			case OutcomeResolved:
				resolved.Add(1)
			case OutcomeStillPending:
				stillPending.Add(1)
			case OutcomeAbandoned:
				abandoned.Add(1)
			case outcomeFailed:
				failed.Add(1)
			}
		}); err != nil {
			workers.Done()
			return TickResult{}, fmt.Errorf("submit game to worker pool: %w", err)
		}
	}
	workers.Wait()

	result.Resolved = int(resolved.Load())
	result.Pending = int(stillPending.Load())
	result.Abandoned = int(abandoned.Load())
	result.Failed = int(failed.Load())
	return result, nil
}

// outcomeFailed is driver-internal: an attempt errored and is left for the
// next tick. Nothing in the core propagates a fault past this point.
const outcomeFailed OutcomeKind = -1

func (d *ResolutionDriver) resolveOne(ctx context.Context, g game.Game) OutcomeKind {
	outcome, err := d.matcher.Resolve(ctx, g)
	if err != nil {
		d.logger.ErrorContext(ctx, "game resolution attempt failed",
			"tournament_id", g.TournamentID,
			"game_id", g.ID,
			"times_checked", g.TimesChecked,
			"error", err,
		)
		return outcomeFailed
	}

	switch outcome.Kind {
	case OutcomeResolved:
		// Points just landed on the leaderboard; drop the cached view so
		// readers see the new scores before the TTL expires.
		if d.cacheStore != nil {
			d.cacheStore.DeletePrefix(ctx, "leaderboard:"+g.TournamentID)
		}
	case OutcomeStillPending:
		if err := d.gameRepo.IncrementTimesChecked(ctx, g.TournamentID, g.ID); err != nil {
			d.logger.ErrorContext(ctx, "increment retry counter failed",
				"tournament_id", g.TournamentID,
				"game_id", g.ID,
				"error", err,
			)
		}
	case OutcomeAbandoned:
		// Retry ceiling reached: the game never produced a matching
		// replay and its record is removed.
		if err := d.gameRepo.Delete(ctx, g.TournamentID, g.ID); err != nil {
			d.logger.ErrorContext(ctx, "delete abandoned game failed",
				"tournament_id", g.TournamentID,
				"game_id", g.ID,
				"error", err,
			)
			return outcomeFailed
		}
		d.logger.WarnContext(ctx, "game abandoned after retry ceiling",
			"tournament_id", g.TournamentID,
			"game_id", g.ID,
			"times_checked", g.TimesChecked,
		)
	}
	return outcome.Kind
}
