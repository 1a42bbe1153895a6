package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/generals-arena/tournament-api/external/generals"
	"github.com/generals-arena/tournament-api/internal/config"
	"github.com/generals-arena/tournament-api/internal/domain/bracket"
	"github.com/generals-arena/tournament-api/internal/domain/game"
	"github.com/generals-arena/tournament-api/internal/domain/leaderboard"
	"github.com/generals-arena/tournament-api/internal/domain/replay"
	"github.com/generals-arena/tournament-api/internal/domain/tournament"
	"github.com/generals-arena/tournament-api/internal/infrastructure/repository/memory"
	"github.com/generals-arena/tournament-api/internal/infrastructure/repository/postgres"
	"github.com/generals-arena/tournament-api/internal/interfaces/httpapi"
	"github.com/generals-arena/tournament-api/internal/platform/cache"
	"github.com/generals-arena/tournament-api/internal/platform/logging"
	"github.com/generals-arena/tournament-api/internal/platform/resilience"
	"github.com/generals-arena/tournament-api/internal/usecase"
)

// App bundles the built service: the HTTP server, the background resolution
// driver, and the DB handle when postgres is configured.
type App struct {
	Server *http.Server
	Driver *usecase.ResolutionDriver
	DB     *sqlx.DB
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	zlogger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(zlogger)

	var (
		db             *sqlx.DB
		tournamentRepo tournament.Repository
		gameRepo       game.Repository
		playerRepo     leaderboard.Repository
		bracketRepo    bracket.Repository
		outcomeRepo    usecase.OutcomeRepository
	)

	if cfg.DBURL != "" {
		var err error
		db, err = openDB(cfg)
		if err != nil {
			return nil, err
		}
		tournamentRepo = postgres.NewTournamentRepository(db)
		gameRepo = postgres.NewGameRepository(db)
		playerRepo = postgres.NewLeaderboardRepository(db)
		bracketRepo = postgres.NewBracketRepository(db)
		outcomeRepo = postgres.NewOutcomeRepository(db)
		logger.Info("using postgres repositories")
	} else {
		store := memory.NewSeededStore()
		tournamentRepo = memory.NewTournamentRepository(store)
		gameRepo = memory.NewGameRepository(store)
		playerRepo = memory.NewLeaderboardRepository(store)
		bracketRepo = memory.NewBracketRepository(store)
		outcomeRepo = memory.NewOutcomeRepository(store)
		logger.Info("using in-memory repositories", "reason", "DB_URL empty")
	}

	feedClient := generals.NewClient(generals.ClientConfig{
		BaseURLs: map[replay.Server]string{
			replay.ServerNA:  cfg.FeedBaseURLNA,
			replay.ServerEU:  cfg.FeedBaseURLEU,
			replay.ServerBot: cfg.FeedBaseURLBot,
		},
		Timeout:    cfg.FeedTimeout,
		MaxRetries: cfg.FeedMaxRetries,
		Logger:     zlogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FeedCircuitEnabled,
			FailureThreshold: cfg.FeedCircuitFailureCount,
			OpenTimeout:      cfg.FeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FeedCircuitHalfOpenMax,
		},
	})

	var cacheStore *cache.Store
	if cfg.CacheEnabled {
		cacheStore = cache.NewStore(cfg.CacheTTL)
	}

	matcher := usecase.NewMatcherService(
		tournamentRepo,
		playerRepo,
		outcomeRepo,
		feedClient,
		usecase.MatcherConfig{
			MaxChecks:  cfg.ResolveMaxChecks,
			FetchCount: cfg.ResolveFetchCount,
		},
		zlogger,
	)
	driver := usecase.NewResolutionDriver(
		tournamentRepo,
		gameRepo,
		matcher,
		cacheStore,
		usecase.DriverConfig{
			PollInterval: cfg.ResolvePollInterval,
			Workers:      cfg.ResolveWorkers,
		},
		zlogger,
	)
	navigator := usecase.NewNavigatorService(zlogger)
	tournamentSvc := usecase.NewTournamentService(tournamentRepo, playerRepo, cacheStore)

	handler := httpapi.NewHandler(tournamentSvc, navigator, bracketRepo, driver, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		Server: server,
		Driver: driver,
		DB:     db,
	}, nil
}
