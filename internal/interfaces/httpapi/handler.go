package httpapi

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/generals-arena/tournament-api/internal/domain/bracket"
	"github.com/generals-arena/tournament-api/internal/usecase"
)

type Handler struct {
	tournamentService *usecase.TournamentService
	navigator         *usecase.NavigatorService
	bracketRepo       bracket.Repository
	driver            *usecase.ResolutionDriver
	logger            *slog.Logger
	validator         *validator.Validate
}

func NewHandler(
	tournamentService *usecase.TournamentService,
	navigator *usecase.NavigatorService,
	bracketRepo bracket.Repository,
	driver *usecase.ResolutionDriver,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		tournamentService: tournamentService,
		navigator:         navigator,
		bracketRepo:       bracketRepo,
		driver:            driver,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournaments")
	defer span.End()

	tournaments, err := h.tournamentService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list tournaments failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]tournamentDTO, 0, len(tournaments))
	for _, t := range tournaments {
		items = append(items, tournamentToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournament")
	defer span.End()

	tournamentID := r.PathValue("tournamentID")
	t, err := h.tournamentService.GetByID(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "get tournament failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(t))
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	tournamentID := r.PathValue("tournamentID")
	players, err := h.tournamentService.Leaderboard(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardPlayerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

// GetPlayerBracketStatus projects one player's position in the tournament
// bracket: their next match, the match they should spectate, or elimination.
func (h *Handler) GetPlayerBracketStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerBracketStatus")
	defer span.End()

	tournamentID := r.PathValue("tournamentID")
	playerName := strings.TrimSpace(r.PathValue("playerName"))
	if playerName == "" {
		writeError(ctx, w, fmt.Errorf("%w: player name is required", usecase.ErrInvalidInput))
		return
	}

	if _, err := h.tournamentService.GetByID(ctx, tournamentID); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, exists, err := h.bracketRepo.GetByTournament(ctx, tournamentID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get bracket failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeError(ctx, w, fmt.Errorf("%w: bracket for tournament=%s", usecase.ErrNotFound, tournamentID))
		return
	}

	status := h.navigator.StatusFor(snapshot, playerName)
	writeSuccess(ctx, w, http.StatusOK, statusToDTO(playerName, status))
}

type resolveJobRequest struct {
	TournamentID string `json:"tournamentId" validate:"omitempty,min=1"`
}

// RunResolveJob triggers one resolution pass outside the driver's timer, for
// operators. An empty body ticks every tournament.
func (h *Handler) RunResolveJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunResolveJob")
	defer span.End()

	var req resolveJobRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read request body", usecase.ErrInvalidInput))
		return
	}
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := sonic.Unmarshal(body, &req); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: malformed request body", usecase.ErrInvalidInput))
			return
		}
		if err := h.validator.Struct(req); err != nil {
			var invalid *validator.InvalidValidationError
			if errors.As(err, &invalid) {
				writeInternalError(ctx, w)
				return
			}
			writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
			return
		}
	}

	var result usecase.TickResult
	if req.TournamentID != "" {
		result, err = h.driver.TickTournament(ctx, req.TournamentID)
	} else {
		result, err = h.driver.Tick(ctx)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "resolve job failed", "tournament_id", req.TournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
