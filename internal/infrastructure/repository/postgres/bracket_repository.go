package postgres

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/generals-arena/tournament-api/internal/domain/bracket"
)

// BracketRepository stores each tournament's bracket as one JSONB snapshot.
// The snapshot is written whole by the bracket sync job and read whole here;
// individual matches are never updated in place.
type BracketRepository struct {
	db *sqlx.DB
}

func NewBracketRepository(db *sqlx.DB) *BracketRepository {
	return &BracketRepository{db: db}
}

func (r *BracketRepository) GetByTournament(ctx context.Context, tournamentID string) (bracket.Bracket, bool, error) {
	const query = `
SELECT snapshot
FROM brackets
WHERE tournament_id = $1`

	var raw []byte
	if err := r.db.GetContext(ctx, &raw, query, tournamentID); err != nil {
		if isNotFound(err) {
			return bracket.Bracket{}, false, nil
		}
		return bracket.Bracket{}, false, fmt.Errorf("get bracket snapshot: %w", err)
	}

	var snapshot bracket.Bracket
	if err := sonic.Unmarshal(raw, &snapshot); err != nil {
		return bracket.Bracket{}, false, fmt.Errorf("decode bracket snapshot: %w", err)
	}

	snapshot.ResolveFeeders()
	return snapshot, true, nil
}

func (r *BracketRepository) Put(ctx context.Context, tournamentID string, snapshot bracket.Bracket) error {
	raw, err := sonic.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode bracket snapshot: %w", err)
	}

	const query = `
INSERT INTO brackets (tournament_id, snapshot)
VALUES ($1, $2)
ON CONFLICT (tournament_id)
DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = now()`

	if _, err := r.db.ExecContext(ctx, query, tournamentID, raw); err != nil {
		return fmt.Errorf("upsert bracket snapshot: %w", err)
	}
	return nil
}
