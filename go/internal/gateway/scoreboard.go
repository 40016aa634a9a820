package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
)

// GameTotals counts plays and solved rounds for one game
type GameTotals struct {
	Game   string `json:"game"`
	Plays  int64  `json:"plays"`
	Solved int64  `json:"solved"`
}

// Scoreboard is the cross-game summary
type Scoreboard struct {
	Games       []GameTotals `json:"games"`
	GeneratedAt time.Time    `json:"generatedAt"`
}

// ScoreboardReader loads the scoreboard
type ScoreboardReader interface {
	Scoreboard(ctx context.Context) (*Scoreboard, error)
}

// scoreboardQuery returns one row per game in display order.
const scoreboardQuery = `
SELECT 'queens', (SELECT COUNT(*) FROM queens_submissions), (SELECT COUNT(*) FROM queens_solutions WHERE is_found)
UNION ALL
SELECT 'snakeladder', (SELECT COUNT(*) FROM snake_game_results), (SELECT COUNT(*) FROM snake_game_results WHERE is_correct)
UNION ALL
SELECT 'hanoi', (SELECT COUNT(*) FROM hanoi_game_rounds), (SELECT COUNT(*) FROM hanoi_player_answers)
UNION ALL
SELECT 'tsp', (SELECT COUNT(*) FROM tsp_game_sessions), (SELECT COUNT(*) FROM tsp_game_results)
UNION ALL
SELECT 'traffic', (SELECT COUNT(*) FROM traffic_player_results), (SELECT COUNT(*) FROM traffic_player_results WHERE is_correct)
`

// PgxScoreboard reads totals straight from Postgres
type PgxScoreboard struct {
	pool  *pgxpool.Pool
	clock clockwork.Clock
}

func NewPgxScoreboard(pool *pgxpool.Pool, clock clockwork.Clock) *PgxScoreboard {
	return &PgxScoreboard{pool: pool, clock: clock}
}

func (s *PgxScoreboard) Scoreboard(ctx context.Context) (*Scoreboard, error) {
	rows, err := s.pool.Query(ctx, scoreboardQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query scoreboard: %w", err)
	}
	defer rows.Close()

	board := &Scoreboard{GeneratedAt: s.clock.Now().UTC()}
	for rows.Next() {
		var t GameTotals
		if err := rows.Scan(&t.Game, &t.Plays, &t.Solved); err != nil {
			return nil, fmt.Errorf("failed to scan scoreboard row: %w", err)
		}
		board.Games = append(board.Games, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scoreboard: %w", err)
	}
	return board, nil
}
