// Package transcript persists played steps to SQLite for later evaluation.
package transcript

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/llm-course/text-adventure-go/internal/engine"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS steps (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  game        TEXT NOT NULL,
  action      TEXT NOT NULL,
  observation TEXT NOT NULL,
  score       INTEGER NOT NULL,
  moves       INTEGER NOT NULL,
  reward      INTEGER NOT NULL,
  done        INTEGER NOT NULL,
  inventory   TEXT NOT NULL,
  created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS steps_game_idx ON steps (game, id);
`

// Step is one recorded game step.
type Step struct {
	ID          int64
	Game        string
	Action      string
	Observation string
	Score       int
	Moves       int
	Reward      int
	Done        bool
	Inventory   []string
	CreatedAt   time.Time
}

// Store appends game steps to a SQLite transcript. It implements the
// session's Recorder interface.
type Store struct {
	sqlDB *sql.DB
	game  string
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite transcript for one game and creates the schema if
// needed.
func Open(path, game string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("transcript path is required")
	}
	if strings.TrimSpace(game) == "" {
		return nil, fmt.Errorf("game name is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create transcript schema: %w", err)
	}
	return &Store{sqlDB: sqlDB, game: game}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordStep appends one step to the transcript.
func (s *Store) RecordStep(ctx context.Context, action string, tr engine.Transition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("transcript is not configured")
	}

	inventory, err := json.Marshal(tr.Inventory)
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}
	done := 0
	if tr.Done {
		done = 1
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO steps (game, action, observation, score, moves, reward, done, inventory, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.game,
		action,
		tr.Observation,
		tr.Score,
		tr.Moves,
		tr.Reward,
		done,
		string(inventory),
		toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("record step: %w", err)
	}
	return nil
}

// Steps returns every recorded step for the store's game, oldest first.
func (s *Store) Steps(ctx context.Context) ([]Step, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("transcript is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, game, action, observation, score, moves, reward, done, inventory, created_at
		   FROM steps
		  WHERE game = ?
		  ORDER BY id ASC`,
		s.game,
	)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	defer rows.Close()

	var steps []Step
	for rows.Next() {
		var step Step
		var done int
		var inventory string
		var createdAt int64
		if err := rows.Scan(
			&step.ID,
			&step.Game,
			&step.Action,
			&step.Observation,
			&step.Score,
			&step.Moves,
			&step.Reward,
			&done,
			&inventory,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("list steps: %w", err)
		}
		step.Done = done != 0
		if err := json.Unmarshal([]byte(inventory), &step.Inventory); err != nil {
			return nil, fmt.Errorf("decode inventory for step %d: %w", step.ID, err)
		}
		step.CreatedAt = fromMillis(createdAt)
		steps = append(steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	return steps, nil
}
