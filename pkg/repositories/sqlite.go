package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cbodonnell/lastone/pkg/repositories/models"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at path and applies the embedded migrations.
func NewSQLiteRepository(ctx context.Context, path string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	// a single connection keeps writers from tripping over SQLITE_BUSY
	db.SetMaxOpenConns(1)

	scripts, err := migrations("sqlite")
	if err != nil {
		db.Close()
		return nil, err
	}
	for i, migration := range scripts {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute migration %d: %v", i+1, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveSetResult(ctx context.Context, result *models.SetResult) error {
	if err := validateResult(result); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	q := `
	INSERT INTO sets (set_id, created_at, pile_size, best_of, ai_difficulty, winner_seat, resumed)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	_, err = tx.ExecContext(ctx, q, result.ID.String(), result.CreatedAt.UnixMilli(), result.PileSize, result.BestOf, result.AIDifficulty, result.WinnerSeat, result.Resumed)
	if err != nil {
		return fmt.Errorf("failed to insert set: %v", err)
	}

	for _, standing := range result.Standings {
		q := `
		INSERT INTO set_players (set_id, seat, name, losses) VALUES (?, ?, ?, ?);
		`
		if _, err := tx.ExecContext(ctx, q, result.ID.String(), standing.Seat, standing.Name, standing.Losses); err != nil {
			return fmt.Errorf("failed to insert set player: %v", err)
		}
	}

	for i, match := range result.Matches {
		moves, err := json.Marshal(match.Moves)
		if err != nil {
			return fmt.Errorf("failed to marshal moves: %v", err)
		}
		q := `
		INSERT INTO set_matches (set_id, match_index, first_turn, moves, loser_seat) VALUES (?, ?, ?, ?, ?);
		`
		if _, err := tx.ExecContext(ctx, q, result.ID.String(), i, match.FirstTurn, string(moves), match.LoserSeat); err != nil {
			return fmt.Errorf("failed to insert set match: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) GetSetResult(ctx context.Context, id uuid.UUID) (*models.SetResult, error) {
	q := `
	SELECT set_id, created_at, pile_size, best_of, ai_difficulty, winner_seat, resumed
	FROM sets WHERE set_id = ?;
	`
	result, err := scanSQLiteSet(r.db.QueryRowContext(ctx, q, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan set: %v", err)
	}

	if result.Standings, err = r.standings(ctx, id); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, "SELECT first_turn, moves, loser_seat FROM set_matches WHERE set_id = ? ORDER BY match_index", id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query set matches: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var match models.MatchSummary
		var moves string
		if err := rows.Scan(&match.FirstTurn, &moves, &match.LoserSeat); err != nil {
			return nil, fmt.Errorf("failed to scan set match: %v", err)
		}
		if err := json.Unmarshal([]byte(moves), &match.Moves); err != nil {
			return nil, fmt.Errorf("failed to unmarshal moves: %v", err)
		}
		result.Matches = append(result.Matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read set matches: %v", err)
	}

	return result, nil
}

func (r *SQLiteRepository) ListSetResults(ctx context.Context, limit int) ([]*models.SetResult, error) {
	q := `
	SELECT set_id, created_at, pile_size, best_of, ai_difficulty, winner_seat, resumed
	FROM sets ORDER BY created_at DESC, set_id LIMIT ?;
	`
	rows, err := r.db.QueryContext(ctx, q, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query sets: %v", err)
	}

	results := []*models.SetResult{}
	for rows.Next() {
		result, err := scanSQLiteSet(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan set: %v", err)
		}
		results = append(results, result)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sets: %v", err)
	}

	// standings are loaded after the cursor closes, the pool has one connection
	for _, result := range results {
		if result.Standings, err = r.standings(ctx, result.ID); err != nil {
			return nil, err
		}
	}

	return results, nil
}

func (r *SQLiteRepository) PlayerRecord(ctx context.Context, name string) (*models.PlayerRecord, error) {
	q := `
	SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN s.winner_seat = p.seat THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(s.best_of), 0),
		COALESCE(SUM(p.losses), 0)
	FROM set_players p JOIN sets s ON s.set_id = p.set_id
	WHERE p.name = ?;
	`
	record := &models.PlayerRecord{Name: name}
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&record.SetsPlayed, &record.SetsWon, &record.MatchesPlayed, &record.Losses); err != nil {
		return nil, fmt.Errorf("failed to scan player record: %v", err)
	}
	if record.SetsPlayed == 0 {
		return nil, &ErrNotFound{}
	}

	return record, nil
}

func (r *SQLiteRepository) standings(ctx context.Context, id uuid.UUID) ([]models.Standing, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT seat, name, losses FROM set_players WHERE set_id = ? ORDER BY seat", id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query set players: %v", err)
	}
	defer rows.Close()

	var standings []models.Standing
	for rows.Next() {
		var standing models.Standing
		if err := rows.Scan(&standing.Seat, &standing.Name, &standing.Losses); err != nil {
			return nil, fmt.Errorf("failed to scan set player: %v", err)
		}
		standings = append(standings, standing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read set players: %v", err)
	}
	return standings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteSet(row rowScanner) (*models.SetResult, error) {
	var id string
	var createdAt int64
	result := &models.SetResult{}
	if err := row.Scan(&id, &createdAt, &result.PileSize, &result.BestOf, &result.AIDifficulty, &result.WinnerSeat, &result.Resumed); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("failed to parse set id %q: %v", id, err)
	}
	result.ID = parsed
	result.CreatedAt = time.UnixMilli(createdAt).UTC()
	return result, nil
}
