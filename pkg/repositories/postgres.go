package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cbodonnell/lastone/pkg/log"
	"github.com/cbodonnell/lastone/pkg/repositories/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PostgresRepository stores set results in Postgres over a single connection.
// pgx.Conn is not safe for concurrent use, so every call holds lock.
type PostgresRepository struct {
	conn *pgx.Conn
	lock sync.Mutex
}

// NewPostgresRepository connects to the database and applies the embedded migrations.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (Repository, error) {
	conn, err := connectDb(ctx, connStr)
	if err != nil {
		return nil, err
	}

	scripts, err := migrations("postgres")
	if err != nil {
		conn.Close(ctx)
		return nil, err
	}
	for i, migration := range scripts {
		if _, err := conn.Exec(ctx, migration); err != nil {
			conn.Close(ctx)
			return nil, fmt.Errorf("failed to execute migration %d: %v", i+1, err)
		}
	}

	return &PostgresRepository{
		conn: conn,
	}, nil
}

func connectDb(ctx context.Context, connStr string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = conn.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("unable to query database: %v", err)
	}

	log.Info("Connected to %s as %s", database, username)

	return conn, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) SaveSetResult(ctx context.Context, result *models.SetResult) error {
	if err := validateResult(result); err != nil {
		return err
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	q := `
	INSERT INTO sets (set_id, created_at, pile_size, best_of, ai_difficulty, winner_seat, resumed)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, q, result.ID, result.CreatedAt.UnixMilli(), result.PileSize, result.BestOf, result.AIDifficulty, result.WinnerSeat, result.Resumed)
	if err != nil {
		return fmt.Errorf("failed to insert set: %v", err)
	}

	batch := &pgx.Batch{}
	for _, standing := range result.Standings {
		batch.Queue("INSERT INTO set_players (set_id, seat, name, losses) VALUES ($1, $2, $3, $4)",
			result.ID, standing.Seat, standing.Name, standing.Losses)
	}
	for i, match := range result.Matches {
		moves, err := json.Marshal(match.Moves)
		if err != nil {
			return fmt.Errorf("failed to marshal moves: %v", err)
		}
		batch.Queue("INSERT INTO set_matches (set_id, match_index, first_turn, moves, loser_seat) VALUES ($1, $2, $3, $4, $5)",
			result.ID, i, match.FirstTurn, string(moves), match.LoserSeat)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert set players and matches: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *PostgresRepository) GetSetResult(ctx context.Context, id uuid.UUID) (*models.SetResult, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	q := `
	SELECT set_id, created_at, pile_size, best_of, ai_difficulty, winner_seat, resumed
	FROM sets WHERE set_id = $1;
	`
	result, err := scanPostgresSet(r.conn.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan set: %v", err)
	}

	if result.Standings, err = r.standings(ctx, id); err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(ctx, "SELECT first_turn, moves, loser_seat FROM set_matches WHERE set_id = $1 ORDER BY match_index", id)
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

func (r *PostgresRepository) ListSetResults(ctx context.Context, limit int) ([]*models.SetResult, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	q := `
	SELECT set_id, created_at, pile_size, best_of, ai_difficulty, winner_seat, resumed
	FROM sets ORDER BY created_at DESC, set_id LIMIT $1;
	`
	rows, err := r.conn.Query(ctx, q, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query sets: %v", err)
	}

	results := []*models.SetResult{}
	for rows.Next() {
		result, err := scanPostgresSet(rows)
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

	for _, result := range results {
		if result.Standings, err = r.standings(ctx, result.ID); err != nil {
			return nil, err
		}
	}

	return results, nil
}

func (r *PostgresRepository) PlayerRecord(ctx context.Context, name string) (*models.PlayerRecord, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	q := `
	SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN s.winner_seat = p.seat THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(s.best_of), 0),
		COALESCE(SUM(p.losses), 0)
	FROM set_players p JOIN sets s ON s.set_id = p.set_id
	WHERE p.name = $1;
	`
	var setsPlayed, setsWon, matchesPlayed, losses int64
	if err := r.conn.QueryRow(ctx, q, name).Scan(&setsPlayed, &setsWon, &matchesPlayed, &losses); err != nil {
		return nil, fmt.Errorf("failed to scan player record: %v", err)
	}
	if setsPlayed == 0 {
		return nil, &ErrNotFound{}
	}

	return &models.PlayerRecord{
		Name:          name,
		SetsPlayed:    int(setsPlayed),
		SetsWon:       int(setsWon),
		MatchesPlayed: int(matchesPlayed),
		Losses:        int(losses),
	}, nil
}

// standings must be called with lock held
func (r *PostgresRepository) standings(ctx context.Context, id uuid.UUID) ([]models.Standing, error) {
	rows, err := r.conn.Query(ctx, "SELECT seat, name, losses FROM set_players WHERE set_id = $1 ORDER BY seat", id)
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

func scanPostgresSet(row pgx.Row) (*models.SetResult, error) {
	var createdAt int64
	result := &models.SetResult{}
	if err := row.Scan(&result.ID, &createdAt, &result.PileSize, &result.BestOf, &result.AIDifficulty, &result.WinnerSeat, &result.Resumed); err != nil {
		return nil, err
	}
	result.CreatedAt = time.UnixMilli(createdAt).UTC()
	return result, nil
}
