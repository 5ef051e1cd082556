package repositories

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/cbodonnell/lastone/pkg/repositories/models"
	"github.com/google/uuid"
)

const (
	// DefaultListLimit is used when a list call passes no limit
	DefaultListLimit = 20
	// MaxListLimit caps the number of sets a list call returns
	MaxListLimit = 200
)

type Repository interface {
	Close(ctx context.Context) error
	SaveSetResult(ctx context.Context, result *models.SetResult) error
	GetSetResult(ctx context.Context, id uuid.UUID) (*models.SetResult, error)
	// ListSetResults returns the most recent sets first, without match summaries.
	ListSetResults(ctx context.Context, limit int) ([]*models.SetResult, error)
	PlayerRecord(ctx context.Context, name string) (*models.PlayerRecord, error)
}

//go:embed migrations
var migrationsFS embed.FS

// migrations returns the scripts for a dialect in file name order.
func migrations(dialect string) ([]string, error) {
	dir := "migrations/" + dialect
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %v", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var scripts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		b, err := fs.ReadFile(migrationsFS, dir+"/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %v", entry.Name(), err)
		}
		scripts = append(scripts, string(b))
	}
	return scripts, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func validateResult(result *models.SetResult) error {
	if result == nil {
		return fmt.Errorf("set result is nil")
	}
	if result.ID == uuid.Nil {
		return fmt.Errorf("set result has no id")
	}
	if len(result.Standings) < 2 {
		return fmt.Errorf("set result needs at least two players, got %d", len(result.Standings))
	}
	return nil
}
