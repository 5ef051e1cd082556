package repositories

import (
	"context"
	"fmt"
	"net/url"
)

// DefaultDatabaseURL is used when no connection string is configured
const DefaultDatabaseURL = "sqlite://lastone.db"

// Open picks the repository implementation from the connection string scheme:
// sqlite://path for SQLite, postgres:// or postgresql:// for Postgres.
func Open(ctx context.Context, connStr string) (Repository, error) {
	if connStr == "" {
		connStr = DefaultDatabaseURL
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %v", err)
	}

	switch u.Scheme {
	case "sqlite":
		path := u.Host + u.Path
		if path == "" {
			return nil, fmt.Errorf("sqlite connection string has no path")
		}
		return NewSQLiteRepository(ctx, path)
	case "postgres", "postgresql":
		return NewPostgresRepository(ctx, u.String())
	default:
		return nil, fmt.Errorf("unknown database type %s", u.Scheme)
	}
}
