package port

import (
	"context"
	"database/sql"
)

// DatabaseProvider abstracts database connection management so commands
// that never touch persistence can skip the connection cost entirely.
type DatabaseProvider interface {
	// DB returns the database connection, establishing it if necessary.
	DB(ctx context.Context) (*sql.DB, error)
	// Close closes the connection if one was established.
	Close() error
	// IsInitialized reports whether a connection has been established.
	IsInitialized() bool
}
