package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/foliolabs/folio/internal/application/port"
	"github.com/foliolabs/folio/internal/logging"
)

// LazyDB implements port.DatabaseProvider with lazy initialization. The
// connection is created on first access, deferring the WASM compilation
// and migration overhead until a command actually needs persistence.
type LazyDB struct {
	dbPath string
	db     *sql.DB
	err    error
	once   sync.Once
	mu     sync.RWMutex
}

var _ port.DatabaseProvider = (*LazyDB)(nil)

// NewLazyDB creates a lazy database provider. The actual connection is
// not established until DB() is called.
func NewLazyDB(dbPath string) *LazyDB {
	return &LazyDB{dbPath: dbPath}
}

// DB returns the database connection, initializing it if necessary.
// Thread-safe; initializes at most once.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.once.Do(func() {
		log := logging.FromContext(ctx)
		log.Debug().Str("path", l.dbPath).Msg("lazy database initialization starting")

		l.mu.Lock()
		l.db, l.err = NewConnection(ctx, l.dbPath)
		l.mu.Unlock()
		if l.err != nil {
			log.Error().Err(l.err).Msg("lazy database initialization failed")
		}
	})

	if l.err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", l.err)
	}
	return l.db, nil
}

// Close closes the database connection if it was initialized.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// IsInitialized reports whether the connection has been established.
func (l *LazyDB) IsInitialized() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.db != nil
}

// Path returns the database path.
func (l *LazyDB) Path() string {
	return l.dbPath
}
