package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"time"
)

// edgeLockKey identifica el advisory lock de aristas ("pedi").
const edgeLockKey int64 = 0x70656469

// EdgeLock serializa mutaciones de aristas entre instancias con un advisory
// lock de sesión sobre una conexión dedicada.
type EdgeLock struct {
	db *sql.DB
}

func NewEdgeLock(db *sql.DB) *EdgeLock {
	return &EdgeLock{db: db}
}

func (l *EdgeLock) Lock(ctx context.Context) (func(), error) {
	conn, err := l.db.Conn(ctx)
	if err != nil {
		return nil, mapError(err, "edge lock")
	}
	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, edgeLockKey); err != nil {
		_ = conn.Close()
		return nil, mapError(err, "edge lock")
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_unlock($1)`, edgeLockKey); err != nil {
			// Descartar la conexión cierra la sesión y libera el lock.
			_ = conn.Raw(func(any) error { return driver.ErrBadConn })
		}
		_ = conn.Close()
	}, nil
}
