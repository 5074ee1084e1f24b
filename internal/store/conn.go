package store

import (
	"context"
	"database/sql"
	"sync"
)

// Conn serializes all access to the single underlying connection. No
// two operations ever interleave raw statements: Execute holds the lock
// for the whole scope of op, which is also how migrations keep unrelated
// operations from observing a partially migrated schema.
type Conn struct {
	mu sync.Mutex
	db *sql.DB
}

// NewConn wraps db in a serialized connection manager.
func NewConn(db *sql.DB) *Conn {
	return &Conn{db: db}
}

// Execute hands the live connection to op, serializing against every
// other caller. A context cancelled before the lock is acquired aborts
// without running op.
func (c *Conn) Execute(ctx context.Context, op func(db *sql.DB) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return op(c.db)
}

// PoolStats is a diagnostic snapshot of the underlying pool.
type PoolStats struct {
	Active    int
	Idle      int
	MaxOpen   int
	WaitCount int64
}

// Stats reports the current pool diagnostics.
func (c *Conn) Stats() PoolStats {
	s := c.db.Stats()
	return PoolStats{
		Active:    s.InUse,
		Idle:      s.Idle,
		MaxOpen:   s.MaxOpenConnections,
		WaitCount: s.WaitCount,
	}
}
