package rollstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Compile-time interface check.
var _ Store = (*PostgresStore)(nil)

// schemaSQL creates the rolls table. Values are stored as BIGINT; uint64
// round-trips through the int64 bit pattern (see toDB / fromDB) so the full
// 64-bit Discord snowflake range is representable.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS voice_rolls (
	user_id BIGINT PRIMARY KEY,
	roll    BIGINT NOT NULL
);
`

// PostgresStore persists rolls in a PostgreSQL table. All operations are
// safe for concurrent use; the pool handles its own synchronisation.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to the database at dsn, verifies the connection,
// and ensures the rolls table exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("rollstore: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("rollstore: ping: %w", err)
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("rollstore: migrate: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Load reads all persisted rolls.
func (s *PostgresStore) Load(ctx context.Context) (map[uint64]uint64, error) {
	rows, err := s.pool.Query(ctx, `SELECT user_id, roll FROM voice_rolls`)
	if err != nil {
		return nil, fmt.Errorf("rollstore: query rolls: %w", err)
	}
	defer rows.Close()

	rolls := map[uint64]uint64{}
	for rows.Next() {
		var userID, roll int64
		if err := rows.Scan(&userID, &roll); err != nil {
			return nil, fmt.Errorf("rollstore: scan roll row: %w", err)
		}
		rolls[fromDB(userID)] = fromDB(roll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rollstore: iterate roll rows: %w", err)
	}
	return rolls, nil
}

// Save replaces the persisted mapping with rolls inside one transaction.
func (s *PostgresStore) Save(ctx context.Context, rolls map[uint64]uint64) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("rollstore: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE voice_rolls`); err != nil {
		return fmt.Errorf("rollstore: truncate: %w", err)
	}

	for userID, roll := range rolls {
		_, err := tx.Exec(ctx,
			`INSERT INTO voice_rolls (user_id, roll) VALUES ($1, $2)`,
			toDB(userID), toDB(roll),
		)
		if err != nil {
			return fmt.Errorf("rollstore: insert roll for %d: %w", userID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("rollstore: commit: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// toDB maps a uint64 onto BIGINT by reinterpreting the bit pattern.
func toDB(v uint64) int64 { return int64(v) }

// fromDB is the inverse of toDB.
func fromDB(v int64) uint64 { return uint64(v) }
