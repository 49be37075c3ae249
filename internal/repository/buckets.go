package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// Fixed store names. Each bucket is loaded whole and written whole on every
// mutation; the engine never depends on anything finer-grained.
const (
	BucketPlayer      = "player_data"
	BucketTournament  = "tournament_data"
	BucketLeaderboard = "leaderboard_data"
	BucketNews        = "news_data"
)

// Buckets is the opaque key-value persistence layer shared by all
// repositories.
type Buckets struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

func NewBuckets(db *sqlx.DB, logger zerolog.Logger) *Buckets {
	return &Buckets{db: db, logger: logger}
}

type bucketRow struct {
	Name      string    `db:"name"`
	Data      string    `db:"data"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Load unmarshals the named bucket into out. Returns false when the bucket
// has never been written.
func (b *Buckets) Load(ctx context.Context, name string, out any) (bool, error) {
	var row bucketRow
	err := b.db.GetContext(ctx, &row, "SELECT name, data, updated_at FROM buckets WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load bucket %s: %w", name, err)
	}

	if err := json.Unmarshal([]byte(row.Data), out); err != nil {
		b.logger.Error().Err(err).Str("bucket", name).Msg("corrupt bucket payload")
		return false, fmt.Errorf("failed to decode bucket %s: %w", name, err)
	}
	return true, nil
}

// Save writes the whole bucket.
func (b *Buckets) Save(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode bucket %s: %w", name, err)
	}

	_, err = b.db.ExecContext(ctx, `INSERT INTO buckets (name, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		name, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save bucket %s: %w", name, err)
	}

	b.logger.Debug().Str("bucket", name).Int("bytes", len(data)).Msg("bucket saved")
	return nil
}
