package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bookie/database"
	"bookie/models"

	"github.com/jackc/pgx/v5"
)

// PostgresStore persists the ledger as a single JSONB row and keeps an audit
// row per save.
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates a store on an open connection pool
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Load(ctx context.Context) (*models.Snapshot, error) {
	var document []byte
	err := s.db.QueryRow(ctx, `SELECT document FROM ledger_snapshots WHERE id = 1`).Scan(&document)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger snapshot: %w", err)
	}

	snapshot := models.NewSnapshot()
	if err := json.Unmarshal(document, snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode ledger snapshot: %w", err)
	}
	snapshot.Normalize()
	return snapshot, nil
}

func (s *PostgresStore) Save(ctx context.Context, snapshot *models.Snapshot) error {
	document, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode ledger snapshot: %w", err)
	}

	return s.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO ledger_snapshots (id, document, saved_at)
			VALUES (1, $1, $2)
			ON CONFLICT (id) DO UPDATE
			SET document = EXCLUDED.document, saved_at = EXCLUDED.saved_at
		`, document, snapshot.SavedAt)
		if err != nil {
			return fmt.Errorf("failed to upsert ledger snapshot: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO ledger_saves (saved_at, account_count, offer_count, archived_count, economy_frozen)
			VALUES ($1, $2, $3, $4, $5)
		`, snapshot.SavedAt, len(snapshot.Accounts), len(snapshot.Offers), len(snapshot.Archive), snapshot.Economy.Frozen)
		if err != nil {
			return fmt.Errorf("failed to record ledger save: %w", err)
		}
		return nil
	})
}

// SaveCount returns how many saves have been recorded
func (s *PostgresStore) SaveCount(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM ledger_saves`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ledger saves: %w", err)
	}
	return count, nil
}

// Close releases the underlying pool
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
