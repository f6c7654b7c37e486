package repository

import (
	"context"
	"database/sql"
	"fmt"

	"elo-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// RosterRepository is the durable identifier → summoner-set mapping.
// Summoner refs are flattened to their string form only here; everything
// above this layer works with structured refs.
type RosterRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewRosterRepository(db *sql.DB, logger zerolog.Logger) *RosterRepository {
	return &RosterRepository{db: db, logger: logger}
}

// Add registers a summoner under an identifier. Adding a ref that is
// already present is a no-op, which keeps the roster a set.
func (r *RosterRepository) Add(ctx context.Context, identifier string, ref domain.SummonerRef) error {
	id, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("failed to generate nanoid: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO roster_accounts (id, identifier, summoner_ref)
		VALUES (?, ?, ?)
		ON CONFLICT (identifier, summoner_ref) DO NOTHING`,
		id, identifier, ref.Encode(),
	)
	if err != nil {
		r.logger.Error().Err(err).Str("identifier", identifier).Str("ref", ref.Encode()).Msg("failed to add summoner")
		return fmt.Errorf("failed to add summoner: %w", err)
	}

	r.logger.Debug().Str("identifier", identifier).Str("ref", ref.Encode()).Msg("summoner added")
	return nil
}

// Remove drops a summoner from an identifier's roster. Removing a ref
// that is not present succeeds silently.
func (r *RosterRepository) Remove(ctx context.Context, identifier string, ref domain.SummonerRef) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM roster_accounts
		WHERE identifier = ? AND summoner_ref = ?`,
		identifier, ref.Encode(),
	)
	if err != nil {
		r.logger.Error().Err(err).Str("identifier", identifier).Str("ref", ref.Encode()).Msg("failed to remove summoner")
		return fmt.Errorf("failed to remove summoner: %w", err)
	}

	r.logger.Debug().Str("identifier", identifier).Str("ref", ref.Encode()).Msg("summoner removed")
	return nil
}

// Get returns the roster for an identifier in insertion order. An unknown
// identifier yields an empty slice, which callers treat as "no data yet".
func (r *RosterRepository) Get(ctx context.Context, identifier string) ([]domain.SummonerRef, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT summoner_ref FROM roster_accounts
		WHERE identifier = ?
		ORDER BY created_at, id`,
		identifier,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	defer rows.Close()

	var refs []domain.SummonerRef
	for rows.Next() {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}
		ref, err := domain.ParseRef(encoded)
		if err != nil {
			return nil, fmt.Errorf("corrupt roster entry for %q: %w", identifier, err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster: %w", err)
	}
	return refs, nil
}
