// internal/sources/postgres.go
package sources

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"alignment-engine/internal/common/logger"
)

var ErrSourceQueryFailed = errors.New("SOURCE_FETCH_FAILED")

// DocumentStore reads the per-ticker source documents out of Postgres. Each
// table keeps one JSONB document per symbol written by the collection
// pipeline; a missing row means the collector found nothing for the ticker
// and is returned as (nil, nil), never as an error.
type DocumentStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewDocumentStore(db *sql.DB, log logger.Logger) *DocumentStore {
	return &DocumentStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "document-store"}),
	}
}

// ListCompanies returns the scored universe ordered by symbol.
func (s *DocumentStore) ListCompanies(ctx context.Context) ([]Company, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, name, sector
		FROM companies
		ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("%w: list companies: %v", ErrSourceQueryFailed, err)
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.Symbol, &c.Name, &c.Sector); err != nil {
			return nil, fmt.Errorf("%w: scan company: %v", ErrSourceQueryFailed, err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate companies: %v", ErrSourceQueryFailed, err)
	}
	return companies, nil
}

// GetDonations returns the donation summary document for a symbol, or
// (nil, nil) when no document exists.
func (s *DocumentStore) GetDonations(ctx context.Context, symbol string) (*DonationSummary, error) {
	var summary DonationSummary
	if err := s.getDocument(ctx, "company_donations", symbol, &summary); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

// GetSustainability returns the sustainability document for a symbol, or
// (nil, nil) when no document exists.
func (s *DocumentStore) GetSustainability(ctx context.Context, symbol string) (*SustainabilityRecord, error) {
	var record SustainabilityRecord
	if err := s.getDocument(ctx, "company_sustainability", symbol, &record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// GetLeadership returns the executive-statement analysis for a symbol, or
// (nil, nil) when no document exists.
func (s *DocumentStore) GetLeadership(ctx context.Context, symbol string) (*LeadershipAnalysis, error) {
	var analysis LeadershipAnalysis
	if err := s.getDocument(ctx, "company_leadership", symbol, &analysis); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &analysis, nil
}

func (s *DocumentStore) getDocument(ctx context.Context, table, symbol string, dest interface{}) error {
	// table names are fixed internal constants, never user input
	query := fmt.Sprintf(`SELECT data FROM %s WHERE symbol = $1`, table)

	var raw []byte
	if err := s.db.QueryRowContext(ctx, query, symbol).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("%w: query %s for %s: %v", ErrSourceQueryFailed, table, symbol, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w: decode %s document for %s: %v", ErrSourceQueryFailed, table, symbol, err)
	}
	return nil
}
