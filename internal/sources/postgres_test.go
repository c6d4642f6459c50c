// internal/sources/postgres_test.go
package sources

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alignment-engine/internal/common/logger"
)

func newTestDocumentStore(t *testing.T) (*DocumentStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewDocumentStore(db, logger.NewTestLogger(t)), mock
}

func TestListCompanies(t *testing.T) {
	store, mock := newTestDocumentStore(t)

	rows := sqlmock.NewRows([]string{"symbol", "name", "sector"}).
		AddRow("AAPL", "Apple Inc.", "Technology").
		AddRow("XOM", "Exxon Mobil", "Energy")

	mock.ExpectQuery("SELECT symbol, name, sector").WillReturnRows(rows)

	companies, err := store.ListCompanies(context.Background())
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "AAPL", companies[0].Symbol)
	assert.Equal(t, "Energy", companies[1].Sector)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDonations(t *testing.T) {
	t.Run("document found", func(t *testing.T) {
		store, mock := newTestDocumentStore(t)

		doc := `{
			"party_totals": {
				"DEM": {"total_amount_usd": 750000},
				"REP": {"total_amount_usd": 250000}
			},
			"total_usd": 1000000,
			"political_lean_score": 50
		}`
		mock.ExpectQuery("SELECT data FROM company_donations").
			WithArgs("AAPL").
			WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte(doc)))

		summary, err := store.GetDonations(context.Background(), "AAPL")
		require.NoError(t, err)
		require.NotNil(t, summary)
		assert.Equal(t, 1_000_000.0, summary.TotalUSD)
		assert.Equal(t, 750_000.0, summary.PartyTotals["DEM"].TotalAmountUSD)
		require.NotNil(t, summary.PoliticalLeanScore)
		assert.Equal(t, 50.0, *summary.PoliticalLeanScore)
	})

	t.Run("missing document is nil not error", func(t *testing.T) {
		store, mock := newTestDocumentStore(t)

		mock.ExpectQuery("SELECT data FROM company_donations").
			WithArgs("ZZZZ").
			WillReturnRows(sqlmock.NewRows([]string{"data"}))

		summary, err := store.GetDonations(context.Background(), "ZZZZ")
		assert.NoError(t, err)
		assert.Nil(t, summary)
	})

	t.Run("malformed document is an error", func(t *testing.T) {
		store, mock := newTestDocumentStore(t)

		mock.ExpectQuery("SELECT data FROM company_donations").
			WithArgs("AAPL").
			WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte("{broken")))

		summary, err := store.GetDonations(context.Background(), "AAPL")
		assert.ErrorIs(t, err, ErrSourceQueryFailed)
		assert.Nil(t, summary)
	})
}

func TestGetSustainability(t *testing.T) {
	store, mock := newTestDocumentStore(t)

	doc := `{"environmental_score": 72.5, "social_score": 64, "governance_score": 81}`
	mock.ExpectQuery("SELECT data FROM company_sustainability").
		WithArgs("MSFT").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte(doc)))

	record, err := store.GetSustainability(context.Background(), "MSFT")
	require.NoError(t, err)
	require.NotNil(t, record)
	require.NotNil(t, record.EnvironmentalScore)
	assert.Equal(t, 72.5, *record.EnvironmentalScore)
	assert.Nil(t, record.ProgressiveLeanScore)
}

func TestGetLeadership(t *testing.T) {
	store, mock := newTestDocumentStore(t)

	doc := `{
		"has_statements": true,
		"political_stance": {"overall_leaning": "moderate", "confidence": 72},
		"recommendation_score": 61
	}`
	mock.ExpectQuery("SELECT data FROM company_leadership").
		WithArgs("JPM").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte(doc)))

	analysis, err := store.GetLeadership(context.Background(), "JPM")
	require.NoError(t, err)
	require.NotNil(t, analysis)
	assert.True(t, analysis.HasStatements)
	assert.Equal(t, "moderate", analysis.PoliticalStance.OverallLeaning)
	assert.Equal(t, 72.0, analysis.PoliticalStance.Confidence)
}
