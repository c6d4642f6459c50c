// internal/sources/store.go
package sources

import (
	"context"
	"sync"

	"alignment-engine/internal/common/logger"
	"alignment-engine/internal/common/metrics"
)

// Store is what the ranking layer sees: the company universe plus the four
// per-ticker source reads, bundled by FetchAll.
type Store interface {
	ListCompanies(ctx context.Context) ([]Company, error)
	FetchAll(ctx context.Context, symbol string) *CompanyData
}

// DonationReader, SustainabilityReader, LeadershipReader, and NewsReader are
// the narrow per-source interfaces the composite store fans out over. Each
// returns (nil, nil) when the source has no document for the symbol.
type DonationReader interface {
	GetDonations(ctx context.Context, symbol string) (*DonationSummary, error)
}

type SustainabilityReader interface {
	GetSustainability(ctx context.Context, symbol string) (*SustainabilityRecord, error)
}

type LeadershipReader interface {
	GetLeadership(ctx context.Context, symbol string) (*LeadershipAnalysis, error)
}

type NewsReader interface {
	GetNews(ctx context.Context, symbol string) ([]NewsArticle, error)
}

// CompanyLister provides the universe of companies to score.
type CompanyLister interface {
	ListCompanies(ctx context.Context) ([]Company, error)
}

// CompositeStore joins the document store and the news index behind the
// Store interface.
type CompositeStore struct {
	companies      CompanyLister
	donations      DonationReader
	sustainability SustainabilityReader
	leadership     LeadershipReader
	news           NewsReader
	logger         logger.Logger
}

// NewStore wires the Postgres document store and the Elasticsearch news
// index into one Store.
func NewStore(docs *DocumentStore, news *NewsIndex, log logger.Logger) *CompositeStore {
	return NewCompositeStore(docs, docs, docs, docs, news, log)
}

func NewCompositeStore(companies CompanyLister, donations DonationReader, sustainability SustainabilityReader, leadership LeadershipReader, news NewsReader, log logger.Logger) *CompositeStore {
	return &CompositeStore{
		companies:      companies,
		donations:      donations,
		sustainability: sustainability,
		leadership:     leadership,
		news:           news,
		logger:         log.WithFields(map[string]interface{}{"component": "source-store"}),
	}
}

func (s *CompositeStore) ListCompanies(ctx context.Context) ([]Company, error) {
	return s.companies.ListCompanies(ctx)
}

// FetchAll reads the four sources for a symbol concurrently. A failed read
// degrades that source to missing data; it never fails the company. Missing
// data is the normal case here, most tickers have gaps.
func (s *CompositeStore) FetchAll(ctx context.Context, symbol string) *CompanyData {
	data := &CompanyData{Symbol: symbol}

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		donations, err := s.donations.GetDonations(ctx, symbol)
		if err != nil {
			s.degrade(symbol, "donations", err)
			return
		}
		data.Donations = donations
	}()

	go func() {
		defer wg.Done()
		sustainability, err := s.sustainability.GetSustainability(ctx, symbol)
		if err != nil {
			s.degrade(symbol, "sustainability", err)
			return
		}
		data.Sustainability = sustainability
	}()

	go func() {
		defer wg.Done()
		leadership, err := s.leadership.GetLeadership(ctx, symbol)
		if err != nil {
			s.degrade(symbol, "leadership", err)
			return
		}
		data.Leadership = leadership
	}()

	go func() {
		defer wg.Done()
		news, err := s.news.GetNews(ctx, symbol)
		if err != nil {
			s.degrade(symbol, "news", err)
			return
		}
		data.News = news
	}()

	wg.Wait()
	return data
}

func (s *CompositeStore) degrade(symbol, source string, err error) {
	metrics.SourceFetchFailures.WithLabelValues(source).Inc()
	s.logger.Warn("source fetch failed, treating as missing data", map[string]interface{}{
		"symbol": symbol,
		"source": source,
		"error":  err.Error(),
	})
}
