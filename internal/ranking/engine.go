// internal/ranking/engine.go
package ranking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"alignment-engine/internal/common/logger"
	"alignment-engine/internal/common/metrics"
	"alignment-engine/internal/narrative"
	"alignment-engine/internal/persona"
	"alignment-engine/internal/scoring"
	"alignment-engine/internal/sources"
)

var ErrInsufficientCandidates = errors.New("INSUFFICIENT_CANDIDATES")

// Engine scores the company universe per persona and maintains the cached
// rankings.
type Engine struct {
	config    *Config
	store     sources.Store
	narrative narrative.Scorer
	cache     *Cache
	logger    logger.Logger
}

func NewEngine(config *Config, store sources.Store, scorer narrative.Scorer, cache *Cache, log logger.Logger) *Engine {
	return &Engine{
		config:    config,
		store:     store,
		narrative: scorer,
		cache:     cache,
		logger:    log.WithFields(map[string]interface{}{"component": "ranking-engine"}),
	}
}

// ScoreCompany scores a single company for a persona on demand. It never
// touches the ranking cache.
func (e *Engine) ScoreCompany(ctx context.Context, symbol string, archetype persona.Archetype) (*scoring.CompanyResult, error) {
	company := sources.Company{Symbol: symbol, Name: symbol}

	companies, err := e.store.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range companies {
		if c.Symbol == symbol {
			company = c
			break
		}
	}

	return e.scoreOne(ctx, company, archetype, false), nil
}

// RankForPersona returns the cached ranking for a persona, regenerating it
// on a miss or when forceRefresh skips the cache read. Concurrent refreshes
// duplicate work at worst; the cache write is whole-value so readers never
// see a partial ranking.
func (e *Engine) RankForPersona(ctx context.Context, archetype persona.Archetype, forceRefresh bool) (*CachedRanking, error) {
	if !forceRefresh {
		cached, err := e.cache.Get(ctx, archetype)
		if err != nil {
			e.logger.Warn("cache read failed, regenerating", map[string]interface{}{
				"persona": archetype.String(),
				"error":   err.Error(),
			})
		}
		if cached != nil {
			metrics.RankingCacheHits.WithLabelValues(archetype.String(), "hit").Inc()
			return cached, nil
		}
		metrics.RankingCacheHits.WithLabelValues(archetype.String(), "miss").Inc()
	}

	start := time.Now()

	companies, err := e.store.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}
	if len(companies) < e.config.TopN*2 {
		return nil, fmt.Errorf("%w: universe has %d companies, need %d", ErrInsufficientCandidates, len(companies), e.config.TopN*2)
	}

	results := e.scoreUniverse(ctx, companies, archetype, false)

	// When the structured sources cover too little of the universe for a
	// meaningful ordering, rescore everything on narrative judgment alone.
	if e.countGrounded(results) < e.config.TopN*2 {
		e.logger.Warn("too few grounded scores, falling back to narrative-only pass", map[string]interface{}{
			"persona":  archetype.String(),
			"grounded": e.countGrounded(results),
		})
		results = e.scoreUniverse(ctx, companies, archetype, true)
	}

	ranking := e.buildRanking(archetype, results)

	if err := e.cache.Put(ctx, archetype, ranking); err != nil {
		// serve the fresh ranking even when the cache write fails
		e.logger.Error("failed to cache ranking", map[string]interface{}{
			"persona": archetype.String(),
			"error":   err.Error(),
		})
	}

	metrics.RankingDuration.WithLabelValues(archetype.String()).Observe(time.Since(start).Seconds())
	e.logger.Info("ranking generated", map[string]interface{}{
		"persona":      archetype.String(),
		"generationId": ranking.GenerationID,
		"companies":    len(results),
		"durationMs":   time.Since(start).Milliseconds(),
	})

	return ranking, nil
}

func (e *Engine) scoreUniverse(ctx context.Context, companies []sources.Company, archetype persona.Archetype, narrativeOnly bool) []*scoring.CompanyResult {
	results := make([]*scoring.CompanyResult, len(companies))

	sem := make(chan struct{}, e.config.MaxConcurrency)
	var wg sync.WaitGroup

	for i, company := range companies {
		wg.Add(1)
		go func(i int, company sources.Company) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			metrics.CompaniesInFlight.Inc()
			defer metrics.CompaniesInFlight.Dec()

			results[i] = e.scoreOne(ctx, company, archetype, narrativeOnly)
		}(i, company)
	}
	wg.Wait()

	return results
}

func (e *Engine) scoreOne(ctx context.Context, company sources.Company, archetype persona.Archetype, narrativeOnly bool) *scoring.CompanyResult {
	cfg := persona.ConfigFor(archetype)

	result := &scoring.CompanyResult{
		Symbol: company.Symbol,
		Name:   company.Name,
		Sector: company.Sector,
	}

	data := &sources.CompanyData{Symbol: company.Symbol}
	if !narrativeOnly {
		data = e.store.FetchAll(ctx, company.Symbol)

		result.DonationScore = scoring.ScoreDonations(data.Donations, cfg)
		result.SustainabilityScore = scoring.ScoreSustainability(data.Sustainability, archetype, cfg)
		result.LeadershipScore = scoring.ScoreLeadership(data.Leadership, archetype, cfg)
		result.NewsScore = scoring.ScoreNews(data.News, archetype, cfg)
	}

	avail := result.Availability()
	result.DataSourceCount = avail.Count()
	result.Weights = scoring.RedistributeWeights(avail)
	result.NumericalScore = scoring.Aggregate(
		result.DonationScore,
		result.SustainabilityScore,
		result.LeadershipScore,
		result.NewsScore,
		result.Weights,
	)

	narrativeScore, reasoning, assessed := e.assessNarrative(ctx, company, archetype, data)
	result.NarrativeScore = narrativeScore
	result.NarrativeReasoning = reasoning

	result.FinalScore, result.Mode = scoring.Combine(result.NumericalScore, result.NarrativeScore, result.DataSourceCount)
	if assessed && result.Mode == scoring.ModeNarrativeOnly {
		result.NarrativeReasoning = "General knowledge assessment: " + result.NarrativeReasoning
	}
	metrics.CompaniesScored.WithLabelValues(archetype.String(), result.Mode).Inc()

	return result
}

// assessNarrative always runs; a failed call degrades to the neutral 50 with
// a rationale rather than sinking the company.
func (e *Engine) assessNarrative(ctx context.Context, company sources.Company, archetype persona.Archetype, data *sources.CompanyData) (*float64, string, bool) {
	req := narrative.Request{
		Symbol:      company.Symbol,
		Name:        company.Name,
		Persona:     archetype.String(),
		Description: archetype.Description(),
		Sources:     buildSourceSummary(data),
	}

	result, err := e.narrative.Score(ctx, req)
	if err != nil {
		e.logger.Warn("narrative assessment failed, using neutral score", map[string]interface{}{
			"symbol":  company.Symbol,
			"persona": archetype.String(),
			"error":   err.Error(),
		})
		neutral := 50.0
		return &neutral, "Narrative analysis failed", false
	}

	return &result.Score, result.Reasoning, true
}

// countGrounded counts results whose score rests on at least one structured
// source.
func (e *Engine) countGrounded(results []*scoring.CompanyResult) int {
	n := 0
	for _, r := range results {
		if r.DataSourceCount > 0 {
			n++
		}
	}
	return n
}

func (e *Engine) buildRanking(archetype persona.Archetype, results []*scoring.CompanyResult) *CachedRanking {
	sorted := make([]*scoring.CompanyResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].FinalScore != sorted[j].FinalScore {
			return sorted[i].FinalScore > sorted[j].FinalScore
		}
		return sorted[i].Symbol < sorted[j].Symbol
	})

	topN := e.config.TopN

	support := make([]Entry, 0, topN)
	for _, r := range sorted[:topN] {
		support = append(support, toEntry(r))
	}

	// oppose lists the worst company first
	oppose := make([]Entry, 0, topN)
	for i := len(sorted) - 1; i >= len(sorted)-topN; i-- {
		oppose = append(oppose, toEntry(sorted[i]))
	}

	now := time.Now().UTC()
	return &CachedRanking{
		Persona:      archetype.String(),
		Support:      support,
		Oppose:       oppose,
		GenerationID: uuid.NewString(),
		GeneratedAt:  now,
		ExpiresAt:    now.Add(e.config.CacheTTL),
		Version:      Version,
	}
}

func toEntry(r *scoring.CompanyResult) Entry {
	return Entry{
		Symbol:    r.Symbol,
		Name:      r.Name,
		Sector:    r.Sector,
		Score:     int(math.Round(r.FinalScore)),
		Reasoning: r.NarrativeReasoning,
	}
}
