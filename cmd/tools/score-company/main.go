// cmd/tools/score-company/main.go
//
// One-shot scoring tool: scores a single company for a persona and prints
// the full result as JSON.
//
//	score-company -symbol AAPL -persona progressive-globalist
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"alignment-engine/internal/common/config"
	"alignment-engine/internal/common/database"
	"alignment-engine/internal/common/logger"
	"alignment-engine/internal/narrative"
	"alignment-engine/internal/persona"
	"alignment-engine/internal/ranking"
	"alignment-engine/internal/sources"
)

func main() {
	var (
		symbol      = flag.String("symbol", "", "company ticker symbol (required)")
		personaName = flag.String("persona", "", "persona archetype (required); one of: "+personaList())
		timeout     = flag.Duration("timeout", 2*time.Minute, "overall timeout")
	)
	flag.Parse()

	if *symbol == "" || *personaName == "" {
		flag.Usage()
		os.Exit(2)
	}

	archetype, err := persona.Parse(*personaName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid persona %q; valid values: %s\n", *personaName, personaList())
		os.Exit(2)
	}

	zapLog := logger.New("warn", "console")
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}
	if err := persona.ValidateConfigs(); err != nil {
		zapLog.Fatal("persona configuration invalid", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pg.Close()

	esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		zapLog.Fatal("elasticsearch connection failed", zap.Error(err))
	}

	docs := sources.NewDocumentStore(pg.DB, log)
	newsIndex := sources.NewNewsIndex(
		esClient.Client,
		cfg.Database.Elasticsearch.NewsIndex,
		time.Duration(cfg.Ranking.NewsMaxAge)*24*time.Hour,
		cfg.Ranking.NewsMaxItems,
		log,
	)
	store := sources.NewStore(docs, newsIndex, log)

	narrativeClient := narrative.NewClient(&narrative.Config{
		BaseURL:     cfg.Narrative.BaseURL,
		APIKey:      cfg.Narrative.APIKey,
		Model:       cfg.Narrative.Model,
		Temperature: cfg.Narrative.Temperature,
		Timeout:     time.Duration(cfg.Narrative.Timeout) * time.Millisecond,
		MaxRetries:  cfg.Narrative.MaxRetries,
	}, log)

	// no cache: the tool scores on demand and never writes rankings
	engine := ranking.NewEngine(&ranking.Config{
		TopN:           cfg.Ranking.TopN,
		MaxConcurrency: cfg.Ranking.MaxConcurrency,
	}, store, narrativeClient, nil, log)

	result, err := engine.ScoreCompany(ctx, strings.ToUpper(*symbol), archetype)
	if err != nil {
		zapLog.Fatal("scoring failed", zap.Error(err))
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		zapLog.Fatal("encode result failed", zap.Error(err))
	}
	fmt.Println(string(out))
}

func personaList() string {
	all := persona.All()
	names := make([]string, len(all))
	for i, a := range all {
		names[i] = a.String()
	}
	return strings.Join(names, ", ")
}
