// cmd/ranking-engine/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	commonaws "alignment-engine/internal/common/aws"
	"alignment-engine/internal/common/config"
	"alignment-engine/internal/common/database"
	apperrors "alignment-engine/internal/common/errors"
	"alignment-engine/internal/common/logger"
	"alignment-engine/internal/common/observability"
	"alignment-engine/internal/narrative"
	"alignment-engine/internal/notify"
	"alignment-engine/internal/persona"
	"alignment-engine/internal/ranking"
	"alignment-engine/internal/sources"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting ranking engine...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	if err := persona.ValidateConfigs(); err != nil {
		zapLog.Fatal("persona configuration invalid", zap.Error(err))
	}

	obs := observability.New("ranking-engine")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Wire the engine ---
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

	cacheTTL := time.Duration(cfg.Ranking.CacheTTLHours) * time.Hour
	cache := ranking.NewCache(redisClient.Client, cacheTTL, log)

	engine := ranking.NewEngine(&ranking.Config{
		TopN:           cfg.Ranking.TopN,
		MaxConcurrency: cfg.Ranking.MaxConcurrency,
		CacheTTL:       cacheTTL,
	}, store, narrativeClient, cache, log)

	notifier := buildNotifier(ctx, cfg, log, zapLog)

	// --- Health & Metrics Server ---
	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				zapLog.Error("Health/Metrics server failed", zap.Error(err))
			}
		}()
	}

	// --- Generation Loop ---
	runTimeout := time.Duration(cfg.Ranking.RunTimeout) * time.Second
	stopCh := make(chan struct{})

	go func() {
		// refresh immediately on startup, then on the cache-TTL interval so
		// rankings regenerate just as the previous generation expires
		runAllPersonas(ctx, engine, notifier, obs, runTimeout, log)

		ticker := time.NewTicker(cacheTTL)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				runAllPersonas(ctx, engine, notifier, obs, runTimeout, log)
			case <-stopCh:
				return
			}
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping ranking engine...")
	close(stopCh)

	zapLog.Info("Ranking engine stopped gracefully")
}

func runAllPersonas(ctx context.Context, engine *ranking.Engine, notifier *notify.Notifier, obs *observability.Observability, runTimeout time.Duration, log logger.Logger) {
	started := time.Now()
	summary := notify.RunSummary{StartedAt: started}

	for _, archetype := range persona.All() {
		personaStart := time.Now()

		result, err := rankWithRetries(ctx, engine, archetype, runTimeout, log)

		outcome := notify.PersonaOutcome{
			Persona:  archetype.String(),
			Duration: time.Since(personaStart),
		}

		if err != nil {
			outcome.Err = err
			code := classifyError(err)
			obs.RecordRun(ctx, archetype.String(), "error")
			log.Error("ranking generation failed", map[string]interface{}{
				"persona":        archetype.String(),
				"error":          err.Error(),
				"error_code":     string(code),
				"error_category": apperrors.GetErrorCategory(code),
			})
			notifier.RunFailed(ctx, archetype.String(), err)
		} else {
			outcome.GenerationID = result.GenerationID
			obs.RecordRun(ctx, archetype.String(), "ok")
		}
		obs.RecordRunDuration(ctx, time.Since(personaStart), archetype.String())

		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	summary.Duration = time.Since(started)
	notifier.RunCompleted(ctx, summary)
}

// rankWithRetries generates a ranking for one persona, retrying transient
// failures according to the error classification policy.
func rankWithRetries(ctx context.Context, engine *ranking.Engine, archetype persona.Archetype, runTimeout time.Duration, log logger.Logger) (*ranking.CachedRanking, error) {
	var lastErr error

	attempt := 0
	for {
		runCtx, cancel := context.WithTimeout(ctx, runTimeout)
		result, err := engine.RankForPersona(runCtx, archetype, true)
		cancel()

		if err == nil {
			return result, nil
		}
		lastErr = err

		code := classifyError(err)
		if !apperrors.IsRetryableErrorCode(code) || attempt >= apperrors.GetRetryCount(code) {
			return nil, lastErr
		}
		attempt++

		log.Warn("retrying ranking generation", map[string]interface{}{
			"persona":    archetype.String(),
			"attempt":    attempt,
			"error":      err.Error(),
			"error_code": string(code),
		})

		select {
		case <-ctx.Done():
			return nil, lastErr
		case <-time.After(time.Duration(attempt) * 2 * time.Second):
		}
	}
}

// classifyError maps component errors onto the standard error codes used for
// retry and alerting decisions.
func classifyError(err error) apperrors.ErrorCode {
	var stdErr *apperrors.StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}

	switch {
	case errors.Is(err, ranking.ErrInsufficientCandidates):
		return apperrors.ErrCodeInsufficientCandidates
	case errors.Is(err, ranking.ErrCacheRead):
		return apperrors.ErrCodeCacheReadFailed
	case errors.Is(err, ranking.ErrCacheWrite):
		return apperrors.ErrCodeCacheWriteFailed
	case errors.Is(err, narrative.ErrNarrativeTimeout):
		return apperrors.ErrCodeNarrativeTimeout
	case errors.Is(err, narrative.ErrNarrativeFailed):
		return apperrors.ErrCodeNarrativeFailed
	case errors.Is(err, sources.ErrNewsSearchTimeout):
		return apperrors.ErrCodeNewsSearchTimeout
	case errors.Is(err, sources.ErrNewsSearchFailed):
		return apperrors.ErrCodeNewsSearchFailed
	case errors.Is(err, sources.ErrSourceQueryFailed):
		return apperrors.ErrCodeSourceFetchFailed
	default:
		return apperrors.ErrorCode("EXTERNAL_SERVICE_ERROR")
	}
}

func buildNotifier(ctx context.Context, cfg *config.Config, log logger.Logger, zapLog *zap.Logger) *notify.Notifier {
	notifyCfg := &notify.Config{
		EmailEnabled: cfg.Notifications.Email.Enabled,
		FromEmail:    cfg.Notifications.Email.FromEmail,
		ToEmail:      cfg.Notifications.Email.ToEmail,
		SNSEnabled:   cfg.Notifications.SNS.Enabled,
		TopicARN:     cfg.Notifications.SNS.TopicARN,
	}

	var email notify.EmailSender
	var topic notify.TopicPublisher

	if notifyCfg.EmailEnabled {
		sesClient, err := commonaws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Warn("SES client init failed, email notifications disabled", zap.Error(err))
			notifyCfg.EmailEnabled = false
		} else {
			email = sesClient
		}
	}

	if notifyCfg.SNSEnabled {
		snsClient, err := commonaws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Warn("SNS client init failed, failure alerts disabled", zap.Error(err))
			notifyCfg.SNSEnabled = false
		} else {
			topic = snsClient
		}
	}

	return notify.New(notifyCfg, email, topic, log)
}
