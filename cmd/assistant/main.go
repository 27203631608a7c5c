// cmd/assistant/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	answerinquiry "autostream-assistant/internal/assistant/answer-inquiry"
	capturelead "autostream-assistant/internal/assistant/capture-lead"
	classifyintent "autostream-assistant/internal/assistant/classify-intent"
	"autostream-assistant/internal/assistant/dispatch"
	leadledger "autostream-assistant/internal/assistant/lead-ledger"
	notifylead "autostream-assistant/internal/assistant/notify-lead"
	"autostream-assistant/internal/common/config"
	"autostream-assistant/internal/common/crm"
	"autostream-assistant/internal/common/database"
	"autostream-assistant/internal/common/embedding"
	"autostream-assistant/internal/common/logger"
	"autostream-assistant/internal/common/observability"
	"autostream-assistant/pkg/registry"
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
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting AutoStream assistant...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("assistant")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		return err
	}, 5, 2*time.Second, zapLog, "PostgreSQL initialization")
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
		return err
	}, 5, 2*time.Second, zapLog, "Elasticsearch initialization")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis (optional, answers are just uncached without it) ---
	var answerCache *redis.Client
	redisWrapper, _ := database.NewRedis(cfg.Database.Redis)
	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := redisWrapper.Ping(pingCtx); err != nil {
		zapLog.Warn("redis unavailable, answer caching disabled", zap.Error(err))
	} else {
		answerCache = redisWrapper.Client
		defer redisWrapper.Close()
		zapLog.Info("Redis connected successfully")
	}
	cancelPing()

	// --- Intent registry + similarity index ---
	reg, err := registry.LoadRegistry(cfg.Intent.RegistryPath)
	if err != nil {
		zapLog.Warn("intent registry load failed, using built-in registry",
			zap.String("path", cfg.Intent.RegistryPath), zap.Error(err))
		reg = registry.DefaultRegistry()
	}

	var embedder embedding.Embedder
	if cfg.Intent.EmbeddingServiceURL != "" {
		embedder = embedding.NewClient(&embedding.ClientConfig{
			BaseURL:    cfg.Intent.EmbeddingServiceURL,
			MaxRetries: 2,
			Dimension:  cfg.Intent.EmbeddingDimension,
		})
		zapLog.Info("using remote embedding service", zap.String("url", cfg.Intent.EmbeddingServiceURL))
	} else {
		embedder = embedding.NewLocalEmbedder(cfg.Intent.EmbeddingDimension)
	}

	index, err := classifyintent.NewIndex(ctx, reg, embedder, cfg.Intent.SemanticThreshold)
	if err != nil {
		zapLog.Fatal("similarity index build failed", zap.Error(err))
	}
	zapLog.Info("similarity index built", zap.Int("phrases", index.Size()))

	classifier := classifyintent.NewClassifier(&classifyintent.Config{
		SemanticThreshold:    cfg.Intent.SemanticThreshold,
		HighIntentConfidence: cfg.Intent.HighIntentConf,
		InquiryConfidence:    cfg.Intent.InquiryConf,
		GreetingConfidence:   cfg.Intent.GreetingConf,
		FallbackConfidence:   cfg.Intent.FallbackConf,
	}, index, log)

	// --- Answer provider ---
	answerCfg := &answerinquiry.Config{
		IndexName:  cfg.Knowledge.IndexName,
		MaxResults: cfg.Knowledge.MaxResults,
		CacheTTL:   time.Duration(cfg.Knowledge.CacheTTLSeconds) * time.Second,
		Timeout:    time.Duration(cfg.Knowledge.TimeoutMillis) * time.Millisecond,
	}
	answers := answerinquiry.NewHandler(answerCfg, esClient.Client, answerCache, log)

	// --- Lead ledger + notifier + capture flow ---
	ledger := leadledger.NewStore(pg.DB, log)

	var crmClient notifylead.CRMService
	if cfg.Integrations.CRM.BaseURL != "" {
		crmClient = crm.NewClient(cfg.Integrations.CRM.BaseURL, cfg.Integrations.CRM.AuthToken)
	}

	notifier, err := notifylead.NewHandler(&notifylead.Config{
		AWSRegion:    cfg.Integrations.AWS.Region,
		EmailEnabled: cfg.Integrations.AWS.SES.Enabled,
		FromEmail:    cfg.Integrations.AWS.SES.FromEmail,
		SalesEmail:   cfg.Integrations.AWS.SES.SalesEmail,
		SNSEnabled:   cfg.Integrations.AWS.SNS.Enabled,
		TopicARN:     cfg.Integrations.AWS.SNS.TopicARN,
		Timeout:      15 * time.Second,
	}, crmClient, log)
	if err != nil {
		zapLog.Fatal("notifier init failed", zap.Error(err))
	}

	capture := capturelead.NewHandler(ledger, notifier, log)

	dispatcher := dispatch.NewDispatcher(classifier, answers, capture, log)

	// --- Metrics endpoint ---
	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			zapLog.Info("metrics endpoint listening", zap.String("address", cfg.Metrics.Address))
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				zapLog.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	runShell(ctx, cfg, dispatcher, obs, zapLog)
}
