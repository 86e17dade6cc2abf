package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	adkadapter "atlas/internal/adapters/adk"
	"atlas/internal/adapters/ai"
	"atlas/internal/adapters/config"
	"atlas/internal/adapters/embeddings"
	"atlas/internal/adapters/errors/noop"
	"atlas/internal/adapters/errors/sentry"
	"atlas/internal/adapters/mailer"
	"atlas/internal/adapters/postgres"
	"atlas/internal/adapters/redis"
	"atlas/internal/agents"
	"atlas/internal/domain/memory"
	"atlas/internal/domain/order"
	"atlas/internal/domain/session"
	"atlas/internal/domain/product"
	"atlas/internal/domain/supplier"
	"atlas/internal/metrics"
	pgrepo "atlas/internal/repository/postgres"
	"atlas/internal/tools"
	"atlas/internal/tools/shared"
	"atlas/internal/workers"
	"atlas/pkg/errors"
	"atlas/pkg/logger"
)

func main() {
	prompt := flag.String("prompt", "", "Run a single request and exit")
	userID := flag.String("user", "default", "User identifier for the session")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = errorTracker.Flush(flushCtx)
	}()

	// PostgreSQL is the system of record; without it there is nothing to serve
	pgClient, err := postgres.NewClient(cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer pgClient.Close()
	log.Info("PostgreSQL connected")

	// Redis only backs the query cache; run degraded without it
	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Warnf("Redis unavailable, query caching disabled: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info("Redis connected")
	}

	db := pgClient.DB()
	productRepo := pgrepo.NewProductRepository(db)
	productSvc := product.NewService(productRepo)
	supplierSvc := supplier.NewService(pgrepo.NewSupplierRepository(db))
	orderSvc := order.NewService(pgrepo.NewOrderRepository(db), productRepo)
	memorySvc := memory.NewService(pgrepo.NewMemoryRepository(db), initEmbeddings(cfg, log))
	sessionSvc := adkadapter.NewSessionService(session.NewService(pgrepo.NewSessionRepository(db)))

	mailSender := initMailer(cfg, log)

	if cfg.Metrics.Enabled {
		startMetrics(cfg, db, redisClient, log)
	}

	toolRegistry := tools.NewRegistry()
	deps := shared.Deps{
		Products:      productSvc,
		Suppliers:     supplierSvc,
		Orders:        orderSvc,
		Memory:        memorySvc,
		Mailer:        mailSender,
		Log:           log,
		QueryCacheTTL: cfg.Agent.QueryCacheTTL,
	}
	if redisClient != nil {
		deps.Cache = redisClient
	}
	if err := tools.RegisterAll(toolRegistry, deps); err != nil {
		log.Fatalf("Tool registration failed: %v", err)
	}

	aiRegistry := ai.NewProviderRegistry()
	if err := aiRegistry.Register(ai.NewGeminiProvider(cfg.AI.GeminiKey, 30*time.Second)); err != nil {
		log.Fatalf("Failed to register AI provider: %v", err)
	}

	factory, err := agents.NewFactory(agents.FactoryDeps{
		AIRegistry:   aiRegistry,
		ToolRegistry: toolRegistry,
	})
	if err != nil {
		log.Fatalf("Failed to create agent factory: %v", err)
	}

	agentCfg := agents.DefaultAgentConfigs[agents.AgentOpsAssistant]
	agentCfg.AIProvider = cfg.AI.DefaultProvider
	agentCfg.Model = cfg.AI.DefaultModel

	assistant, modelInfo, err := factory.CreateAgent(agentCfg)
	if err != nil {
		log.Fatalf("Failed to assemble agent: %v", err)
	}
	log.Infof("Agent ready: %s on %s/%s", agentCfg.Name, agentCfg.AIProvider, modelInfo.Name)

	agentRunner, err := agents.NewAgentRunner(assistant, agentCfg.Type, modelInfo, agents.RunnerConfig{
		AppName:          cfg.App.Name,
		ExecutionTimeout: cfg.Agent.ExecutionTimeout,
		RequestsPerMin:   cfg.Agent.RequestsPerMin,
		EnableMemory:     cfg.Agent.EnableMemory,
	}, sessionSvc, memorySvc)
	if err != nil {
		log.Fatalf("Failed to create agent runner: %v", err)
	}

	ctx := context.Background()

	// Expired memories are swept in the background for interactive sessions
	scheduler := workers.NewScheduler()
	scheduler.RegisterWorker(workers.NewMemorySweeperWorker(memorySvc, cfg.Agent.MemorySweepEvery, cfg.Agent.EnableMemory))
	if err := scheduler.Start(ctx); err != nil {
		log.Fatalf("Failed to start workers: %v", err)
	}
	defer scheduler.Stop()

	if *prompt != "" {
		if err := runOnce(ctx, agentRunner, *userID, *prompt); err != nil {
			log.Errorf("Request failed: %v", err)
			os.Exit(1)
		}
		return
	}

	runREPL(ctx, agentRunner, *userID, log)
}

func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// initEmbeddings returns nil when no provider can be built; memory then
// falls back to recency-ordered recall.
func initEmbeddings(cfg *config.Config, log *logger.Logger) memory.EmbeddingProvider {
	if cfg.Embeddings.APIKey == "" {
		log.Warn("No embeddings API key, semantic memory search disabled")
		return nil
	}

	provider, err := embeddings.NewProvider(embeddings.Config{
		Provider: embeddings.ProviderType(cfg.Embeddings.Provider),
		APIKey:   cfg.Embeddings.APIKey,
		Model:    cfg.Embeddings.Model,
		Timeout:  cfg.Embeddings.Timeout,
	})
	if err != nil {
		log.Warnf("Embedding provider unavailable, semantic memory search disabled: %v", err)
		return nil
	}

	log.Infof("Embeddings initialized: %s (%d dims)", provider.Name(), provider.Dimensions())
	return provider
}

func initMailer(cfg *config.Config, log *logger.Logger) mailer.Sender {
	sender, err := mailer.NewSMTPSender(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Sender:   cfg.SMTP.Sender,
		Password: cfg.SMTP.Password,
	})
	if err != nil {
		log.Warnf("Mailer initialization failed, send_email will report unavailable: %v", err)
		return nil
	}
	if !sender.Configured() {
		log.Info("SMTP credentials not set, send_email will report unconfigured")
	}
	return sender
}

func startMetrics(cfg *config.Config, db *sqlx.DB, redisClient *redis.Client, log *logger.Logger) {
	metrics.Init()

	var rdb *goredis.Client
	if redisClient != nil {
		rdb = redisClient.Client()
	}
	if err := prometheus.Register(metrics.NewRecordCountCollector(log, db, rdb)); err != nil {
		log.Warnf("Failed to register record count collector: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	go func() {
		log.Infof("Metrics listening on %s", cfg.Metrics.Addr)
		if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
			log.Errorf("Metrics server stopped: %v", err)
		}
	}()
}

func runOnce(ctx context.Context, r *agents.AgentRunner, userID, text string) error {
	resp, err := r.Ask(ctx, userID, "", text)
	if err != nil {
		return err
	}
	fmt.Println(resp.Text)
	return nil
}

func runREPL(ctx context.Context, r *agents.AgentRunner, userID string, log *logger.Logger) {
	fmt.Println("Ask about products, suppliers and orders. Type 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	sessionID := ""

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		resp, err := r.Ask(ctx, userID, sessionID, line)
		if err != nil {
			log.Errorf("Request failed: %v", err)
			continue
		}

		sessionID = resp.SessionID
		fmt.Println(resp.Text)
		fmt.Printf("[%d tool calls, %d+%d tokens, %v]\n",
			len(resp.ToolCalls), resp.InputTokens, resp.OutputTokens, resp.Duration.Round(time.Millisecond))
	}
}
