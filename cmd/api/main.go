package main

import (
	"context"
	"time"

	"github.com/abhishek622/mockmate/internal/auth"
	"github.com/abhishek622/mockmate/internal/cache"
	"github.com/abhishek622/mockmate/internal/config"
	"github.com/abhishek622/mockmate/internal/database"
	"github.com/abhishek622/mockmate/internal/fetcher"
	"github.com/abhishek622/mockmate/internal/handler"
	"github.com/abhishek622/mockmate/internal/interview"
	"github.com/abhishek622/mockmate/internal/jobs"
	"github.com/abhishek622/mockmate/internal/llm"
	"github.com/abhishek622/mockmate/internal/logger"
	"github.com/abhishek622/mockmate/internal/metrics"
	"github.com/abhishek622/mockmate/internal/questions"
	"github.com/abhishek622/mockmate/internal/repository"
	"github.com/abhishek622/mockmate/pkg"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const fetchTimeout = 15 * time.Second

type application struct {
	DB         *pgxpool.Pool
	Redis      *redis.Client
	Logger     *zap.Logger
	Config     *config.Config
	Metrics    *metrics.Metrics
	Verifier   auth.Verifier
	Limiter    *cache.Limiter
	Handler    *handler.Handler
	CleanupJob *jobs.CacheCleanupJob
}

func main() {
	ctx := context.Background()
	cfg := config.MustLoad()

	log, err := logger.NewLogger(cfg.IsDevelopment())
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infow("config loaded", "config", cfg.String())
	for _, w := range cfg.Warnings() {
		sugar.Warn(w)
	}

	pool, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		sugar.Fatalw("database config", "err", err)
	}
	defer pool.Close()

	rdb := cache.NewRedisClient(cfg.Redis)
	defer rdb.Close()
	if err := cache.Ping(ctx, rdb); err != nil {
		sugar.Warnw("redis unavailable, rate limiting will fail open", "err", err)
	}

	var crypto *pkg.Crypto
	if cfg.Crypto.Secret != "" {
		if crypto, err = pkg.NewCrypto(cfg.Crypto.Secret); err != nil {
			sugar.Fatalw("crypto setup", "err", err)
		}
	}

	m := metrics.Default()
	rawLLM, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		sugar.Fatalw("llm client", "err", err)
	}
	llmClient := m.InstrumentLLM(rawLLM)

	repo := repository.NewRepository(pool, crypto)
	questionCache := questions.NewCache(repo.Cache)
	generator := questions.NewGenerator(llmClient, cfg.LLM.Model, log)

	h := &handler.Handler{
		Logger:    log,
		Sessions:  repo.Sessions,
		Profiles:  repo.Profiles,
		Analytics: repo.Analytics,
		Questions: questions.NewService(questionCache, generator, m, log),
		Cache:     questionCache,
		Chat:      interview.NewOrchestrator(llmClient, repo.Sessions, cfg.LLM.Model, log),
		Scorer:    interview.NewScorer(llmClient, cfg.LLM.FastModel),
		Feedback:  interview.NewAggregator(llmClient, repo.Sessions, cfg.LLM.FastModel),
		OnDemand:  questions.NewOnDemand(llmClient, cfg.LLM.Model),
		Fetcher:   fetcher.New(fetchTimeout, ""),
	}

	app := &application{
		DB:       pool,
		Redis:    rdb,
		Logger:   log,
		Config:   cfg,
		Metrics:  m,
		Verifier: auth.NewVerifier(cfg.Auth),
		Limiter:  cache.NewLimiter(rdb, cfg.Limiter.PerMinute),
		Handler:  h,
	}
	if cfg.Cache.CleanupEnabled {
		app.CleanupJob = jobs.NewCacheCleanupJob(questionCache, m, cfg.Cache.CleanupSchedule, log)
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}
