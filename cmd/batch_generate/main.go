package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"wiki-quiz/internal/adapter"
	"wiki-quiz/internal/adapter/quizgen"
	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/database"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/repository"
	"wiki-quiz/internal/scraper"
	"wiki-quiz/internal/service"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	file := pflag.StringP("file", "f", "", "file with one Wikipedia URL per line (- for stdin)")
	concurrency := pflag.IntP("concurrency", "c", 2, "generations running at once")
	pflag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	l := logger.Get()

	urls := pflag.Args()
	if *file != "" {
		fromFile, err := readURLs(*file)
		if err != nil {
			l.Fatal("Failed to read URL list", zap.String("file", *file), zap.Error(err))
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "no URLs given: pass them as arguments or with --file")
		os.Exit(2)
	}

	db, err := database.NewDB(cfg)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := database.RunMigrations(db, cfg.DB.Driver, database.Up); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Generated quizzes invalidate what the API has cached.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			l.Warn("Redis unavailable, cached API reads may be stale until TTL", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		}
	}

	model, err := quizgen.NewModel(cfg.LLM)
	if err != nil {
		l.Fatal("Failed to create LLM client", zap.Error(err))
	}

	quizService := service.NewQuizService(
		repository.NewQuizDatabaseAdapter(db),
		scraper.NewWikipediaScraper(cfg.Scraper, &http.Client{Timeout: cfg.Scraper.Timeout}),
		quizgen.NewLLMQuizGenerator(model),
		service.NewQuizCacheService(cacheAdapter, cfg.Cache.QuizDetailTTL),
		cfg,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	failed := 0
	for _, r := range service.NewBatchService(quizService, *concurrency).GenerateAll(ctx, urls) {
		if r.Err != nil {
			failed++
			fmt.Printf("FAIL  %s  %v\n", r.URL, r.Err)
			continue
		}
		fmt.Printf("OK    %s  %s\n", r.URL, r.QuizID)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func readURLs(name string) ([]string, error) {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var urls []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, sc.Err()
}
