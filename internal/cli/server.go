package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"humorpedia-web/internal/app"
	"humorpedia-web/internal/config"
	"humorpedia-web/internal/domain"
	"humorpedia-web/internal/infra/memory"
	"humorpedia-web/internal/infra/postgres"
	redisinfra "humorpedia-web/internal/infra/redis"
	"humorpedia-web/internal/infra/upstream"
	"humorpedia-web/internal/logging"
	"humorpedia-web/internal/metrics"
	transport "humorpedia-web/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the web frontend server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logging.New("web", cfg.Log.Level)

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	m := metrics.New("web")

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var client *upstream.Client
	if cfg.Upstream.BaseURL != "" {
		client = upstream.New(cfg.Upstream.BaseURL, config.TTLDuration(cfg.Upstream.Timeout, 10*time.Second))
		client.OnRequest = func(endpoint string, status int) {
			m.UpstreamRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
		}
	}

	// Content flows source -> redis cache -> in-process cache. The source is
	// the content API when configured, local snapshots otherwise, and the
	// bundled sample data as a last resort.
	var source memory.EntityLoader
	switch {
	case client != nil:
		source = client
	case pool != nil:
		source = postgres.NewSnapshotLoader(pool)
	default:
		log.Warn("no content source configured, serving sample data")
		source = memory.NewStaticLoader(sampleContent()...)
	}

	cacheTTL := config.TTLDuration(cfg.Content.CacheTTL, 5*time.Minute)
	if redisClient != nil {
		shared := redisinfra.NewEntityCache(redisClient, source, cacheTTL)
		shared.OnLookup = cacheLookupHook(m, "redis")
		source = shared
	}
	entities := memory.NewEntityCache(source, cacheTTL)
	entities.OnLookup = cacheLookupHook(m, "memory")

	// Sections follow the content API; without one, the sample tree keeps the
	// navigation rendering.
	var sectionLoader memory.SectionLoader = staticSectionLoader{}
	if client != nil {
		sectionLoader = client
	}
	sections := memory.NewSectionCache(sectionLoader, config.TTLDuration(cfg.Content.SectionTTL, 10*time.Minute))

	var lister app.ContentLister
	var sectionSource app.SectionSource
	var searcher app.Searcher
	if client != nil {
		lister = client
		sectionSource = client
		searcher = client
	}

	sessionTTL := config.TTLDuration(cfg.Quiz.SessionTTL, 30*time.Minute)
	var store app.SessionRepository
	if redisClient != nil {
		rs := redisinfra.NewSessionStore(redisClient, sessionTTL)
		rs.OnChange = sessionGauge(m)
		store = rs
	} else {
		ms := memory.NewSessionStore(sessionTTL)
		ms.OnChange = sessionGauge(m)
		store = ms
	}

	pages := app.NewPageService(entities, sections, lister, sectionSource, log)
	search := app.NewSearchService(searcher, cfg.Search.SuggestLimit)
	quizzes := app.NewQuizService(store, entities)

	router := transport.NewRouter(transport.RouterConfig{
		Pages:     transport.NewPageHandler(pages, log),
		Search:    transport.NewSearchHandler(search, log),
		QuizWS:    transport.NewQuizWSHandler(quizzes, log),
		SuggestWS: transport.NewSuggestWSHandler(search, log, config.TTLDuration(cfg.Search.Debounce, 300*time.Millisecond)),
		Log:       log,
		Metrics:   m,
	})

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Infof("starting humorpedia web on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server...")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func cacheLookupHook(m *metrics.Metrics, layer string) func(bool) {
	return func(hit bool) {
		outcome := "miss"
		if hit {
			outcome = "hit"
		}
		m.CacheLookups.WithLabelValues(layer, outcome).Inc()
	}
}

func sessionGauge(m *metrics.Metrics) func(int) {
	return func(count int) {
		m.QuizSessions.Set(float64(count))
	}
}

// staticSectionLoader serves the bundled sample tree.
type staticSectionLoader struct{}

func (staticSectionLoader) LoadSections(context.Context) ([]domain.SectionNode, error) {
	return sampleSections(), nil
}
