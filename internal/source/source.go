package source

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"thothexport/internal/metadata"
	"thothexport/internal/platform/thoth"
	"thothexport/internal/store"
	"thothexport/internal/work"
)

// Kind selects where works are loaded from.
type Kind string

const (
	KindGraphQL  Kind = "graphql"
	KindPostgres Kind = "postgres"
)

type Config struct {
	Kind       Kind
	GraphQLURL string
	UserAgent  string
	RPS        int
	MaxRetries int
	DSN        string
	Timeout    time.Duration
}

// ConfigFromEnv reads the work source settings from the environment.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		Kind:       Kind(strings.ToLower(getEnv("WORK_SOURCE", string(KindGraphQL)))),
		GraphQLURL: getEnv("THOTH_GRAPHQL_URL", thoth.DefaultEndpoint),
		UserAgent:  getEnv("THOTH_USER_AGENT", "thothexport/1.0"),
		DSN:        os.Getenv("DB_DSN"),
	}

	var err error
	if cfg.RPS, err = getEnvInt("THOTH_RPS", 5); err != nil {
		return Config{}, err
	}
	if cfg.MaxRetries, err = getEnvInt("THOTH_MAX_RETRIES", 3); err != nil {
		return Config{}, err
	}
	timeoutMs, err := getEnvInt("DB_TIMEOUT_MS", 5000)
	if err != nil {
		return Config{}, err
	}
	cfg.Timeout = time.Duration(timeoutMs) * time.Millisecond

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Kind {
	case KindGraphQL:
		if c.GraphQLURL == "" {
			return fmt.Errorf("THOTH_GRAPHQL_URL is required for source %q", c.Kind)
		}
	case KindPostgres:
		if c.DSN == "" {
			return fmt.Errorf("DB_DSN is required for source %q", c.Kind)
		}
	default:
		return fmt.Errorf("unknown WORK_SOURCE %q (want %q or %q)", c.Kind, KindGraphQL, KindPostgres)
	}
	return nil
}

// Source is an opened WorkSource plus the resources behind it.
type Source struct {
	metadata.WorkSource
	pool *pgxpool.Pool
}

// Open connects the configured WorkSource.
func Open(ctx context.Context, cfg Config) (*Source, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.Kind == KindGraphQL {
		log.Printf("work source kind=%s endpoint=%s", cfg.Kind, cfg.GraphQLURL)
		return &Source{WorkSource: thoth.NewClient(cfg.GraphQLURL, cfg.UserAgent, cfg.RPS, cfg.MaxRetries)}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database (%s): %w", RedactDSN(cfg.DSN), err)
	}
	log.Printf("work source kind=%s dsn=%s", cfg.Kind, RedactDSN(cfg.DSN))

	return &Source{
		WorkSource: withTimeout(store.NewWorkPG(pool), cfg.Timeout),
		pool:       pool,
	}, nil
}

// Ready reports whether the source can serve requests.
func (s *Source) Ready(ctx context.Context) error {
	if s.pool == nil {
		return nil
	}
	return s.pool.Ping(ctx)
}

func (s *Source) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

type timeoutSource struct {
	next    metadata.WorkSource
	timeout time.Duration
}

// withTimeout bounds every call to next by timeout.
func withTimeout(next metadata.WorkSource, timeout time.Duration) metadata.WorkSource {
	if timeout <= 0 {
		return next
	}
	return &timeoutSource{next: next, timeout: timeout}
}

func (s *timeoutSource) GetWork(ctx context.Context, workID uuid.UUID) (work.Work, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.GetWork(ctx, workID)
}

func (s *timeoutSource) ListPublisherWorks(ctx context.Context, publisherID uuid.UUID) ([]work.Work, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.ListPublisherWorks(ctx, publisherID)
}

// RedactDSN hides the credentials of a connection string.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
