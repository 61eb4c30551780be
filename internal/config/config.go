package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML config at configPath. A missing file yields defaults so the
// server can boot against a bare content directory.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()
	content, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		raw := rawAppConfig{}
		if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
		if err := applyRawAppConfig(&cfg, raw); err != nil {
			return nil, fmt.Errorf("config file %q: %w", path, err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	finalize(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks ranges and enumerations after normalization.
func (c *AppConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	switch c.Views.Backend {
	case BackendFile, BackendDatabase, BackendPostgres, BackendRedis:
	default:
		return fmt.Errorf("invalid views.backend %q, expected file|database|postgres|redis", c.Views.Backend)
	}
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("invalid database.driver %q, expected mysql|postgres|sqlite", c.Database.Driver)
	}
	if c.Database.Driver != "sqlite" && (c.Database.Port < 1 || c.Database.Port > 65535) {
		return fmt.Errorf("invalid database.port %d, expected 1-65535", c.Database.Port)
	}
	if c.Views.Backend == BackendPostgres && c.Postgres.URL == "" {
		return errors.New("views.backend is postgres but postgres.url is empty")
	}
	if c.Views.Backend == BackendRedis && !c.Redis.Enable {
		return errors.New("views.backend is redis but redis.enable is false")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("invalid redis.db %d, expected >= 0", c.Redis.DB)
	}
	if c.Content.Revalidate < 0 {
		return fmt.Errorf("invalid content.revalidate %s", c.Content.Revalidate)
	}
	return nil
}

// IsDev reports whether the server runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env == "development" }

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Content: ContentConfig{
			Root:          defaultContentRoot,
			Extension:     defaultContentExt,
			DefaultAuthor: defaultAuthor,
		},
		Views: ViewsConfig{
			Backend:  defaultViewsBackend,
			FilePath: defaultViewsFile,
			RedisKey: defaultViewsRedisKey,
		},
		Database: DatabaseRuntimeConfig{
			Driver:    defaultDBDriver,
			Host:      defaultDBHost,
			User:      defaultDBUser,
			Password:  defaultDBPassword,
			Name:      defaultDBName,
			Charset:   defaultDBCharset,
			ParseTime: true,
			Loc:       defaultDBLoc,
			Path:      defaultSQLitePath,
			Migrate:   true,
		},
		Redis: RedisRuntimeConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
		Postgres: PostgresRuntimeConfig{
			MaxConns: defaultPGMaxConns,
		},
	}
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) error {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.NodeEnv); v != "" {
		cfg.Env = v
	}

	content := cfg.Content
	for _, v := range []string{raw.BlogDir, raw.ContentRoot, raw.Content.Dir, raw.Content.Root} {
		if v = strings.TrimSpace(v); v != "" {
			content.Root = v
		}
	}
	if v := strings.TrimSpace(raw.Content.Extension); v != "" {
		content.Extension = v
	}
	if v := strings.TrimSpace(raw.Content.DefaultAuthor); v != "" {
		content.DefaultAuthor = v
	}
	if v := strings.TrimSpace(raw.Content.Revalidate); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("content.revalidate: %w", err)
		}
		content.Revalidate = d
	}
	if raw.Content.Watch != nil {
		content.Watch = *raw.Content.Watch
	}
	cfg.Content = content

	views := cfg.Views
	if v := strings.TrimSpace(raw.Views.Store); v != "" {
		views.Backend = v
	}
	if v := strings.TrimSpace(raw.Views.Backend); v != "" {
		views.Backend = v
	}
	if v := strings.TrimSpace(raw.Views.File); v != "" {
		views.FilePath = v
	}
	if v := strings.TrimSpace(raw.Views.FilePath); v != "" {
		views.FilePath = v
	}
	if v := strings.TrimSpace(raw.Views.RedisKey); v != "" {
		views.RedisKey = v
	}
	if raw.Views.RateLimit != nil {
		views.RateLimit = *raw.Views.RateLimit
	}
	cfg.Views = views

	cfg.Database = applyRawDatabaseConfig(cfg.Database, raw)
	cfg.Redis = applyRawRedisConfig(cfg.Redis, raw)

	pg := cfg.Postgres
	for _, v := range []string{raw.PostgresURL, raw.Postgres.DSN, raw.Postgres.URL} {
		if v = strings.TrimSpace(v); v != "" {
			pg.URL = v
		}
	}
	if raw.Postgres.MaxConns > 0 {
		pg.MaxConns = raw.Postgres.MaxConns
	}
	if raw.Postgres.EnsureSchema != nil {
		pg.EnsureSchema = *raw.Postgres.EnsureSchema
	}
	cfg.Postgres = pg

	if v := strings.TrimSpace(raw.Paths.Logs); v != "" {
		cfg.Paths.Logs = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.Paths.Logs = v
	}

	switch {
	case raw.AllowedOrigins != nil:
		cfg.AllowedOrigins = normalizeOrigins(raw.AllowedOrigins)
	case raw.CORSAllowedOrigins != nil:
		cfg.AllowedOrigins = normalizeOrigins(raw.CORSAllowedOrigins)
	}

	if v := strings.TrimSpace(raw.Timezone); v != "" {
		cfg.Timezone = v
	}
	if v := strings.TrimSpace(raw.TZ); v != "" {
		cfg.Timezone = v
	}
	return nil
}

func applyRawDatabaseConfig(current DatabaseRuntimeConfig, raw rawAppConfig) DatabaseRuntimeConfig {
	cfg := current
	if raw.Database.Enable != nil {
		cfg.Enable = *raw.Database.Enable
	}
	if v := strings.TrimSpace(raw.Database.Driver); v != "" {
		cfg.Driver = strings.ToLower(v)
	}
	for _, v := range []string{raw.Database.URL, raw.Database.DSN, raw.DatabaseURL, raw.DSN} {
		if v = strings.TrimSpace(v); v != "" {
			cfg.DSN = v
		}
	}
	if v := strings.TrimSpace(raw.Database.Host); v != "" {
		cfg.Host = v
	}
	if raw.Database.Port != 0 {
		cfg.Port = raw.Database.Port
	}
	if v := strings.TrimSpace(raw.Database.Username); v != "" {
		cfg.User = v
	}
	if v := strings.TrimSpace(raw.Database.User); v != "" {
		cfg.User = v
	}
	if v := strings.TrimSpace(raw.Database.Password); v != "" {
		cfg.Password = v
	}
	if v := strings.TrimSpace(raw.Database.DBName); v != "" {
		cfg.Name = v
	}
	if v := strings.TrimSpace(raw.Database.Name); v != "" {
		cfg.Name = v
	}
	if v := strings.TrimSpace(raw.Database.Charset); v != "" {
		cfg.Charset = v
	}
	if raw.Database.ParseTime != nil {
		cfg.ParseTime = *raw.Database.ParseTime
	}
	if v := strings.TrimSpace(raw.Database.Loc); v != "" {
		cfg.Loc = v
	}
	if v := strings.TrimSpace(raw.Database.Path); v != "" {
		cfg.Path = v
	}
	if raw.Database.Params != nil {
		cfg.Params = copyStringMap(raw.Database.Params)
	}
	if raw.Database.Migrate != nil {
		cfg.Migrate = *raw.Database.Migrate
	}
	return cfg
}

func applyRawRedisConfig(current RedisRuntimeConfig, raw rawAppConfig) RedisRuntimeConfig {
	cfg := current
	if raw.Redis.Enable != nil {
		cfg.Enable = *raw.Redis.Enable
	}
	for _, v := range []string{raw.Redis.URL, raw.RedisURL} {
		if v = strings.TrimSpace(v); v != "" {
			cfg.URL = v
			if raw.Redis.Enable == nil {
				cfg.Enable = true
			}
		}
	}
	if v := strings.TrimSpace(raw.Redis.Host); v != "" {
		cfg.Host = v
	}
	if raw.Redis.Port != 0 {
		cfg.Port = raw.Redis.Port
	}
	if v := strings.TrimSpace(raw.Redis.Username); v != "" {
		cfg.Username = v
	}
	if v := strings.TrimSpace(raw.Redis.Password); v != "" {
		cfg.Password = v
	}
	if raw.Redis.DB != nil {
		cfg.DB = *raw.Redis.DB
	}
	if raw.Redis.TLS != nil {
		cfg.TLS = *raw.Redis.TLS
	}
	return cfg
}

func applyEnvOverrides(cfg *AppConfig) error {
	if v := strings.TrimSpace(os.Getenv(EnvPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		cfg.Port = port
	}
	if v := strings.TrimSpace(os.Getenv(EnvEnv)); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvContentRoot)); v != "" {
		cfg.Content.Root = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvViewsBackend)); v != "" {
		cfg.Views.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDatabaseDSN)); v != "" {
		cfg.Database.DSN = v
		cfg.Database.Enable = true
	}
	if v := strings.TrimSpace(os.Getenv(EnvRedisURL)); v != "" {
		cfg.Redis.URL = v
		cfg.Redis.Enable = true
	}
	if v := strings.TrimSpace(os.Getenv(EnvPostgresURL)); v != "" {
		cfg.Postgres.URL = v
	}
	return nil
}

func finalize(cfg *AppConfig) {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.Content = normalizeContentConfig(cfg.Content)
	cfg.Views = normalizeViewsConfig(cfg.Views)
	cfg.Database = normalizeDatabaseConfig(cfg.Database)
	if cfg.Views.Backend == BackendDatabase {
		cfg.Database.Enable = true
	}
	cfg.Redis = normalizeRedisConfig(cfg.Redis)
	cfg.Postgres.URL = strings.TrimSpace(cfg.Postgres.URL)
	cfg.DSN = cfg.Database.DSNValue()
	cfg.RedisURL = cfg.Redis.URLValue()
}

// parseDuration accepts Go durations ("90s", "5m") or a bare number of seconds.
func parseDuration(raw string) (time.Duration, error) {
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(raw)
}
