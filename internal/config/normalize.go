package config

import "strings"

func normalizeContentConfig(cfg ContentConfig) ContentConfig {
	cfg.Root = strings.TrimSpace(cfg.Root)
	if cfg.Root == "" {
		cfg.Root = defaultContentRoot
	}
	cfg.Extension = strings.TrimSpace(cfg.Extension)
	if cfg.Extension == "" {
		cfg.Extension = defaultContentExt
	}
	if !strings.HasPrefix(cfg.Extension, ".") {
		cfg.Extension = "." + cfg.Extension
	}
	cfg.DefaultAuthor = strings.TrimSpace(cfg.DefaultAuthor)
	if cfg.DefaultAuthor == "" {
		cfg.DefaultAuthor = defaultAuthor
	}
	return cfg
}

func normalizeViewsConfig(cfg ViewsConfig) ViewsConfig {
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch cfg.Backend {
	case "":
		cfg.Backend = defaultViewsBackend
	case "json", "flat", "flatfile":
		cfg.Backend = BackendFile
	case "db", "mysql", "sqlite", "gorm":
		cfg.Backend = BackendDatabase
	case "pg", "postgresql", "neon", "hosted":
		cfg.Backend = BackendPostgres
	}
	cfg.FilePath = strings.TrimSpace(cfg.FilePath)
	if cfg.FilePath == "" {
		cfg.FilePath = defaultViewsFile
	}
	cfg.RedisKey = strings.TrimSpace(cfg.RedisKey)
	if cfg.RedisKey == "" {
		cfg.RedisKey = defaultViewsRedisKey
	}
	if cfg.RateLimit < 0 {
		cfg.RateLimit = 0
	}
	return cfg
}

func normalizeDatabaseConfig(cfg DatabaseRuntimeConfig) DatabaseRuntimeConfig {
	cfg.Driver = strings.ToLower(strings.TrimSpace(cfg.Driver))
	cfg.DSN = strings.TrimSpace(cfg.DSN)
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.User = strings.TrimSpace(cfg.User)
	cfg.Password = strings.TrimSpace(cfg.Password)
	cfg.Name = strings.TrimSpace(cfg.Name)
	cfg.Charset = strings.TrimSpace(cfg.Charset)
	cfg.Loc = strings.TrimSpace(cfg.Loc)
	cfg.Path = strings.TrimSpace(cfg.Path)

	if cfg.Driver == "" || cfg.Driver == "mariadb" {
		cfg.Driver = defaultDBDriver
	}
	switch cfg.Driver {
	case "sqlite3":
		cfg.Driver = "sqlite"
	case "pg", "postgresql", "pgx":
		cfg.Driver = "postgres"
	}
	if cfg.Host == "" {
		cfg.Host = defaultDBHost
	}
	if cfg.Port == 0 {
		cfg.Port = defaultDBPort
		if cfg.Driver == "postgres" {
			cfg.Port = defaultPGPort
		}
	}
	if cfg.User == "" {
		cfg.User = defaultDBUser
	}
	if cfg.Password == "" {
		cfg.Password = defaultDBPassword
	}
	if cfg.Name == "" {
		cfg.Name = defaultDBName
	}
	if cfg.Charset == "" {
		cfg.Charset = defaultDBCharset
	}
	if cfg.Loc == "" {
		cfg.Loc = defaultDBLoc
	}
	if cfg.Path == "" {
		cfg.Path = defaultSQLitePath
	}
	return cfg
}

func normalizeRedisConfig(cfg RedisRuntimeConfig) RedisRuntimeConfig {
	cfg.URL = normalizeRedisRawURL(cfg.URL)
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.Username = strings.TrimSpace(cfg.Username)
	cfg.Password = strings.TrimSpace(cfg.Password)
	if cfg.Host == "" {
		cfg.Host = defaultRedisHost
	}
	if cfg.Port == 0 {
		cfg.Port = defaultRedisPort
	}
	return cfg
}

func normalizeRedisRawURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "redis://") || strings.HasPrefix(trimmed, "rediss://") {
		return trimmed
	}
	return "redis://" + trimmed
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	switch trimmed {
	case "":
		return defaultEnv
	case "dev":
		return "development"
	case "prod":
		return "production"
	}
	return trimmed
}

func copyStringMap(input map[string]string) map[string]string {
	if input == nil {
		return nil
	}
	out := make(map[string]string, len(input))
	for key, value := range input {
		k := strings.TrimSpace(key)
		v := strings.TrimSpace(value)
		if k != "" && v != "" {
			out[k] = v
		}
	}
	return out
}
