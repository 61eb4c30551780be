package config

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort          = 3030
	defaultEnv           = "development"
	defaultContentRoot   = "src/blog"
	defaultContentExt    = ".mdx"
	defaultAuthor        = "qiushui"
	defaultViewsBackend  = BackendFile
	defaultViewsFile     = "data/views.json"
	defaultViewsRedisKey = "site:views"
	defaultDBDriver      = "mysql"
	defaultDBHost        = "127.0.0.1"
	defaultDBPort        = 3306
	defaultPGPort        = 5432
	defaultDBUser        = "root"
	defaultDBPassword    = "password"
	defaultDBName        = "site"
	defaultDBCharset     = "utf8mb4"
	defaultDBLoc         = "Local"
	defaultSQLitePath    = "data/site.db"
	defaultRedisHost     = "localhost"
	defaultRedisPort     = 6379
	defaultRedisDB       = 0
	defaultPGMaxConns    = 4
)

// View counter backends.
const (
	BackendFile     = "file"
	BackendDatabase = "database"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Environment variables that override the YAML file.
const (
	EnvPort         = "SITE_PORT"
	EnvEnv          = "SITE_ENV"
	EnvContentRoot  = "SITE_CONTENT_ROOT"
	EnvViewsBackend = "SITE_VIEWS_BACKEND"
	EnvDatabaseDSN  = "SITE_DATABASE_DSN"
	EnvRedisURL     = "SITE_REDIS_URL"
	EnvPostgresURL  = "SITE_POSTGRES_URL"
)
