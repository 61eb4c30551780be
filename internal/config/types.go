package config

import "time"

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int                   `yaml:"port"`
	Env            string                `yaml:"env"` // "development" | "production"
	DSN            string                `yaml:"dsn"` // resolved relational DSN
	RedisURL       string                `yaml:"redis_url"`
	Content        ContentConfig         `yaml:"content"`
	Views          ViewsConfig           `yaml:"views"`
	Database       DatabaseRuntimeConfig `yaml:"database"`
	Redis          RedisRuntimeConfig    `yaml:"redis"`
	Postgres       PostgresRuntimeConfig `yaml:"postgres"`
	Paths          RuntimePathsConfig    `yaml:"paths"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
	Timezone       string                `yaml:"timezone"`
}

// ContentConfig points the content reader at the MDX tree.
type ContentConfig struct {
	Root          string        `yaml:"root"`
	Extension     string        `yaml:"extension"`
	DefaultAuthor string        `yaml:"default_author"`
	Revalidate    time.Duration `yaml:"revalidate"` // 0 reads the disk on every request
	Watch         bool          `yaml:"watch"`
}

// ViewsConfig selects the view counter backend.
type ViewsConfig struct {
	Backend   string `yaml:"backend"` // file | database | postgres | redis
	FilePath  string `yaml:"file_path"`
	RedisKey  string `yaml:"redis_key"`
	RateLimit int    `yaml:"rate_limit"` // increments per IP per minute, 0 disables
}

// DatabaseRuntimeConfig is the relational store behind the video catalog and
// the database views backend.
type DatabaseRuntimeConfig struct {
	Enable    bool              `yaml:"enable"`
	Driver    string            `yaml:"driver"` // mysql | postgres | sqlite
	DSN       string            `yaml:"dsn"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	Charset   string            `yaml:"charset"`
	ParseTime bool              `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	Path      string            `yaml:"path"` // sqlite file
	Params    map[string]string `yaml:"params"`
	Migrate   bool              `yaml:"migrate"`
}

type RedisRuntimeConfig struct {
	Enable   bool   `yaml:"enable"`
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

// PostgresRuntimeConfig is the hosted database used by the postgres views backend.
type PostgresRuntimeConfig struct {
	URL          string `yaml:"url"`
	MaxConns     int32  `yaml:"max_conns"`
	EnsureSchema bool   `yaml:"ensure_schema"`
}

type RuntimePathsConfig struct {
	Logs string `yaml:"logs"`
}

type rawAppConfig struct {
	Port               int                `yaml:"port"`
	Env                string             `yaml:"env"`
	NodeEnv            string             `yaml:"node_env"`
	DSN                string             `yaml:"dsn"`
	DatabaseURL        string             `yaml:"database_url"`
	RedisURL           string             `yaml:"redis_url"`
	PostgresURL        string             `yaml:"postgres_url"`
	Content            rawContentConfig   `yaml:"content"`
	ContentRoot        string             `yaml:"content_root"`
	BlogDir            string             `yaml:"blog_dir"`
	Views              rawViewsConfig     `yaml:"views"`
	Database           rawDatabaseConfig  `yaml:"database"`
	Redis              rawRedisConfig     `yaml:"redis"`
	Postgres           rawPostgresConfig  `yaml:"postgres"`
	Paths              RuntimePathsConfig `yaml:"paths"`
	LogDir             string             `yaml:"log_dir"`
	AllowedOrigins     []string           `yaml:"allowed_origins"`
	CORSAllowedOrigins []string           `yaml:"cors_allowed_origins"`
	Timezone           string             `yaml:"timezone"`
	TZ                 string             `yaml:"tz"`
}

type rawContentConfig struct {
	Root          string `yaml:"root"`
	Dir           string `yaml:"dir"`
	Extension     string `yaml:"extension"`
	DefaultAuthor string `yaml:"default_author"`
	Revalidate    string `yaml:"revalidate"`
	Watch         *bool  `yaml:"watch"`
}

type rawViewsConfig struct {
	Backend   string `yaml:"backend"`
	Store     string `yaml:"store"`
	FilePath  string `yaml:"file_path"`
	File      string `yaml:"file"`
	RedisKey  string `yaml:"redis_key"`
	RateLimit *int   `yaml:"rate_limit"`
}

type rawDatabaseConfig struct {
	Enable    *bool             `yaml:"enable"`
	Driver    string            `yaml:"driver"`
	DSN       string            `yaml:"dsn"`
	URL       string            `yaml:"url"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Username  string            `yaml:"username"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	DBName    string            `yaml:"db_name"`
	Charset   string            `yaml:"charset"`
	ParseTime *bool             `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	Path      string            `yaml:"path"`
	Params    map[string]string `yaml:"params"`
	Migrate   *bool             `yaml:"migrate"`
}

type rawRedisConfig struct {
	Enable   *bool  `yaml:"enable"`
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       *int   `yaml:"db"`
	TLS      *bool  `yaml:"tls"`
}

type rawPostgresConfig struct {
	URL          string `yaml:"url"`
	DSN          string `yaml:"dsn"`
	MaxConns     int32  `yaml:"max_conns"`
	EnsureSchema *bool  `yaml:"ensure_schema"`
}
