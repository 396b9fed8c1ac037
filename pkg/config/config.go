package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Password  PasswordConfig
	RateLimit RateLimitConfig
	Uploads   UploadsConfig
	Providers ProvidersConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BRANDFORGE_APP_ENV" default:"development"`
	Port         string `envconfig:"BRANDFORGE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"BRANDFORGE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BRANDFORGE_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"BRANDFORGE_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BRANDFORGE_DB_DSN"`
	Driver string `envconfig:"BRANDFORGE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BRANDFORGE_DB_HOST"`
	LegacyPort     int    `envconfig:"BRANDFORGE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BRANDFORGE_DB_USER"`
	LegacyPassword string `envconfig:"BRANDFORGE_DB_PASSWORD"`
	LegacyName     string `envconfig:"BRANDFORGE_DB_NAME"`
	LegacySSLMode  string `envconfig:"BRANDFORGE_DB_SSLMODE" default:"disable"`

	// SQLitePath backs demo mode when no Postgres credentials are present.
	SQLitePath string `envconfig:"BRANDFORGE_DB_SQLITE_PATH" default:"file::memory:?cache=shared"`

	MaxOpenConns    int           `envconfig:"BRANDFORGE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BRANDFORGE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BRANDFORGE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BRANDFORGE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// DemoMode reports whether the process should fall back to embedded SQLite.
func (db DBConfig) DemoMode() bool {
	return db.DSN == "" || strings.EqualFold(db.Driver, "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"BRANDFORGE_REDIS_URL"`
	Address      string        `envconfig:"BRANDFORGE_REDIS_ADDR"`
	Password     string        `envconfig:"BRANDFORGE_REDIS_PASSWORD"`
	DB           int           `envconfig:"BRANDFORGE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BRANDFORGE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BRANDFORGE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BRANDFORGE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BRANDFORGE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BRANDFORGE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Configured reports whether any Redis endpoint was supplied.
func (r RedisConfig) Configured() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"BRANDFORGE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"BRANDFORGE_JWT_ISSUER" default:"brandforge"`
	ExpirationMinutes int    `envconfig:"BRANDFORGE_JWT_EXPIRATION_MINUTES" default:"10080"`
}

// TokenTTL returns the access token lifetime configured in minutes.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BRANDFORGE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BRANDFORGE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BRANDFORGE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BRANDFORGE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BRANDFORGE_ARGON_KEY_LEN" default:"32"`
}

type RateLimitConfig struct {
	Window time.Duration `envconfig:"BRANDFORGE_RATE_LIMIT_WINDOW" default:"15m"`
	Limit  int           `envconfig:"BRANDFORGE_RATE_LIMIT_MAX" default:"100"`
}

type UploadsConfig struct {
	Root        string `envconfig:"BRANDFORGE_UPLOAD_ROOT" default:"./uploads"`
	MaxUploadMB int    `envconfig:"BRANDFORGE_MAX_UPLOAD_MB" default:"10"`
	MaxDim      int    `envconfig:"BRANDFORGE_IMAGE_MAX_DIM" default:"1024"`
	Quality     int    `envconfig:"BRANDFORGE_IMAGE_QUALITY" default:"90"`
}

// MaxUploadBytes converts the configured megabyte cap to bytes.
func (u UploadsConfig) MaxUploadBytes() int64 {
	if u.MaxUploadMB <= 0 {
		return 10 << 20
	}
	return int64(u.MaxUploadMB) << 20
}

type ProvidersConfig struct {
	OpenAIAPIKey string `envconfig:"BRANDFORGE_OPENAI_API_KEY"`
	GeminiAPIKey string `envconfig:"BRANDFORGE_GEMINI_API_KEY"`
	QwenAPIKey   string `envconfig:"BRANDFORGE_QWEN_API_KEY"`
	Default      string `envconfig:"BRANDFORGE_DEFAULT_PROVIDER" default:"openai"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	// No Postgres settings at all means demo mode on SQLite.
	if db.LegacyHost == "" && db.LegacyUser == "" && db.LegacyName == "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
