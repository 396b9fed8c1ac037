package config

// EnvPrefix namespaces every environment variable consumed by envconfig.
const EnvPrefix = "BRANDFORGE"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags (tests, error text).
const (
	EnvAppEnv     = "BRANDFORGE_APP_ENV"
	EnvPort       = "BRANDFORGE_APP_PORT"
	EnvDBDSN      = "BRANDFORGE_DB_DSN"
	EnvDBHost     = "BRANDFORGE_DB_HOST"
	EnvDBUser     = "BRANDFORGE_DB_USER"
	EnvDBName     = "BRANDFORGE_DB_NAME"
	EnvJWTSecret  = "BRANDFORGE_JWT_SECRET"
	EnvJWTIssuer  = "BRANDFORGE_JWT_ISSUER"
	EnvJWTExpMins = "BRANDFORGE_JWT_EXPIRATION_MINUTES"
	EnvRedisURL   = "BRANDFORGE_REDIS_URL"
	EnvUploadRoot = "BRANDFORGE_UPLOAD_ROOT"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
