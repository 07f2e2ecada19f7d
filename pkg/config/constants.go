package config

// EnvPrefix namespaces every environment variable consumed by envconfig.
const EnvPrefix = "PLAINDES"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "PLAINDES_APP_ENV"
	EnvPort     = "PLAINDES_APP_PORT"
	EnvDBDSN    = "PLAINDES_DB_DSN"
	EnvDBHost   = "PLAINDES_DB_HOST"
	EnvDBUser   = "PLAINDES_DB_USER"
	EnvDBName   = "PLAINDES_DB_NAME"
	EnvRedisURL = "PLAINDES_REDIS_URL"

	EnvJWTSecret  = "PLAINDES_JWT_SECRET"
	EnvJWTIssuer  = "PLAINDES_JWT_ISSUER"
	EnvJWTExpMins = "PLAINDES_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
