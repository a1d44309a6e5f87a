package config

const (
	EnvPrefix = "TRADEIN"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv     = "TRADEIN_APP_ENV"
	EnvPort       = "TRADEIN_APP_PORT"
	EnvDBDSN      = "TRADEIN_DB_DSN"
	EnvDBHost     = "TRADEIN_DB_HOST"
	EnvDBUser     = "TRADEIN_DB_USER"
	EnvDBName     = "TRADEIN_DB_NAME"
	EnvRedisURL   = "TRADEIN_REDIS_URL"
	EnvJWTSecret  = "TRADEIN_JWT_SECRET"
	EnvJWTIssuer  = "TRADEIN_JWT_ISSUER"
	EnvJWTExpMins = "TRADEIN_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
