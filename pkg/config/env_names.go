package config

// EnvPrefix is passed to envconfig; individual fields carry fully qualified
// names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv     = "ACADEMYCMS_APP_ENV"
	EnvPort       = "ACADEMYCMS_APP_PORT"
	EnvDBDSN      = "ACADEMYCMS_DB_DSN"
	EnvDBHost     = "ACADEMYCMS_DB_HOST"
	EnvDBUser     = "ACADEMYCMS_DB_USER"
	EnvDBName     = "ACADEMYCMS_DB_NAME"
	EnvRedisURL   = "ACADEMYCMS_REDIS_URL"
	EnvJWTSecret  = "ACADEMYCMS_JWT_SECRET"
	EnvJWTIssuer  = "ACADEMYCMS_JWT_ISSUER"
	EnvJWTExpMins = "ACADEMYCMS_JWT_EXPIRATION_MINUTES"
	EnvBucket     = "ACADEMYCMS_STORAGE_BUCKET"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
