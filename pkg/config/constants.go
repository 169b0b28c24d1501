package config

// EnvPrefix is empty because every variable carries the PCB_ prefix in its tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv = "PCB_APP_ENV"
	EnvPort   = "PCB_APP_PORT"

	EnvDBDSN  = "PCB_DB_DSN"
	EnvDBHost = "PCB_DB_HOST"
	EnvDBUser = "PCB_DB_USER"
	EnvDBName = "PCB_DB_NAME"

	EnvRedisURL = "PCB_REDIS_URL"

	EnvAdminJWTSecret = "PCB_ADMIN_JWT_SECRET"
	EnvAdminJWTIssuer = "PCB_ADMIN_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
