package config

const (
	EnvPrefix = "STOCKWATCH"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "STOCKWATCH_APP_ENV"
	EnvPort   = "STOCKWATCH_APP_PORT"

	EnvDBDSN  = "STOCKWATCH_DB_DSN"
	EnvDBHost = "STOCKWATCH_DB_HOST"
	EnvDBUser = "STOCKWATCH_DB_USER"
	EnvDBName = "STOCKWATCH_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
