package config

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "MINIMARKET"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)
