package cliconfig

import (
	"os"
	"strconv"
)

// Environment variable names
const (
	EnvEndpoint   = "NETLENIUM_ENDPOINT"
	EnvSecret     = "NETLENIUM_SECRET"
	EnvSecretFile = "NETLENIUM_SECRET_FILE"
	EnvTimeout    = "NETLENIUM_TIMEOUT"
	EnvMethod     = "NETLENIUM_METHOD"
	EnvLogLevel   = "NETLENIUM_LOG_LEVEL"
	EnvLogFormat  = "NETLENIUM_LOG_FORMAT"
	EnvJSON       = "NETLENIUM_JSON"
)

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment.
func LoadEnvConfig(cfg *CLIConfig) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	setString := func(env, key string, dst *string) {
		if v := os.Getenv(env); v != "" {
			*dst = v
			cfg.Sources[key] = SourceEnv
		}
	}

	setString(EnvEndpoint, "endpoint", &cfg.Endpoint)
	setString(EnvSecret, "secret", &cfg.Secret)
	setString(EnvSecretFile, "secretFile", &cfg.SecretFile)
	setString(EnvMethod, "method", &cfg.Method)
	setString(EnvLogLevel, "logLevel", &cfg.LogLevel)
	setString(EnvLogFormat, "logFormat", &cfg.LogFormat)

	// NETLENIUM_TIMEOUT
	if v := os.Getenv(EnvTimeout); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil {
			cfg.Timeout = timeout
			cfg.Sources["timeout"] = SourceEnv
		}
	}

	// NETLENIUM_JSON
	if v := os.Getenv(EnvJSON); v != "" {
		cfg.JSON = parseBool(v)
		cfg.Sources["json"] = SourceEnv
	}
}

func parseBool(v string) bool {
	return v == "true" || v == "1" || v == "yes"
}
