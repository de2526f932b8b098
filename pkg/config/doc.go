// Package config loads application configuration from environment variables.
//
// It is a thin wrapper around github.com/joho/godotenv and
// github.com/caarlos0/env/v11: the first call loads the default .env file (if
// one exists in the working directory), after which any env-tagged struct can
// be populated with Load or MustLoad.
//
// Usage:
//
//	type EngineConfig struct {
//	    SubscriptionCacheTTL time.Duration `env:"ENTITLEMENTS_SUBSCRIPTION_CACHE_TTL" envDefault:"30s"`
//	    GracePeriod          time.Duration `env:"ENTITLEMENTS_GRACE_PERIOD" envDefault:"168h"`
//	}
//
//	var cfg EngineConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Use LoadEnv to read one or more custom .env files before parsing, which is
// handy in tests and multi-environment deployments.
package config
