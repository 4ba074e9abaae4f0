package config

import "os"

// parseEnv overlays the deployment environment variables. Only non-empty
// values override the current settings.
func parseEnv(config *Config) {
	if v := os.Getenv("MONGODB_URI"); v != "" {
		config.MongoURI = v
	}
	if v := os.Getenv("DATABASE_NAME"); v != "" {
		config.DatabaseName = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
}
