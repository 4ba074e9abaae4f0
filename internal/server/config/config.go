// Package config handles configuration for the server component, including
// defaults, environment variables, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the allaboutme server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the public HTTP endpoint.
//   - MongoURI / DatabaseName: document store connection settings.
//   - SecretKey: HMAC secret for the signed token mode. Do not use the
//     test default in prod.
//   - TokenMode: "legacy" (unsigned base64 payload) or "signed" (HS256 JWT).
//   - SessionValidityDuration: lifetime of an issued session token.
//   - BcryptCost: work factor of the password hash.
type Config struct {
	EndpointAddrHTTP        string
	MongoURI                string
	DatabaseName            string
	SecretKey               string
	TokenMode               string
	SessionValidityDuration time.Duration
	BcryptCost              int
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.MongoURI = "mongodb://localhost:27017"
	c.DatabaseName = "allaboutme"
	c.SecretKey = "secretKey"
	c.TokenMode = "legacy"
	c.SessionValidityDuration = 7 * 24 * time.Hour
	c.BcryptCost = 12
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from environment variables, an optional JSON file, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
