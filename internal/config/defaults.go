// Package config provides configuration loading and defaults for accountpulse.
package config

import "time"

// DefaultConfigDir is the default location for accountpulse configuration.
const DefaultConfigDir = "~/.config/accountpulse"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "accountpulse.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultServerAddr is the default HTTP listen address.
const DefaultServerAddr = ":8480"

// DefaultAllowedOrigins are the default CORS origins for the API.
var DefaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

// DefaultRedisAddr is the default Redis address for the score cache.
const DefaultRedisAddr = "localhost:6379"

// DefaultScoreTTL is how long a computed health score stays fresh in
// the cache before the API recomputes it.
const DefaultScoreTTL = 30 * time.Minute

// DefaultAlertSummaryTTL is how long a cached alert summary stays fresh.
const DefaultAlertSummaryTTL = time.Hour

// DefaultConcurrency bounds the portfolio evaluation fan-out.
const DefaultConcurrency = 8

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 100,
}
