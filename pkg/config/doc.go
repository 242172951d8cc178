// Package config loads application configuration from environment variables.
//
// All settings use the MARKETBAY_ prefix. Values have sensible development
// defaults; production deployments must at minimum set MARKETBAY_JWT_SECRET
// and MARKETBAY_POSTGRES_URL.
package config
