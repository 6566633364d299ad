// Package config loads the waitline client configuration.
//
// Settings come from two layers. The base layer is a TOML file, by default
// ~/.config/waitline/config.toml:
//
//	api_url = "https://abc123.execute-api.us-east-1.amazonaws.com/dev"
//	stage = "dev"
//	region = "us-east-1"
//	refresh_interval_ms = 30000
//	max_retries = 3
//	request_timeout_ms = 10000
//
// On top of that, WAITLINE_* environment variables override individual
// fields; an optional .env file (or an explicit -env path) is loaded into
// the environment first via godotenv. This mirrors how the API deployment
// itself is configured.
//
// A missing config file is not an error: every field has a default, and an
// unset or placeholder api_url simply puts the client in demo mode, where
// the built-in sample waitlist is displayed instead of live data.
package config
