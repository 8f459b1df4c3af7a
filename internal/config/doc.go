// Package config loads the storefront console configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/storefront/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing, empty or non-positive, use defaults
//
// # TOML Format
//
//	api_base_url = "http://127.0.0.1:8080"
//	debounce_ms = 700
//	request_timeout_seconds = 10
//	refresh_ms = 250
//	auto_refresh_seconds = 0 # 0 disables periodic refetch
//	log_file = "~/.local/state/storefront/storefront.log"
//	log_level = "info"
//	role = "user" # user | seller | admin
//
// Every field is optional. Tilde expansion is performed for log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, and TOML parse errors. A missing file is not an error.
package config
