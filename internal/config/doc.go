// Package config loads repolist's TOML configuration.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/repolist/config.toml
//  3. If the file doesn't exist, use defaults
//  4. Empty or missing fields keep their defaults
//
// # TOML Format
//
//	api_url      = "http://localhost:3333"
//	timeout      = "5s"
//	user_agent   = "repolist/0.1"
//	new_repo_url = "https://github.com/repolist"
//	locale       = "en"        # or "pt"
//	strict_likes = false       # true: unmatched like responses are errors
//	log_file     = "~/.local/state/repolist/repolist.log"
//	log_level    = "info"      # debug, info, warn, error
//	refresh      = "0s"        # >0 enables periodic reload in the TUI
//	listen       = "127.0.0.1:3333"   # address of `repolist serve`
//
// Durations use Go syntax and must not be negative. Tilde expansion is
// applied to log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML syntax errors and invalid durations or log levels.
// A missing file is not an error.
package config
