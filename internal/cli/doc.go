// Package cli defines the repolist command tree.
//
//	repolist                 open the TUI
//	repolist list [--json]   load and print the collection
//	repolist add --title T --url U --tech Go,React
//	repolist like <id> [--strict]
//	repolist serve [--listen addr] [--demo]
//	repolist logs [-n 50] [--level warn]
//
// Persistent flags --config, --prefs, --api-url and --verbose apply to every
// command. Flags override values from config.toml.
package cli
