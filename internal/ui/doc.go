// Package ui provides the Bubble Tea terminal interface for repolist.
//
// # Architecture Overview
//
// Model subscribes to the collection.Store owned by a reposync.Controller.
// Every accepted transition arrives as a snapshotMsg, so the view is always
// a function of the latest published snapshot. User actions become tea.Cmds
// that call the controller; their results come back as opDoneMsg and only
// update the header (notice, last error, spinner). The list itself never
// changes except through a snapshot.
//
// # Package Structure
//
//   - app.go: Model, Init/Update/View, commands and Run
//   - header.go: status bar, command bar and the add prompt line
//   - list.go: repository rows with tech chips and the likes label
//   - help.go: help overlay rendered with bubbles/help
//   - keys.go: key bindings
//   - theme.go, style_helpers.go: lipgloss themes and background helpers
//   - strings.go: truncation and LikesLabel
//
// # Key Bindings
//
//   - a: Add a repository (enter an empty title to accept the default)
//   - l or Enter: Like the selected repository
//   - r: Reload the list from the API
//   - j/k, g/G: Move the selection
//   - T: Cycle theme (saved to prefs)
//   - ?: Toggle help
//   - q or Ctrl+C: Quit
//
// # Selection
//
// The selection follows the repository id, not the row. A reload that keeps
// the record keeps it selected; when the record disappears the selection is
// clamped to the nearest valid row.
package ui
