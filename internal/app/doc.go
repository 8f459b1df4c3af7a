// Package app is the composition root of the storefront console.
//
// # Startup
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        TOML config + flag overrides
//	       ├─────> session.ParseRole()  user | seller | admin
//	       ├─────> logging.New()        JSON log file
//	       ├─────> api.NewClient()      HTTP backend
//	       ├─────> prefs.Load()         theme and last view
//	       ├─────> Wire() + Start()     location, stores, watcher, keyword buffer
//	       └─────> ui.Run()             Bubble Tea program (blocks)
//
// # Data Flow
//
// The location is the only place list parameters live. Every navigation
// reaches two subscribers in order: the keyword buffer, which adopts an
// externally changed keyword, and the fetch watcher, which re-issues the
// current view's request when its normalized query changes. Responses land
// in the stores; the UI reads store snapshots on its own tick.
//
// When auto_refresh_seconds is set, StartRefresher re-issues the current
// view's request at that cadence. Refreshes go through the same
// last-issued-wins path as navigation.
//
// # Error Handling
//
// Run returns errors for an unreadable config, an unknown role, a log file
// that cannot be opened and an invalid API address. Request failures never
// end the program; they are reported through the status tracker.
package app
