// Package tasks runs long-running leaderboard operations off the caller's goroutine
// with progress reporting.
//
// # Bulk Export
//
// [BulkExport] renders many leaderboards into one directory. Boards are loaded one at a
// time by a producer, paced by an optional rate limit, and written by a fixed pool of
// workers. A board that fails to load or write is recorded in the result and does not stop
// the rest. A manifest summarizing the run is written last.
//
// # Progress Reporting
//
// Progress is sent as [ProgressUpdate] values on an optional channel. Sends never block:
// an update is dropped when the channel is full.
package tasks
