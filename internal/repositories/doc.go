// Package repositories implements leaderboard persistence.
//
// Every backend satisfies [models.Store]: boards are saved and loaded whole, keyed by name, and
// the manifest keeps the ordered list of known board names.
//
// Implementations:
//   - [FileStore] : one JSON document per board plus a JSON manifest, written atomically
//   - [SQLiteStore] : the same documents stored as rows, with an ordered manifest table
//   - [MemoryStore] : in-process store, mainly for tests
//
// Missing boards are reported as [shared.ErrBoardNotFound]; any other read or write failure
// wraps [shared.ErrPersistence].
package repositories
