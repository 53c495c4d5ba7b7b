// Package store provides local persistence for the client's credentials.
//
// It contains concrete implementations of the domain key/value interface:
//   - FileKV keeps a JSON map in one file, optionally sealed with a passphrase
//   - SQLiteKV keeps rows in an SQLite database
//   - MemoryKV is a process-local map, used by tests and one-shot runs
//
// Credentials layers the token/profile contract on top of any of them. All
// methods are safe for concurrent use.
package store
