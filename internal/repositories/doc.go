// Package repositories implements SQLite persistence for cached API responses.
//
// [CacheRepository] stores the raw body of primary resources (genres and tracks) keyed by a
// resource key such as "genre:rock" or "track:42", together with the time it was fetched.
// Reads accept a maximum age so stale entries are treated as misses, and the whole table can be
// purged or pruned from the CLI.
//
// The schema lives in the embedded migrations of the shared package.
package repositories
