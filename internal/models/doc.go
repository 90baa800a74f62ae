// Package models defines the read-only data transfer objects returned by the stats.fm API.
//
// Every type mirrors the remote schema and is decoded straight from JSON:
//   - [Genre] : a genre tag with its sub genres, related genres and artists
//   - [Artist] : an artist with follower count and genre tags
//   - [Track] : a track with albums, artists and external (Spotify) IDs
//   - [AudioFeatures] : Spotify audio analysis values for a track
//   - [TopUser] : a top listener entry for a track
//   - [Stream] : a single play of a track by the current user
//   - [UserPrivate] : the user owning the identity token
//
// The API wraps single resources in an [ItemResponse] and collections in an [ItemsResponse].
// Nothing in this package is persisted or mutated by the web layer.
package models
