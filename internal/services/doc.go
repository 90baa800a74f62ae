// Package services implements the client for the stats.fm API used by the web pages and the CLI.
//
// # Raw Client
//
// [APIService] performs GET requests against the API base URL and returns an [APIResponse] with the
// raw body. It is safe for concurrent use: its configuration never changes after construction,
// outbound calls share a [rate.Limiter], and idempotent requests that fail transiently (transport
// errors, 429 and 5xx responses) are retried with retry-go.
//
// # Identity Token
//
// The bearer token a browser sends in the identityToken cookie is request scoped. It travels in the
// request [context.Context] via [WithToken] and is attached to outbound requests with
// [oauth2.Token.SetAuthHeader]. No token is ever stored on the shared client, so concurrent
// requests cannot observe each other's credentials.
//
// # Typed Client
//
// [StatsService] wraps the raw client with one method per resource the pages use:
//   - [StatsService.GetGenre] : GET /genres/{tag}
//   - [StatsService.GetTrack] : GET /tracks/{id}
//   - [StatsService.TopListeners] : GET /tracks/{id}/top/listeners
//   - [StatsService.AudioFeatures] : GET /tracks/{id}/audio-features?trackIds={spotifyId}
//   - [StatsService.Me] : GET /me
//   - [StatsService.TrackStreams] : GET /users/{customId}/streams?trackId={id}
//
// Genres and tracks may be served from a [Cacher]; user specific resources never are.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrNotFound] : the API answered 404
//   - [shared.ErrNotAuthenticated] : the API answered 401/403, or no token was supplied
//   - [shared.ErrRateLimited] : the API answered 429 after all attempts
//   - [shared.ErrAPIRequest] : any other failure
//   - [shared.ErrDecode] : the body did not match the expected envelope
package services
