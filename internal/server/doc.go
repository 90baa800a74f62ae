// Package server provides HTTP routing, middleware and the listening server for the web front-end.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering. Paths are
// [http.ServeMux] patterns, so wildcards such as "/track/{id}" are read with [http.Request.PathValue].
//
// # Middleware
//
//   - [RequestID] : assigns every request an ID, echoed in the X-Request-ID header
//   - [Logging] : logs method, path, status and duration of each request
//   - [Recover] : turns panics into a 500 and reports them
//   - [IdentityToken] : moves the identityToken cookie into the request context
//
// # Handler Interface
//
// Page groups implement the [Handler] interface, which lists the routes they serve so a group
// encapsulates its route definitions.
package server
