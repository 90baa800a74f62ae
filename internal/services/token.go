package services

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

type tokenKey struct{}

// IdentityCookie is the cookie holding the user's bearer token.
const IdentityCookie = "identityToken"

// WithToken returns a copy of ctx carrying the bearer token for outbound API calls.
//
// An empty token returns ctx unchanged.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer token stored by [WithToken], or "".
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// TokenFromRequest reads the identity cookie of r. A missing cookie yields "".
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(IdentityCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// authorize sets the Authorization header of req when its context carries a token.
func authorize(req *http.Request) {
	token := TokenFromContext(req.Context())
	if token == "" {
		return
	}
	(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
}
