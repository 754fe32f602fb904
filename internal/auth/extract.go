package auth

import (
	"crypto/ecdsa"
	"net/http"
	"strings"
)

const (
	// AuthorizationHeader carries the bearer token; it takes precedence
	// over the body field and query parameter.
	AuthorizationHeader = "Authorization"
	// TokenField is the request body/query field name carrying a token.
	TokenField = "token"
)

// ExtractToken pulls a session token out of the request. The Authorization
// header wins; a space-separated scheme prefix ("Bearer <token>") is
// stripped. Falls back to the body token field, then the query parameter.
// An empty result means the request is anonymous, not an error.
func ExtractToken(req *http.Request, bodyToken string) string {
	if header := req.Header.Get(AuthorizationHeader); header != "" {
		parts := strings.Split(header, " ")
		return strings.TrimSpace(parts[len(parts)-1])
	}

	if bodyToken != "" {
		return bodyToken
	}

	return req.URL.Query().Get(TokenField)
}

// IdentityFromRequest derives the request identity from whatever token the
// request carries. Missing, invalid or expired tokens all degrade to an
// anonymous request (nil claims); authorization is enforced per operation.
func IdentityFromRequest(req *http.Request, bodyToken string, publicKey *ecdsa.PublicKey) *Claims {
	tokenString := ExtractToken(req, bodyToken)
	if tokenString == "" {
		return nil
	}

	claims, err := VerifyToken(tokenString, publicKey)
	if err != nil {
		// Invalid tokens are swallowed here; the request proceeds as
		// anonymous and operations that need identity reject it later.
		return nil
	}

	return claims
}
