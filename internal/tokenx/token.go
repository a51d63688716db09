// Package tokenx extracts claims from the backend's session token.
//
// The token is a three-part, dot-delimited signed credential whose middle
// segment is a base64url JSON payload. The client reads the `id` claim out
// of that payload for convenience only; it never verifies the signature and
// makes no authorization decisions from the claims. The backend re-validates
// the token on every request.
package tokenx

import (
	"fmt"

	"github.com/ecopoints/ecopoints/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// ExtractUserID decodes the token payload without verifying the signature
// and returns its `id` claim.
func ExtractUserID(tokenString string) (string, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("%w: missing id claim", common.ErrInvalidToken)
	}
	return id, nil
}
