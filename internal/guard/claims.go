package guard

import (
	"errors"
	"fmt"

	"fitcoach-web/internal/roles"

	"github.com/golang-jwt/jwt/v5"
)

// The API issues tokens with the role under either the plain claim name or the
// legacy MS identity claim URI, depending on which backend issued them.
const (
	roleClaim       = "role"
	roleClaimLegacy = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
)

var ErrNoRoleClaim = errors.New("guard: token carries no role claim")

// DecodeRole extracts and normalizes the role claim from an access token.
//
// The payload is decoded WITHOUT signature verification: the result only
// drives UX redirects, never authorization. The remote API re-checks every
// request against the signed token; do not promote this into a security check.
func DecodeRole(token string) (roles.Role, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return roles.Unknown, fmt.Errorf("guard: decode token: %w", err)
	}

	v, ok := claims[roleClaim]
	if !ok {
		v, ok = claims[roleClaimLegacy]
	}
	if !ok {
		return roles.Unknown, ErrNoRoleClaim
	}
	return roles.FromClaim(v), nil
}
