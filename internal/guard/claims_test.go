package guard

import (
	"errors"
	"testing"

	"fitcoach-web/internal/roles"

	"github.com/golang-jwt/jwt/v5"
)

func TestDecodeRole_PlainClaim(t *testing.T) {
	tok := mintToken(t, jwt.MapClaims{"role": "Personal"})
	r, err := DecodeRole(tok)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r != roles.Personal {
		t.Fatalf("got %v, want Personal", r)
	}
}

func TestDecodeRole_LegacyClaimURI(t *testing.T) {
	tok := mintToken(t, jwt.MapClaims{
		"http://schemas.microsoft.com/ws/2008/06/identity/claims/role": "Admin",
	})
	r, err := DecodeRole(tok)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r != roles.Admin {
		t.Fatalf("got %v, want Admin", r)
	}
}

func TestDecodeRole_PlainClaimWinsOverLegacy(t *testing.T) {
	tok := mintToken(t, jwt.MapClaims{
		"role": "Student",
		"http://schemas.microsoft.com/ws/2008/06/identity/claims/role": "Admin",
	})
	r, err := DecodeRole(tok)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r != roles.Student {
		t.Fatalf("got %v, want Student", r)
	}
}

func TestDecodeRole_MissingClaim(t *testing.T) {
	tok := mintToken(t, jwt.MapClaims{"sub": "u-1"})
	if _, err := DecodeRole(tok); !errors.Is(err, ErrNoRoleClaim) {
		t.Fatalf("expected ErrNoRoleClaim, got %v", err)
	}
}

func TestDecodeRole_MalformedToken(t *testing.T) {
	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d", "x.%%%.y"} {
		if _, err := DecodeRole(tok); err == nil {
			t.Fatalf("expected error for %q", tok)
		}
	}
}

func TestDecodeRole_UnknownClaimValue(t *testing.T) {
	tok := mintToken(t, jwt.MapClaims{"role": "Coach"})
	r, err := DecodeRole(tok)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r != roles.Unknown {
		t.Fatalf("got %v, want Unknown", r)
	}
}
