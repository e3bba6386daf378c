package guard

import (
	"testing"

	"fitcoach-web/internal/roles"

	"github.com/golang-jwt/jwt/v5"
)

// mintToken builds a syntactically valid signed token. The guard never
// verifies signatures, so the key is irrelevant.
func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return tok
}

func roleToken(t *testing.T, role any) string {
	t.Helper()
	return mintToken(t, jwt.MapClaims{"role": role})
}

func TestDecide_ProtectedWithoutCredentialRedirectsToLogin(t *testing.T) {
	for _, path := range []string{"/admin", "/admin/users", "/personal", "/personal/workouts", "/student", "/student/plan", "/profile"} {
		d := Decide(path, "")
		if d.Action != RedirectLogin || d.Target != LoginPath {
			t.Fatalf("Decide(%q, no cred) = %+v, want login redirect", path, d)
		}
	}
}

func TestDecide_RoleMismatchIsForbidden(t *testing.T) {
	cases := []struct {
		path string
		role any
	}{
		{"/admin", "Personal"},
		{"/admin", "Student"},
		{"/personal", "Admin"},
		{"/personal", "Student"},
		{"/personal", "Owner"},
		{"/student", "Personal"},
		{"/student", "Admin"},
	}
	for _, tc := range cases {
		d := Decide(tc.path, roleToken(t, tc.role))
		if d.Action != RedirectForbidden || d.Target != ForbiddenPath {
			t.Fatalf("Decide(%q, role=%v) = %+v, want forbidden redirect", tc.path, tc.role, d)
		}
	}
}

func TestDecide_MatchingRoleIsAllowed(t *testing.T) {
	cases := []struct {
		path string
		role any
	}{
		{"/admin", "Admin"},
		{"/admin", "Owner"}, // Owner is a superset of Admin for the admin area
		{"/admin/users", float64(1)},
		{"/personal", "Personal"},
		{"/personal/workouts", "4"},
		{"/student", "Student"},
		{"/student/plan", float64(5)},
	}
	for _, tc := range cases {
		d := Decide(tc.path, roleToken(t, tc.role))
		if d.Action != Allow {
			t.Fatalf("Decide(%q, role=%v) = %+v, want allow", tc.path, tc.role, d)
		}
	}
}

func TestDecide_ProfileAcceptsAnyDecodableRole(t *testing.T) {
	for _, role := range []any{"Admin", "Owner", "Personal", "Student", "SomethingElse"} {
		d := Decide("/profile", roleToken(t, role))
		if d.Action != Allow {
			t.Fatalf("Decide(/profile, role=%v) = %+v, want allow", role, d)
		}
	}
}

func TestDecide_AuthPathWithResolvedRoleRedirectsHome(t *testing.T) {
	cases := []struct {
		role any
		home string
	}{
		{"Admin", "/admin"},
		{"Owner", "/admin"},
		{"Personal", "/personal"},
		{"Student", "/student"},
		{float64(4), "/personal"},
		{"5", "/student"},
	}
	for _, path := range []string{"/login", "/register"} {
		for _, tc := range cases {
			d := Decide(path, roleToken(t, tc.role))
			if d.Action != RedirectHome || d.Target != tc.home {
				t.Fatalf("Decide(%q, role=%v) = %+v, want home redirect to %q", path, tc.role, d, tc.home)
			}
		}
	}
}

func TestDecide_AuthPathWithUnknownRoleIsAllowed(t *testing.T) {
	d := Decide("/login", roleToken(t, "Coach"))
	if d.Action != Allow {
		t.Fatalf("unknown role on auth path should stay on the page, got %+v", d)
	}
}

func TestDecide_UnknownRoleDeniedEverywhereProtected(t *testing.T) {
	tok := roleToken(t, "Coach") // resolves to Unknown (0)
	for _, path := range []string{"/admin", "/personal", "/student"} {
		d := Decide(path, tok)
		if d.Action != RedirectForbidden {
			t.Fatalf("Decide(%q, unknown role) = %+v, want forbidden", path, d)
		}
	}
}

func TestDecide_MalformedCredentialRedirectsToLogin(t *testing.T) {
	bad := []string{
		"not-a-jwt",
		"a.b",
		"x.!!!notbase64!!!.y",
		mintToken(t, jwt.MapClaims{"sub": "u-1"}), // decodes fine but has no role claim
	}
	for _, tok := range bad {
		for _, path := range []string{"/admin", "/personal", "/student", "/profile", "/login", "/register"} {
			d := Decide(path, tok)
			if d.Action != RedirectLogin || d.Target != LoginPath {
				t.Fatalf("Decide(%q, malformed) = %+v, want login redirect", path, d)
			}
		}
	}
}

func TestDecide_UnmatchedPathsArePublic(t *testing.T) {
	for _, path := range []string{"/", "/healthz", "/about"} {
		if d := Decide(path, ""); d.Action != Allow {
			t.Fatalf("Decide(%q, no cred) = %+v, want allow", path, d)
		}
		if d := Decide(path, roleToken(t, "Student")); d.Action != Allow {
			t.Fatalf("Decide(%q, student cred) = %+v, want allow", path, d)
		}
	}
}

func TestDecide_ReportsResolvedRole(t *testing.T) {
	d := Decide("/admin", roleToken(t, "Student"))
	if d.Role != roles.Student {
		t.Fatalf("expected resolved role on decision, got %v", d.Role)
	}
}
