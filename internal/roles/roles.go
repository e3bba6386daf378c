package roles

import "strconv"

// Role is the authority class of a user.
//
// The numeric codes are a wire contract with the FitCoach API (they appear in
// token claims and user payloads) and must stay stable.
type Role int

const (
	Unknown  Role = 0
	Admin    Role = 1
	Owner    Role = 2
	Personal Role = 4
	Student  Role = 5
)

// nameTable maps the role names the API emits to canonical codes.
// Keep this exhaustive; FromClaim falls back to numeric parsing for anything else.
var nameTable = map[string]Role{
	"Admin":    Admin,
	"Owner":    Owner,
	"Personal": Personal,
	"Student":  Student,
}

// FromClaim normalizes a role claim value as found in a token payload.
// The API is inconsistent here: the claim may be a role name, a numeric
// string, or a JSON number. Anything unrecognized resolves to Unknown.
func FromClaim(v any) Role {
	switch rv := v.(type) {
	case string:
		if r, ok := nameTable[rv]; ok {
			return r
		}
		n, err := strconv.Atoi(rv)
		if err != nil {
			return Unknown
		}
		return Role(n)
	case float64:
		// encoding/json decodes JSON numbers as float64.
		return Role(int(rv))
	case int:
		return Role(rv)
	default:
		return Unknown
	}
}

func (r Role) String() string {
	switch r {
	case Admin:
		return "Admin"
	case Owner:
		return "Owner"
	case Personal:
		return "Personal"
	case Student:
		return "Student"
	default:
		return "Unknown"
	}
}

// Home returns the canonical dashboard path for a role, or "" when the role
// has no dashboard of its own.
func (r Role) Home() string {
	switch r {
	case Admin, Owner:
		return "/admin"
	case Personal:
		return "/personal"
	case Student:
		return "/student"
	default:
		return ""
	}
}

// IsAdminArea reports whether the role may enter the admin area.
// Owner is a superset of Admin for this check.
func (r Role) IsAdminArea() bool { return r == Admin || r == Owner }
