package roles

import "testing"

func TestFromClaim_Normalization(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want Role
	}{
		{"name admin", "Admin", Admin},
		{"name owner", "Owner", Owner},
		{"name personal", "Personal", Personal},
		{"name student", "Student", Student},
		{"numeric string", "4", Personal},
		{"numeric string admin", "1", Admin},
		{"json number", float64(5), Student},
		{"unrecognized name", "Coach", Unknown},
		{"empty string", "", Unknown},
		{"nil", nil, Unknown},
		{"bool claim", true, Unknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FromClaim(tc.in); got != tc.want {
				t.Fatalf("FromClaim(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestHome_CanonicalPaths(t *testing.T) {
	cases := map[Role]string{
		Admin:    "/admin",
		Owner:    "/admin",
		Personal: "/personal",
		Student:  "/student",
		Unknown:  "",
	}
	for r, want := range cases {
		if got := r.Home(); got != want {
			t.Fatalf("%v.Home() = %q, want %q", r, got, want)
		}
	}
}

func TestIsAdminArea(t *testing.T) {
	if !Admin.IsAdminArea() || !Owner.IsAdminArea() {
		t.Fatalf("admin and owner must pass the admin-area check")
	}
	if Personal.IsAdminArea() || Student.IsAdminArea() || Unknown.IsAdminArea() {
		t.Fatalf("non-admin roles must fail the admin-area check")
	}
}
