package domain

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		raw  string
		want Role
		ok   bool
	}{
		{"ADMIN", RoleAdmin, true},
		{"admin", RoleAdmin, true},
		{"Administrator", RoleAdmin, true},
		{"COMPANY_ADMIN", RoleCompanyAdmin, true},
		{"CompanyAdmin", RoleCompanyAdmin, true},
		{"companyadmin", RoleCompanyAdmin, true},
		{"User", RoleUser, true},
		{"SUB_USER", RoleSubUser, true},
		{"SubUser", RoleSubUser, true},
		{"  admin  ", RoleAdmin, true},
		{"superuser", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseRole(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseRole(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRoleOrdering(t *testing.T) {
	if !RoleAdmin.AtLeast(RoleCompanyAdmin) {
		t.Error("ADMIN should outrank COMPANY_ADMIN")
	}
	if !RoleCompanyAdmin.AtLeast(RoleUser) {
		t.Error("COMPANY_ADMIN should outrank USER")
	}
	if !RoleUser.AtLeast(RoleSubUser) {
		t.Error("USER should outrank SUB_USER")
	}
	if RoleUser.AtLeast(RoleAdmin) {
		t.Error("USER should not outrank ADMIN")
	}
	if !RoleUser.AtLeast(RoleUser) {
		t.Error("a role should satisfy itself")
	}
}

func TestIsAdminAgreesWithParsedAliases(t *testing.T) {
	for _, raw := range []string{"ADMIN", "admin", "Administrator"} {
		role, ok := ParseRole(raw)
		if !ok {
			t.Fatalf("ParseRole(%q) failed", raw)
		}
		if !role.IsAdmin() {
			t.Errorf("ParseRole(%q) = %q, expected IsAdmin() to be true", raw, role)
		}
	}
	for _, role := range []Role{RoleSubUser, RoleUser, RoleCompanyAdmin} {
		if role.IsAdmin() {
			t.Errorf("%q should not be admin", role)
		}
	}
}

func TestParseUserStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want UserStatus
		ok   bool
	}{
		{"pending", UserStatusPending, true},
		{"Pending", UserStatusPending, true},
		{"PENDING", UserStatusPending, true},
		{" active ", UserStatusActive, true},
		{"denied", UserStatusDenied, true},
		{"approved", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseUserStatus(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseUserStatus(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCanLogin(t *testing.T) {
	cases := []struct {
		name    string
		user    User
		canAuth bool
	}{
		{"active enabled", User{Status: UserStatusActive, Enabled: true}, true},
		{"pending", User{Status: UserStatusPending, Enabled: false}, false},
		{"pending but enabled", User{Status: UserStatusPending, Enabled: true}, false},
		{"denied", User{Status: UserStatusDenied, Enabled: false}, false},
		{"active disabled", User{Status: UserStatusActive, Enabled: false}, false},
	}
	for _, tc := range cases {
		if got := tc.user.CanLogin(); got != tc.canAuth {
			t.Errorf("%s: CanLogin() = %v, want %v", tc.name, got, tc.canAuth)
		}
	}
}
