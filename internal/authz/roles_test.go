package authz

import "testing"

func TestRolesSatisfy(t *testing.T) {
	cases := []struct {
		name       string
		granted    []Role
		permission Permission
		want       bool
	}{
		{"customer reads", []Role{RoleCustomer}, PermissionRead, true},
		{"customer cannot write", []Role{RoleCustomer}, PermissionWrite, false},
		{"partner deletes", []Role{RolePartner}, PermissionDelete, true},
		{"partner is not admin", []Role{RolePartner}, PermissionAdmin, false},
		{"admin does everything but master", []Role{RoleAdmin}, PermissionDelete, true},
		{"master never satisfied by role", []Role{RoleAdmin}, PermissionMaster, false},
		{"no grants", nil, PermissionRead, false},
		{"second role suffices", []Role{RoleCustomer, RolePartner}, PermissionWrite, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RolesSatisfy(tc.granted, tc.permission); got != tc.want {
				t.Fatalf("RolesSatisfy(%v, %s) = %v, want %v", tc.granted, tc.permission, got, tc.want)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RolePartner, RoleCustomer} {
		if !ValidRole(role) {
			t.Fatalf("%s should be valid", role)
		}
	}
	if ValidRole("superuser") {
		t.Fatal("unknown role accepted")
	}
}
