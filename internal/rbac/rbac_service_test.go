package rbac

import (
	"testing"

	"go-estateflow/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	e, err := NewEnforcer("", "")
	require.NoError(t, err)
	return NewService(e)
}

func TestService_Enforce(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{RoleEmployee, "project", "read", true},
		{RoleEmployee, "project", "create", false},
		{RoleHRManager, "employee_profile", "verify", true},
		{RoleHRManager, "employee_profile", "approve", false},
		{RoleProjectManager, "project", "create", true},
		{RoleProjectManager, "user", "create", false},
		{RoleCompanyAdmin, "employee_profile", "verify", true},
		{RoleCompanyAdmin, "company", "create", false},
		{RolePlatformSuperAdmin, "company", "create", true},
		{RolePlatformSuperAdmin, "project", "read", true},
		{"", "project", "read", false},
		{"GHOST", "project", "read", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+" "+tt.resource+":"+tt.action, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{Role: tt.role, Resource: tt.resource, Action: tt.action})

			require.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}
}

func TestService_PermissionsFor(t *testing.T) {
	svc := newTestService(t)

	perms, err := svc.PermissionsFor(RoleProjectManager)

	require.NoError(t, err)
	assert.Equal(t, []domain.PermissionResponse{
		{Resource: "company", Action: "read"},
		{Resource: "employee_profile", Action: "read"},
		{Resource: "project", Action: "create"},
		{Resource: "project", Action: "read"},
		{Resource: "project", Action: "update"},
	}, perms)
}
