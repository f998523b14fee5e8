package rbac

// modelText grants a role every permission of the roles it inherits.
const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

const (
	RolePlatformSuperAdmin = "PLATFORM_SUPER_ADMIN"
	RoleCompanyAdmin       = "COMPANY_ADMIN"
	RoleHRManager          = "HR_MANAGER"
	RoleProjectManager     = "PROJECT_MANAGER"
	RoleEmployee           = "EMPLOYEE"
)

// defaultInheritance is child -> parent: the child holds every parent
// permission.
var defaultInheritance = [][]string{
	{RolePlatformSuperAdmin, RoleCompanyAdmin},
	{RoleCompanyAdmin, RoleHRManager},
	{RoleCompanyAdmin, RoleProjectManager},
	{RoleHRManager, RoleEmployee},
	{RoleProjectManager, RoleEmployee},
}

var defaultPolicies = [][]string{
	{RoleEmployee, "company", "read"},
	{RoleEmployee, "employee_profile", "read"},
	{RoleEmployee, "project", "read"},

	{RoleHRManager, "user", "create"},
	{RoleHRManager, "user", "read"},
	{RoleHRManager, "user", "update"},
	{RoleHRManager, "employee_profile", "create"},
	{RoleHRManager, "employee_profile", "update"},
	{RoleHRManager, "employee_profile", "verify"},

	{RoleProjectManager, "project", "create"},
	{RoleProjectManager, "project", "update"},

	{RoleCompanyAdmin, "company", "update"},
	{RoleCompanyAdmin, "user", "delete"},
	{RoleCompanyAdmin, "employee_profile", "delete"},
	{RoleCompanyAdmin, "employee_profile", "approve"},
	{RoleCompanyAdmin, "project", "delete"},

	{RolePlatformSuperAdmin, "company", "create"},
	{RolePlatformSuperAdmin, "company", "delete"},
}
