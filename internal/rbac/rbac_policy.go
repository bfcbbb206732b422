package rbac

import "go-hr-ticketing/internal/domain"

const groupStaff = "staff"

// Resources and actions checked by the route middleware.
const (
	ResourceLeave        = "leave"
	ResourceEmployee     = "employee"
	ResourceDepartment   = "department"
	ResourceNotification = "notification"

	ActionCreate      = "create"
	ActionReadOwn     = "read_own"
	ActionRead        = "read"
	ActionAssign      = "assign"
	ActionHRDecide    = "hr_decide"
	ActionTLDecide    = "tl_decide"
	ActionFinalize    = "finalize"
	ActionHRQueue     = "hr_queue"
	ActionTLQueue     = "tl_queue"
	ActionOverview    = "overview"
	ActionReadBalance = "read_balance"
	ActionManage      = "manage"
)

type policy struct {
	sub, obj, act string
}

var defaultPolicies = []policy{
	{groupStaff, ResourceLeave, ActionCreate},
	{groupStaff, ResourceLeave, ActionReadOwn},
	{groupStaff, ResourceNotification, ActionRead},

	{string(domain.RoleManager), ResourceLeave, ActionAssign},
	{string(domain.RoleHR), ResourceLeave, ActionAssign},
	{string(domain.RoleHR), ResourceLeave, ActionHRDecide},
	{string(domain.RoleHR), ResourceLeave, ActionFinalize},
	{string(domain.RoleHR), ResourceLeave, ActionHRQueue},
	{string(domain.RoleTeamLead), ResourceLeave, ActionTLDecide},
	{string(domain.RoleTeamLead), ResourceLeave, ActionTLQueue},
	{string(domain.RoleManager), ResourceLeave, ActionOverview},
	{string(domain.RoleHR), ResourceLeave, ActionOverview},
	{string(domain.RoleManager), ResourceLeave, ActionReadBalance},
	{string(domain.RoleHR), ResourceLeave, ActionReadBalance},

	{string(domain.RoleAdmin), ResourceEmployee, ActionManage},
	{string(domain.RoleAdmin), ResourceEmployee, ActionRead},
	{string(domain.RoleHR), ResourceEmployee, ActionRead},
	{string(domain.RoleManager), ResourceEmployee, ActionRead},
	{string(domain.RoleAdmin), ResourceDepartment, ActionManage},
	{groupStaff, ResourceDepartment, ActionRead},
}

var staffRoles = []domain.Role{
	domain.RoleEmployee,
	domain.RoleHR,
	domain.RoleManager,
	domain.RoleITSupport,
	domain.RoleAdmin,
	domain.RoleTeamLead,
}
