package rbac

type Module string

const (
	ModuleEmployees     Module = "employees"
	ModulePayroll       Module = "payroll"
	ModuleAttendance    Module = "attendance"
	ModuleLeave         Module = "leave"
	ModuleCompliance    Module = "compliance"
	ModulePerformance   Module = "performance"
	ModuleRecruitment   Module = "recruitment"
	ModuleOnboarding    Module = "onboarding"
	ModuleOffboarding   Module = "offboarding"
	ModuleSettings      Module = "settings"
	ModuleAudit         Module = "audit"
	ModuleAnalytics     Module = "analytics"
	ModuleFiles         Module = "files"
	ModuleNotifications Module = "notifications"
)

type Action string

const (
	ActionView    Action = "view"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionApprove Action = "approve"
	ActionExport  Action = "export"
	ActionDelete  Action = "delete"
)

const wildcard = "*"

var Modules = []Module{
	ModuleEmployees, ModulePayroll, ModuleAttendance, ModuleLeave, ModuleCompliance,
	ModulePerformance, ModuleRecruitment, ModuleOnboarding, ModuleOffboarding,
	ModuleSettings, ModuleAudit, ModuleAnalytics, ModuleFiles, ModuleNotifications,
}

var Actions = []Action{ActionView, ActionCreate, ActionUpdate, ActionApprove, ActionExport, ActionDelete}

func (m Module) Valid() bool {
	for _, known := range Modules {
		if m == known {
			return true
		}
	}
	return false
}

func (a Action) Valid() bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}

// Permission is the (module, action) pair a route requires.
type Permission struct {
	Module Module `json:"module"`
	Action Action `json:"action"`
}

func (p Permission) String() string {
	return string(p.Module) + ":" + string(p.Action)
}
