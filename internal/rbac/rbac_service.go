package rbac

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"hr-hub/internal/session"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed policy.yaml
var defaultPolicy []byte

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

type Service interface {
	Enforce(role session.Role, module Module, action Action) (bool, error)
	PermissionsFor(role session.Role) []Permission
	Roles() []RoleResponse
}

type policyFile struct {
	Roles map[session.Role]map[string][]string `yaml:"roles"`
}

type service struct {
	enforcer *casbin.Enforcer
	table    policyFile
	logger   *zap.Logger
}

// NewService loads the role table from path, or the embedded default when path is empty.
func NewService(path string, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	data := defaultPolicy
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("rbac: read policy %s: %w", path, err)
		}
		data = raw
	}
	return newService(data, l)
}

// NewServiceFromYAML builds the policy from raw YAML.
func NewServiceFromYAML(data []byte, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return newService(data, l)
}

func newService(data []byte, logger *zap.Logger) (*service, error) {
	var table policyFile
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("rbac: parse policy: %w", err)
	}

	rules, err := table.rules()
	if err != nil {
		return nil, err
	}

	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("rbac: model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("rbac: enforcer: %w", err)
	}
	if len(rules) > 0 {
		if _, err := enforcer.AddPolicies(rules); err != nil {
			return nil, fmt.Errorf("rbac: load rules: %w", err)
		}
	}

	logger.Info("rbac policy loaded", zap.Int("roles", len(table.Roles)), zap.Int("rules", len(rules)))
	return &service{enforcer: enforcer, table: table, logger: logger}, nil
}

func (t policyFile) rules() ([][]string, error) {
	var rules [][]string
	for role, modules := range t.Roles {
		if !role.Valid() {
			return nil, fmt.Errorf("rbac: unknown role %q", role)
		}
		for module, actions := range modules {
			if module != wildcard && !Module(module).Valid() {
				return nil, fmt.Errorf("rbac: role %s: unknown module %q", role, module)
			}
			for _, action := range actions {
				if action != wildcard && !Action(action).Valid() {
					return nil, fmt.Errorf("rbac: role %s: unknown action %q on %s", role, action, module)
				}
				rules = append(rules, []string{string(role), module, action})
			}
		}
	}
	return rules, nil
}

func (s *service) Enforce(role session.Role, module Module, action Action) (bool, error) {
	allowed, err := s.enforcer.Enforce(string(role), string(module), string(action))
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", string(role)),
			zap.String("module", string(module)),
			zap.String("action", string(action)),
			zap.Error(err),
		)
		return false, err
	}
	return allowed, nil
}

// PermissionsFor expands wildcards into the concrete pairs granted to role.
func (s *service) PermissionsFor(role session.Role) []Permission {
	var perms []Permission
	for _, m := range Modules {
		for _, a := range Actions {
			if ok, err := s.enforcer.Enforce(string(role), string(m), string(a)); err == nil && ok {
				perms = append(perms, Permission{Module: m, Action: a})
			}
		}
	}
	return perms
}

func (s *service) Roles() []RoleResponse {
	roles := make([]session.Role, 0, len(s.table.Roles))
	for role := range s.table.Roles {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })

	out := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		perms := s.PermissionsFor(role)
		names := make([]string, len(perms))
		for i, p := range perms {
			names[i] = p.String()
		}
		out = append(out, RoleResponse{Name: string(role), Permissions: names})
	}
	return out
}
