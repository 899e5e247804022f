package handler

import (
	"context"
	"net/http"
	"sort"

	"github.com/casbin/casbin/v2"
	"github.com/danielgtaylor/huma/v2"

	"github.com/wingbank/appconfig/internal/api/schema"
)

// RoleHandler exposes the enforcer's role policies so the portal can show
// what each role may do and admins can define new roles at runtime. The
// built-in admin role cannot be changed.
type RoleHandler struct {
	Enforcer *casbin.Enforcer
}

type roleListOutput struct {
	Body []schema.RoleView
}

type roleNameInput struct {
	Name string `path:"name"`
}

type roleOutput struct {
	Body schema.RoleView
}

type roleCreateInput struct {
	Body schema.RoleView
}

type permissionListOutput struct {
	Body []schema.Permission
}

func RegisterRoles(api huma.API, h *RoleHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "listRoles",
		Method:      http.MethodGet,
		Path:        "/v1/roles",
		Summary:     "List roles with their permissions",
		Tags:        []string{"Roles"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "getRole",
		Method:      http.MethodGet,
		Path:        "/v1/roles/{name}",
		Summary:     "Get one role",
		Tags:        []string{"Roles"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "createRole",
		Method:      http.MethodPost,
		Path:        "/v1/roles",
		Summary:     "Create or replace a role",
		Tags:        []string{"Roles"},
	}, h.upsert)
	huma.Register(api, huma.Operation{
		OperationID: "deleteRole",
		Method:      http.MethodDelete,
		Path:        "/v1/roles/{name}",
		Summary:     "Delete a role and its permissions",
		Tags:        []string{"Roles"},
	}, h.delete)
	huma.Register(api, huma.Operation{
		OperationID: "listPermissions",
		Method:      http.MethodGet,
		Path:        "/v1/permissions",
		Summary:     "List every granted permission rule",
		Tags:        []string{"Roles"},
	}, h.permissions)
}

func (h *RoleHandler) roleView(name string) (schema.RoleView, error) {
	rules, err := h.Enforcer.GetFilteredPolicy(0, name)
	if err != nil {
		return schema.RoleView{}, err
	}
	v := schema.RoleView{Name: name, Permissions: []schema.Permission{}}
	for _, rule := range rules {
		v.Permissions = append(v.Permissions, schema.Permission{Path: rule[1], Method: rule[2]})
	}
	return v, nil
}

func (h *RoleHandler) list(ctx context.Context, _ *struct{}) (*roleListOutput, error) {
	rules, err := h.Enforcer.GetPolicy()
	if err != nil {
		return nil, err
	}
	names := map[string]bool{}
	for _, rule := range rules {
		names[rule[0]] = true
	}
	ordered := make([]string, 0, len(names))
	for name := range names {
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)
	out := make([]schema.RoleView, 0, len(ordered))
	for _, name := range ordered {
		v, err := h.roleView(name)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return &roleListOutput{Body: out}, nil
}

func (h *RoleHandler) get(ctx context.Context, in *roleNameInput) (*roleOutput, error) {
	v, err := h.roleView(in.Name)
	if err != nil {
		return nil, err
	}
	if len(v.Permissions) == 0 {
		return nil, huma.Error404NotFound("role not found")
	}
	return &roleOutput{Body: v}, nil
}

func (h *RoleHandler) upsert(ctx context.Context, in *roleCreateInput) (*roleOutput, error) {
	if in.Body.Name == "" || len(in.Body.Permissions) == 0 {
		return nil, huma.Error422UnprocessableEntity("name and permissions are required")
	}
	if in.Body.Name == "admin" {
		return nil, huma.Error403Forbidden("the admin role is fixed")
	}
	if _, err := h.Enforcer.RemoveFilteredPolicy(0, in.Body.Name); err != nil {
		return nil, err
	}
	for _, p := range in.Body.Permissions {
		if _, err := h.Enforcer.AddPolicy(in.Body.Name, p.Path, p.Method); err != nil {
			return nil, err
		}
	}
	emit(ctx, "role.updated", in.Body.Name, nil)
	v, err := h.roleView(in.Body.Name)
	if err != nil {
		return nil, err
	}
	return &roleOutput{Body: v}, nil
}

func (h *RoleHandler) delete(ctx context.Context, in *roleNameInput) (*struct{}, error) {
	if in.Name == "admin" {
		return nil, huma.Error403Forbidden("the admin role is fixed")
	}
	removed, err := h.Enforcer.RemoveFilteredPolicy(0, in.Name)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, huma.Error404NotFound("role not found")
	}
	emit(ctx, "role.deleted", in.Name, nil)
	return &struct{}{}, nil
}

func (h *RoleHandler) permissions(ctx context.Context, _ *struct{}) (*permissionListOutput, error) {
	rules, err := h.Enforcer.GetPolicy()
	if err != nil {
		return nil, err
	}
	out := make([]schema.Permission, 0, len(rules))
	for _, rule := range rules {
		out = append(out, schema.Permission{Path: rule[1], Method: rule[2]})
	}
	return &permissionListOutput{Body: out}, nil
}
