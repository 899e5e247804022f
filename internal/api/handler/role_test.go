package handler

import (
	"context"
	"testing"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/wingbank/appconfig/internal/api/schema"
)

func testEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()
	m := model.NewModel()
	m.AddDef("r", "r", "sub, obj, act")
	m.AddDef("p", "p", "sub, obj, act")
	m.AddDef("g", "g", "_, _")
	m.AddDef("e", "e", "some(where (p.eft == allow))")
	m.AddDef("m", "m", "g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == \"*\")")
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		t.Fatalf("enforcer: %v", err)
	}
	e.AddPolicy("admin", "/v1/*", "*")
	e.AddPolicy("viewer", "/v1/*", "GET")
	return e
}

func TestRoleHandlerUpsertReplacesRules(t *testing.T) {
	h := &RoleHandler{Enforcer: testEnforcer(t)}
	ctx := context.Background()

	out, err := h.upsert(ctx, &roleCreateInput{Body: schema.RoleView{
		Name: "ops",
		Permissions: []schema.Permission{
			{Path: "/v1/releases", Method: "GET"},
			{Path: "/v1/releases", Method: "POST"},
		},
	}})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if len(out.Body.Permissions) != 2 {
		t.Fatalf("permissions = %+v", out.Body.Permissions)
	}

	// a second upsert replaces, not appends
	out, err = h.upsert(ctx, &roleCreateInput{Body: schema.RoleView{
		Name:        "ops",
		Permissions: []schema.Permission{{Path: "/v1/releases", Method: "GET"}},
	}})
	if err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	if len(out.Body.Permissions) != 1 {
		t.Fatalf("permissions after replace = %+v", out.Body.Permissions)
	}

	if ok, _ := h.Enforcer.Enforce("ops", "/v1/releases", "GET"); !ok {
		t.Fatal("ops should read releases")
	}
	if ok, _ := h.Enforcer.Enforce("ops", "/v1/releases", "POST"); ok {
		t.Fatal("replaced rule still enforced")
	}
}

func TestRoleHandlerProtectsAdmin(t *testing.T) {
	h := &RoleHandler{Enforcer: testEnforcer(t)}
	ctx := context.Background()

	if _, err := h.upsert(ctx, &roleCreateInput{Body: schema.RoleView{
		Name:        "admin",
		Permissions: []schema.Permission{{Path: "/v1/releases", Method: "GET"}},
	}}); err == nil {
		t.Fatal("admin role must not be replaceable")
	}
	if _, err := h.delete(ctx, &roleNameInput{Name: "admin"}); err == nil {
		t.Fatal("admin role must not be deletable")
	}
	if ok, _ := h.Enforcer.Enforce("admin", "/v1/users", "DELETE"); !ok {
		t.Fatal("admin policy lost")
	}
}

func TestRoleHandlerDeleteUnknown(t *testing.T) {
	h := &RoleHandler{Enforcer: testEnforcer(t)}
	if _, err := h.delete(context.Background(), &roleNameInput{Name: "ghost"}); err == nil {
		t.Fatal("expected 404 for unknown role")
	}
}
