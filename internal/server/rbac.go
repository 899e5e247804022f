package server

import (
	"context"
	"database/sql"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/wingbank/appconfig/internal/auth"
)

// initEnforcer creates a Casbin enforcer with the built-in role policies.
// Editors can read and change content; viewers only read.
func initEnforcer() (*casbin.Enforcer, error) {
	m := model.NewModel()
	m.AddDef("r", "r", "sub, obj, act")
	m.AddDef("p", "p", "sub, obj, act")
	m.AddDef("g", "g", "_, _")
	m.AddDef("e", "e", "some(where (p.eft == allow))")
	m.AddDef("m", "m", "g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == \"*\")")
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	e.AddPolicy("admin", "/v1/*", "*")
	e.AddPolicy("editor", "/v1/*", "GET")
	e.AddPolicy("editor", "/v1/*", "POST")
	e.AddPolicy("editor", "/v1/*", "PUT")
	e.AddPolicy("viewer", "/v1/*", "GET")
	return e, nil
}

// roleResolver maps an authenticated username to their stored role.
func roleResolver(db *sql.DB, driver, tablePrefix string) func(context.Context, string) ([]string, error) {
	repo := &auth.UserRepo{DB: db, Driver: driver, TablePrefix: tablePrefix}
	return func(ctx context.Context, user string) ([]string, error) {
		role, err := repo.GetRole(ctx, user)
		if err != nil || role == "" {
			return nil, err
		}
		return []string{role}, nil
	}
}
