package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// SQLAudit records every dispatched change event as an audit row. Event names
// follow collection.action, so "banner.updated" lands as entity_type=banner,
// action=updated.
type SQLAudit struct {
	DB          *sql.DB
	Driver      string
	TablePrefix string
}

// Emit inserts the audit row for one event.
func (a *SQLAudit) Emit(ctx context.Context, e Event) error {
	if a == nil || a.DB == nil {
		return nil
	}
	entityType, action, _ := strings.Cut(e.Name, ".")
	var payload string
	if e.Data != nil {
		data, err := json.Marshal(e.Data)
		if err != nil {
			return err
		}
		payload = string(data)
	}
	tbl := a.TablePrefix + "audit_logs"
	var stmt string
	if a.Driver == "postgres" {
		stmt = fmt.Sprintf("INSERT INTO %s(actor, action, entity_type, entity_id, payload, created_at) VALUES ($1, $2, $3, $4, $5, $6)", tbl)
	} else {
		stmt = fmt.Sprintf("INSERT INTO %s(actor, action, entity_type, entity_id, payload, created_at) VALUES (?, ?, ?, ?, ?, ?)", tbl)
	}
	_, err := a.DB.ExecContext(ctx, stmt, e.Actor, action, entityType, e.Entity, payload, e.Time)
	return err
}
