package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wingbank/appconfig/internal/api/schema"
	"github.com/wingbank/appconfig/internal/repository"
	"github.com/wingbank/appconfig/internal/util"
)

// AuditHandler serves the read-only audit trail.
type AuditHandler struct {
	Repo *repository.AuditLogRepo
}

type auditListInput struct {
	Search     string `query:"search"`
	EntityType string `query:"entityType"`
	Action     string `query:"action"`
	From       string `query:"from" doc:"RFC 3339 lower bound"`
	To         string `query:"to" doc:"RFC 3339 upper bound"`
	Page       int    `query:"page"`
	Size       int    `query:"size"`
}

type auditListOutput struct {
	Body schema.Paged[schema.AuditLogResponse]
}

func RegisterAuditLogs(api huma.API, h *AuditHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "listAuditLogs",
		Method:      http.MethodGet,
		Path:        "/v1/audit-logs",
		Summary:     "List recorded admin changes, newest first",
		Tags:        []string{"AuditLogs"},
	}, h.list)
}

func (h *AuditHandler) list(ctx context.Context, in *auditListInput) (*auditListOutput, error) {
	f := repository.AuditFilter{
		Search:     in.Search,
		EntityType: in.EntityType,
		Action:     in.Action,
		Page:       in.Page,
		Size:       util.SanitizeLimit(in.Size),
	}
	if f.Page < 0 {
		f.Page = 0
	}
	if in.From != "" {
		t, err := time.Parse(time.RFC3339, in.From)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("from must be RFC 3339")
		}
		f.From = t
	}
	if in.To != "" {
		t, err := time.Parse(time.RFC3339, in.To)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("to must be RFC 3339")
		}
		f.To = t
	}
	items, total, err := h.Repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]schema.AuditLogResponse, 0, len(items))
	for _, a := range items {
		out = append(out, schema.AuditLogFromDomain(a))
	}
	return &auditListOutput{Body: schema.NewPaged(out, f.Page, f.Size, total)}, nil
}
