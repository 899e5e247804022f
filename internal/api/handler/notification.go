package handler

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wingbank/appconfig/internal/api/schema"
	"github.com/wingbank/appconfig/internal/domain"
	"github.com/wingbank/appconfig/internal/repository"
	"github.com/wingbank/appconfig/pkg/localized"
)

// NotificationHandler manages push templates with title{Code}/body{Code} keys.
type NotificationHandler struct {
	Repo  *repository.NotificationRepo
	Langs *localized.Registry
}

type notificationListOutput struct {
	Body schema.Paged[schema.NotificationResponse]
}

type notificationInput struct {
	Body schema.NotificationRequest
}

type notificationUpdateInput struct {
	ID   string `path:"id"`
	Body schema.NotificationRequest
}

type notificationOutput struct {
	Body schema.NotificationResponse
}

func RegisterNotifications(api huma.API, h *NotificationHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "getNotificationSchema",
		Method:      http.MethodGet,
		Path:        "/v1/notification-templates/schema",
		Summary:     "Notification columns and empty form for the active languages",
		Tags:        []string{"Notifications"},
	}, h.schema)
	huma.Register(api, huma.Operation{
		OperationID: "listNotificationTemplates",
		Method:      http.MethodGet,
		Path:        "/v1/notification-templates",
		Summary:     "List notification templates",
		Tags:        []string{"Notifications"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "getNotificationTemplate",
		Method:      http.MethodGet,
		Path:        "/v1/notification-templates/{id}",
		Summary:     "Get notification template",
		Tags:        []string{"Notifications"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "createNotificationTemplate",
		Method:      http.MethodPost,
		Path:        "/v1/notification-templates",
		Summary:     "Create notification template",
		Tags:        []string{"Notifications"},
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "updateNotificationTemplate",
		Method:      http.MethodPut,
		Path:        "/v1/notification-templates/{id}",
		Summary:     "Update notification template",
		Tags:        []string{"Notifications"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID: "deleteNotificationTemplate",
		Method:      http.MethodDelete,
		Path:        "/v1/notification-templates/{id}",
		Summary:     "Delete notification template",
		Tags:        []string{"Notifications"},
	}, h.delete)
}

func (h *NotificationHandler) schema(ctx context.Context, _ *struct{}) (*schemaOutput, error) {
	langs := h.Langs.Snapshot(ctx)
	return &schemaOutput{Body: buildSchemaView(langs, domain.NotificationSpec)}, nil
}

func (h *NotificationHandler) list(ctx context.Context, in *listInput) (*notificationListOutput, error) {
	in.sanitize()
	items, total, err := h.Repo.List(ctx, repository.Filter{Search: in.Search, Page: in.Page, Size: in.Size})
	if err != nil {
		return nil, err
	}
	out := make([]schema.NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, schema.NotificationFromDomain(n))
	}
	return &notificationListOutput{Body: schema.NewPaged(out, in.Page, in.Size, total)}, nil
}

func (h *NotificationHandler) get(ctx context.Context, in *idInput) (*notificationOutput, error) {
	n, err := h.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &notificationOutput{Body: schema.NotificationFromDomain(n)}, nil
}

func (h *NotificationHandler) create(ctx context.Context, in *notificationInput) (*notificationOutput, error) {
	n, err := h.Repo.Create(ctx, notificationFromRequest(in.Body))
	if err != nil {
		return nil, err
	}
	emit(ctx, "notification.created", n.ID, nil)
	return &notificationOutput{Body: schema.NotificationFromDomain(n)}, nil
}

func (h *NotificationHandler) update(ctx context.Context, in *notificationUpdateInput) (*notificationOutput, error) {
	n := notificationFromRequest(in.Body)
	n.ID = in.ID
	n, err := h.Repo.Update(ctx, n)
	if err != nil {
		return nil, mapErr(err)
	}
	emit(ctx, "notification.updated", n.ID, nil)
	return &notificationOutput{Body: schema.NotificationFromDomain(n)}, nil
}

func (h *NotificationHandler) delete(ctx context.Context, in *idInput) (*struct{}, error) {
	if err := h.Repo.SoftDelete(ctx, in.ID); err != nil {
		return nil, mapErr(err)
	}
	emit(ctx, "notification.deleted", in.ID, nil)
	return &struct{}{}, nil
}

func notificationFromRequest(r schema.NotificationRequest) domain.NotificationTemplate {
	n := domain.NotificationTemplate{
		Code:   r.Code,
		Type:   r.Type,
		Status: r.Status,
		Values: r.Values,
	}
	if n.Type == "" {
		n.Type = domain.NotificationSpec.Defaults["type"]
	}
	if n.Status == "" {
		n.Status = domain.NotificationSpec.Defaults["status"]
	}
	return n
}
