package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wingbank/appconfig/internal/api/schema"
	"github.com/wingbank/appconfig/internal/domain"
	"github.com/wingbank/appconfig/internal/repository"
	"github.com/wingbank/appconfig/pkg/localized"
)

// ApiMessageHandler manages backend error messages with {code}Message keys.
type ApiMessageHandler struct {
	Repo  *repository.ApiMessageRepo
	Langs *localized.Registry
}

type messageListOutput struct {
	Body schema.Paged[schema.ApiMessageResponse]
}

type messageInput struct {
	Body schema.ApiMessageRequest
}

type messageUpdateInput struct {
	ID   string `path:"id"`
	Body schema.ApiMessageRequest
}

type messageOutput struct {
	Body schema.ApiMessageResponse
}

func RegisterApiMessages(api huma.API, h *ApiMessageHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "getApiMessageSchema",
		Method:      http.MethodGet,
		Path:        "/v1/api-messages/schema",
		Summary:     "API message columns and empty form for the active languages",
		Tags:        []string{"ApiMessages"},
	}, h.schema)
	huma.Register(api, huma.Operation{
		OperationID: "listApiMessages",
		Method:      http.MethodGet,
		Path:        "/v1/api-messages",
		Summary:     "List API messages",
		Tags:        []string{"ApiMessages"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "getApiMessage",
		Method:      http.MethodGet,
		Path:        "/v1/api-messages/{id}",
		Summary:     "Get API message",
		Tags:        []string{"ApiMessages"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "createApiMessage",
		Method:      http.MethodPost,
		Path:        "/v1/api-messages",
		Summary:     "Create API message",
		Tags:        []string{"ApiMessages"},
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "updateApiMessage",
		Method:      http.MethodPut,
		Path:        "/v1/api-messages/{id}",
		Summary:     "Update API message",
		Tags:        []string{"ApiMessages"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID: "deleteApiMessage",
		Method:      http.MethodDelete,
		Path:        "/v1/api-messages/{id}",
		Summary:     "Delete API message",
		Tags:        []string{"ApiMessages"},
	}, h.delete)
}

func (h *ApiMessageHandler) schema(ctx context.Context, _ *struct{}) (*schemaOutput, error) {
	langs := h.Langs.Snapshot(ctx)
	return &schemaOutput{Body: buildSchemaView(langs, domain.ApiMessageSpec)}, nil
}

func (h *ApiMessageHandler) list(ctx context.Context, in *listInput) (*messageListOutput, error) {
	in.sanitize()
	items, total, err := h.Repo.List(ctx, repository.Filter{Search: in.Search, Page: in.Page, Size: in.Size})
	if err != nil {
		return nil, err
	}
	out := make([]schema.ApiMessageResponse, 0, len(items))
	for _, m := range items {
		out = append(out, schema.ApiMessageFromDomain(m))
	}
	return &messageListOutput{Body: schema.NewPaged(out, in.Page, in.Size, total)}, nil
}

func (h *ApiMessageHandler) get(ctx context.Context, in *idInput) (*messageOutput, error) {
	m, err := h.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &messageOutput{Body: schema.ApiMessageFromDomain(m)}, nil
}

func (h *ApiMessageHandler) create(ctx context.Context, in *messageInput) (*messageOutput, error) {
	m, err := h.Repo.Create(ctx, messageFromRequest(in.Body))
	if err != nil {
		return nil, err
	}
	emit(ctx, "apimessage.created", m.ID, nil)
	return &messageOutput{Body: schema.ApiMessageFromDomain(m)}, nil
}

func (h *ApiMessageHandler) update(ctx context.Context, in *messageUpdateInput) (*messageOutput, error) {
	m := messageFromRequest(in.Body)
	m.ID = in.ID
	m, err := h.Repo.Update(ctx, m)
	if err != nil {
		return nil, mapErr(err)
	}
	emit(ctx, "apimessage.updated", m.ID, nil)
	return &messageOutput{Body: schema.ApiMessageFromDomain(m)}, nil
}

func (h *ApiMessageHandler) delete(ctx context.Context, in *idInput) (*struct{}, error) {
	if err := h.Repo.SoftDelete(ctx, in.ID); err != nil {
		return nil, mapErr(err)
	}
	emit(ctx, "apimessage.deleted", in.ID, nil)
	return &struct{}{}, nil
}

func messageFromRequest(r schema.ApiMessageRequest) domain.ApiMessage {
	m := domain.ApiMessage{
		ErrorCode:  r.ErrorCode,
		Type:       r.Type,
		HTTPStatus: r.HTTPStatus,
		Values:     r.Values,
	}
	if m.Type == "" {
		m.Type = domain.ApiMessageSpec.Defaults["type"]
	}
	if m.HTTPStatus == 0 {
		if s, err := strconv.Atoi(domain.ApiMessageSpec.Defaults["httpStatus"]); err == nil {
			m.HTTPStatus = s
		}
	}
	return m
}
