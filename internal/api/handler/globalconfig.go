package handler

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wingbank/appconfig/internal/api/schema"
	"github.com/wingbank/appconfig/internal/cache"
	"github.com/wingbank/appconfig/internal/domain"
	"github.com/wingbank/appconfig/internal/repository"
)

// GlobalConfigHandler manages the key/value entries served to mobile apps.
type GlobalConfigHandler struct {
	Repo  *repository.GlobalConfigRepo
	Cache *cache.Cache
}

type configListOutput struct {
	Body schema.Paged[schema.GlobalConfigResponse]
}

type configInput struct {
	Body schema.GlobalConfigRequest
}

type configUpdateInput struct {
	ID   string `path:"id"`
	Body schema.GlobalConfigRequest
}

type configOutput struct {
	Body schema.GlobalConfigResponse
}

func RegisterGlobalConfigs(api huma.API, h *GlobalConfigHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "listGlobalConfigs",
		Method:      http.MethodGet,
		Path:        "/v1/global-configs",
		Summary:     "List global configs",
		Tags:        []string{"GlobalConfigs"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "getGlobalConfig",
		Method:      http.MethodGet,
		Path:        "/v1/global-configs/{id}",
		Summary:     "Get global config",
		Tags:        []string{"GlobalConfigs"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "createGlobalConfig",
		Method:      http.MethodPost,
		Path:        "/v1/global-configs",
		Summary:     "Create global config",
		Tags:        []string{"GlobalConfigs"},
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "updateGlobalConfig",
		Method:      http.MethodPut,
		Path:        "/v1/global-configs/{id}",
		Summary:     "Update global config",
		Tags:        []string{"GlobalConfigs"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID: "deleteGlobalConfig",
		Method:      http.MethodDelete,
		Path:        "/v1/global-configs/{id}",
		Summary:     "Delete global config",
		Tags:        []string{"GlobalConfigs"},
	}, h.delete)
}

func (h *GlobalConfigHandler) list(ctx context.Context, in *listInput) (*configListOutput, error) {
	in.sanitize()
	items, total, err := h.Repo.List(ctx, repository.Filter{Search: in.Search, Page: in.Page, Size: in.Size})
	if err != nil {
		return nil, err
	}
	out := make([]schema.GlobalConfigResponse, 0, len(items))
	for _, c := range items {
		out = append(out, schema.GlobalConfigFromDomain(c))
	}
	return &configListOutput{Body: schema.NewPaged(out, in.Page, in.Size, total)}, nil
}

func (h *GlobalConfigHandler) get(ctx context.Context, in *idInput) (*configOutput, error) {
	c, err := h.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &configOutput{Body: schema.GlobalConfigFromDomain(c)}, nil
}

func (h *GlobalConfigHandler) create(ctx context.Context, in *configInput) (*configOutput, error) {
	c, err := h.Repo.Create(ctx, configFromRequest(in.Body))
	if err != nil {
		return nil, err
	}
	h.changed(ctx, "globalconfig.created", c.ID)
	return &configOutput{Body: schema.GlobalConfigFromDomain(c)}, nil
}

func (h *GlobalConfigHandler) update(ctx context.Context, in *configUpdateInput) (*configOutput, error) {
	c := configFromRequest(in.Body)
	c.ID = in.ID
	c, err := h.Repo.Update(ctx, c)
	if err != nil {
		return nil, mapErr(err)
	}
	h.changed(ctx, "globalconfig.updated", c.ID)
	return &configOutput{Body: schema.GlobalConfigFromDomain(c)}, nil
}

func (h *GlobalConfigHandler) delete(ctx context.Context, in *idInput) (*struct{}, error) {
	if err := h.Repo.SoftDelete(ctx, in.ID); err != nil {
		return nil, mapErr(err)
	}
	h.changed(ctx, "globalconfig.deleted", in.ID)
	return &struct{}{}, nil
}

func (h *GlobalConfigHandler) changed(ctx context.Context, event, id string) {
	_ = h.Cache.Invalidate(ctx, "mobileConfig")
	emit(ctx, event, id, nil)
}

func configFromRequest(r schema.GlobalConfigRequest) domain.GlobalConfig {
	t := r.Type
	if t == "" {
		t = "STRING"
	}
	return domain.GlobalConfig{
		Key:         r.Key,
		Value:       r.Value,
		Type:        t,
		Description: r.Description,
	}
}
