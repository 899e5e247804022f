package handler

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wingbank/appconfig/internal/api/schema"
	"github.com/wingbank/appconfig/internal/cache"
	"github.com/wingbank/appconfig/internal/domain"
	"github.com/wingbank/appconfig/internal/repository"
	"github.com/wingbank/appconfig/pkg/localized"
)

// WingCategoryHandler manages Wing+ marketplace categories with per-language
// name and display name keys.
type WingCategoryHandler struct {
	Repo  *repository.WingCategoryRepo
	Langs *localized.Registry
	Cache *cache.Cache
}

type categoryListOutput struct {
	Body schema.Paged[schema.WingCategoryResponse]
}

type categoryInput struct {
	Body schema.WingCategoryRequest
}

type categoryUpdateInput struct {
	ID   string `path:"id"`
	Body schema.WingCategoryRequest
}

type categoryOutput struct {
	Body schema.WingCategoryResponse
}

func RegisterWingCategories(api huma.API, h *WingCategoryHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "getWingCategorySchema",
		Method:      http.MethodGet,
		Path:        "/v1/wing-categories/schema",
		Summary:     "Category columns and empty form for the active languages",
		Tags:        []string{"WingCategories"},
	}, h.schema)
	huma.Register(api, huma.Operation{
		OperationID: "listWingCategories",
		Method:      http.MethodGet,
		Path:        "/v1/wing-categories",
		Summary:     "List Wing+ categories",
		Tags:        []string{"WingCategories"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "getWingCategory",
		Method:      http.MethodGet,
		Path:        "/v1/wing-categories/{id}",
		Summary:     "Get Wing+ category",
		Tags:        []string{"WingCategories"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "createWingCategory",
		Method:      http.MethodPost,
		Path:        "/v1/wing-categories",
		Summary:     "Create Wing+ category",
		Tags:        []string{"WingCategories"},
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "updateWingCategory",
		Method:      http.MethodPut,
		Path:        "/v1/wing-categories/{id}",
		Summary:     "Update Wing+ category",
		Tags:        []string{"WingCategories"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID: "deleteWingCategory",
		Method:      http.MethodDelete,
		Path:        "/v1/wing-categories/{id}",
		Summary:     "Delete Wing+ category",
		Tags:        []string{"WingCategories"},
	}, h.delete)
}

func (h *WingCategoryHandler) schema(ctx context.Context, _ *struct{}) (*schemaOutput, error) {
	langs := h.Langs.Snapshot(ctx)
	return &schemaOutput{Body: buildSchemaView(langs, domain.WingCategorySpec)}, nil
}

func (h *WingCategoryHandler) list(ctx context.Context, in *listInput) (*categoryListOutput, error) {
	in.sanitize()
	items, total, err := h.Repo.List(ctx, repository.Filter{Search: in.Search, Page: in.Page, Size: in.Size})
	if err != nil {
		return nil, err
	}
	out := make([]schema.WingCategoryResponse, 0, len(items))
	for _, c := range items {
		out = append(out, schema.WingCategoryFromDomain(c))
	}
	return &categoryListOutput{Body: schema.NewPaged(out, in.Page, in.Size, total)}, nil
}

func (h *WingCategoryHandler) get(ctx context.Context, in *idInput) (*categoryOutput, error) {
	c, err := h.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &categoryOutput{Body: schema.WingCategoryFromDomain(c)}, nil
}

func (h *WingCategoryHandler) create(ctx context.Context, in *categoryInput) (*categoryOutput, error) {
	c, err := h.Repo.Create(ctx, categoryFromRequest(in.Body))
	if err != nil {
		return nil, err
	}
	h.changed(ctx, "category.created", c.ID)
	return &categoryOutput{Body: schema.WingCategoryFromDomain(c)}, nil
}

func (h *WingCategoryHandler) update(ctx context.Context, in *categoryUpdateInput) (*categoryOutput, error) {
	c := categoryFromRequest(in.Body)
	c.ID = in.ID
	c, err := h.Repo.Update(ctx, c)
	if err != nil {
		return nil, mapErr(err)
	}
	h.changed(ctx, "category.updated", c.ID)
	return &categoryOutput{Body: schema.WingCategoryFromDomain(c)}, nil
}

func (h *WingCategoryHandler) delete(ctx context.Context, in *idInput) (*struct{}, error) {
	if err := h.Repo.SoftDelete(ctx, in.ID); err != nil {
		return nil, mapErr(err)
	}
	h.changed(ctx, "category.deleted", in.ID)
	return &struct{}{}, nil
}

func (h *WingCategoryHandler) changed(ctx context.Context, event, id string) {
	_ = h.Cache.Invalidate(ctx, "categories")
	emit(ctx, event, id, nil)
}

func categoryFromRequest(r schema.WingCategoryRequest) domain.WingCategory {
	c := domain.WingCategory{
		Key:       r.Key,
		Icon:      r.Icon,
		ImageURL:  r.ImageURL,
		SortOrder: r.SortOrder,
		Status:    r.Status,
		Values:    r.Values,
	}
	if c.Status == "" {
		c.Status = domain.WingCategorySpec.Defaults["status"]
	}
	return c
}
