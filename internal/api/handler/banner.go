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

// WingBannerHandler manages Wing+ marketplace banners with per-language
// title, subtitle and image keys.
type WingBannerHandler struct {
	Repo  *repository.WingBannerRepo
	Langs *localized.Registry
	Cache *cache.Cache
}

type bannerListOutput struct {
	Body schema.Paged[schema.WingBannerResponse]
}

type bannerInput struct {
	Body schema.WingBannerRequest
}

type bannerUpdateInput struct {
	ID   string `path:"id"`
	Body schema.WingBannerRequest
}

type bannerOutput struct {
	Body schema.WingBannerResponse
}

func RegisterWingBanners(api huma.API, h *WingBannerHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "getWingBannerSchema",
		Method:      http.MethodGet,
		Path:        "/v1/wing-banners/schema",
		Summary:     "Banner columns and empty form for the active languages",
		Tags:        []string{"WingBanners"},
	}, h.schema)
	huma.Register(api, huma.Operation{
		OperationID: "listWingBanners",
		Method:      http.MethodGet,
		Path:        "/v1/wing-banners",
		Summary:     "List Wing+ banners",
		Tags:        []string{"WingBanners"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "getWingBanner",
		Method:      http.MethodGet,
		Path:        "/v1/wing-banners/{id}",
		Summary:     "Get Wing+ banner",
		Tags:        []string{"WingBanners"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "createWingBanner",
		Method:      http.MethodPost,
		Path:        "/v1/wing-banners",
		Summary:     "Create Wing+ banner",
		Tags:        []string{"WingBanners"},
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "updateWingBanner",
		Method:      http.MethodPut,
		Path:        "/v1/wing-banners/{id}",
		Summary:     "Update Wing+ banner",
		Tags:        []string{"WingBanners"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID: "deleteWingBanner",
		Method:      http.MethodDelete,
		Path:        "/v1/wing-banners/{id}",
		Summary:     "Delete Wing+ banner",
		Tags:        []string{"WingBanners"},
	}, h.delete)
}

func (h *WingBannerHandler) schema(ctx context.Context, _ *struct{}) (*schemaOutput, error) {
	langs := h.Langs.Snapshot(ctx)
	return &schemaOutput{Body: buildSchemaView(langs, domain.WingBannerSpec)}, nil
}

func (h *WingBannerHandler) list(ctx context.Context, in *listInput) (*bannerListOutput, error) {
	in.sanitize()
	items, total, err := h.Repo.List(ctx, repository.Filter{Search: in.Search, Page: in.Page, Size: in.Size})
	if err != nil {
		return nil, err
	}
	out := make([]schema.WingBannerResponse, 0, len(items))
	for _, b := range items {
		out = append(out, schema.WingBannerFromDomain(b))
	}
	return &bannerListOutput{Body: schema.NewPaged(out, in.Page, in.Size, total)}, nil
}

func (h *WingBannerHandler) get(ctx context.Context, in *idInput) (*bannerOutput, error) {
	b, err := h.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &bannerOutput{Body: schema.WingBannerFromDomain(b)}, nil
}

func (h *WingBannerHandler) create(ctx context.Context, in *bannerInput) (*bannerOutput, error) {
	b, err := h.Repo.Create(ctx, bannerFromRequest(in.Body))
	if err != nil {
		return nil, err
	}
	h.changed(ctx, "banner.created", b.ID)
	return &bannerOutput{Body: schema.WingBannerFromDomain(b)}, nil
}

func (h *WingBannerHandler) update(ctx context.Context, in *bannerUpdateInput) (*bannerOutput, error) {
	b := bannerFromRequest(in.Body)
	b.ID = in.ID
	b, err := h.Repo.Update(ctx, b)
	if err != nil {
		return nil, mapErr(err)
	}
	h.changed(ctx, "banner.updated", b.ID)
	return &bannerOutput{Body: schema.WingBannerFromDomain(b)}, nil
}

func (h *WingBannerHandler) delete(ctx context.Context, in *idInput) (*struct{}, error) {
	if err := h.Repo.SoftDelete(ctx, in.ID); err != nil {
		return nil, mapErr(err)
	}
	h.changed(ctx, "banner.deleted", in.ID)
	return &struct{}{}, nil
}

func (h *WingBannerHandler) changed(ctx context.Context, event, id string) {
	_ = h.Cache.Invalidate(ctx, "banners")
	emit(ctx, event, id, nil)
}

func bannerFromRequest(r schema.WingBannerRequest) domain.WingBanner {
	b := domain.WingBanner{
		Code:         r.Code,
		LinkURL:      r.LinkURL,
		DisplayOrder: r.DisplayOrder,
		Status:       r.Status,
		Values:       r.Values,
	}
	if b.Status == "" {
		b.Status = domain.WingBannerSpec.Defaults["status"]
	}
	return b
}
