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

// WingPartnerHandler manages Wing+ marketplace partners with per-language
// name and description keys.
type WingPartnerHandler struct {
	Repo  *repository.WingPartnerRepo
	Langs *localized.Registry
	Cache *cache.Cache
}

type partnerListOutput struct {
	Body schema.Paged[schema.WingPartnerResponse]
}

type partnerInput struct {
	Body schema.WingPartnerRequest
}

type partnerUpdateInput struct {
	ID   string `path:"id"`
	Body schema.WingPartnerRequest
}

type partnerOutput struct {
	Body schema.WingPartnerResponse
}

func RegisterWingPartners(api huma.API, h *WingPartnerHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "getWingPartnerSchema",
		Method:      http.MethodGet,
		Path:        "/v1/wing-partners/schema",
		Summary:     "Partner columns and empty form for the active languages",
		Tags:        []string{"WingPartners"},
	}, h.schema)
	huma.Register(api, huma.Operation{
		OperationID: "listWingPartners",
		Method:      http.MethodGet,
		Path:        "/v1/wing-partners",
		Summary:     "List Wing+ partners",
		Tags:        []string{"WingPartners"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "getWingPartner",
		Method:      http.MethodGet,
		Path:        "/v1/wing-partners/{id}",
		Summary:     "Get Wing+ partner",
		Tags:        []string{"WingPartners"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "createWingPartner",
		Method:      http.MethodPost,
		Path:        "/v1/wing-partners",
		Summary:     "Create Wing+ partner",
		Tags:        []string{"WingPartners"},
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "updateWingPartner",
		Method:      http.MethodPut,
		Path:        "/v1/wing-partners/{id}",
		Summary:     "Update Wing+ partner",
		Tags:        []string{"WingPartners"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID: "deleteWingPartner",
		Method:      http.MethodDelete,
		Path:        "/v1/wing-partners/{id}",
		Summary:     "Delete Wing+ partner",
		Tags:        []string{"WingPartners"},
	}, h.delete)
}

func (h *WingPartnerHandler) schema(ctx context.Context, _ *struct{}) (*schemaOutput, error) {
	langs := h.Langs.Snapshot(ctx)
	return &schemaOutput{Body: buildSchemaView(langs, domain.WingPartnerSpec)}, nil
}

func (h *WingPartnerHandler) list(ctx context.Context, in *listInput) (*partnerListOutput, error) {
	in.sanitize()
	items, total, err := h.Repo.List(ctx, repository.Filter{Search: in.Search, Page: in.Page, Size: in.Size})
	if err != nil {
		return nil, err
	}
	out := make([]schema.WingPartnerResponse, 0, len(items))
	for _, p := range items {
		out = append(out, schema.WingPartnerFromDomain(p))
	}
	return &partnerListOutput{Body: schema.NewPaged(out, in.Page, in.Size, total)}, nil
}

func (h *WingPartnerHandler) get(ctx context.Context, in *idInput) (*partnerOutput, error) {
	p, err := h.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &partnerOutput{Body: schema.WingPartnerFromDomain(p)}, nil
}

func (h *WingPartnerHandler) create(ctx context.Context, in *partnerInput) (*partnerOutput, error) {
	p, err := h.Repo.Create(ctx, partnerFromRequest(in.Body))
	if err != nil {
		return nil, err
	}
	h.changed(ctx, "partner.created", p.ID)
	return &partnerOutput{Body: schema.WingPartnerFromDomain(p)}, nil
}

func (h *WingPartnerHandler) update(ctx context.Context, in *partnerUpdateInput) (*partnerOutput, error) {
	p := partnerFromRequest(in.Body)
	p.ID = in.ID
	p, err := h.Repo.Update(ctx, p)
	if err != nil {
		return nil, mapErr(err)
	}
	h.changed(ctx, "partner.updated", p.ID)
	return &partnerOutput{Body: schema.WingPartnerFromDomain(p)}, nil
}

func (h *WingPartnerHandler) delete(ctx context.Context, in *idInput) (*struct{}, error) {
	if err := h.Repo.SoftDelete(ctx, in.ID); err != nil {
		return nil, mapErr(err)
	}
	h.changed(ctx, "partner.deleted", in.ID)
	return &struct{}{}, nil
}

func (h *WingPartnerHandler) changed(ctx context.Context, event, id string) {
	_ = h.Cache.Invalidate(ctx, "partners")
	emit(ctx, event, id, nil)
}

func partnerFromRequest(r schema.WingPartnerRequest) domain.WingPartner {
	p := domain.WingPartner{
		Code:      r.Code,
		Icon:      r.Icon,
		BgColor:   r.BgColor,
		Badge:     r.Badge,
		IsNew:     r.IsNew,
		SortOrder: r.SortOrder,
		Status:    r.Status,
		Values:    r.Values,
	}
	if p.Status == "" {
		p.Status = domain.WingPartnerSpec.Defaults["status"]
	}
	return p
}
