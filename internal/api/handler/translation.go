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

// TranslationHandler manages mobile UI strings with {code}Value keys.
type TranslationHandler struct {
	Repo  *repository.TranslationRepo
	Langs *localized.Registry
	Cache *cache.Cache
}

type translationListInput struct {
	listInput
	Module   string `query:"module"`
	Platform string `query:"platform"`
}

type translationListOutput struct {
	Body schema.Paged[schema.TranslationResponse]
}

type translationInput struct {
	Body schema.TranslationRequest
}

type translationUpdateInput struct {
	ID   string `path:"id"`
	Body schema.TranslationRequest
}

type translationOutput struct {
	Body schema.TranslationResponse
}

func RegisterTranslations(api huma.API, h *TranslationHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "getTranslationSchema",
		Method:      http.MethodGet,
		Path:        "/v1/translations/schema",
		Summary:     "Translation columns and empty form for the active languages",
		Tags:        []string{"Translations"},
	}, h.schema)
	huma.Register(api, huma.Operation{
		OperationID: "listTranslations",
		Method:      http.MethodGet,
		Path:        "/v1/translations",
		Summary:     "List translations",
		Tags:        []string{"Translations"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "getTranslation",
		Method:      http.MethodGet,
		Path:        "/v1/translations/{id}",
		Summary:     "Get translation",
		Tags:        []string{"Translations"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "createTranslation",
		Method:      http.MethodPost,
		Path:        "/v1/translations",
		Summary:     "Create translation",
		Tags:        []string{"Translations"},
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "updateTranslation",
		Method:      http.MethodPut,
		Path:        "/v1/translations/{id}",
		Summary:     "Update translation",
		Tags:        []string{"Translations"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID: "deleteTranslation",
		Method:      http.MethodDelete,
		Path:        "/v1/translations/{id}",
		Summary:     "Delete translation",
		Tags:        []string{"Translations"},
	}, h.delete)
}

func (h *TranslationHandler) schema(ctx context.Context, _ *struct{}) (*schemaOutput, error) {
	langs := h.Langs.Snapshot(ctx)
	return &schemaOutput{Body: buildSchemaView(langs, domain.TranslationSpec)}, nil
}

func (h *TranslationHandler) list(ctx context.Context, in *translationListInput) (*translationListOutput, error) {
	in.sanitize()
	items, total, err := h.Repo.List(ctx, repository.TranslationFilter{
		Filter:   repository.Filter{Search: in.Search, Page: in.Page, Size: in.Size},
		Module:   in.Module,
		Platform: in.Platform,
	})
	if err != nil {
		return nil, err
	}
	out := make([]schema.TranslationResponse, 0, len(items))
	for _, t := range items {
		out = append(out, schema.TranslationFromDomain(t))
	}
	return &translationListOutput{Body: schema.NewPaged(out, in.Page, in.Size, total)}, nil
}

func (h *TranslationHandler) get(ctx context.Context, in *idInput) (*translationOutput, error) {
	t, err := h.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &translationOutput{Body: schema.TranslationFromDomain(t)}, nil
}

func (h *TranslationHandler) create(ctx context.Context, in *translationInput) (*translationOutput, error) {
	t, err := h.Repo.Create(ctx, translationFromRequest(in.Body))
	if err != nil {
		return nil, err
	}
	h.changed(ctx, "translation.created", t.ID)
	return &translationOutput{Body: schema.TranslationFromDomain(t)}, nil
}

func (h *TranslationHandler) update(ctx context.Context, in *translationUpdateInput) (*translationOutput, error) {
	t := translationFromRequest(in.Body)
	t.ID = in.ID
	t, err := h.Repo.Update(ctx, t)
	if err != nil {
		return nil, mapErr(err)
	}
	h.changed(ctx, "translation.updated", t.ID)
	return &translationOutput{Body: schema.TranslationFromDomain(t)}, nil
}

func (h *TranslationHandler) delete(ctx context.Context, in *idInput) (*struct{}, error) {
	if err := h.Repo.SoftDelete(ctx, in.ID); err != nil {
		return nil, mapErr(err)
	}
	h.changed(ctx, "translation.deleted", in.ID)
	return &struct{}{}, nil
}

func (h *TranslationHandler) changed(ctx context.Context, event, id string) {
	_ = h.Cache.Invalidate(ctx, "translations")
	emit(ctx, event, id, nil)
}

func translationFromRequest(r schema.TranslationRequest) domain.Translation {
	t := domain.Translation{
		Key:      r.Key,
		Module:   r.Module,
		Version:  r.Version,
		Platform: r.Platform,
		Values:   r.Values,
	}
	if t.Version == "" {
		t.Version = domain.TranslationSpec.Defaults["version"]
	}
	if t.Platform == "" {
		t.Platform = domain.TranslationSpec.Defaults["platform"]
	}
	return t
}
