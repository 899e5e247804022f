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

// AppLanguageHandler manages the language list that drives every dynamic
// field. Mutations refresh the registry snapshot so subsequent schema reads
// see the new set.
type AppLanguageHandler struct {
	Repo  *repository.AppLanguageRepo
	Langs *localized.Registry
	Cache *cache.Cache
}

type langListInput struct {
	listInput
	Status string `query:"status"`
}

type langListOutput struct {
	Body schema.Paged[schema.AppLanguageResponse]
}

type langInput struct {
	Body schema.AppLanguageRequest
}

type langUpdateInput struct {
	ID   string `path:"id"`
	Body schema.AppLanguageRequest
}

type langOutput struct {
	Body schema.AppLanguageResponse
}

type langRefreshOutput struct {
	Body struct {
		Languages []localized.Language `json:"languages"`
	}
}

func RegisterAppLanguages(api huma.API, h *AppLanguageHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "listAppLanguages",
		Method:      http.MethodGet,
		Path:        "/v1/app-languages",
		Summary:     "List app languages",
		Tags:        []string{"AppLanguages"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "getAppLanguage",
		Method:      http.MethodGet,
		Path:        "/v1/app-languages/{id}",
		Summary:     "Get app language",
		Tags:        []string{"AppLanguages"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "createAppLanguage",
		Method:      http.MethodPost,
		Path:        "/v1/app-languages",
		Summary:     "Create app language",
		Tags:        []string{"AppLanguages"},
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "updateAppLanguage",
		Method:      http.MethodPut,
		Path:        "/v1/app-languages/{id}",
		Summary:     "Update app language",
		Tags:        []string{"AppLanguages"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID: "deleteAppLanguage",
		Method:      http.MethodDelete,
		Path:        "/v1/app-languages/{id}",
		Summary:     "Delete app language",
		Tags:        []string{"AppLanguages"},
	}, h.delete)
	huma.Register(api, huma.Operation{
		OperationID: "refreshAppLanguages",
		Method:      http.MethodPost,
		Path:        "/v1/app-languages/refresh",
		Summary:     "Re-sync the language registry snapshot",
		Tags:        []string{"AppLanguages"},
	}, h.refresh)
}

func (h *AppLanguageHandler) list(ctx context.Context, in *langListInput) (*langListOutput, error) {
	in.sanitize()
	items, total, err := h.Repo.List(ctx, repository.Filter{Search: in.Search, Status: in.Status, Page: in.Page, Size: in.Size})
	if err != nil {
		return nil, err
	}
	out := make([]schema.AppLanguageResponse, 0, len(items))
	for _, l := range items {
		out = append(out, schema.AppLanguageFromDomain(l))
	}
	return &langListOutput{Body: schema.NewPaged(out, in.Page, in.Size, total)}, nil
}

func (h *AppLanguageHandler) get(ctx context.Context, in *idInput) (*langOutput, error) {
	l, err := h.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &langOutput{Body: schema.AppLanguageFromDomain(l)}, nil
}

func (h *AppLanguageHandler) create(ctx context.Context, in *langInput) (*langOutput, error) {
	l, err := h.Repo.Create(ctx, languageFromRequest(in.Body))
	if err != nil {
		return nil, err
	}
	h.languagesChanged(ctx, "language.created", l.ID)
	return &langOutput{Body: schema.AppLanguageFromDomain(l)}, nil
}

func (h *AppLanguageHandler) update(ctx context.Context, in *langUpdateInput) (*langOutput, error) {
	l := languageFromRequest(in.Body)
	l.ID = in.ID
	l, err := h.Repo.Update(ctx, l)
	if err != nil {
		return nil, mapErr(err)
	}
	h.languagesChanged(ctx, "language.updated", l.ID)
	return &langOutput{Body: schema.AppLanguageFromDomain(l)}, nil
}

func (h *AppLanguageHandler) delete(ctx context.Context, in *idInput) (*struct{}, error) {
	if err := h.Repo.SoftDelete(ctx, in.ID); err != nil {
		return nil, mapErr(err)
	}
	h.languagesChanged(ctx, "language.deleted", in.ID)
	return &struct{}{}, nil
}

func (h *AppLanguageHandler) refresh(ctx context.Context, _ *struct{}) (*langRefreshOutput, error) {
	out := &langRefreshOutput{}
	out.Body.Languages = h.Langs.Refresh(ctx)
	return out, nil
}

// languagesChanged refreshes the registry and drops cached mobile payloads,
// then notifies downstream consumers.
func (h *AppLanguageHandler) languagesChanged(ctx context.Context, event, id string) {
	langs := h.Langs.Refresh(ctx)
	_ = h.Cache.Invalidate(ctx, "translations")
	_ = h.Cache.Invalidate(ctx, "mobileConfig")
	emit(ctx, event, id, map[string]any{"languages": langs})
}

func languageFromRequest(r schema.AppLanguageRequest) domain.AppLanguage {
	status := r.Status
	if status == "" {
		status = "ACTIVE"
	}
	return domain.AppLanguage{
		Code:         r.Code,
		Name:         r.Name,
		NativeName:   r.NativeName,
		Status:       status,
		DisplayOrder: r.DisplayOrder,
	}
}
