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

// AppReleaseHandler manages the releases driving the mobile update gate.
type AppReleaseHandler struct {
	Repo  *repository.AppReleaseRepo
	Cache *cache.Cache
}

type releaseListOutput struct {
	Body schema.Paged[schema.AppReleaseResponse]
}

type releaseInput struct {
	Body schema.AppReleaseRequest
}

type releaseUpdateInput struct {
	ID   string `path:"id"`
	Body schema.AppReleaseRequest
}

type releaseOutput struct {
	Body schema.AppReleaseResponse
}

func RegisterAppReleases(api huma.API, h *AppReleaseHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "listAppReleases",
		Method:      http.MethodGet,
		Path:        "/v1/app-releases",
		Summary:     "List app releases",
		Tags:        []string{"AppReleases"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "getAppRelease",
		Method:      http.MethodGet,
		Path:        "/v1/app-releases/{id}",
		Summary:     "Get app release",
		Tags:        []string{"AppReleases"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "createAppRelease",
		Method:      http.MethodPost,
		Path:        "/v1/app-releases",
		Summary:     "Create app release",
		Tags:        []string{"AppReleases"},
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "updateAppRelease",
		Method:      http.MethodPut,
		Path:        "/v1/app-releases/{id}",
		Summary:     "Update app release",
		Tags:        []string{"AppReleases"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID: "deleteAppRelease",
		Method:      http.MethodDelete,
		Path:        "/v1/app-releases/{id}",
		Summary:     "Delete app release",
		Tags:        []string{"AppReleases"},
	}, h.delete)
}

func (h *AppReleaseHandler) list(ctx context.Context, in *listInput) (*releaseListOutput, error) {
	in.sanitize()
	items, total, err := h.Repo.List(ctx, repository.Filter{Search: in.Search, Page: in.Page, Size: in.Size})
	if err != nil {
		return nil, err
	}
	out := make([]schema.AppReleaseResponse, 0, len(items))
	for _, r := range items {
		out = append(out, schema.AppReleaseFromDomain(r))
	}
	return &releaseListOutput{Body: schema.NewPaged(out, in.Page, in.Size, total)}, nil
}

func (h *AppReleaseHandler) get(ctx context.Context, in *idInput) (*releaseOutput, error) {
	r, err := h.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &releaseOutput{Body: schema.AppReleaseFromDomain(r)}, nil
}

func (h *AppReleaseHandler) create(ctx context.Context, in *releaseInput) (*releaseOutput, error) {
	r, err := h.Repo.Create(ctx, releaseFromRequest(in.Body))
	if err != nil {
		return nil, err
	}
	h.changed(ctx, "release.created", r.ID)
	return &releaseOutput{Body: schema.AppReleaseFromDomain(r)}, nil
}

func (h *AppReleaseHandler) update(ctx context.Context, in *releaseUpdateInput) (*releaseOutput, error) {
	r := releaseFromRequest(in.Body)
	r.ID = in.ID
	r, err := h.Repo.Update(ctx, r)
	if err != nil {
		return nil, mapErr(err)
	}
	h.changed(ctx, "release.updated", r.ID)
	return &releaseOutput{Body: schema.AppReleaseFromDomain(r)}, nil
}

func (h *AppReleaseHandler) delete(ctx context.Context, in *idInput) (*struct{}, error) {
	if err := h.Repo.SoftDelete(ctx, in.ID); err != nil {
		return nil, mapErr(err)
	}
	h.changed(ctx, "release.deleted", in.ID)
	return &struct{}{}, nil
}

func (h *AppReleaseHandler) changed(ctx context.Context, event, id string) {
	_ = h.Cache.Invalidate(ctx, "mobileConfig")
	emit(ctx, event, id, nil)
}

func releaseFromRequest(r schema.AppReleaseRequest) domain.AppRelease {
	status := r.Status
	if status == "" {
		status = "ACTIVE"
	}
	return domain.AppRelease{
		Version:      r.Version,
		Platform:     r.Platform,
		ForceUpdate:  r.ForceUpdate,
		MinOSVersion: r.MinOSVersion,
		ReleaseNotes: r.ReleaseNotes,
		Status:       status,
	}
}
