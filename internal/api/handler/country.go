package handler

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wingbank/appconfig/internal/api/schema"
	"github.com/wingbank/appconfig/internal/domain"
	"github.com/wingbank/appconfig/internal/repository"
)

// CountryHandler manages the countries reference list.
type CountryHandler struct {
	Repo *repository.CountryRepo
}

type countryListOutput struct {
	Body schema.Paged[schema.CountryResponse]
}

type countryInput struct {
	Body schema.CountryRequest
}

type countryUpdateInput struct {
	ID   string `path:"id"`
	Body schema.CountryRequest
}

type countryOutput struct {
	Body schema.CountryResponse
}

func RegisterCountries(api huma.API, h *CountryHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "listCountries",
		Method:      http.MethodGet,
		Path:        "/v1/countries",
		Summary:     "List countries",
		Tags:        []string{"Countries"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "getCountry",
		Method:      http.MethodGet,
		Path:        "/v1/countries/{id}",
		Summary:     "Get country",
		Tags:        []string{"Countries"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "createCountry",
		Method:      http.MethodPost,
		Path:        "/v1/countries",
		Summary:     "Create country",
		Tags:        []string{"Countries"},
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "updateCountry",
		Method:      http.MethodPut,
		Path:        "/v1/countries/{id}",
		Summary:     "Update country",
		Tags:        []string{"Countries"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID: "deleteCountry",
		Method:      http.MethodDelete,
		Path:        "/v1/countries/{id}",
		Summary:     "Delete country",
		Tags:        []string{"Countries"},
	}, h.delete)
}

func (h *CountryHandler) list(ctx context.Context, in *listInput) (*countryListOutput, error) {
	in.sanitize()
	items, total, err := h.Repo.List(ctx, repository.Filter{Search: in.Search, Page: in.Page, Size: in.Size})
	if err != nil {
		return nil, err
	}
	out := make([]schema.CountryResponse, 0, len(items))
	for _, c := range items {
		out = append(out, schema.CountryFromDomain(c))
	}
	return &countryListOutput{Body: schema.NewPaged(out, in.Page, in.Size, total)}, nil
}

func (h *CountryHandler) get(ctx context.Context, in *idInput) (*countryOutput, error) {
	c, err := h.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &countryOutput{Body: schema.CountryFromDomain(c)}, nil
}

func (h *CountryHandler) create(ctx context.Context, in *countryInput) (*countryOutput, error) {
	c, err := h.Repo.Create(ctx, countryFromRequest(in.Body))
	if err != nil {
		return nil, err
	}
	emit(ctx, "country.created", c.ID, nil)
	return &countryOutput{Body: schema.CountryFromDomain(c)}, nil
}

func (h *CountryHandler) update(ctx context.Context, in *countryUpdateInput) (*countryOutput, error) {
	c := countryFromRequest(in.Body)
	c.ID = in.ID
	c, err := h.Repo.Update(ctx, c)
	if err != nil {
		return nil, mapErr(err)
	}
	emit(ctx, "country.updated", c.ID, nil)
	return &countryOutput{Body: schema.CountryFromDomain(c)}, nil
}

func (h *CountryHandler) delete(ctx context.Context, in *idInput) (*struct{}, error) {
	if err := h.Repo.SoftDelete(ctx, in.ID); err != nil {
		return nil, mapErr(err)
	}
	emit(ctx, "country.deleted", in.ID, nil)
	return &struct{}{}, nil
}

func countryFromRequest(r schema.CountryRequest) domain.Country {
	status := r.Status
	if status == "" {
		status = "ACTIVE"
	}
	return domain.Country{
		Code:     r.Code,
		Name:     r.Name,
		DialCode: r.DialCode,
		FlagURL:  r.FlagURL,
		Status:   status,
	}
}
