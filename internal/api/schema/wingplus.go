package schema

import (
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wingbank/appconfig/internal/domain"
	"github.com/wingbank/appconfig/pkg/localized"
)

// WingCategoryRequest is the create/update payload for a Wing+ category with
// name{Code} and displayName{Code} keys per language.
type WingCategoryRequest struct {
	Key       string `json:"key"`
	Icon      string `json:"icon,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
	SortOrder int    `json:"sortOrder,omitempty"`
	Status    string `json:"status,omitempty"`

	Values localized.ValueSet `json:"-"`
}

func (r *WingCategoryRequest) UnmarshalJSON(data []byte) error {
	type fixed WingCategoryRequest
	var f fixed
	vs, err := collectFrom(data, &f, domain.WingCategorySpec.Attrs, localized.Prefixed)
	if err != nil {
		return err
	}
	f.Values = vs
	*r = WingCategoryRequest(f)
	return nil
}

func (WingCategoryRequest) Schema(huma.Registry) *huma.Schema {
	return looseObject("Wing+ category with per-language name and display name keys")
}

// WingCategoryResponse flattens stored values back into derived keys.
type WingCategoryResponse struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Icon      string    `json:"icon,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	SortOrder int       `json:"sortOrder"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Values localized.ValueSet `json:"-"`
}

func (r WingCategoryResponse) MarshalJSON() ([]byte, error) {
	type fixed WingCategoryResponse
	return flattenInto(fixed(r), r.Values, localized.Prefixed)
}

func (WingCategoryResponse) Schema(huma.Registry) *huma.Schema {
	return looseObject("Wing+ category with per-language name and display name keys")
}

// WingCategoryFromDomain maps a domain category onto the wire type.
func WingCategoryFromDomain(c domain.WingCategory) WingCategoryResponse {
	return WingCategoryResponse{
		ID:        c.ID,
		Key:       c.Key,
		Icon:      c.Icon,
		ImageURL:  c.ImageURL,
		SortOrder: c.SortOrder,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Values:    c.Values,
	}
}

// WingPartnerRequest is the create/update payload for a Wing+ partner with
// name{Code} and description{Code} keys per language.
type WingPartnerRequest struct {
	Code      string `json:"code"`
	Icon      string `json:"icon,omitempty"`
	BgColor   string `json:"bgColor,omitempty"`
	Badge     string `json:"badge,omitempty"`
	IsNew     bool   `json:"isNewPartner,omitempty"`
	SortOrder int    `json:"sortOrder,omitempty"`
	Status    string `json:"status,omitempty"`

	Values localized.ValueSet `json:"-"`
}

func (r *WingPartnerRequest) UnmarshalJSON(data []byte) error {
	type fixed WingPartnerRequest
	var f fixed
	vs, err := collectFrom(data, &f, domain.WingPartnerSpec.Attrs, localized.Prefixed)
	if err != nil {
		return err
	}
	f.Values = vs
	*r = WingPartnerRequest(f)
	return nil
}

func (WingPartnerRequest) Schema(huma.Registry) *huma.Schema {
	return looseObject("Wing+ partner with per-language name and description keys")
}

// WingPartnerResponse flattens stored values back into derived keys.
type WingPartnerResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Icon      string    `json:"icon,omitempty"`
	BgColor   string    `json:"bgColor,omitempty"`
	Badge     string    `json:"badge,omitempty"`
	IsNew     bool      `json:"isNewPartner"`
	SortOrder int       `json:"sortOrder"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Values localized.ValueSet `json:"-"`
}

func (r WingPartnerResponse) MarshalJSON() ([]byte, error) {
	type fixed WingPartnerResponse
	return flattenInto(fixed(r), r.Values, localized.Prefixed)
}

func (WingPartnerResponse) Schema(huma.Registry) *huma.Schema {
	return looseObject("Wing+ partner with per-language name and description keys")
}

// WingPartnerFromDomain maps a domain partner onto the wire type.
func WingPartnerFromDomain(p domain.WingPartner) WingPartnerResponse {
	return WingPartnerResponse{
		ID:        p.ID,
		Code:      p.Code,
		Icon:      p.Icon,
		BgColor:   p.BgColor,
		Badge:     p.Badge,
		IsNew:     p.IsNew,
		SortOrder: p.SortOrder,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Values:    p.Values,
	}
}
