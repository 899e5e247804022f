package schema

import (
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wingbank/appconfig/internal/domain"
	"github.com/wingbank/appconfig/pkg/localized"
)

// WingBannerRequest is the create/update payload for a Wing+ banner with
// title{Code}, subtitle{Code} and imageUrl{Code} keys per language.
type WingBannerRequest struct {
	Code         string `json:"code"`
	LinkURL      string `json:"linkUrl,omitempty"`
	DisplayOrder int    `json:"displayOrder,omitempty"`
	Status       string `json:"status,omitempty"`

	Values localized.ValueSet `json:"-"`
}

func (r *WingBannerRequest) UnmarshalJSON(data []byte) error {
	type fixed WingBannerRequest
	var f fixed
	vs, err := collectFrom(data, &f, domain.WingBannerSpec.Attrs, localized.Prefixed)
	if err != nil {
		return err
	}
	f.Values = vs
	*r = WingBannerRequest(f)
	return nil
}

func (WingBannerRequest) Schema(huma.Registry) *huma.Schema {
	return looseObject("Wing+ banner with per-language title, subtitle and image keys")
}

// WingBannerResponse flattens stored values back into derived keys.
type WingBannerResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	LinkURL      string    `json:"linkUrl,omitempty"`
	DisplayOrder int       `json:"displayOrder"`
	Status       string    `json:"status,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Values localized.ValueSet `json:"-"`
}

func (r WingBannerResponse) MarshalJSON() ([]byte, error) {
	type fixed WingBannerResponse
	return flattenInto(fixed(r), r.Values, localized.Prefixed)
}

func (WingBannerResponse) Schema(huma.Registry) *huma.Schema {
	return looseObject("Wing+ banner with per-language title, subtitle and image keys")
}

// WingBannerFromDomain maps a domain banner onto the wire type.
func WingBannerFromDomain(b domain.WingBanner) WingBannerResponse {
	return WingBannerResponse{
		ID:           b.ID,
		Code:         b.Code,
		LinkURL:      b.LinkURL,
		DisplayOrder: b.DisplayOrder,
		Status:       b.Status,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
		Values:       b.Values,
	}
}
