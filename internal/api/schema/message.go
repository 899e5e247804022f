package schema

import (
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wingbank/appconfig/internal/domain"
	"github.com/wingbank/appconfig/pkg/localized"
)

// ApiMessageRequest is the create/update payload for an API message with one
// {code}Message key per language.
type ApiMessageRequest struct {
	ErrorCode  string `json:"errorCode"`
	Type       string `json:"type,omitempty"`
	HTTPStatus int    `json:"httpStatus,omitempty"`

	Values localized.ValueSet `json:"-"`
}

func (r *ApiMessageRequest) UnmarshalJSON(data []byte) error {
	type fixed ApiMessageRequest
	var f fixed
	vs, err := collectFrom(data, &f, domain.ApiMessageSpec.Attrs, localized.Concat)
	if err != nil {
		return err
	}
	f.Values = vs
	*r = ApiMessageRequest(f)
	return nil
}

func (ApiMessageRequest) Schema(huma.Registry) *huma.Schema {
	return looseObject("API message with one {code}Message key per language")
}

// ApiMessageResponse flattens stored values back into derived keys.
type ApiMessageResponse struct {
	ID         string    `json:"id"`
	ErrorCode  string    `json:"errorCode"`
	Type       string    `json:"type,omitempty"`
	HTTPStatus int       `json:"httpStatus,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Values localized.ValueSet `json:"-"`
}

func (r ApiMessageResponse) MarshalJSON() ([]byte, error) {
	type fixed ApiMessageResponse
	return flattenInto(fixed(r), r.Values, localized.Concat)
}

func (ApiMessageResponse) Schema(huma.Registry) *huma.Schema {
	return looseObject("API message with one {code}Message key per language")
}

// ApiMessageFromDomain maps a domain message onto the wire type.
func ApiMessageFromDomain(m domain.ApiMessage) ApiMessageResponse {
	return ApiMessageResponse{
		ID:         m.ID,
		ErrorCode:  m.ErrorCode,
		Type:       m.Type,
		HTTPStatus: m.HTTPStatus,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		Values:     m.Values,
	}
}
