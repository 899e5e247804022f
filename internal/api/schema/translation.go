package schema

import (
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wingbank/appconfig/internal/domain"
	"github.com/wingbank/appconfig/pkg/localized"
)

// TranslationRequest is the create/update payload for a translation. The
// per-language value keys (enValue, kmValue, ...) arrive as dynamic top-level
// keys and are collected into Values.
type TranslationRequest struct {
	Key      string `json:"key"`
	Module   string `json:"module,omitempty"`
	Version  string `json:"version,omitempty"`
	Platform string `json:"platform,omitempty"`

	Values localized.ValueSet `json:"-"`
}

func (r *TranslationRequest) UnmarshalJSON(data []byte) error {
	type fixed TranslationRequest
	var f fixed
	vs, err := collectFrom(data, &f, domain.TranslationSpec.Attrs, localized.Concat)
	if err != nil {
		return err
	}
	f.Values = vs
	*r = TranslationRequest(f)
	return nil
}

func (TranslationRequest) Schema(huma.Registry) *huma.Schema {
	return looseObject("Translation with one {code}Value key per language")
}

// TranslationResponse flattens stored values back into derived keys.
type TranslationResponse struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Module    string    `json:"module,omitempty"`
	Version   string    `json:"version,omitempty"`
	Platform  string    `json:"platform,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Values localized.ValueSet `json:"-"`
}

func (r TranslationResponse) MarshalJSON() ([]byte, error) {
	type fixed TranslationResponse
	return flattenInto(fixed(r), r.Values, localized.Concat)
}

func (TranslationResponse) Schema(huma.Registry) *huma.Schema {
	return looseObject("Translation with one {code}Value key per language")
}

// TranslationFromDomain maps a domain translation onto the wire type.
func TranslationFromDomain(t domain.Translation) TranslationResponse {
	return TranslationResponse{
		ID:        t.ID,
		Key:       t.Key,
		Module:    t.Module,
		Version:   t.Version,
		Platform:  t.Platform,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		Values:    t.Values,
	}
}
