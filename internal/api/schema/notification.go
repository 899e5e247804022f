package schema

import (
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wingbank/appconfig/internal/domain"
	"github.com/wingbank/appconfig/pkg/localized"
)

// NotificationRequest is the create/update payload for a notification
// template with title{Code} and body{Code} keys per language.
type NotificationRequest struct {
	Code   string `json:"code"`
	Type   string `json:"type,omitempty"`
	Status string `json:"status,omitempty"`

	Values localized.ValueSet `json:"-"`
}

func (r *NotificationRequest) UnmarshalJSON(data []byte) error {
	type fixed NotificationRequest
	var f fixed
	vs, err := collectFrom(data, &f, domain.NotificationSpec.Attrs, localized.Prefixed)
	if err != nil {
		return err
	}
	f.Values = vs
	*r = NotificationRequest(f)
	return nil
}

func (NotificationRequest) Schema(huma.Registry) *huma.Schema {
	return looseObject("Notification template with title{Code} and body{Code} keys per language")
}

// NotificationResponse flattens stored values back into derived keys.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Type      string    `json:"type,omitempty"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Values localized.ValueSet `json:"-"`
}

func (r NotificationResponse) MarshalJSON() ([]byte, error) {
	type fixed NotificationResponse
	return flattenInto(fixed(r), r.Values, localized.Prefixed)
}

func (NotificationResponse) Schema(huma.Registry) *huma.Schema {
	return looseObject("Notification template with title{Code} and body{Code} keys per language")
}

// NotificationFromDomain maps a domain template onto the wire type.
func NotificationFromDomain(n domain.NotificationTemplate) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Code:      n.Code,
		Type:      n.Type,
		Status:    n.Status,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		Values:    n.Values,
	}
}
