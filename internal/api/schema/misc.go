package schema

import (
	"time"

	"github.com/wingbank/appconfig/internal/domain"
	"github.com/wingbank/appconfig/pkg/localized"
)

// AppLanguageRequest is the create/update payload for an app language.
type AppLanguageRequest struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	NativeName   string `json:"nativeName,omitempty"`
	Status       string `json:"status,omitempty"`
	DisplayOrder int    `json:"displayOrder,omitempty"`
}

// AppLanguageResponse is one app language entry.
type AppLanguageResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	NativeName   string    `json:"nativeName,omitempty"`
	Status       string    `json:"status"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AppLanguageFromDomain maps a domain language onto the wire type.
func AppLanguageFromDomain(l domain.AppLanguage) AppLanguageResponse {
	return AppLanguageResponse{
		ID:           l.ID,
		Code:         l.Code,
		Name:         l.Name,
		NativeName:   l.NativeName,
		Status:       l.Status,
		DisplayOrder: l.DisplayOrder,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

// AppReleaseRequest is the create/update payload for an app release.
type AppReleaseRequest struct {
	Version      string `json:"version"`
	Platform     string `json:"platform"`
	ForceUpdate  bool   `json:"forceUpdate,omitempty"`
	MinOSVersion string `json:"minOsVersion,omitempty"`
	ReleaseNotes string `json:"releaseNotes,omitempty"`
	Status       string `json:"status,omitempty"`
}

// AppReleaseResponse is one release entry.
type AppReleaseResponse struct {
	ID           string    `json:"id"`
	Version      string    `json:"version"`
	Platform     string    `json:"platform"`
	ForceUpdate  bool      `json:"forceUpdate"`
	MinOSVersion string    `json:"minOsVersion,omitempty"`
	ReleaseNotes string    `json:"releaseNotes,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AppReleaseFromDomain maps a domain release onto the wire type.
func AppReleaseFromDomain(r domain.AppRelease) AppReleaseResponse {
	return AppReleaseResponse{
		ID:           r.ID,
		Version:      r.Version,
		Platform:     r.Platform,
		ForceUpdate:  r.ForceUpdate,
		MinOSVersion: r.MinOSVersion,
		ReleaseNotes: r.ReleaseNotes,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// GlobalConfigRequest is the create/update payload for a global config entry.
type GlobalConfigRequest struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// GlobalConfigResponse is one global config entry.
type GlobalConfigResponse struct {
	ID          string    `json:"id"`
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Type        string    `json:"type,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GlobalConfigFromDomain maps a domain config onto the wire type.
func GlobalConfigFromDomain(c domain.GlobalConfig) GlobalConfigResponse {
	return GlobalConfigResponse{
		ID:          c.ID,
		Key:         c.Key,
		Value:       c.Value,
		Type:        c.Type,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CountryRequest is the create/update payload for a country.
type CountryRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	DialCode string `json:"dialCode,omitempty"`
	FlagURL  string `json:"flagUrl,omitempty"`
	Status   string `json:"status,omitempty"`
}

// CountryResponse is one country entry.
type CountryResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	DialCode  string    `json:"dialCode,omitempty"`
	FlagURL   string    `json:"flagUrl,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CountryFromDomain maps a domain country onto the wire type.
func CountryFromDomain(c domain.Country) CountryResponse {
	return CountryResponse{
		ID:        c.ID,
		Code:      c.Code,
		Name:      c.Name,
		DialCode:  c.DialCode,
		FlagURL:   c.FlagURL,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// SchemaView describes the list columns and empty form for one localized
// entity under the current language snapshot; clients rebuild it wholesale
// when the snapshot changes.
type SchemaView struct {
	Languages []localized.Language `json:"languages"`
	Columns   []localized.Column   `json:"columns"`
	Form      localized.FormState  `json:"form"`
}
