// Package sdk defines the wire types shared by the HTTP client and wingctl.
package sdk

import (
	"encoding/json"
	"time"
)

// Paged mirrors the API list contract.
type Paged[T any] struct {
	Content       []T  `json:"content"`
	Page          int  `json:"page"`
	Size          int  `json:"size"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	Last          bool `json:"last"`
}

// TokenPair is the login/refresh response.
type TokenPair struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Language is one app language entry.
type Language struct {
	ID           string `json:"id,omitempty"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	NativeName   string `json:"nativeName,omitempty"`
	Status       string `json:"status,omitempty"`
	DisplayOrder int    `json:"displayOrder,omitempty"`
}

// Column is one dynamic list column.
type Column struct {
	Key    string `json:"key"`
	Header string `json:"header"`
}

// SchemaLanguage is the language entry inside a SchemaView. The schema
// endpoint serializes the registry snapshot, whose display field is label,
// not the app-language name used by the admin list.
type SchemaLanguage struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// SchemaView is the dynamic schema for one localized entity.
type SchemaView struct {
	Languages []SchemaLanguage  `json:"languages"`
	Columns   []Column          `json:"columns"`
	Form      map[string]string `json:"form"`
}

// Translation carries the per-language values as derived keys (enValue,
// kmValue, ...) in Values; the keys depend on the server's language set, so
// the client treats them opaquely.
type Translation struct {
	ID       string            `json:"id,omitempty"`
	Key      string            `json:"key"`
	Module   string            `json:"module,omitempty"`
	Version  string            `json:"version,omitempty"`
	Platform string            `json:"platform,omitempty"`
	Values   map[string]string `json:"-" yaml:"values"`
}

func (t Translation) MarshalJSON() ([]byte, error) {
	type fixed Translation
	raw := map[string]any{}
	b, err := json.Marshal(fixed(t))
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	for k, v := range t.Values {
		raw[k] = v
	}
	return json.Marshal(raw)
}

func (t *Translation) UnmarshalJSON(data []byte) error {
	type fixed Translation
	var f fixed
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	known := map[string]bool{
		"id": true, "key": true, "module": true, "version": true,
		"platform": true, "createdAt": true, "updatedAt": true,
	}
	f.Values = map[string]string{}
	for k, v := range raw {
		if known[k] {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			f.Values[k] = s
		}
	}
	*t = Translation(f)
	return nil
}

// Release is one app release entry.
type Release struct {
	ID           string `json:"id,omitempty"`
	Version      string `json:"version"`
	Platform     string `json:"platform"`
	ForceUpdate  bool   `json:"forceUpdate,omitempty"`
	MinOSVersion string `json:"minOsVersion,omitempty"`
	ReleaseNotes string `json:"releaseNotes,omitempty"`
	Status       string `json:"status,omitempty"`
}

// ReleaseCheck is the mobile update gate decision.
type ReleaseCheck struct {
	LatestVersion string `json:"latestVersion"`
	UpdateNeeded  bool   `json:"updateNeeded"`
	ForceUpdate   bool   `json:"forceUpdate"`
	MinOsVersion  string `json:"minOsVersion,omitempty"`
	ReleaseNotes  string `json:"releaseNotes,omitempty"`
}

// MobileCountry is the country shape inside the launch payload.
type MobileCountry struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	DialCode string `json:"dialCode,omitempty"`
	FlagURL  string `json:"flagUrl,omitempty"`
}

// MobileConfig is the combined mobile launch payload.
type MobileConfig struct {
	Translations  map[string]string `json:"translations"`
	Countries     []MobileCountry   `json:"countries"`
	GlobalConfigs map[string]string `json:"globalConfigs"`
	ApiMessages   map[string]string `json:"apiMessages"`
	FeatureFlags  map[string]bool   `json:"featureFlags"`
	Release       ReleaseCheck      `json:"release"`
}
