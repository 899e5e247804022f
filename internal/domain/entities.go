// Package domain defines the app configuration entities. Localized entities
// keep their per-language values in a localized.ValueSet; the flat derived
// field keys exist only on the wire.
package domain

import (
	"time"

	"github.com/wingbank/appconfig/pkg/localized"
)

// AppLanguage is one admin-managed app language. Only ACTIVE languages
// participate in dynamic field generation.
type AppLanguage struct {
	ID           string
	Code         string
	Name         string
	NativeName   string
	Status       string
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Translation is a mobile UI string with one Value per language.
type Translation struct {
	ID        string
	Key       string
	Module    string
	Version   string
	Platform  string
	Values    localized.ValueSet
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApiMessage is a backend error message with one Message per language.
type ApiMessage struct {
	ID         string
	ErrorCode  string
	Type       string
	HTTPStatus int
	Values     localized.ValueSet
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NotificationTemplate carries a title and body per language.
type NotificationTemplate struct {
	ID        string
	Code      string
	Type      string
	Status    string
	Values    localized.ValueSet
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WingBanner is Wing+ marketplace banner content with a title, subtitle and
// image URL per language.
type WingBanner struct {
	ID           string
	Code         string
	LinkURL      string
	DisplayOrder int
	Status       string
	Values       localized.ValueSet
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WingCategory groups Wing+ marketplace entries with a name and display name
// per language.
type WingCategory struct {
	ID        string
	Key       string
	Icon      string
	ImageURL  string
	SortOrder int
	Status    string
	Values    localized.ValueSet
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WingPartner is a Wing+ marketplace partner with a name and description per
// language.
type WingPartner struct {
	ID        string
	Code      string
	Icon      string
	BgColor   string
	Badge     string
	IsNew     bool
	SortOrder int
	Status    string
	Values    localized.ValueSet
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppRelease gates mobile clients by version.
type AppRelease struct {
	ID           string
	Version      string
	Platform     string
	ForceUpdate  bool
	MinOSVersion string
	ReleaseNotes string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GlobalConfig is a single key/value configuration entry.
type GlobalConfig struct {
	ID          string
	Key         string
	Value       string
	Type        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AuditLog is one recorded admin change. Action and EntityType are derived
// from the change event name.
type AuditLog struct {
	ID         int64
	Actor      string
	Action     string
	EntityType string
	EntityID   string
	Payload    string
	CreatedAt  time.Time
}

// Country is reference data for phone/KYC screens.
type Country struct {
	ID        string
	Code      string
	Name      string
	DialCode  string
	FlagURL   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
