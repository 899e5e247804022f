package domain

import "github.com/wingbank/appconfig/pkg/localized"

// Attribute specs per localized entity type. The attribute set and naming
// scheme are fixed per type; only the language set varies at runtime. The
// translation and api-message tables predate the prefixed convention, which
// is why the two schemes coexist.

// TranslationSpec: enValue, kmValue, ...
var TranslationSpec = localized.AttributeSpec{
	Scheme: localized.Concat,
	Attrs:  []string{"Value"},
	Leading: []localized.Column{
		{Key: "key", Header: "KEY"},
	},
	Trailing: []localized.Column{
		{Key: "module", Header: "MODULE"},
		{Key: "version", Header: "VERSION"},
		{Key: "platform", Header: "PLATFORM"},
	},
	Defaults: map[string]string{"version": "1.0", "platform": "ALL"},
}

// ApiMessageSpec: enMessage, kmMessage, ...
var ApiMessageSpec = localized.AttributeSpec{
	Scheme: localized.Concat,
	Attrs:  []string{"Message"},
	Leading: []localized.Column{
		{Key: "errorCode", Header: "ERROR CODE"},
	},
	Trailing: []localized.Column{
		{Key: "type", Header: "TYPE"},
		{Key: "httpStatus", Header: "HTTP STATUS"},
	},
	Defaults: map[string]string{"type": "ERROR", "httpStatus": "400"},
}

// NotificationSpec: titleEn, bodyEn, titleKm, bodyKm, ...
var NotificationSpec = localized.AttributeSpec{
	Scheme: localized.Prefixed,
	Attrs:  []string{"title", "body"},
	Leading: []localized.Column{
		{Key: "code", Header: "CODE"},
	},
	Trailing: []localized.Column{
		{Key: "type", Header: "TYPE"},
		{Key: "status", Header: "STATUS"},
	},
	Defaults: map[string]string{"type": "PUSH", "status": "ACTIVE"},
}

// WingCategorySpec: nameEn, displayNameEn, ...
var WingCategorySpec = localized.AttributeSpec{
	Scheme: localized.Prefixed,
	Attrs:  []string{"name", "displayName"},
	Leading: []localized.Column{
		{Key: "key", Header: "KEY"},
	},
	Trailing: []localized.Column{
		{Key: "icon", Header: "ICON"},
		{Key: "imageUrl", Header: "IMAGE"},
		{Key: "sortOrder", Header: "ORDER"},
		{Key: "status", Header: "STATUS"},
	},
	Defaults: map[string]string{"status": "ACTIVE", "sortOrder": "0"},
}

// WingPartnerSpec: nameEn, descriptionEn, ...
var WingPartnerSpec = localized.AttributeSpec{
	Scheme: localized.Prefixed,
	Attrs:  []string{"name", "description"},
	Leading: []localized.Column{
		{Key: "code", Header: "CODE"},
	},
	Trailing: []localized.Column{
		{Key: "icon", Header: "ICON"},
		{Key: "bgColor", Header: "COLOR"},
		{Key: "badge", Header: "BADGE"},
		{Key: "isNewPartner", Header: "NEW"},
		{Key: "sortOrder", Header: "ORDER"},
		{Key: "status", Header: "STATUS"},
	},
	Defaults: map[string]string{"status": "ACTIVE", "sortOrder": "0"},
}

// WingBannerSpec: titleEn, subtitleEn, imageUrlEn, ...
var WingBannerSpec = localized.AttributeSpec{
	Scheme: localized.Prefixed,
	Attrs:  []string{"title", "subtitle", "imageUrl"},
	Leading: []localized.Column{
		{Key: "code", Header: "CODE"},
	},
	Trailing: []localized.Column{
		{Key: "linkUrl", Header: "LINK"},
		{Key: "displayOrder", Header: "ORDER"},
		{Key: "status", Header: "STATUS"},
	},
	Defaults: map[string]string{"status": "ACTIVE", "displayOrder": "0"},
}
