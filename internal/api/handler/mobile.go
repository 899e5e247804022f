package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wingbank/appconfig/internal/cache"
	"github.com/wingbank/appconfig/internal/logger"
	"github.com/wingbank/appconfig/internal/release"
	"github.com/wingbank/appconfig/internal/repository"
)

// MobileHandler serves the unauthenticated read surface consumed on app
// launch. Payloads are Redis-cached; admin writes invalidate.
type MobileHandler struct {
	Translations *repository.TranslationRepo
	Configs      *repository.GlobalConfigRepo
	Releases     *repository.AppReleaseRepo
	Countries    *repository.CountryRepo
	Messages     *repository.ApiMessageRepo
	Cache        *cache.Cache
}

type mobileTranslationsInput struct {
	Lang     string `query:"lang"`
	Platform string `query:"platform"`
	Version  string `query:"version"`
}

type mobileTranslationsOutput struct {
	Body map[string]string
}

type mobileConfigInput struct {
	Platform string `query:"platform"`
	Version  string `query:"version"`
	Lang     string `query:"lang"`
}

// MobileCountry is the country shape inside the launch payload.
type MobileCountry struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	DialCode string `json:"dialCode,omitempty"`
	FlagURL  string `json:"flagUrl,omitempty"`
}

// MobileConfig is the combined payload mobile apps fetch on launch. One call
// replaces separate lookups for strings, reference data and the update gate.
type MobileConfig struct {
	Translations  map[string]string `json:"translations"`
	Countries     []MobileCountry   `json:"countries"`
	GlobalConfigs map[string]string `json:"globalConfigs"`
	ApiMessages   map[string]string `json:"apiMessages"`
	FeatureFlags  map[string]bool   `json:"featureFlags"`
	Release       release.Check     `json:"release"`
}

type mobileConfigOutput struct {
	Body MobileConfig
}

func RegisterMobile(api huma.API, h *MobileHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "getMobileTranslations",
		Method:      http.MethodGet,
		Path:        "/v1/mobile/translations",
		Summary:     "Translations for one language with en fallback",
		Tags:        []string{"Mobile"},
	}, h.translations)
	huma.Register(api, huma.Operation{
		OperationID: "getMobileConfig",
		Method:      http.MethodGet,
		Path:        "/v1/mobile/config",
		Summary:     "Combined launch payload: strings, countries, configs, flags and the update gate",
		Tags:        []string{"Mobile"},
	}, h.config)
}

func (h *MobileHandler) translations(ctx context.Context, in *mobileTranslationsInput) (*mobileTranslationsOutput, error) {
	lang := in.Lang
	if lang == "" {
		lang = "en"
	}
	platform := in.Platform
	if platform == "" {
		platform = "ALL"
	}
	key := lang + ":" + platform
	var cached map[string]string
	if hit, err := h.Cache.Get(ctx, "translations", key, &cached); err == nil && hit {
		return &mobileTranslationsOutput{Body: cached}, nil
	} else if err != nil {
		logger.L.Warn("translation cache read", "err", err)
	}
	out, err := h.Translations.ForMobile(ctx, lang, platform)
	if err != nil {
		return nil, err
	}
	if err := h.Cache.Set(ctx, "translations", key, out, cache.TranslationsTTL); err != nil {
		logger.L.Warn("translation cache write", "err", err)
	}
	return &mobileTranslationsOutput{Body: out}, nil
}

func (h *MobileHandler) config(ctx context.Context, in *mobileConfigInput) (*mobileConfigOutput, error) {
	platform := in.Platform
	if platform == "" {
		platform = "ALL"
	}
	lang := in.Lang
	if lang == "" {
		lang = "en"
	}
	key := platform + ":" + in.Version + ":" + lang
	var cached MobileConfig
	if hit, err := h.Cache.Get(ctx, "mobileConfig", key, &cached); err == nil && hit {
		return &mobileConfigOutput{Body: cached}, nil
	} else if err != nil {
		logger.L.Warn("config cache read", "err", err)
	}

	translations, err := h.Translations.ForMobile(ctx, lang, platform)
	if err != nil {
		return nil, err
	}
	messages, err := h.Messages.ForMobile(ctx, lang)
	if err != nil {
		return nil, err
	}
	countries, err := h.Countries.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := h.Configs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	configs := make(map[string]string, len(entries))
	for _, c := range entries {
		configs[c.Key] = c.Value
	}
	payload := MobileConfig{
		Translations:  translations,
		Countries:     make([]MobileCountry, 0, len(countries)),
		GlobalConfigs: configs,
		ApiMessages:   messages,
		FeatureFlags:  featureFlags(configs),
	}
	for _, c := range countries {
		payload.Countries = append(payload.Countries, MobileCountry{
			Code:     c.Code,
			Name:     c.Name,
			DialCode: c.DialCode,
			FlagURL:  c.FlagURL,
		})
	}
	latest, err := h.Releases.Latest(ctx, platform)
	switch {
	case err == nil:
		payload.Release = release.Evaluate(latest, in.Version)
	case errors.Is(err, sql.ErrNoRows):
		// no active release row means no gate
	default:
		return nil, err
	}

	if err := h.Cache.Set(ctx, "mobileConfig", key, payload, cache.MobileConfigTTL); err != nil {
		logger.L.Warn("config cache write", "err", err)
	}
	return &mobileConfigOutput{Body: payload}, nil
}

// featureFlags derives boolean flags from config entries under the feature.
// prefix. Anything but the string "true" reads as off.
func featureFlags(configs map[string]string) map[string]bool {
	flags := make(map[string]bool)
	for k, v := range configs {
		name, ok := strings.CutPrefix(k, "feature.")
		if !ok || name == "" {
			continue
		}
		flags[name] = v == "true"
	}
	return flags
}

// WarmTranslations preloads the translation cache for every active language
// and platform. Run by the scheduler so the first app launch after a deploy
// does not pay the database cost.
func (h *MobileHandler) WarmTranslations(ctx context.Context, langs []string) {
	for _, lang := range langs {
		for _, platform := range []string{"ALL", "IOS", "ANDROID"} {
			out, err := h.Translations.ForMobile(ctx, lang, platform)
			if err != nil {
				logger.L.Warn("warm translations", "lang", lang, "platform", platform, "err", err)
				continue
			}
			if err := h.Cache.Set(ctx, "translations", lang+":"+platform, out, cache.TranslationsTTL); err != nil {
				logger.L.Warn("warm translations cache", "err", err)
			}
		}
	}
}
