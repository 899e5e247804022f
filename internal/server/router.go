package server

import (
	"database/sql"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/wingbank/appconfig/internal/api/handler"
	"github.com/wingbank/appconfig/internal/auth"
	"github.com/wingbank/appconfig/internal/cache"
	"github.com/wingbank/appconfig/internal/logger"
	"github.com/wingbank/appconfig/internal/repository"
	"github.com/wingbank/appconfig/internal/server/middleware"
	"github.com/wingbank/appconfig/pkg/localized"
	"github.com/wingbank/appconfig/pkg/metrics"
)

// Runtime exposes the long-lived pieces the server owns, for background jobs
// run by the caller.
type Runtime struct {
	Langs  *localized.Registry
	Mobile *handler.MobileHandler
}

func New(db *sql.DB, cfg DBConfig) (huma.API, *Runtime) {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	api := humachi.New(r, huma.DefaultConfig("Wing App Config API", "1.0.0"))
	setupMetrics(api, r)

	driver := cfg.Driver
	prefix := cfg.TablePrefix

	langRepo := &repository.AppLanguageRepo{DB: db, Driver: driver, TablePrefix: prefix}
	langs := localized.NewRegistry(langRepo)
	langs.OnFallback = metrics.RegistryFallbacks.Inc

	c, err := cache.New(cfg.RedisDSN, prefix)
	if err != nil {
		logger.L.Error("redis cache", "err", err)
	}

	initEvents(db, driver, prefix)

	// Mobile read surface stays public; register before the auth middleware.
	mobile := &handler.MobileHandler{
		Translations: &repository.TranslationRepo{DB: db, Driver: driver, TablePrefix: prefix},
		Configs:      &repository.GlobalConfigRepo{DB: db, Driver: driver, TablePrefix: prefix},
		Releases:     &repository.AppReleaseRepo{DB: db, Driver: driver, TablePrefix: prefix},
		Countries:    &repository.CountryRepo{DB: db, Driver: driver, TablePrefix: prefix},
		Messages:     &repository.ApiMessageRepo{DB: db, Driver: driver, TablePrefix: prefix},
		Cache:        c,
	}
	handler.RegisterMobile(api, mobile)

	jwtHandler := auth.NewJWT(mustJWTSecret(), 15*time.Minute, 24*time.Hour)
	userRepo := &auth.UserRepo{DB: db, Driver: driver, TablePrefix: prefix}

	// Login and refresh stay public too.
	auth.Register(api, &auth.Handler{Repo: userRepo, JWT: jwtHandler})

	api.UseMiddleware(auth.Middleware(api, jwtHandler))

	if e, err := initEnforcer(); err != nil {
		logger.L.Error("casbin enforcer", "err", err)
	} else {
		api.UseMiddleware(middleware.RBAC(e, roleResolver(db, driver, prefix)))
		handler.RegisterRoles(api, &handler.RoleHandler{Enforcer: e})
	}

	handler.RegisterAppLanguages(api, &handler.AppLanguageHandler{Repo: langRepo, Langs: langs, Cache: c})
	handler.RegisterTranslations(api, &handler.TranslationHandler{Repo: mobile.Translations, Langs: langs, Cache: c})
	handler.RegisterApiMessages(api, &handler.ApiMessageHandler{Repo: &repository.ApiMessageRepo{DB: db, Driver: driver, TablePrefix: prefix}, Langs: langs})
	handler.RegisterNotifications(api, &handler.NotificationHandler{Repo: &repository.NotificationRepo{DB: db, Driver: driver, TablePrefix: prefix}, Langs: langs})
	handler.RegisterWingBanners(api, &handler.WingBannerHandler{Repo: &repository.WingBannerRepo{DB: db, Driver: driver, TablePrefix: prefix}, Langs: langs, Cache: c})
	handler.RegisterWingCategories(api, &handler.WingCategoryHandler{Repo: &repository.WingCategoryRepo{DB: db, Driver: driver, TablePrefix: prefix}, Langs: langs, Cache: c})
	handler.RegisterWingPartners(api, &handler.WingPartnerHandler{Repo: &repository.WingPartnerRepo{DB: db, Driver: driver, TablePrefix: prefix}, Langs: langs, Cache: c})
	handler.RegisterAppReleases(api, &handler.AppReleaseHandler{Repo: mobile.Releases, Cache: c})
	handler.RegisterGlobalConfigs(api, &handler.GlobalConfigHandler{Repo: mobile.Configs, Cache: c})
	handler.RegisterCountries(api, &handler.CountryHandler{Repo: mobile.Countries})
	handler.RegisterUsers(api, &handler.UserHandler{Repo: userRepo})
	handler.RegisterAuditLogs(api, &handler.AuditHandler{Repo: &repository.AuditLogRepo{DB: db, Driver: driver, TablePrefix: prefix}})

	return api, &Runtime{Langs: langs, Mobile: mobile}
}
