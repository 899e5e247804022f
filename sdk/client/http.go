// Package client is the typed HTTP client for the app configuration API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	sdk "github.com/wingbank/appconfig/sdk"
)

// Client provides REST access to the app configuration API.
type Client interface {
	Login(ctx context.Context, username, password string) (sdk.TokenPair, error)
	ListLanguages(ctx context.Context, page, size int) (sdk.Paged[sdk.Language], error)
	TranslationSchema(ctx context.Context) (sdk.SchemaView, error)
	ListTranslations(ctx context.Context, page, size int) (sdk.Paged[sdk.Translation], error)
	CreateTranslation(ctx context.Context, t sdk.Translation) (sdk.Translation, error)
	UpdateTranslation(ctx context.Context, t sdk.Translation) (sdk.Translation, error)
	DeleteTranslation(ctx context.Context, id string) error
	ListReleases(ctx context.Context, page, size int) (sdk.Paged[sdk.Release], error)
	MobileConfig(ctx context.Context, platform, version, lang string) (sdk.MobileConfig, error)
	MobileTranslations(ctx context.Context, lang, platform string) (map[string]string, error)
}

type httpClient struct {
	base string
	http *resty.Client
	log  *zap.SugaredLogger

	mu      sync.Mutex
	access  string
	refresh string
}

type Option func(*httpClient)

// WithToken seeds the client with an existing token pair.
func WithToken(access, refresh string) Option {
	return func(c *httpClient) {
		c.access = access
		c.refresh = refresh
	}
}

// WithLogger sets the client logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *httpClient) {
		c.log = l
	}
}

// New returns a new Client for the given base URL.
func New(base string, opts ...Option) Client {
	c := &httpClient{base: base, http: resty.New(), log: zap.NewNop().Sugar()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Login exchanges credentials for a token pair and keeps it for later calls.
func (c *httpClient) Login(ctx context.Context, username, password string) (sdk.TokenPair, error) {
	var out sdk.TokenPair
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&out).
		Post(c.base + "/v1/auth/login")
	if err != nil {
		return out, err
	}
	if resp.IsError() {
		return out, restyErr(resp)
	}
	c.setTokens(out)
	return out, nil
}

func (c *httpClient) setTokens(p sdk.TokenPair) {
	c.mu.Lock()
	c.access, c.refresh = p.AccessToken, p.RefreshToken
	c.mu.Unlock()
}

func (c *httpClient) tokens() (access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.access, c.refresh
}

// do runs an authenticated request. On a 401 it exchanges the refresh token
// once and replays the request.
func (c *httpClient) do(ctx context.Context, build func(r *resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	access, refresh := c.tokens()
	resp, err := build(c.http.R().SetContext(ctx).SetAuthToken(access))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusUnauthorized || refresh == "" {
		return resp, nil
	}
	c.log.Debugw("access token rejected, refreshing")
	var pair sdk.TokenPair
	rr, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"refreshToken": refresh}).
		SetResult(&pair).
		Post(c.base + "/v1/auth/refresh")
	if err != nil {
		return nil, err
	}
	if rr.IsError() {
		return resp, nil
	}
	c.setTokens(pair)
	return build(c.http.R().SetContext(ctx).SetAuthToken(pair.AccessToken))
}

func (c *httpClient) ListLanguages(ctx context.Context, page, size int) (sdk.Paged[sdk.Language], error) {
	var out sdk.Paged[sdk.Language]
	resp, err := c.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetQueryParams(pageParams(page, size)).SetResult(&out).Get(c.base + "/v1/app-languages")
	})
	if err != nil {
		return out, err
	}
	if resp.IsError() {
		return out, restyErr(resp)
	}
	return out, nil
}

func (c *httpClient) TranslationSchema(ctx context.Context) (sdk.SchemaView, error) {
	var out sdk.SchemaView
	resp, err := c.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetResult(&out).Get(c.base + "/v1/translations/schema")
	})
	if err != nil {
		return out, err
	}
	if resp.IsError() {
		return out, restyErr(resp)
	}
	return out, nil
}

func (c *httpClient) ListTranslations(ctx context.Context, page, size int) (sdk.Paged[sdk.Translation], error) {
	var out sdk.Paged[sdk.Translation]
	resp, err := c.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetQueryParams(pageParams(page, size)).SetResult(&out).Get(c.base + "/v1/translations")
	})
	if err != nil {
		return out, err
	}
	if resp.IsError() {
		return out, restyErr(resp)
	}
	return out, nil
}

func (c *httpClient) CreateTranslation(ctx context.Context, t sdk.Translation) (sdk.Translation, error) {
	var out sdk.Translation
	resp, err := c.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(t).SetResult(&out).Post(c.base + "/v1/translations")
	})
	if err != nil {
		return out, err
	}
	if resp.IsError() {
		return out, restyErr(resp)
	}
	return out, nil
}

func (c *httpClient) UpdateTranslation(ctx context.Context, t sdk.Translation) (sdk.Translation, error) {
	var out sdk.Translation
	resp, err := c.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(t).SetResult(&out).Put(c.base + "/v1/translations/" + t.ID)
	})
	if err != nil {
		return out, err
	}
	if resp.IsError() {
		return out, restyErr(resp)
	}
	return out, nil
}

func (c *httpClient) DeleteTranslation(ctx context.Context, id string) error {
	resp, err := c.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.Delete(c.base + "/v1/translations/" + id)
	})
	if err != nil {
		return err
	}
	if resp.IsError() {
		return restyErr(resp)
	}
	return nil
}

func (c *httpClient) ListReleases(ctx context.Context, page, size int) (sdk.Paged[sdk.Release], error) {
	var out sdk.Paged[sdk.Release]
	resp, err := c.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetQueryParams(pageParams(page, size)).SetResult(&out).Get(c.base + "/v1/app-releases")
	})
	if err != nil {
		return out, err
	}
	if resp.IsError() {
		return out, restyErr(resp)
	}
	return out, nil
}

func (c *httpClient) MobileConfig(ctx context.Context, platform, version, lang string) (sdk.MobileConfig, error) {
	var out sdk.MobileConfig
	if lang == "" {
		lang = "en"
	}
	resp, err := c.http.R().SetContext(ctx).
		SetQueryParams(map[string]string{"platform": platform, "version": version, "lang": lang}).
		SetResult(&out).
		Get(c.base + "/v1/mobile/config")
	if err != nil {
		return out, err
	}
	if resp.IsError() {
		return out, restyErr(resp)
	}
	return out, nil
}

func (c *httpClient) MobileTranslations(ctx context.Context, lang, platform string) (map[string]string, error) {
	out := map[string]string{}
	resp, err := c.http.R().SetContext(ctx).
		SetQueryParams(map[string]string{"lang": lang, "platform": platform}).
		SetResult(&out).
		Get(c.base + "/v1/mobile/translations")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, restyErr(resp)
	}
	return out, nil
}

func pageParams(page, size int) map[string]string {
	return map[string]string{"page": strconv.Itoa(page), "size": strconv.Itoa(size)}
}

func restyErr(resp *resty.Response) error {
	return fmt.Errorf("%s", resp.Status())
}
