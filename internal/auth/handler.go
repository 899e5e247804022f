package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	Repo *UserRepo
	JWT  *JWT
}

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type loginInput struct {
	Body loginBody
}

type loginOutput struct {
	Body tokenResponse
}

type refreshInput struct {
	Body struct {
		RefreshToken string `json:"refreshToken"`
	}
}

func Register(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/v1/auth/login",
		Summary:     "Login",
		Tags:        []string{"Auth"},
	}, h.login)

	huma.Register(api, huma.Operation{
		OperationID: "refresh",
		Method:      http.MethodPost,
		Path:        "/v1/auth/refresh",
		Summary:     "Refresh token",
		Tags:        []string{"Auth"},
	}, h.refresh)
}

func (h *Handler) login(ctx context.Context, in *loginInput) (*loginOutput, error) {
	u, err := h.Repo.GetByUsername(ctx, in.Body.Username)
	if err != nil || u == nil {
		return nil, huma.Error401Unauthorized("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Body.Password)) != nil {
		return nil, huma.Error401Unauthorized("invalid credentials")
	}
	if u.Status != "" && u.Status != "ACTIVE" {
		return nil, huma.Error401Unauthorized("invalid credentials")
	}
	pair, err := h.JWT.GeneratePair(u.Username, u.Role)
	if err != nil {
		return nil, err
	}
	return &loginOutput{Body: tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	}}, nil
}

func (h *Handler) refresh(ctx context.Context, in *refreshInput) (*loginOutput, error) {
	claims, err := h.JWT.ValidateRefresh(in.Body.RefreshToken)
	if err != nil {
		return nil, huma.Error401Unauthorized("unauthorized")
	}
	pair, err := h.JWT.GeneratePair(claims.Subject, claims.Role)
	if err != nil {
		return nil, err
	}
	return &loginOutput{Body: tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	}}, nil
}
