package handler

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/wingbank/appconfig/internal/api/schema"
	"github.com/wingbank/appconfig/internal/auth"
)

// UserHandler manages portal user accounts. Only admins reach these routes;
// the RBAC layer blocks everyone else.
type UserHandler struct {
	Repo *auth.UserRepo
}

type userListOutput struct {
	Body schema.Paged[schema.UserResponse]
}

type userInput struct {
	Body schema.UserRequest
}

type userUpdateInput struct {
	ID   string `path:"id"`
	Body schema.UserRequest
}

type userOutput struct {
	Body schema.UserResponse
}

type userRoleInput struct {
	ID   string `path:"id"`
	Body struct {
		Role string `json:"role"`
	}
}

func RegisterUsers(api huma.API, h *UserHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/v1/users",
		Summary:     "List portal users",
		Tags:        []string{"Users"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/v1/users/{id}",
		Summary:     "Get portal user",
		Tags:        []string{"Users"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "createUser",
		Method:      http.MethodPost,
		Path:        "/v1/users",
		Summary:     "Create portal user",
		Tags:        []string{"Users"},
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "updateUser",
		Method:      http.MethodPut,
		Path:        "/v1/users/{id}",
		Summary:     "Update portal user",
		Tags:        []string{"Users"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID: "assignUserRole",
		Method:      http.MethodPut,
		Path:        "/v1/users/{id}/role",
		Summary:     "Assign a role to a user",
		Tags:        []string{"Users"},
	}, h.assignRole)
	huma.Register(api, huma.Operation{
		OperationID: "deleteUser",
		Method:      http.MethodDelete,
		Path:        "/v1/users/{id}",
		Summary:     "Delete portal user",
		Tags:        []string{"Users"},
	}, h.delete)
}

func (h *UserHandler) list(ctx context.Context, in *listInput) (*userListOutput, error) {
	in.sanitize()
	items, total, err := h.Repo.List(ctx, in.Search, in.Page, in.Size)
	if err != nil {
		return nil, err
	}
	out := make([]schema.UserResponse, 0, len(items))
	for _, u := range items {
		out = append(out, schema.UserFromAuth(u))
	}
	return &userListOutput{Body: schema.NewPaged(out, in.Page, in.Size, total)}, nil
}

func (h *UserHandler) get(ctx context.Context, in *idInput) (*userOutput, error) {
	u, err := h.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &userOutput{Body: schema.UserFromAuth(u)}, nil
}

func (h *UserHandler) create(ctx context.Context, in *userInput) (*userOutput, error) {
	if in.Body.Username == "" || in.Body.Password == "" {
		return nil, huma.Error422UnprocessableEntity("username and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Body.Password), 12)
	if err != nil {
		return nil, err
	}
	u, err := h.Repo.Create(ctx, auth.User{
		Username:     in.Body.Username,
		PasswordHash: string(hash),
		Email:        in.Body.Email,
		FullName:     in.Body.FullName,
		Phone:        in.Body.Phone,
		Role:         in.Body.Role,
		Status:       in.Body.Status,
	})
	if err != nil {
		return nil, err
	}
	emit(ctx, "user.created", u.ID, nil)
	return &userOutput{Body: schema.UserFromAuth(u)}, nil
}

func (h *UserHandler) update(ctx context.Context, in *userUpdateInput) (*userOutput, error) {
	u := auth.User{
		ID:       in.ID,
		Email:    in.Body.Email,
		FullName: in.Body.FullName,
		Phone:    in.Body.Phone,
		Role:     in.Body.Role,
		Status:   in.Body.Status,
	}
	if in.Body.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Body.Password), 12)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	u, err := h.Repo.Update(ctx, u)
	if err != nil {
		return nil, mapErr(err)
	}
	emit(ctx, "user.updated", u.ID, nil)
	return &userOutput{Body: schema.UserFromAuth(u)}, nil
}

func (h *UserHandler) assignRole(ctx context.Context, in *userRoleInput) (*userOutput, error) {
	if err := h.Repo.SetRole(ctx, in.ID, in.Body.Role); err != nil {
		return nil, mapErr(err)
	}
	u, err := h.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	emit(ctx, "user.updated", u.ID, map[string]string{"role": in.Body.Role})
	return &userOutput{Body: schema.UserFromAuth(u)}, nil
}

func (h *UserHandler) delete(ctx context.Context, in *idInput) (*struct{}, error) {
	if err := h.Repo.Delete(ctx, in.ID); err != nil {
		return nil, mapErr(err)
	}
	emit(ctx, "user.deleted", in.ID, nil)
	return &struct{}{}, nil
}
