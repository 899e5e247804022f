package schema

import (
	"time"

	"github.com/wingbank/appconfig/internal/auth"
	"github.com/wingbank/appconfig/internal/domain"
)

// AuditLogResponse is one recorded admin change.
type AuditLogResponse struct {
	ID         int64     `json:"id"`
	Actor      string    `json:"actor,omitempty"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId,omitempty"`
	Payload    string    `json:"payload,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AuditLogFromDomain maps a domain audit entry onto the wire type.
func AuditLogFromDomain(a domain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:         a.ID,
		Actor:      a.Actor,
		Action:     a.Action,
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
		Payload:    a.Payload,
		CreatedAt:  a.CreatedAt,
	}
}

// UserRequest is the create/update payload for a portal user. Password is
// only honored on create and password changes.
type UserRequest struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
	Status   string `json:"status,omitempty"`
}

// UserResponse is one portal user. The password hash never leaves the server.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	FullName  string    `json:"fullName,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserFromAuth maps a stored user onto the wire type.
func UserFromAuth(u auth.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// RoleView is one role with the policy rules granted to it.
type RoleView struct {
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

// Permission is a single allow rule.
type Permission struct {
	Path   string `json:"path"`
	Method string `json:"method"`
}
