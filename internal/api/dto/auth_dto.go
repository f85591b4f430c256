package dto

import (
	"time"

	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
)

// SignupRequest payload for registration.
type SignupRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	CompanyName string `json:"company_name"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest payload for token refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest payload for logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse is the credential set returned by login/refresh.
type AuthResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// UserResponse is the public account shape.
type UserResponse struct {
	ID        string            `json:"id"`
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	Name      string            `json:"name"`
	Phone     string            `json:"phone,omitempty"`
	Role      domain.Role       `json:"role"`
	CompanyID string            `json:"company_id"`
	Status    domain.UserStatus `json:"status"`
	Enabled   bool              `json:"enabled"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		Role:      user.Role,
		CompanyID: user.CompanyID,
		Status:    user.Status,
		Enabled:   user.Enabled,
		CreatedAt: user.CreatedAt,
	}
}
