package auth

import (
	"github.com/brightlaunch/academy-cms-backend/internal/operators"
	"github.com/brightlaunch/academy-cms-backend/internal/profiles"
)

// LoginRequest captures the operator credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the tokens, operator, and profile produced by a
// successful login.
type LoginResponse struct {
	AccessToken  string                 `json:"access_token"`
	RefreshToken string                 `json:"refresh_token"`
	Operator     *operators.OperatorDTO `json:"operator"`
	Profile      *profiles.ProfileDTO   `json:"profile"`
}

// RefreshRequest carries the expired access token plus the refresh token to
// rotate the session.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse returns the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SessionResponse describes the current authenticated session.
type SessionResponse struct {
	Operator *operators.OperatorDTO `json:"operator"`
	Profile  *profiles.ProfileDTO   `json:"profile"`
	EditMode bool                   `json:"edit_mode"`
}

// EditModeRequest toggles the session's edit mode flag.
type EditModeRequest struct {
	Enabled bool `json:"enabled"`
}

// EditModeResponse reports the flag state after a toggle.
type EditModeResponse struct {
	EditMode bool `json:"edit_mode"`
}
