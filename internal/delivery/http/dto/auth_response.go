package dto

import "middlebeat/internal/session"

type AuthResponse struct {
	Session      session.State `json:"session"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
