package handler

import (
	"middlebeat/internal/delivery/http/dto"
	"middlebeat/internal/delivery/http/middleware"
	"middlebeat/internal/domain/user"
	"middlebeat/internal/pkg/response"
	"middlebeat/internal/session"
	"middlebeat/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc      usecase.AuthUsecase
	limiter fiber.Handler
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"required"`
	FullName string `json:"full_name" validate:"required,max=120"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"max=72"`
}

// NewAuthHandler guards register and login with limiter when it is not nil.
func NewAuthHandler(uc usecase.AuthUsecase, limiter fiber.Handler) *AuthHandler {
	return &AuthHandler{uc: uc, limiter: limiter}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	if h.limiter != nil {
		r.Post("/register", h.limiter, h.Register)
		r.Post("/login", h.limiter, h.Login)
	} else {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	}
	r.Post("/refresh", h.Refresh)
}

// RegisterSessionRoutes mounts the routes that need a signed-in session.
func (h *AuthHandler) RegisterSessionRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/logout", h.Logout)
	r.Get("/session", h.Session)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	role := user.Role(req.Role)
	if !role.Valid() {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Unknown role", nil, nil)
	}

	res, err := h.uc.Register(c.Context(), session.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
		FullName: req.FullName,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Account created", authResponse(res))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.uc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, authResponse(res))
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerToken(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	res, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.TokenResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	if err := h.uc.Logout(c.Context(), middleware.SessionIDFrom(c)); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Signed out", nil)
}

func (h *AuthHandler) Session(c fiber.Ctx) error {
	store := middleware.SessionFrom(c)
	if store == nil {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, store.State())
}

func authResponse(res usecase.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		Session:      res.State,
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	}
}
