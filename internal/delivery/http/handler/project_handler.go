package handler

import (
	"time"

	"middlebeat/internal/domain/project"
	"middlebeat/internal/pkg/response"
	"middlebeat/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProjectHandler struct {
	uc usecase.ProjectUsecase
}

type budgetRequest struct {
	Min int `json:"min" validate:"gte=0"`
	Max int `json:"max" validate:"gte=0,gtefield=Min"`
}

type createProjectRequest struct {
	Title          string         `json:"title" validate:"required,max=160"`
	Description    string         `json:"description" validate:"required,max=4000"`
	RequiredSkills []string       `json:"required_skills" validate:"max=20,dive,max=40"`
	Genres         []string       `json:"genres" validate:"max=20,dive,max=40"`
	Budget         *budgetRequest `json:"budget"`
	Deadline       *time.Time     `json:"deadline"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func NewProjectHandler(uc usecase.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

func (h *ProjectHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/projects", h.List)
	r.Post("/projects", h.Create)
	r.Post("/projects/:id/apply", h.Apply)
	r.Patch("/projects/:id/status", h.UpdateStatus)
}

// List reads q, status (default all) and sort (default newest).
func (h *ProjectHandler) List(c fiber.Ctx) error {
	if _, _, err := currentState(c); err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), usecase.ProjectListParams{
		Query:  c.Query("q"),
		Status: c.Query("status"),
		Sort:   c.Query("sort"),
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.List(c, response.MessageOK, items)
}

func (h *ProjectHandler) Create(c fiber.Ctx) error {
	_, st, err := currentState(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	in := usecase.CreateProjectInput{
		Title:          req.Title,
		Description:    req.Description,
		RequiredSkills: req.RequiredSkills,
		Genres:         req.Genres,
		Deadline:       req.Deadline,
	}
	if req.Budget != nil {
		in.Budget = &project.Budget{Min: req.Budget.Min, Max: req.Budget.Max}
	}

	p, err := h.uc.Create(c.Context(), *st.Profile, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Project created", p)
}

func (h *ProjectHandler) Apply(c fiber.Ctx) error {
	_, st, err := currentState(c)
	if err != nil {
		return err
	}

	p, err := h.uc.Apply(c.Context(), c.Params("id"), st.User.ID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application sent", p)
}

func (h *ProjectHandler) UpdateStatus(c fiber.Ctx) error {
	_, st, err := currentState(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), st.User.ID, project.Status(req.Status))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Status updated", p)
}
