package http

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/usecase"
)

// ResumeService is the part of usecase.Service the handlers call.
type ResumeService interface {
	Generate(ctx context.Context, req usecase.GenerateRequest) (*usecase.GenerateResult, error)
	History(ctx context.Context, userID string) ([]domain.ResumeRecord, error)
	EnhanceSection(ctx context.Context, section model.Section, text string) model.Enhancement
}

type Handler struct {
	svc        ResumeService
	production bool
	log        *slog.Logger
}

func NewHandler(svc ResumeService, production bool, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, production: production, log: log}
}

type generateReq struct {
	UserID     string        `json:"user_id"`
	ResumeData *model.Resume `json:"resumeData"`
	Template   string        `json:"template"`
	UseAI      bool          `json:"useAI"`
}

type generateResp struct {
	Success bool `json:"success"`
	*usecase.GenerateResult
}

// CreateResume runs the pipeline detached from the request context, so a
// client that disconnects does not abort a half-finished submission.
func (h *Handler) CreateResume(c *fiber.Ctx) error {
	var req generateReq
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid payload", err)
	}
	if strings.TrimSpace(req.UserID) == "" || req.ResumeData == nil {
		return h.fail(c, fiber.StatusBadRequest, "user_id and resumeData required", nil)
	}

	res, err := h.svc.Generate(context.Background(), usecase.GenerateRequest{
		UserID:   req.UserID,
		Resume:   *req.ResumeData,
		Template: req.Template,
		UseAI:    req.UseAI,
	})
	if err != nil {
		return h.failErr(c, err)
	}
	return c.JSON(generateResp{Success: true, GenerateResult: res})
}

func (h *Handler) History(c *fiber.Ctx) error {
	recs, err := h.svc.History(context.Background(), c.Params("user_id"))
	if err != nil {
		return h.failErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": recs})
}

type enhanceReq struct {
	Section string `json:"section"`
	Text    string `json:"text"`
}

func (h *Handler) EnhanceSection(c *fiber.Ctx) error {
	var req enhanceReq
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid payload", err)
	}
	section, ok := model.ParseSection(req.Section)
	if !ok {
		return h.fail(c, fiber.StatusBadRequest, "unknown section: "+req.Section, nil)
	}
	enh := h.svc.EnhanceSection(context.Background(), section, req.Text)
	return c.JSON(fiber.Map{"success": true, "enhanced": enh})
}

func (h *Handler) Root(c *fiber.Ctx) error {
	return c.SendString("Resume Builder backend is running")
}
