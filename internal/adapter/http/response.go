package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"resume-builder/internal/usecase"
)

type errorBody struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	Stage      string `json:"stage,omitempty"`
	DevMessage string `json:"dev_message,omitempty"`
}

// statusFor maps pipeline errors onto HTTP codes. Record insert failures are
// reported as client errors, like validation.
func statusFor(err error) int {
	var ue *usecase.Error
	if !errors.As(err, &ue) {
		return fiber.StatusInternalServerError
	}
	if ue.Kind == usecase.KindBadRequest || ue.Stage == usecase.StagePersist {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func (h *Handler) fail(c *fiber.Ctx, code int, msg string, err error) error {
	body := errorBody{Success: false, Error: msg}
	if !h.production && err != nil {
		var ue *usecase.Error
		if errors.As(err, &ue) {
			body.Stage = string(ue.Stage)
		}
		if err.Error() != msg {
			body.DevMessage = err.Error()
		}
	}
	return c.Status(code).JSON(body)
}

func (h *Handler) failErr(c *fiber.Ctx, err error) error {
	return h.fail(c, statusFor(err), err.Error(), err)
}
