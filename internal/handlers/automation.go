package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/okasina/okasina-fashion/internal/automation"
)

type AutomationHandler struct {
	runner *automation.Runner
}

func NewAutomationHandler(runner *automation.Runner) *AutomationHandler {
	return &AutomationHandler{runner: runner}
}

type runAutomationRequest struct {
	Actions []automation.Action `json:"actions"`
}

func (h *AutomationHandler) HandleRunAutomation(c echo.Context) error {
	var req runAutomationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if len(req.Actions) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No actions provided"})
	}

	steps := h.runner.Run(c.Request().Context(), req.Actions)
	return c.JSON(http.StatusOK, echo.Map{"steps": steps})
}
