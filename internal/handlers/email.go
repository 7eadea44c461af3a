package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/okasina/okasina-fashion/internal/email"
)

type EmailHandler struct {
	service *email.Service
}

func NewEmailHandler(service *email.Service) *EmailHandler {
	return &EmailHandler{service: service}
}

type sendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

func (h *EmailHandler) HandleSendEmail(c echo.Context) error {
	var req sendEmailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if req.To == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing recipient"})
	}
	if !h.service.Configured() {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Missing SMTP Configuration"})
	}

	err := h.service.Send(email.Message{
		To:      []string{req.To},
		Subject: req.Subject,
		HTML:    req.HTML,
	})
	if err != nil {
		slog.Error("failed to send email", "error", err, "to", req.To)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
