package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/okasina/okasina-fashion/internal/synth"
)

// AnalyzeHandler serves ad-hoc product synthesis for a single image, used by
// the admin UI before a full album import.
type AnalyzeHandler struct {
	synth *synth.Synthesizer
}

func NewAnalyzeHandler(synthesizer *synth.Synthesizer) *AnalyzeHandler {
	return &AnalyzeHandler{synth: synthesizer}
}

type analyzeRequest struct {
	ImageURL  string `json:"imageUrl"`
	AlbumName string `json:"albumName"`
	Filename  string `json:"filename"`
}

// HandleAnalyzeProduct always answers 200 with a fully populated draft:
// model failures degrade to the rule-based result, never to an error.
func (h *AnalyzeHandler) HandleAnalyzeProduct(c echo.Context) error {
	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if req.ImageURL == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing imageUrl"})
	}

	draft, _ := h.synth.SynthesizeWithAI(c.Request().Context(), req.Filename, req.AlbumName)
	draft.ImageURL = req.ImageURL

	return c.JSON(http.StatusOK, draft)
}
