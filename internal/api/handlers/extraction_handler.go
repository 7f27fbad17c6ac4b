package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/telepatia/internal/services"
	"github.com/yoockh/telepatia/internal/utils"
)

type ExtractionHandler struct {
	svc services.ExtractionService
}

func NewExtractionHandler(svc services.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{svc: svc}
}

type GenerateTextRequest struct {
	Prompt string `json:"prompt"`
}

type GenerateTextResponse struct {
	Prompt        string          `json:"prompt"`
	GeneratedText string          `json:"generated_text"`
	Structured    json.RawMessage `json:"structured,omitempty"`
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
}

func (h *ExtractionHandler) GenerateText(c *gin.Context) {
	var req GenerateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ExtractionHandler.GenerateText", "invalid request body", err))
		return
	}

	res, err := h.svc.Extract(c.Request.Context(), req.Prompt)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateTextResponse{
		Prompt:        res.Prompt,
		GeneratedText: res.GeneratedText,
		Structured:    res.Structured,
		Success:       true,
		Message:       "Text generated successfully",
	})
}
