package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/telepatia/internal/services"
	"github.com/yoockh/telepatia/internal/utils"
)

const audioField = "audio_file"

type MessageHandler struct {
	svc           services.MessageService
	maxAudioBytes int64
}

func NewMessageHandler(svc services.MessageService, maxAudioBytes int64) *MessageHandler {
	return &MessageHandler{svc: svc, maxAudioBytes: maxAudioBytes}
}

type ProcessTextRequest struct {
	Text string `json:"text"`
}

type ProcessTextResponse struct {
	OriginalText string `json:"original_text"`
	ValidateText string `json:"validate_text"`
	Success      bool   `json:"success"`
	Message      string `json:"message"`
}

type ProcessAudioResponse struct {
	Filename        string `json:"filename"`
	TranscribedText string `json:"transcribed_text"`
	SimplifiedText  string `json:"simplified_text"`
	Success         bool   `json:"success"`
	Message         string `json:"message"`
}

func (h *MessageHandler) ProcessText(c *gin.Context) {
	var req ProcessTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "MessageHandler.ProcessText", "invalid request body", err))
		return
	}

	res, err := h.svc.ProcessText(c.Request.Context(), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProcessTextResponse{
		OriginalText: res.Original,
		ValidateText: res.Simplified,
		Success:      true,
		Message:      "Text validated and simplified successfully",
	})
}

func (h *MessageHandler) ProcessAudio(c *gin.Context) {
	const op = "MessageHandler.ProcessAudio"

	if h.maxAudioBytes > 0 {
		// multipart framing needs some room beyond the file itself
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxAudioBytes+1<<20)
	}

	fh, err := c.FormFile(audioField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "audio file is too large", err))
			return
		}
		writeError(c, utils.E(utils.CodeInvalidArgument, op, fmt.Sprintf("multipart field %q is required", audioField), err))
		return
	}
	if h.maxAudioBytes > 0 && fh.Size > h.maxAudioBytes {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "audio file is too large", nil))
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "audio file could not be read", err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "audio file could not be read", err))
		return
	}

	res, err := h.svc.ProcessAudio(c.Request.Context(), fh.Filename, data)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProcessAudioResponse{
		Filename:        res.Filename,
		TranscribedText: res.Transcript,
		SimplifiedText:  res.Simplified,
		Success:         true,
		Message:         "Audio processed successfully",
	})
}
