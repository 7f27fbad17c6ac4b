package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yoockh/telepatia/internal/utils"
)

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
	Success bool       `json:"success"`
}

// writeError never exposes the wrapped cause; it is attached to the gin
// context so the request logger can record it.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(utils.HTTPStatus(err), APIError{
		Code:    utils.CodeOf(err),
		Message: utils.SafeMessage(err),
	})
}

func NotFound(c *gin.Context) {
	writeError(c, utils.E(utils.CodeNotFound, "", "Not Found", nil))
}
