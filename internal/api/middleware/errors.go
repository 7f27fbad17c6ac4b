package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yoockh/telepatia/internal/utils"
)

type apiError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
	Success bool       `json:"success"`
}

func abort(c *gin.Context, status int, code utils.Code, msg string) {
	c.AbortWithStatusJSON(status, apiError{Code: code, Message: msg})
}
