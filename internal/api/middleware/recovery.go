package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/telepatia/internal/utils"
)

func Recovery(l *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		l.WithFields(logrus.Fields{
			"request_id": RequestID(c),
			"panic":      recovered,
			"path":       c.FullPath(),
		}).Error("panic recovered")
		abort(c, http.StatusInternalServerError, utils.CodeInternal, http.StatusText(http.StatusInternalServerError))
	})
}
