package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// WebhookSecret сверяет заголовок X-Webhook-Secret до какой-либо работы с телом.
// Несовпадение — немедленный 403, конвейер не запускается.
func WebhookSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-Webhook-Secret") != secret {
			logrus.Warnf("WebhookSecret: неверный секрет, запрос %s отклонён", c.FullPath())
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"status": "error", "message": "無效簽名"})
			return
		}
		c.Next()
	}
}
