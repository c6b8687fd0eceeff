package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	logrus.Error(message)
	c.AbortWithStatusJSON(statusCode, statusResponse{Status: "error", Message: message})
}

// newSuccessResponse подтверждает только приём события, не исход проверки.
func newSuccessResponse(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{Status: "success"})
}

func wrapOkJSON(c *gin.Context, response map[string]interface{}) {
	c.JSON(http.StatusOK, response)
}
