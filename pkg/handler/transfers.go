package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// История журнала подтверждённых переводов. Последние записи, по умолчанию 50.
func (h *Handler) GetTransfers(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			newErrorResponse(c, http.StatusBadRequest, "limit 參數錯誤")
			return
		}
		limit = parsed
	}

	entries, err := h.service.History(c.Request.Context(), limit)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	wrapOkJSON(c, map[string]interface{}{
		"data": entries,
	})
}
