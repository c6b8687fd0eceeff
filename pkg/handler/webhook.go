package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"bank_notify_back/models"
)

// Приём банковского уведомления. Секрет уже проверен в middleware.
// Ответ 200 значит "событие принято", независимо от исхода проверки.
func (h *Handler) BankWebhook(c *gin.Context) {
	var input models.BankWebhookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "缺少必要參數")
		return
	}

	source := input.FromBank
	if source == "" {
		source = "unknown"
	}

	event := models.TransferEvent{
		BankCode:    input.BankCode,
		Account:     input.Account,
		Amount:      decimal.NewFromFloat(input.Amount),
		SourceLabel: source,
	}

	h.service.Process(event)

	newSuccessResponse(c)
}
