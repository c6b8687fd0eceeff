package models

// BankWebhookInput — тело запроса POST /webhook/bank.
// Нулевая сумма отклоняется валидацией так же, как отсутствующая.
type BankWebhookInput struct {
	BankCode string  `json:"bank_code" binding:"required"`
	Account  string  `json:"account" binding:"required"`
	Amount   float64 `json:"amount" binding:"required"`
	FromBank string  `json:"from_bank"`
}
