package models

import "github.com/shopspring/decimal"

// TransferEvent — одно входящее уведомление о банковском переводе.
// После создания не изменяется.
type TransferEvent struct {
	BankCode    string          `json:"bank_code"`
	Account     string          `json:"account"`
	Amount      decimal.Decimal `json:"amount"`       // сумма перевода, полная точность
	SourceLabel string          `json:"source_label"` // источник уведомления, по умолчанию "unknown"
}

// VerificationResult — результат проверки одного перевода.
type VerificationResult struct {
	Approved    bool            `json:"approved"`
	BankName    string          `json:"bank_name"`
	GrossAmount decimal.Decimal `json:"gross_amount"`
	ProfitShare decimal.Decimal `json:"profit_share"` // GrossAmount * ProfitRate
	NetAmount   decimal.Decimal `json:"net_amount"`   // GrossAmount - ProfitShare
	Timestamp   string          `json:"timestamp"`    // формат "2006-01-02 15:04:05", локальное время
}
