package models

import "github.com/shopspring/decimal"

// VerificationConfig собирается один раз при старте процесса и дальше только читается.
type VerificationConfig struct {
	ExpectedAccounts map[string]string // код банка -> ожидаемый номер счёта, не больше одной записи на код
	ProfitRate       decimal.Decimal   // доля прибыли, по умолчанию 0.1
	SharedSecret     string            // значение заголовка X-Webhook-Secret
}
