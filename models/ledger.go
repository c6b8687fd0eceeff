package models

import "github.com/shopspring/decimal"

// LedgerEntry — одна строка журнала подтверждённых переводов.
type LedgerEntry struct {
	ID          int64           `db:"id" json:"id"`
	LoggedAt    string          `db:"logged_at" json:"logged_at"`
	BankName    string          `db:"bank_name" json:"bank_name"`
	Account     string          `db:"account" json:"account"`
	GrossAmount decimal.Decimal `db:"gross_amount" json:"gross_amount"`
	ProfitShare decimal.Decimal `db:"profit_share" json:"profit_share"`
	NetAmount   decimal.Decimal `db:"net_amount" json:"net_amount"`
	SourceLabel string          `db:"source_label" json:"source_label"`
}
