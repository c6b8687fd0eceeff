package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"bank_notify_back/models"
)

type LedgerPostgres struct {
	db    *sqlx.DB
	table string
}

func NewLedgerPostgres(db *sqlx.DB, table string) *LedgerPostgres {
	return &LedgerPostgres{db: db, table: table}
}

// Append добавляет одну строку журнала. Порядок колонок фиксированный:
// время, банк, счёт, сумма, доля, остаток, источник.
func (r *LedgerPostgres) Append(ctx context.Context, entry models.LedgerEntry) error {
	query := fmt.Sprintf(`INSERT INTO %s (logged_at, bank_name, account, gross_amount, profit_share, net_amount, source_label)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`, r.table)

	_, err := r.db.ExecContext(ctx, query,
		entry.LoggedAt, entry.BankName, entry.Account,
		entry.GrossAmount, entry.ProfitShare, entry.NetAmount, entry.SourceLabel)
	if err != nil {
		return errors.Wrap(err, "строка журнала не записана")
	}
	return nil
}

// Entries возвращает последние строки журнала, свежие первыми.
func (r *LedgerPostgres) Entries(ctx context.Context, limit int) ([]models.LedgerEntry, error) {
	query := fmt.Sprintf(`SELECT id, logged_at, bank_name, account, gross_amount, profit_share, net_amount, source_label
		FROM %s ORDER BY id DESC LIMIT $1`, r.table)

	var entries []models.LedgerEntry
	if err := r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, errors.Wrap(err, "журнал не прочитан")
	}
	return entries, nil
}
