package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"bank_notify_back/models"
)

// Ledger — журнал подтверждённых переводов, только добавление строк.
type Ledger interface {
	Append(ctx context.Context, entry models.LedgerEntry) error
	Entries(ctx context.Context, limit int) ([]models.LedgerEntry, error)
}

type Repository struct {
	Ledger
}

func NewRepository(db *sqlx.DB, table string) *Repository {
	return &Repository{
		Ledger: NewLedgerPostgres(db, table),
	}
}
