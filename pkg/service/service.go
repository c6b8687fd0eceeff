package service

import (
	"context"

	"bank_notify_back/models"
	"bank_notify_back/pkg/bankdir"
	"bank_notify_back/pkg/repository"
)

// Notifier — чат-приёмник уведомлений (Telegram).
type Notifier interface {
	SendMessage(ctx context.Context, text string) error
}

type Transfer interface {
	Verify(event models.TransferEvent) models.VerificationResult
	Process(event models.TransferEvent) models.VerificationResult
	History(ctx context.Context, limit int) ([]models.LedgerEntry, error)
}

type Service struct {
	Transfer
}

func NewService(repos *repository.Repository, notifier Notifier, directory *bankdir.Directory, cfg models.VerificationConfig) *Service {
	return &Service{
		Transfer: NewTransferService(repos.Ledger, notifier, directory, cfg),
	}
}
