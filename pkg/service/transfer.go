package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"bank_notify_back/models"
	"bank_notify_back/pkg/bankdir"
	"bank_notify_back/pkg/cache"
	"bank_notify_back/pkg/repository"
	"bank_notify_back/pkg/utils"
)

const (
	timeLayout  = "2006-01-02 15:04:05"
	sinkTimeout = 10 * time.Second

	unknownBankLabel = "未知銀行"
)

type TransferService struct {
	ledger    repository.Ledger
	notifier  Notifier
	directory *bankdir.Directory
	cfg       models.VerificationConfig
}

func NewTransferService(ledger repository.Ledger, notifier Notifier, directory *bankdir.Directory, cfg models.VerificationConfig) *TransferService {
	return &TransferService{
		ledger:    ledger,
		notifier:  notifier,
		directory: directory,
		cfg:       cfg,
	}
}

// Verify — чистая проверка перевода: строгое сравнение счёта с ожидаемым
// для кода банка. Никаких побочных эффектов, рассылка — забота Process.
func (s *TransferService) Verify(event models.TransferEvent) models.VerificationResult {
	expected, known := s.cfg.ExpectedAccounts[event.BankCode]
	approved := known && event.Account == expected

	result := models.VerificationResult{
		Approved:    approved,
		GrossAmount: event.Amount,
		Timestamp:   time.Now().Format(timeLayout),
	}

	if approved {
		result.BankName = s.directory.Name(event.BankCode, unknownBankLabel)
		result.ProfitShare = event.Amount.Mul(s.cfg.ProfitRate)
		result.NetAmount = event.Amount.Sub(result.ProfitShare)
	} else {
		result.BankName = s.directory.Name(event.BankCode, "代碼 "+event.BankCode)
	}

	return result
}

// Process проверяет перевод и рассылает результат по приёмникам.
// Ошибки приёмников логируются и глотаются: на решение они не влияют.
func (s *TransferService) Process(event models.TransferEvent) models.VerificationResult {
	result := s.Verify(event)

	if result.Approved {
		logrus.Infof("Перевод подтверждён: банк %s, счёт %s, сумма %s", result.BankName, event.Account, result.GrossAmount.StringFixed(2))
	} else {
		logrus.Infof("Перевод отклонён: код %s, счёт %s", event.BankCode, event.Account)
	}

	key := event.BankCode + "|" + event.Account + "|" + event.Amount.String()
	if cache.Seen(key) {
		logrus.Warnf("Повтор события %s в пределах окна, рассылка пропущена", key)
		return result
	}
	cache.MarkSeen(key)

	if result.Approved {
		s.notify(s.approvedMessage(event, result))
		s.notify(s.profitShareMessage(result))
		s.appendLedger(event, result)
	} else {
		s.notify(s.rejectedMessage(event, result))
		utils.SendMismatchAlert(result.BankName, event.Account)
	}

	return result
}

// History отдаёт последние строки журнала.
func (s *TransferService) History(ctx context.Context, limit int) ([]models.LedgerEntry, error) {
	return s.ledger.Entries(ctx, limit)
}

func (s *TransferService) notify(text string) {
	ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
	defer cancel()

	if err := s.notifier.SendMessage(ctx, text); err != nil {
		logrus.Errorf("Уведомление не доставлено: %s", err)
	}
}

func (s *TransferService) appendLedger(event models.TransferEvent, result models.VerificationResult) {
	ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
	defer cancel()

	entry := models.LedgerEntry{
		LoggedAt:    result.Timestamp,
		BankName:    result.BankName,
		Account:     event.Account,
		GrossAmount: result.GrossAmount.Round(2),
		ProfitShare: result.ProfitShare.Round(2),
		NetAmount:   result.NetAmount.Round(2),
		SourceLabel: event.SourceLabel,
	}

	if err := s.ledger.Append(ctx, entry); err != nil {
		logrus.Errorf("Журнал не пополнен: %s", err)
	}
}

func (s *TransferService) profitPercent() string {
	return s.cfg.ProfitRate.Mul(decimal.NewFromInt(100)).String()
}

func (s *TransferService) approvedMessage(event models.TransferEvent, result models.VerificationResult) string {
	return fmt.Sprintf(
		"⚡ <b>金流入帳確認</b>\n"+
			"🏦 銀行：%s (代碼: %s)\n"+
			"💰 總金額：%s NT$\n"+
			"💸 分潤 (%s%%)：%s NT$\n"+
			"💵 淨額：%s NT$\n"+
			"📅 時間：%s\n"+
			"🔗 來源：%s",
		result.BankName, event.BankCode,
		result.GrossAmount.StringFixed(2),
		s.profitPercent(), result.ProfitShare.StringFixed(2),
		result.NetAmount.StringFixed(2),
		result.Timestamp, event.SourceLabel)
}

func (s *TransferService) profitShareMessage(result models.VerificationResult) string {
	return fmt.Sprintf("💸 分潤通知：%s NT$ 已轉入分潤帳戶。", result.ProfitShare.StringFixed(2))
}

func (s *TransferService) rejectedMessage(event models.TransferEvent, result models.VerificationResult) string {
	return fmt.Sprintf("❌ 帳戶不符：銀行 %s 收到一筆轉帳，但帳號 <code>%s</code> 與設定不符。", result.BankName, event.Account)
}
