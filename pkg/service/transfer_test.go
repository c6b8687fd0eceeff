package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"bank_notify_back/models"
	"bank_notify_back/pkg/bankdir"
	"bank_notify_back/pkg/cache"
)

type mockLedger struct {
	appendFunc  func(ctx context.Context, entry models.LedgerEntry) error
	entriesFunc func(ctx context.Context, limit int) ([]models.LedgerEntry, error)
	appended    []models.LedgerEntry
}

func (m *mockLedger) Append(ctx context.Context, entry models.LedgerEntry) error {
	m.appended = append(m.appended, entry)
	if m.appendFunc != nil {
		return m.appendFunc(ctx, entry)
	}
	return nil
}

func (m *mockLedger) Entries(ctx context.Context, limit int) ([]models.LedgerEntry, error) {
	if m.entriesFunc != nil {
		return m.entriesFunc(ctx, limit)
	}
	return nil, nil
}

type mockNotifier struct {
	sendFunc func(ctx context.Context, text string) error
	sent     []string
}

func (m *mockNotifier) SendMessage(ctx context.Context, text string) error {
	m.sent = append(m.sent, text)
	if m.sendFunc != nil {
		return m.sendFunc(ctx, text)
	}
	return nil
}

func testConfig() models.VerificationConfig {
	return models.VerificationConfig{
		ExpectedAccounts: map[string]string{
			"822": "1234567890123",
			"700": "0987654321098",
		},
		ProfitRate:   decimal.RequireFromString("0.1"),
		SharedSecret: "topsecret",
	}
}

func testDirectory() *bankdir.Directory {
	return bankdir.New(map[string]string{
		"822": "中國信託商業銀行",
		"700": "中華郵政",
	})
}

func newTestService(ledger *mockLedger, notifier *mockNotifier) *TransferService {
	return NewTransferService(ledger, notifier, testDirectory(), testConfig())
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name         string
		event        models.TransferEvent
		wantApproved bool
		wantBankName string
		wantProfit   string
		wantNet      string
	}{
		{
			name:         "ctbc transfer matches configured account",
			event:        models.TransferEvent{BankCode: "822", Account: "1234567890123", Amount: decimal.NewFromInt(50000)},
			wantApproved: true,
			wantBankName: "中國信託商業銀行",
			wantProfit:   "5000.00",
			wantNet:      "45000.00",
		},
		{
			name:         "post transfer matches configured account",
			event:        models.TransferEvent{BankCode: "700", Account: "0987654321098", Amount: decimal.NewFromInt(30000)},
			wantApproved: true,
			wantBankName: "中華郵政",
			wantProfit:   "3000.00",
			wantNet:      "27000.00",
		},
		{
			name:         "mismatched account is rejected regardless of amount",
			event:        models.TransferEvent{BankCode: "822", Account: "000000000000", Amount: decimal.NewFromInt(100)},
			wantApproved: false,
			wantBankName: "中國信託商業銀行",
		},
		{
			name:         "unknown bank code never matches",
			event:        models.TransferEvent{BankCode: "999", Account: "1234567890123", Amount: decimal.NewFromInt(100)},
			wantApproved: false,
			wantBankName: "代碼 999",
		},
		{
			name:         "no normalization of leading zeros",
			event:        models.TransferEvent{BankCode: "822", Account: "01234567890123", Amount: decimal.NewFromInt(100)},
			wantApproved: false,
			wantBankName: "中國信託商業銀行",
		},
		{
			name:         "negative amount passes through arithmetic unchanged",
			event:        models.TransferEvent{BankCode: "822", Account: "1234567890123", Amount: decimal.NewFromInt(-100)},
			wantApproved: true,
			wantBankName: "中國信託商業銀行",
			wantProfit:   "-10.00",
			wantNet:      "-90.00",
		},
		{
			name:         "fractional amount keeps full precision in the split",
			event:        models.TransferEvent{BankCode: "822", Account: "1234567890123", Amount: decimal.RequireFromString("1234.56")},
			wantApproved: true,
			wantBankName: "中國信託商業銀行",
			wantProfit:   "123.46",
			wantNet:      "1111.10",
		},
	}

	svc := newTestService(&mockLedger{}, &mockNotifier{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.Verify(tt.event)

			if result.Approved != tt.wantApproved {
				t.Fatalf("approved = %t, ожидалось %t", result.Approved, tt.wantApproved)
			}
			if result.BankName != tt.wantBankName {
				t.Errorf("bankName = %q, ожидалось %q", result.BankName, tt.wantBankName)
			}
			if !result.GrossAmount.Equal(tt.event.Amount) {
				t.Errorf("grossAmount = %s, ожидалось %s", result.GrossAmount, tt.event.Amount)
			}
			if result.Timestamp == "" {
				t.Error("timestamp не назначен")
			}
			if !tt.wantApproved {
				return
			}
			if got := result.ProfitShare.StringFixed(2); got != tt.wantProfit {
				t.Errorf("profitShare = %s, ожидалось %s", got, tt.wantProfit)
			}
			if got := result.NetAmount.StringFixed(2); got != tt.wantNet {
				t.Errorf("netAmount = %s, ожидалось %s", got, tt.wantNet)
			}
			if !result.ProfitShare.Add(result.NetAmount).Equal(result.GrossAmount) {
				t.Errorf("profitShare + netAmount = %s, не равно grossAmount %s",
					result.ProfitShare.Add(result.NetAmount), result.GrossAmount)
			}
		})
	}
}

func TestVerifyUnknownBankNameOnApproval(t *testing.T) {
	cfg := testConfig()
	cfg.ExpectedAccounts["999"] = "5555"
	svc := NewTransferService(&mockLedger{}, &mockNotifier{}, testDirectory(), cfg)

	result := svc.Verify(models.TransferEvent{BankCode: "999", Account: "5555", Amount: decimal.NewFromInt(10)})
	if !result.Approved {
		t.Fatal("перевод должен быть подтверждён")
	}
	if result.BankName != "未知銀行" {
		t.Errorf("bankName = %q, ожидалось %q", result.BankName, "未知銀行")
	}
}

func TestVerifyIdempotent(t *testing.T) {
	svc := newTestService(&mockLedger{}, &mockNotifier{})
	event := models.TransferEvent{BankCode: "822", Account: "1234567890123", Amount: decimal.NewFromInt(50000)}

	first := svc.Verify(event)
	second := svc.Verify(event)

	if first.Approved != second.Approved {
		t.Errorf("approved разошлись: %t и %t", first.Approved, second.Approved)
	}
	if !first.ProfitShare.Equal(second.ProfitShare) {
		t.Errorf("profitShare разошлись: %s и %s", first.ProfitShare, second.ProfitShare)
	}
	if !first.NetAmount.Equal(second.NetAmount) {
		t.Errorf("netAmount разошлись: %s и %s", first.NetAmount, second.NetAmount)
	}
}

func TestProcessApproved(t *testing.T) {
	cache.Flush()
	ledger := &mockLedger{}
	notifier := &mockNotifier{}
	svc := newTestService(ledger, notifier)

	event := models.TransferEvent{BankCode: "822", Account: "1234567890123", Amount: decimal.NewFromInt(50000), SourceLabel: "unknown"}
	result := svc.Process(event)

	if !result.Approved {
		t.Fatal("перевод должен быть подтверждён")
	}
	if len(notifier.sent) != 2 {
		t.Fatalf("отправлено %d уведомлений, ожидалось 2", len(notifier.sent))
	}
	if len(ledger.appended) != 1 {
		t.Fatalf("в журнале %d строк, ожидалась 1", len(ledger.appended))
	}

	entry := ledger.appended[0]
	if entry.BankName != "中國信託商業銀行" {
		t.Errorf("bankName в журнале = %q", entry.BankName)
	}
	if entry.Account != event.Account {
		t.Errorf("account в журнале = %q", entry.Account)
	}
	if got := entry.ProfitShare.StringFixed(2); got != "5000.00" {
		t.Errorf("profitShare в журнале = %s", got)
	}
	if got := entry.NetAmount.StringFixed(2); got != "45000.00" {
		t.Errorf("netAmount в журнале = %s", got)
	}
	if entry.SourceLabel != "unknown" {
		t.Errorf("sourceLabel в журнале = %q", entry.SourceLabel)
	}
	if entry.LoggedAt != result.Timestamp {
		t.Errorf("loggedAt = %q, ожидалось %q", entry.LoggedAt, result.Timestamp)
	}
}

func TestProcessRejected(t *testing.T) {
	cache.Flush()
	ledger := &mockLedger{}
	notifier := &mockNotifier{}
	svc := newTestService(ledger, notifier)

	result := svc.Process(models.TransferEvent{BankCode: "822", Account: "000000000000", Amount: decimal.NewFromInt(100)})

	if result.Approved {
		t.Fatal("перевод должен быть отклонён")
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("отправлено %d уведомлений, ожидалось 1", len(notifier.sent))
	}
	if len(ledger.appended) != 0 {
		t.Fatalf("в журнале %d строк, отклонённый перевод не журналируется", len(ledger.appended))
	}
}

func TestProcessNotifierFailureDoesNotBlockLedger(t *testing.T) {
	cache.Flush()
	ledger := &mockLedger{}
	notifier := &mockNotifier{
		sendFunc: func(ctx context.Context, text string) error {
			return errors.New("bot api down")
		},
	}
	svc := newTestService(ledger, notifier)

	result := svc.Process(models.TransferEvent{BankCode: "822", Account: "1234567890123", Amount: decimal.NewFromInt(500)})

	if !result.Approved {
		t.Fatal("перевод должен быть подтверждён")
	}
	if len(ledger.appended) != 1 {
		t.Fatalf("в журнале %d строк, сбой уведомлений не должен мешать журналу", len(ledger.appended))
	}
}

func TestProcessLedgerFailureIsSwallowed(t *testing.T) {
	cache.Flush()
	ledger := &mockLedger{
		appendFunc: func(ctx context.Context, entry models.LedgerEntry) error {
			return errors.New("relation does not exist")
		},
	}
	notifier := &mockNotifier{}
	svc := newTestService(ledger, notifier)

	result := svc.Process(models.TransferEvent{BankCode: "700", Account: "0987654321098", Amount: decimal.NewFromInt(30000)})

	if !result.Approved {
		t.Fatal("перевод должен быть подтверждён")
	}
	if len(notifier.sent) != 2 {
		t.Fatalf("отправлено %d уведомлений, сбой журнала не должен мешать рассылке", len(notifier.sent))
	}
}

func TestProcessDuplicateSkipsDispatch(t *testing.T) {
	cache.Flush()
	ledger := &mockLedger{}
	notifier := &mockNotifier{}
	svc := newTestService(ledger, notifier)

	event := models.TransferEvent{BankCode: "822", Account: "1234567890123", Amount: decimal.NewFromInt(777)}

	first := svc.Process(event)
	second := svc.Process(event)

	if !first.Approved || !second.Approved {
		t.Fatal("оба прогона должны подтверждать перевод")
	}
	if len(notifier.sent) != 2 {
		t.Errorf("отправлено %d уведомлений, повтор не должен рассылаться", len(notifier.sent))
	}
	if len(ledger.appended) != 1 {
		t.Errorf("в журнале %d строк, повтор не должен журналироваться", len(ledger.appended))
	}
}

func TestHistory(t *testing.T) {
	ledger := &mockLedger{
		entriesFunc: func(ctx context.Context, limit int) ([]models.LedgerEntry, error) {
			if limit != 10 {
				t.Errorf("limit = %d, ожидалось 10", limit)
			}
			return []models.LedgerEntry{{ID: 1, BankName: "中華郵政"}}, nil
		},
	}
	svc := newTestService(ledger, &mockNotifier{})

	entries, err := svc.History(context.Background(), 10)
	if err != nil {
		t.Fatalf("History вернул ошибку: %s", err)
	}
	if len(entries) != 1 || entries[0].BankName != "中華郵政" {
		t.Errorf("неожиданный ответ History: %+v", entries)
	}
}
