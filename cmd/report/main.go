package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"bank_notify_back/pkg/telegram"
)

// Ежедневный отчёт по заказам: читает CSV вида order_id,status,revenue,
// считает выручку завершённых заказов и отправляет сводку в Telegram.
func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))
	if err := godotenv.Load(); err != nil {
		logrus.Infof("Ошибка инициализации переменных окружения .env: %s \n", err)
	}

	path := "orders.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	total, completed, revenue, err := readOrders(path)
	if err != nil {
		logrus.Fatalf("Отчёт не построен: %s \n", err)
	}

	msg := fmt.Sprintf(
		"📊 <b>每日戰報</b>\n\n"+
			"總訂單數：%d\n"+
			"完成訂單數：%d\n"+
			"總收益：$%s 💰",
		total, completed, revenue.StringFixed(2))

	client := telegram.NewClient("", os.Getenv("REPORT_BOT_TOKEN"), os.Getenv("TELEGRAM_CHAT_ID"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.SendMessage(ctx, msg); err != nil {
		logrus.Fatalf("Отчёт не отправлен: %s \n", err)
	}
	logrus.Infoln("Отчёт отправлен")
}

func readOrders(path string) (total, completed int, revenue decimal.Decimal, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, decimal.Zero, errors.Wrap(err, "файл заказов не открыт")
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return 0, 0, decimal.Zero, errors.Wrap(err, "файл заказов не разобран")
	}

	for i, record := range records {
		if i == 0 || len(record) < 3 {
			continue // заголовок или битая строка
		}
		total++
		if record[1] != "completed" {
			continue
		}
		amount, parseErr := decimal.NewFromString(record[2])
		if parseErr != nil {
			logrus.Warnf("Строка %d: сумма %q не распознана", i+1, record[2])
			continue
		}
		completed++
		revenue = revenue.Add(amount)
	}
	return total, completed, revenue, nil
}
