package utils

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/gomail.v2"

	"github.com/mailjet/mailjet-apiv3-go/v4"
)

// SendMismatchAlert отправляет оператору письмо о несовпавшем счёте.
// Письмо — best-effort: без настроенных ключей функция молча выходит,
// чат-уведомление в любом случае уже отправлено.
func SendMismatchAlert(bankName, account string) {
	if os.Getenv("MAILJET_API_KEY") != "" && os.Getenv("MAILJET_SECRET_KEY") != "" {
		sendAlertMailjet(bankName, account)
		return
	}
	if os.Getenv("SMTP_APP_PASSWORD") != "" {
		sendAlertSMTP(bankName, account)
		return
	}
	log.Println("Почтовые ключи не заданы, письмо о несовпадении не отправлено")
}

func alertBody(bankName, account string) string {
	return fmt.Sprintf(`<body style="margin:0;padding:24px;background:#f6f6f6;">
  <h1 style="font-family:Arial,sans-serif;font-size:24px;color:#111;">帳戶不符警示</h1>
  <p style="font-family:Arial,sans-serif;font-size:16px;color:#222;">
    銀行 <b>%s</b> 回報一筆轉帳，帳號 <b>%s</b> 與設定不符，請確認來源。
  </p>
</body>`, bankName, account)
}

// sendAlertMailjet отправляет письмо через Mailjet
func sendAlertMailjet(bankName, account string) {
	from := os.Getenv("ALERT_MAIL_FROM")
	to := os.Getenv("ALERT_MAIL_TO")
	if from == "" || to == "" {
		log.Println("ALERT_MAIL_FROM или ALERT_MAIL_TO не установлены!")
		return
	}

	mj := mailjet.NewMailjetClient(os.Getenv("MAILJET_API_KEY"), os.Getenv("MAILJET_SECRET_KEY"))
	messagesInfo := []mailjet.InfoMessagesV31{
		{
			From: &mailjet.RecipientV31{
				Email: from,
				Name:  "Bank Notify",
			},
			To: &mailjet.RecipientsV31{
				{
					Email: to,
				},
			},
			Subject:  "帳戶不符警示",
			HTMLPart: alertBody(bankName, account),
		},
	}
	messages := &mailjet.MessagesV31{Info: messagesInfo}
	res, err := mj.SendMailV31(messages)
	if err != nil {
		log.Println("Ошибка при отправке письма через Mailjet:", err)
	} else {
		log.Printf("Mailjet ответ: %+v", res)
		log.Printf("Письмо о несовпадении отправлено: банк %s, счёт %s", bankName, account)
	}
}

// sendAlertSMTP — запасной канал через SMTP, если ключи Mailjet не заданы
func sendAlertSMTP(bankName, account string) {
	from := os.Getenv("ALERT_MAIL_FROM")
	to := os.Getenv("ALERT_MAIL_TO")
	if from == "" || to == "" {
		log.Println("ALERT_MAIL_FROM или ALERT_MAIL_TO не установлены!")
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "帳戶不符警示")
	m.SetBody("text/html", alertBody(bankName, account))
	m.SetHeader("Reply-To", from)

	d := gomail.NewDialer("smtp.gmail.com", 587, from, os.Getenv("SMTP_APP_PASSWORD"))

	if err := d.DialAndSend(m); err != nil {
		log.Println("Ошибка при отправке письма:", err)
	} else {
		log.Printf("Письмо о несовпадении отправлено: банк %s, счёт %s", bankName, account)
	}
}
