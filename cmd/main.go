package main

import (
	"os"
	"sort"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	banknotify "bank_notify_back"
	"bank_notify_back/models"
	"bank_notify_back/pkg/bankdir"
	"bank_notify_back/pkg/handler"
	"bank_notify_back/pkg/repository"
	"bank_notify_back/pkg/service"
	"bank_notify_back/pkg/telegram"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))
	logrus.Infoln("Запуск сервиса банковских уведомлений")
	if err := godotenv.Load(); err != nil {
		logrus.Infof("Ошибка инициализации переменных окружения .env: %s \n", err)
	}

	if err := InitConfig(); err != nil {
		logrus.Fatalf("Ошибка (viper) при инициализации конфига .yaml: %s \n", err.Error())
	}
	logrus.Infoln("Конфиг YAML инициализирован")

	directory := bankdir.LoadFromFile(viper.GetString("banks.codes_file"))
	logrus.Infof("Справочник банков загружен: %d записей", directory.Len())

	rate, err := decimal.NewFromString(viper.GetString("profit.rate"))
	if err != nil {
		logrus.Fatalf("Ошибка чтения profit.rate: %s \n", err.Error())
	}

	cfg := models.VerificationConfig{
		ExpectedAccounts: expectedAccounts(),
		ProfitRate:       rate,
		SharedSecret:     os.Getenv("WEBHOOK_SECRET"),
	}
	if cfg.SharedSecret == "" {
		logrus.Fatalln("WEBHOOK_SECRET не задан")
	}

	db, err := repository.NewPostgresDB(repository.Config{
		Host:     viper.GetString("db.host"),
		Port:     viper.GetString("db.port"),
		Username: viper.GetString("db.username"),
		Password: os.Getenv("DB_PASS_LOCAL"),
		DBName:   viper.GetString("db.dbname"),
		SSLMode:  viper.GetString("db.sslmode"),
	})
	if err != nil {
		logrus.Fatalf("Ошибка при инициализации базы данных: %s \n", err.Error())
	}
	logrus.Info("База данных подключена")

	repos := repository.NewRepository(db, viper.GetString("ledger.table"))
	notifier := telegram.NewClient(viper.GetString("telegram.api"), os.Getenv("TELEGRAM_BOT_TOKEN"), os.Getenv("TELEGRAM_CHAT_ID"))
	services := service.NewService(repos, notifier, directory, cfg)

	if len(os.Args) > 1 && os.Args[1] == "simulate" {
		runSimulation(services, cfg)
		return
	}

	handlers := handler.NewHandler(services, cfg.SharedSecret)

	srv := new(banknotify.Server)
	if err := srv.Run(os.Getenv("PORT"), handlers.InitRoute()); err != nil {
		logrus.Fatalf("Ошибка при запуске сервера: %s \n", err)
	}
}

func InitConfig() error {
	viper.AddConfigPath("configs")
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

type bankEntry struct {
	Code       string `mapstructure:"code"`
	AccountEnv string `mapstructure:"account_env"`
}

// expectedAccounts собирает пары "код банка -> ожидаемый счёт": коды из YAML,
// сами номера счетов — из переменных окружения.
func expectedAccounts() map[string]string {
	var entries []bankEntry
	if err := viper.UnmarshalKey("banks.expected", &entries); err != nil {
		logrus.Fatalf("Ошибка чтения banks.expected: %s \n", err.Error())
	}

	accounts := make(map[string]string, len(entries))
	for _, entry := range entries {
		account := os.Getenv(entry.AccountEnv)
		if account == "" {
			logrus.Warnf("Счёт для банка %s не задан (%s), код исключён из проверки", entry.Code, entry.AccountEnv)
			continue
		}
		accounts[entry.Code] = account
	}
	return accounts
}

// runSimulation прогоняет эталонные переводы через тот же конвейер, что и вебхук.
func runSimulation(services *service.Service, cfg models.VerificationConfig) {
	logrus.Infoln("--- Симуляция переводов ---")

	codes := make([]string, 0, len(cfg.ExpectedAccounts))
	for code := range cfg.ExpectedAccounts {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		result := services.Process(models.TransferEvent{
			BankCode:    code,
			Account:     cfg.ExpectedAccounts[code],
			Amount:      decimal.NewFromInt(50000),
			SourceLabel: "模擬轉帳",
		})
		logrus.Infof("Банк %s: approved=%t, доля %s, остаток %s",
			code, result.Approved, result.ProfitShare.StringFixed(2), result.NetAmount.StringFixed(2))
	}

	logrus.Infoln("--- Симуляция завершена ---")
}
