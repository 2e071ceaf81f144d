package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort int
	DataDir    string

	// SMTP-реле и адреса рассылки (обязательный блок).
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string
	NotifyTo string

	// Архив готовых заявок в R2 (необязательный блок: либо все поля, либо ни одного).
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	// Зеркало журнала в Google Sheets (необязательный блок).
	GoogleSAJSONPath string
	SpreadsheetID    string
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080" // Порт по умолчанию
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	cfg := &Config{
		ServerPort: port,
		DataDir:    dataDir,

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: os.Getenv("SMTP_FROM"),
		NotifyTo: os.Getenv("NOTIFY_EMAIL"),

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),

		GoogleSAJSONPath: os.Getenv("GOOGLE_SA_JSON"),
		SpreadsheetID:    os.Getenv("SPREADSHEET_ID"),
	}

	for name, val := range map[string]string{
		"SMTP_HOST":    cfg.SMTPHost,
		"SMTP_FROM":    cfg.SMTPFrom,
		"NOTIFY_EMAIL": cfg.NotifyTo,
	} {
		if val == "" {
			return nil, fmt.Errorf("%s environment variable is not set", name)
		}
	}

	smtpPortStr := os.Getenv("SMTP_PORT")
	if smtpPortStr == "" {
		smtpPortStr = "465"
	}
	cfg.SMTPPort, err = strconv.Atoi(smtpPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT environment variable: %w", err)
	}

	if err := checkBlock("R2", cfg.R2AccountID, cfg.R2AccessKeyID, cfg.R2SecretAccessKey, cfg.R2BucketName); err != nil {
		return nil, err
	}
	if err := checkBlock("Google Sheets", cfg.GoogleSAJSONPath, cfg.SpreadsheetID); err != nil {
		return nil, err
	}

	return cfg, nil
}

// R2Enabled сообщает, настроен ли архив заявок в объектном хранилище.
func (c *Config) R2Enabled() bool { return c.R2AccountID != "" }

// SheetsEnabled сообщает, настроено ли зеркалирование журнала в Google Sheets.
func (c *Config) SheetsEnabled() bool { return c.SpreadsheetID != "" }

// checkBlock требует, чтобы необязательный блок переменных был задан
// целиком или не задан вовсе.
func checkBlock(name string, vals ...string) error {
	set := 0
	for _, v := range vals {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != len(vals) {
		return fmt.Errorf("%s configuration is incomplete: set all of its variables or none", name)
	}
	return nil
}
