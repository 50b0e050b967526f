// Пакет config — загрузка и валидация конфигурации MyGov Admin
// из переменных окружения (и необязательного файла .env).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	// база часовых поясов для MG_TIMEZONE в минимальных образах
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/bigkaa/mygov-admin/internal/gateway"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации MyGov Admin.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- MyGov backend ---

	// Нормализованный адрес API (оканчивается на /api)
	APIBaseURL string
	// Адрес backend без /api для ссылок на скачивание
	DownloadOrigin string
	// Таймаут запроса к backend
	APITimeout time.Duration

	// --- Сессия ---

	// Ключ шифрования cookies (пустой — случайный на время жизни процесса)
	SessionSecret string
	// Secure flag для cookies (HTTPS)
	SecureCookie bool

	// --- Списки ---

	// Часовой пояс границ дня в фильтрах по дате
	Location *time.Location
	// Размер страницы по умолчанию
	DefaultPageSize int
	// Размеры страницы в селекторе (-1 — «все»)
	PageSizes []int

	// --- Вход ---

	// Число попыток входа с одного IP за окно
	LoginRateLimit int
	// Окно ограничения попыток входа
	LoginRateWindow time.Duration

	// --- Мониторинг ---

	// Группа сервиса для topologymetrics
	DephealthGroup string
	// Интервал проверки зависимостей topologymetrics
	DephealthCheckInterval time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// значения и возвращает Config или ошибку.
// Файл .env (или MG_ENV_FILE) читается первым и не перекрывает
// уже заданные переменные.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	var err error

	// --- Сервер ---

	// MG_PORT — порт HTTP-сервера (по умолчанию 8080)
	cfg.Port, err = getEnvInt("MG_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("MG_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("MG_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	// MG_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("MG_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("MG_LOG_LEVEL: %w", err)
	}

	// MG_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("MG_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("MG_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- MyGov backend ---

	// NEXT_PUBLIC_API_URL / API_URL — адрес backend (первый непустой)
	rawURL := getEnvDefault("NEXT_PUBLIC_API_URL", os.Getenv("API_URL"))
	cfg.APIBaseURL = gateway.ResolveBaseURL(os.Getenv("NEXT_PUBLIC_API_URL"), os.Getenv("API_URL"))
	cfg.DownloadOrigin = gateway.DownloadOrigin(cfg.APIBaseURL)
	if !strings.HasPrefix(cfg.APIBaseURL, "http://") && !strings.HasPrefix(cfg.APIBaseURL, "https://") {
		return nil, fmt.Errorf("NEXT_PUBLIC_API_URL: адрес %q должен начинаться с http:// или https://", rawURL)
	}

	// MG_API_TIMEOUT — таймаут запроса к backend (по умолчанию 30s)
	cfg.APITimeout, err = getEnvDuration("MG_API_TIMEOUT", gateway.DefaultTimeout)
	if err != nil {
		return nil, fmt.Errorf("MG_API_TIMEOUT: %w", err)
	}

	// --- Сессия ---

	cfg.SessionSecret = os.Getenv("MG_SESSION_SECRET")
	cfg.SecureCookie, err = getEnvBool("MG_SECURE_COOKIE", false)
	if err != nil {
		return nil, fmt.Errorf("MG_SECURE_COOKIE: %w", err)
	}

	// --- Списки ---

	// MG_TIMEZONE — часовой пояс фильтров по дате (по умолчанию Asia/Tashkent)
	tz := getEnvDefault("MG_TIMEZONE", "Asia/Tashkent")
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("MG_TIMEZONE: неизвестный часовой пояс %q: %w", tz, err)
	}

	cfg.DefaultPageSize, err = getEnvInt("MG_DEFAULT_PAGE_SIZE", 10)
	if err != nil {
		return nil, fmt.Errorf("MG_DEFAULT_PAGE_SIZE: %w", err)
	}
	if cfg.DefaultPageSize < 1 || cfg.DefaultPageSize > 500 {
		return nil, fmt.Errorf("MG_DEFAULT_PAGE_SIZE: значение %d вне допустимого диапазона 1-500", cfg.DefaultPageSize)
	}

	// MG_PAGE_SIZES — варианты размера страницы через запятую (all — все записи)
	cfg.PageSizes, err = parsePageSizes(getEnvDefault("MG_PAGE_SIZES", "10,25,50,all"))
	if err != nil {
		return nil, fmt.Errorf("MG_PAGE_SIZES: %w", err)
	}

	// --- Вход ---

	cfg.LoginRateLimit, err = getEnvInt("MG_LOGIN_RATE_LIMIT", 10)
	if err != nil {
		return nil, fmt.Errorf("MG_LOGIN_RATE_LIMIT: %w", err)
	}
	if cfg.LoginRateLimit < 0 {
		return nil, fmt.Errorf("MG_LOGIN_RATE_LIMIT: значение %d не может быть отрицательным", cfg.LoginRateLimit)
	}

	cfg.LoginRateWindow, err = getEnvDuration("MG_LOGIN_RATE_WINDOW", time.Minute)
	if err != nil {
		return nil, fmt.Errorf("MG_LOGIN_RATE_WINDOW: %w", err)
	}
	if cfg.LoginRateWindow <= 0 {
		return nil, fmt.Errorf("MG_LOGIN_RATE_WINDOW: значение должно быть положительным")
	}

	// --- Мониторинг ---

	cfg.DephealthGroup = getEnvDefault("MG_DEPHEALTH_GROUP", "mygov")
	cfg.DephealthCheckInterval, err = getEnvDuration("MG_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("MG_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// --- Graceful shutdown ---

	cfg.ShutdownTimeout, err = getEnvDuration("MG_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("MG_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// loadDotEnv читает MG_ENV_FILE (по умолчанию .env).
// Отсутствие файла по умолчанию не ошибка.
func loadDotEnv() error {
	path, explicit := os.LookupEnv("MG_ENV_FILE")
	if !explicit || path == "" {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("MG_ENV_FILE: не удалось прочитать %s: %w", path, err)
	}
	return nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvBool возвращает логическое значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное логическое значение: %q (true/false)", val)
	}
	return b, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}

// parsePageSizes разбирает список размеров страницы; all — все записи (-1).
func parsePageSizes(s string) ([]int, error) {
	items := parseCSV(s)
	if len(items) == 0 {
		return nil, errors.New("список размеров пуст")
	}
	sizes := make([]int, 0, len(items))
	for _, item := range items {
		if strings.EqualFold(item, "all") {
			sizes = append(sizes, -1)
			continue
		}
		n, err := strconv.Atoi(item)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("некорректный размер страницы %q", item)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// parseCSV разбирает строку, разделённую запятыми, на срез строк.
// Пробелы вокруг элементов убираются, пустые элементы игнорируются.
func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
