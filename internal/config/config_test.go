package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// setEnvs устанавливает переменные окружения на время теста.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnvs(t, map[string]string{
		"NEXT_PUBLIC_API_URL": "",
		"API_URL":             "",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, ожидается 8080", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, ожидается Info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, ожидается json", cfg.LogFormat)
	}
	if cfg.APIBaseURL != "http://localhost:5001/api" {
		t.Errorf("APIBaseURL = %q, ожидается http://localhost:5001/api", cfg.APIBaseURL)
	}
	if cfg.DownloadOrigin != "http://localhost:5001" {
		t.Errorf("DownloadOrigin = %q, ожидается http://localhost:5001", cfg.DownloadOrigin)
	}
	if cfg.APITimeout != 30*time.Second {
		t.Errorf("APITimeout = %v, ожидается 30s", cfg.APITimeout)
	}
	if cfg.SecureCookie {
		t.Error("SecureCookie = true, ожидается false")
	}
	if cfg.Location == nil || cfg.Location.String() != "Asia/Tashkent" {
		t.Errorf("Location = %v, ожидается Asia/Tashkent", cfg.Location)
	}
	if cfg.DefaultPageSize != 10 {
		t.Errorf("DefaultPageSize = %d, ожидается 10", cfg.DefaultPageSize)
	}
	if !reflect.DeepEqual(cfg.PageSizes, []int{10, 25, 50, -1}) {
		t.Errorf("PageSizes = %v, ожидается [10 25 50 -1]", cfg.PageSizes)
	}
	if cfg.LoginRateLimit != 10 || cfg.LoginRateWindow != time.Minute {
		t.Errorf("LoginRate = %d/%v, ожидается 10/1m", cfg.LoginRateLimit, cfg.LoginRateWindow)
	}
	if cfg.DephealthGroup != "mygov" {
		t.Errorf("DephealthGroup = %q, ожидается mygov", cfg.DephealthGroup)
	}
	if cfg.DephealthCheckInterval != 15*time.Second {
		t.Errorf("DephealthCheckInterval = %v, ожидается 15s", cfg.DephealthCheckInterval)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, ожидается 5s", cfg.ShutdownTimeout)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	setEnvs(t, map[string]string{
		"MG_PORT":                     "9090",
		"MG_LOG_LEVEL":                "debug",
		"MG_LOG_FORMAT":               "text",
		"NEXT_PUBLIC_API_URL":         "https://api.mygov.uz/api/",
		"MG_API_TIMEOUT":              "10s",
		"MG_SESSION_SECRET":           "secret",
		"MG_SECURE_COOKIE":            "true",
		"MG_TIMEZONE":                 "UTC",
		"MG_DEFAULT_PAGE_SIZE":        "25",
		"MG_PAGE_SIZES":               "25, 100",
		"MG_LOGIN_RATE_LIMIT":         "3",
		"MG_LOGIN_RATE_WINDOW":        "30s",
		"MG_DEPHEALTH_GROUP":          "prod",
		"MG_DEPHEALTH_CHECK_INTERVAL": "1m",
		"MG_SHUTDOWN_TIMEOUT":         "20s",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, ожидается 9090", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, ожидается Debug", cfg.LogLevel)
	}
	if cfg.APIBaseURL != "https://api.mygov.uz/api" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.DownloadOrigin != "https://api.mygov.uz" {
		t.Errorf("DownloadOrigin = %q", cfg.DownloadOrigin)
	}
	if cfg.APITimeout != 10*time.Second {
		t.Errorf("APITimeout = %v, ожидается 10s", cfg.APITimeout)
	}
	if cfg.SessionSecret != "secret" || !cfg.SecureCookie {
		t.Errorf("сессия: secret=%q secure=%v", cfg.SessionSecret, cfg.SecureCookie)
	}
	if cfg.Location.String() != "UTC" {
		t.Errorf("Location = %v, ожидается UTC", cfg.Location)
	}
	if cfg.DefaultPageSize != 25 {
		t.Errorf("DefaultPageSize = %d, ожидается 25", cfg.DefaultPageSize)
	}
	if !reflect.DeepEqual(cfg.PageSizes, []int{25, 100}) {
		t.Errorf("PageSizes = %v, ожидается [25 100]", cfg.PageSizes)
	}
	if cfg.LoginRateLimit != 3 || cfg.LoginRateWindow != 30*time.Second {
		t.Errorf("LoginRate = %d/%v", cfg.LoginRateLimit, cfg.LoginRateWindow)
	}
	if cfg.DephealthGroup != "prod" || cfg.DephealthCheckInterval != time.Minute {
		t.Errorf("Dephealth = %q/%v", cfg.DephealthGroup, cfg.DephealthCheckInterval)
	}
	if cfg.ShutdownTimeout != 20*time.Second {
		t.Errorf("ShutdownTimeout = %v, ожидается 20s", cfg.ShutdownTimeout)
	}
}

func TestLoad_APIURLFallback(t *testing.T) {
	setEnvs(t, map[string]string{
		"NEXT_PUBLIC_API_URL": "",
		"API_URL":             "http://backend:5001",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}
	if cfg.APIBaseURL != "http://backend:5001/api" {
		t.Errorf("APIBaseURL = %q, ожидается http://backend:5001/api", cfg.APIBaseURL)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"порт не число", "MG_PORT", "abc"},
		{"порт вне диапазона", "MG_PORT", "70000"},
		{"уровень логов", "MG_LOG_LEVEL", "trace"},
		{"формат логов", "MG_LOG_FORMAT", "xml"},
		{"адрес без схемы", "NEXT_PUBLIC_API_URL", "backend:5001"},
		{"таймаут", "MG_API_TIMEOUT", "30"},
		{"secure cookie", "MG_SECURE_COOKIE", "yes please"},
		{"часовой пояс", "MG_TIMEZONE", "Mars/Olympus"},
		{"размер страницы", "MG_DEFAULT_PAGE_SIZE", "0"},
		{"варианты размеров", "MG_PAGE_SIZES", "10,many"},
		{"лимит входа", "MG_LOGIN_RATE_LIMIT", "-1"},
		{"окно входа", "MG_LOGIN_RATE_WINDOW", "0s"},
		{"интервал dephealth", "MG_DEPHEALTH_CHECK_INTERVAL", "often"},
		{"shutdown", "MG_SHUTDOWN_TIMEOUT", "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("Load() с %s=%q должен вернуть ошибку", tt.key, tt.val)
			}
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	const key = "MG_DEPHEALTH_GROUP"
	if _, ok := os.LookupEnv(key); ok {
		t.Skipf("%s уже задана в окружении", key)
	}
	t.Cleanup(func() { os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte(key+"=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MG_ENV_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}
	if cfg.DephealthGroup != "from-dotenv" {
		t.Errorf("DephealthGroup = %q, ожидается from-dotenv", cfg.DephealthGroup)
	}
}

func TestLoad_DotEnvMissingExplicit(t *testing.T) {
	t.Setenv("MG_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	if _, err := Load(); err == nil {
		t.Error("Load() с отсутствующим MG_ENV_FILE должен вернуть ошибку")
	}
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name   string
		format string
	}{
		{"json", "json"},
		{"text", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				LogLevel:  slog.LevelInfo,
				LogFormat: tt.format,
			}
			logger := SetupLogger(cfg)
			if logger == nil {
				t.Error("SetupLogger() вернул nil")
			}
		})
	}
}

func TestParseCSV(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"10", []string{"10"}},
		{"10, 25", []string{"10", "25"}},
		{"10,,25,", []string{"10", "25"}},
		{" 10 , 25 , all ", []string{"10", "25", "all"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseCSV(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("parseCSV(%q) = %v (len %d), ожидается %v (len %d)",
					tt.input, result, len(result), tt.expected, len(tt.expected))
			}
			for i, v := range result {
				if v != tt.expected[i] {
					t.Errorf("parseCSV(%q)[%d] = %q, ожидается %q", tt.input, i, v, tt.expected[i])
				}
			}
		})
	}
}
