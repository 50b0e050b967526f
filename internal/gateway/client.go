// Пакет gateway — HTTP-клиент MyGov backend.
// Добавляет Bearer-токен текущей сессии, при ответе 401 вызывает
// хук очистки сессии и возвращает ошибку вызывающему, различает
// ответы backend (APIError) и сбои связи (NetworkError).
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// DefaultTimeout — таймаут запроса к backend по умолчанию.
const DefaultTimeout = 30 * time.Second

// TokenProvider возвращает токен текущей сессии. Пустая строка — без авторизации.
type TokenProvider func(ctx context.Context) string

// UnauthorizedHook вызывается при ответе 401 до возврата ошибки.
type UnauthorizedHook func(ctx context.Context)

// Options — параметры клиента. Окружение клиент не читает.
type Options struct {
	// BaseURL — адрес API, нормализуется NormalizeBaseURL
	BaseURL string
	// Timeout — таймаут запроса, 0 — DefaultTimeout
	Timeout time.Duration
	// TokenProvider — источник токена (может быть nil)
	TokenProvider TokenProvider
	// OnUnauthorized — очистка сессии при 401 (может быть nil)
	OnUnauthorized UnauthorizedHook
	// HTTPClient — собственный HTTP-клиент (например, в тестах)
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client — клиент MyGov backend. Безопасен для конкурентного использования.
type Client struct {
	baseURL        string
	origin         string
	httpClient     *http.Client
	tokenProvider  TokenProvider
	onUnauthorized UnauthorizedHook
	logger         *slog.Logger
}

// New создаёт клиент backend.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:        NormalizeBaseURL(opts.BaseURL),
		origin:         DownloadOrigin(opts.BaseURL),
		httpClient:     httpClient,
		tokenProvider:  opts.TokenProvider,
		onUnauthorized: opts.OnUnauthorized,
		logger:         logger.With(slog.String("component", "gateway")),
	}
}

// BaseURL возвращает нормализованный адрес API.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Origin возвращает адрес backend без «/api» для ссылок на скачивание.
func (c *Client) Origin() string {
	return c.origin
}

// call — описание одного запроса к backend.
type call struct {
	// op — имя операции для логов, метрик и ошибок
	op     string
	method string
	url    string
	body   any
	target any
	// anonymous — без токена и без хука 401 (вход в систему)
	anonymous bool
}

// errorBody — тело ответа backend с ошибкой.
type errorBody struct {
	Message   string          `json:"message"`
	Error     json.RawMessage `json:"error"`
	ErrorType string          `json:"error_type"`
}

// do выполняет запрос и декодирует ответ в c.target.
func (c *Client) do(ctx context.Context, rc call) error {
	var bodyReader io.Reader
	if rc.body != nil {
		data, err := json.Marshal(rc.body)
		if err != nil {
			return fmt.Errorf("%s: сериализация тела запроса: %w", rc.op, err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, rc.method, rc.url, bodyReader)
	if err != nil {
		return fmt.Errorf("%s: создание запроса: %w", rc.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if rc.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	hasToken := false
	if !rc.anonymous && c.tokenProvider != nil {
		if token := c.tokenProvider(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
			hasToken = true
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	backendRequestDuration.WithLabelValues(rc.op).Observe(time.Since(start).Seconds())
	if err != nil {
		netErr := &NetworkError{
			Code:      classifyNetworkError(err),
			Operation: rc.op,
			URL:       rc.url,
			Err:       err,
		}
		backendRequestsTotal.WithLabelValues(rc.op, statusNetworkError).Inc()
		c.logger.Error("Backend недоступен",
			slog.String("operation", rc.op),
			slog.String("url", rc.url),
			slog.String("code", netErr.Code),
			slog.String("error", err.Error()),
		)
		return netErr
	}
	defer resp.Body.Close()

	backendRequestsTotal.WithLabelValues(rc.op, strconv.Itoa(resp.StatusCode)).Inc()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Code: CodeNetwork, Operation: rc.op, URL: rc.url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(rc.op, resp.StatusCode, data)
		c.logger.Warn("Backend вернул ошибку",
			slog.String("operation", rc.op),
			slog.String("method", rc.method),
			slog.Int("status", resp.StatusCode),
			slog.Bool("has_token", hasToken),
			slog.String("message", apiErr.Message),
			slog.String("error_type", apiErr.ErrorType),
		)
		if resp.StatusCode == http.StatusUnauthorized && !rc.anonymous && c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return apiErr
	}

	c.logger.Debug("Ответ backend",
		slog.String("operation", rc.op),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if rc.target == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, rc.target); err != nil {
		return fmt.Errorf("%s: декодирование ответа backend: %w", rc.op, err)
	}
	return nil
}

// newAPIError собирает APIError из тела ответа.
// Сообщение берётся из message, затем из error.
func newAPIError(op string, status int, data []byte) *APIError {
	apiErr := &APIError{Status: status, Operation: op}

	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" && len(body.Error) > 0 {
			// error бывает строкой или объектом; объект не показываем
			var s string
			if json.Unmarshal(body.Error, &s) == nil {
				apiErr.Message = s
			}
		}
		apiErr.ErrorType = body.ErrorType
	}
	return apiErr
}

// api возвращает полный адрес endpoint API.
func (c *Client) api(path string) string {
	return c.baseURL + path
}
