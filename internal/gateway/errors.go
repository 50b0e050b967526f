package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
)

// Коды сетевых ошибок (запрос не получил HTTP-ответа).
const (
	CodeConnRefused = "ECONNREFUSED"
	CodeNotFound    = "ENOTFOUND"
	CodeTimeout     = "ETIMEDOUT"
	CodeNetwork     = "ERR_NETWORK"
)

// APIError — ответ backend со статусом вне 2xx.
type APIError struct {
	// Status — HTTP статус ответа
	Status int
	// Message — текст из полей message или error тела ответа
	Message string
	// ErrorType — поле error_type, если backend его прислал
	ErrorType string
	// Operation — вызванная операция клиента
	Operation string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: backend вернул статус %d: %s", e.Operation, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: backend вернул статус %d", e.Operation, e.Status)
}

// NetworkError — запрос не получил ответа от backend.
type NetworkError struct {
	// Code — ECONNREFUSED, ENOTFOUND, ETIMEDOUT или ERR_NETWORK
	Code      string
	Operation string
	URL       string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: backend недоступен (%s): %v", e.Operation, e.Code, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsUnauthorized — ответ 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNetwork — ошибка связи без HTTP-ответа.
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsUnreachable — backend не принимает соединения или адрес не разрешается.
func IsUnreachable(err error) bool {
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		return false
	}
	return netErr.Code == CodeConnRefused || netErr.Code == CodeNotFound || netErr.Code == CodeNetwork
}

// classifyNetworkError определяет код ошибки транспорта.
func classifyNetworkError(err error) string {
	var dnsErr *net.DNSError
	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return CodeConnRefused
	case errors.As(err, &dnsErr):
		return CodeNotFound
	case errors.Is(err, context.DeadlineExceeded), isTimeout(err):
		return CodeTimeout
	default:
		return CodeNetwork
	}
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// Сообщения для пользователя.
const (
	MsgNetwork          = "Не удалось подключиться к серверу. Проверьте подключение."
	MsgGenerateFallback = "Ошибка генерации документа. Проверьте подключение к серверу."
	MsgDatabase         = "Ошибка подключения к базе данных. Обратитесь к администратору."
	MsgTemplate         = "Ошибка при работе с шаблоном документа. Обратитесь к администратору."
	MsgStorage          = "Ошибка при сохранении файла. Попробуйте еще раз."
)

// UserMessage возвращает текст ошибки для показа пользователю:
// сообщение backend, общее сообщение о связи или fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if IsNetwork(err) {
		return MsgNetwork
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// messageSubstitutions — замены технических сообщений генерации на понятные.
// Проверяются по порядку, срабатывает первая.
var messageSubstitutions = []struct {
	keywords []string
	message  string
}{
	{[]string{"база данных", "database"}, MsgDatabase},
	{[]string{"шаблон", "template"}, MsgTemplate},
	{[]string{"хранилище", "storage"}, MsgStorage},
}

// GenerateErrorMessage — текст ошибки генерации документа.
func GenerateErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return MsgGenerateFallback
	}

	msg := apiErr.Message
	lower := strings.ToLower(msg)
	for _, s := range messageSubstitutions {
		for _, kw := range s.keywords {
			if strings.Contains(lower, kw) {
				return s.message
			}
		}
	}
	if msg == "" {
		return MsgGenerateFallback
	}
	return msg
}
