package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bigkaa/mygov-admin/internal/domain/model"
)

// --- Auth ---

// Login выполняет вход (POST /auth/login).
// Запрос анонимный: ответ 401 означает неверные учётные данные
// и не трогает текущую сессию.
func (c *Client) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	err := c.do(ctx, call{
		op:        "login",
		method:    http.MethodPost,
		url:       c.api("/auth/login"),
		body:      model.LoginRequest{Username: username, Password: password},
		target:    &resp,
		anonymous: true,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Documents ---

// ListDocuments возвращает все документы, доступные токену (GET /documents).
func (c *Client) ListDocuments(ctx context.Context) ([]model.Document, error) {
	var raw json.RawMessage
	if err := c.do(ctx, call{op: "list_documents", method: http.MethodGet, url: c.api("/documents"), target: &raw}); err != nil {
		return nil, err
	}
	return decodeList[model.Document](raw, "documents")
}

// GenerateDocument запускает генерацию документа (POST /documents/generate).
func (c *Client) GenerateDocument(ctx context.Context, req model.GenerateRequest) (*model.GenerateResult, error) {
	var result model.GenerateResult
	err := c.do(ctx, call{
		op:     "generate_document",
		method: http.MethodPost,
		url:    c.api("/documents/generate"),
		body:   req,
		target: &result,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteDocument удаляет документ (DELETE /documents/{id}).
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.do(ctx, call{
		op:     "delete_document",
		method: http.MethodDelete,
		url:    c.api("/documents/" + url.PathEscape(id)),
	})
}

// --- Files ---

// ListFiles возвращает файлы хранилища (GET /files).
// Ответ без success трактуется как пустой список.
func (c *Client) ListFiles(ctx context.Context) ([]model.File, error) {
	var resp model.FilesResponse
	if err := c.do(ctx, call{op: "list_files", method: http.MethodGet, url: c.api("/files"), target: &resp}); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Files == nil {
		return []model.File{}, nil
	}
	return resp.Files, nil
}

// DeleteFile удаляет файл (DELETE /files/delete/{filename}).
func (c *Client) DeleteFile(ctx context.Context, name string) error {
	return c.do(ctx, call{
		op:     "delete_file",
		method: http.MethodDelete,
		url:    c.api("/files/delete/" + url.PathEscape(name)),
	})
}

// --- Admin users ---

// ListUsers возвращает учётные записи администраторов (GET /admin/users).
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var raw json.RawMessage
	if err := c.do(ctx, call{op: "list_users", method: http.MethodGet, url: c.api("/admin/users"), target: &raw}); err != nil {
		return nil, err
	}
	return decodeList[model.User](raw, "users")
}

// CreateUser создаёт администратора (POST /admin/users).
func (c *Client) CreateUser(ctx context.Context, in model.UserInput) error {
	return c.do(ctx, call{
		op:     "create_user",
		method: http.MethodPost,
		url:    c.api("/admin/users"),
		body:   in.Normalize(),
	})
}

// UpdateUser обновляет администратора (PUT /admin/users/{id}).
// Пустой пароль не передаётся.
func (c *Client) UpdateUser(ctx context.Context, id string, in model.UserInput) error {
	return c.do(ctx, call{
		op:     "update_user",
		method: http.MethodPut,
		url:    c.api("/admin/users/" + url.PathEscape(id)),
		body:   in.Normalize(),
	})
}

// DeleteUser удаляет администратора (DELETE /admin/users/{id}).
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, call{
		op:     "delete_user",
		method: http.MethodDelete,
		url:    c.api("/admin/users/" + url.PathEscape(id)),
	})
}

// --- Health ---

// HealthStatus — ответ GET {origin}/health.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health проверяет доступность backend (GET {origin}/health).
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	err := c.do(ctx, call{
		op:        "health",
		method:    http.MethodGet,
		url:       c.HealthURL(),
		target:    &status,
		anonymous: true,
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// HealthURL возвращает адрес проверки здоровья backend.
func (c *Client) HealthURL() string {
	return c.origin + "/health"
}

// CheckReady проверяет доступность backend.
// Реализует handlers.ReadinessChecker.
func (c *Client) CheckReady() (string, string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	status, err := c.Health(ctx)
	if err != nil {
		return "fail", fmt.Sprintf("MyGov backend недоступен: %v", err)
	}
	if status.Status != "" && status.Status != "ok" && status.Status != "healthy" {
		return "degraded", fmt.Sprintf("MyGov backend: статус %s", status.Status)
	}
	return "ok", "MyGov backend доступен"
}

// decodeList разбирает список, который backend отдаёт массивом
// или объектом с массивом в поле key либо data.
func decodeList[T any](raw json.RawMessage, key string) ([]T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err == nil {
		if items == nil {
			items = []T{}
		}
		return items, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("неожиданный формат списка: %w", err)
	}
	for _, k := range []string{key, "data"} {
		if v, ok := wrapped[k]; ok {
			if err := json.Unmarshal(v, &items); err != nil {
				return nil, fmt.Errorf("декодирование поля %s: %w", k, err)
			}
			if items == nil {
				items = []T{}
			}
			return items, nil
		}
	}
	return []T{}, nil
}
