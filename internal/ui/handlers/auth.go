// auth.go — вход по логину и паролю через backend, выход, корневой redirect.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	apimiddleware "github.com/bigkaa/mygov-admin/internal/api/middleware"
	"github.com/bigkaa/mygov-admin/internal/domain/model"
	"github.com/bigkaa/mygov-admin/internal/domain/rbac"
	"github.com/bigkaa/mygov-admin/internal/gateway"
	"github.com/bigkaa/mygov-admin/internal/session"
	uimiddleware "github.com/bigkaa/mygov-admin/internal/ui/middleware"
	"github.com/bigkaa/mygov-admin/internal/ui/pages"
)

// Сообщения страницы входа.
const (
	msgLoginFailed    = "login.msg.failed"
	msgLoginFormat    = "login.msg.invalid_response"
	msgLoginEmpty     = "login.msg.empty"
	msgLoginRateLimit = "login.msg.rate_limited"
)

// LoginBackend — операция входа backend.
type LoginBackend interface {
	Login(ctx context.Context, username, password string) (*model.LoginResponse, error)
}

// AuthHandler — обработчики входа и выхода.
type AuthHandler struct {
	backend LoginBackend
	limiter *apimiddleware.RateLimiter
	logger  *slog.Logger
}

// NewAuthHandler создаёт новый AuthHandler. limiter может быть nil.
func NewAuthHandler(backend LoginBackend, limiter *apimiddleware.RateLimiter, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		backend: backend,
		limiter: limiter,
		logger:  logger.With(slog.String("component", "ui_auth")),
	}
}

// HandleRoot — GET /
// Без сессии — на страницу входа, иначе на стартовую страницу роли.
func (h *AuthHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	sess := uimiddleware.SessionFromContext(r.Context())
	switch {
	case sess == nil:
		http.Redirect(w, r, rbac.PathLogin, http.StatusFound)
	case sess.Role == rbac.RoleSuperAdmin:
		http.Redirect(w, r, rbac.PathDashboard, http.StatusFound)
	default:
		http.Redirect(w, r, rbac.PathDocuments, http.StatusFound)
	}
}

// HandleLoginPage — GET /login
// Пользователь с ролью панели сразу уходит на свою стартовую страницу.
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if sess := uimiddleware.SessionFromContext(r.Context()); sess != nil && rbac.IsAnyAdmin(sess.Role) {
		http.Redirect(w, r, rbac.LandingPath(sess.Role), http.StatusFound)
		return
	}
	render(w, r, h.logger, pages.Login(pages.LoginData{}))
}

// HandleLogin — POST /login
// Проверяет ответ backend и сохраняет сессию. При ошибке сессия не меняется.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, "", tr(r, msgLoginFailed))
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	ip := apimiddleware.ClientIP(r)
	if !h.limiter.Allow(ip) {
		h.logger.Warn("Превышен лимит попыток входа",
			slog.String("remote_addr", ip),
			slog.String("username", username),
		)
		h.renderLogin(w, r, http.StatusTooManyRequests, username, tr(r, msgLoginRateLimit))
		return
	}

	if username == "" || password == "" {
		h.renderLogin(w, r, http.StatusBadRequest, username, tr(r, msgLoginEmpty))
		return
	}

	resp, err := h.backend.Login(r.Context(), username, password)
	if err != nil {
		h.logger.Info("Вход отклонён",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		h.renderLogin(w, r, loginErrorStatus(err), username, gateway.UserMessage(err, tr(r, msgLoginFailed)))
		return
	}
	if !resp.Valid() {
		h.logger.Warn("Некорректный ответ backend на вход",
			slog.String("username", username),
			slog.Bool("success", resp.Success),
		)
		msg := tr(r, msgLoginFormat)
		if !resp.Success && resp.Message != "" {
			msg = resp.Message
		}
		h.renderLogin(w, r, http.StatusBadGateway, username, msg)
		return
	}

	store := session.FromContext(r.Context())
	if store == nil {
		h.renderLogin(w, r, http.StatusInternalServerError, username, tr(r, msgLoginFailed))
		return
	}
	if err := store.Set(resp.Token, *resp.User); err != nil {
		h.logger.Error("Ошибка сохранения сессии", slog.String("error", err.Error()))
		h.renderLogin(w, r, http.StatusInternalServerError, username, tr(r, msgLoginFailed))
		return
	}

	h.logger.Info("Пользователь вошёл",
		slog.String("username", resp.User.Username),
		slog.String("role", resp.User.Role),
	)
	http.Redirect(w, r, rbac.LandingPath(resp.User.Role), http.StatusSeeOther)
}

// HandleLogout — POST /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if store := session.FromContext(r.Context()); store != nil {
		store.Clear(session.ReasonLogout)
	}
	h.logger.Info("Пользователь вышел")
	http.Redirect(w, r, rbac.PathLogin, http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, username, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.Login(pages.LoginData{Username: username, Error: msg}).Render(r.Context(), w); err != nil {
		h.logger.Error("Ошибка рендеринга страницы входа", slog.String("error", err.Error()))
	}
}

// loginErrorStatus — HTTP статус страницы входа после ошибки backend.
func loginErrorStatus(err error) int {
	switch {
	case gateway.IsNetwork(err):
		return http.StatusBadGateway
	case gateway.IsUnauthorized(err):
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}
