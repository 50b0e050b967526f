// Пакет middleware — HTTP middleware панели MyGov Admin.
// auth.go — сессия в cookies запроса и проверка доступа к разделам.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bigkaa/mygov-admin/internal/domain/rbac"
	"github.com/bigkaa/mygov-admin/internal/session"
	"github.com/bigkaa/mygov-admin/internal/ui/auth"
)

type contextKey string

// contextKeyStorage — cookie-хранилище текущего запроса.
const contextKeyStorage contextKey = "ui_cookie_storage"

// UIAuth — загрузка сессии и проверка ролей для страниц панели.
type UIAuth struct {
	sessionManager *auth.SessionManager
	logger         *slog.Logger
}

// NewUIAuth создаёт middleware сессии панели.
func NewUIAuth(sessionManager *auth.SessionManager, logger *slog.Logger) *UIAuth {
	return &UIAuth{
		sessionManager: sessionManager,
		logger:         logger.With(slog.String("component", "ui_auth_middleware")),
	}
}

// Session создаёт для запроса session.Store поверх зашифрованных cookies
// и помещает его в контекст. Сброс сессии после ответа 401 журналируется.
func (ua *UIAuth) Session() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			storage := ua.sessionManager.Storage(w, r)
			store := session.NewStore(storage, 0)

			unsubscribe := store.Subscribe(func(e session.Event) {
				if e.Type == session.EventCleared && e.Reason == session.ReasonUnauthorized {
					ua.logger.Info("Сессия сброшена: backend вернул 401",
						slog.String("path", r.URL.Path),
						slog.String("remote_addr", r.RemoteAddr),
					)
				}
			})
			defer unsubscribe()

			ctx := session.WithStore(r.Context(), store)
			ctx = context.WithValue(ctx, contextKeyStorage, storage)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Guard пропускает запрос к разделу только при наличии сессии с ролью
// из required. Иначе — redirect без отрисовки страницы и без обращений к backend.
func (ua *UIAuth) Guard(required ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := ""
			hasSession := false
			if store := session.FromContext(r.Context()); store != nil {
				if sess := store.Get(); sess != nil {
					role = sess.Role
					hasSession = true
				}
			}

			decision := rbac.Authorize(role, hasSession, required)
			if !decision.Allowed {
				ua.logger.Debug("Доступ к разделу запрещён",
					slog.String("path", r.URL.Path),
					slog.String("role", role),
					slog.String("redirect", decision.Redirect),
				)
				http.Redirect(w, r, decision.Redirect, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// StorageFromContext возвращает cookie-хранилище запроса (nil вне Session).
func StorageFromContext(ctx context.Context) *auth.CookieStorage {
	s, _ := ctx.Value(contextKeyStorage).(*auth.CookieStorage)
	return s
}

// SessionFromContext возвращает снимок сессии запроса или nil.
func SessionFromContext(ctx context.Context) *session.Session {
	store := session.FromContext(ctx)
	if store == nil {
		return nil
	}
	return store.Get()
}
