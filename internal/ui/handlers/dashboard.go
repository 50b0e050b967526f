package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bigkaa/mygov-admin/internal/domain/rbac"
	uimiddleware "github.com/bigkaa/mygov-admin/internal/ui/middleware"
	"github.com/bigkaa/mygov-admin/internal/ui/pages"
)

// DashboardHandler — обработчик главной страницы.
type DashboardHandler struct {
	logger *slog.Logger
}

// NewDashboardHandler создаёт новый DashboardHandler.
func NewDashboardHandler(logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		logger: logger.With(slog.String("component", "ui.dashboard")),
	}
}

// HandleDashboard обрабатывает GET /dashboard.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	role := ""
	if sess := uimiddleware.SessionFromContext(r.Context()); sess != nil {
		role = sess.Role
	}

	data := pages.DashboardData{
		Layout:       layoutData(r, "nav.dashboard", rbac.PathDashboard),
		IsSuperAdmin: rbac.IsElevated(role),
	}
	render(w, r, h.logger, pages.Dashboard(data))
}
