// users.go — управление администраторами панели (только super_admin).
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bigkaa/mygov-admin/internal/domain/model"
	"github.com/bigkaa/mygov-admin/internal/domain/rbac"
	"github.com/bigkaa/mygov-admin/internal/gateway"
	uimiddleware "github.com/bigkaa/mygov-admin/internal/ui/middleware"
	"github.com/bigkaa/mygov-admin/internal/ui/pages"
)

// pathUsers — адрес списка администраторов.
const pathUsers = "/admin/users"

// Сообщения раздела администраторов.
const (
	msgUsersLoad     = "users.msg.load_error"
	msgUserSave      = "users.msg.save_error"
	msgUserDelete    = "users.msg.delete_error"
	msgUserConfirm   = "users.msg.confirm_delete"
	msgUserNotFound  = "users.msg.not_found"
	msgUserRequired  = "users.msg.required"
	msgUserPassword  = "users.msg.password_required"
	msgUserRole      = "users.msg.invalid_role"
	msgUserCreated   = "users.msg.created"
	msgUserUpdated   = "users.msg.updated"
	msgUserDeleted   = "users.msg.deleted"
	msgUserProtected = "users.msg.protected"
)

// UsersBackend — операции backend с администраторами.
type UsersBackend interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, in model.UserInput) error
	UpdateUser(ctx context.Context, id string, in model.UserInput) error
	DeleteUser(ctx context.Context, id string) error
}

// UsersHandler — обработчики управления администраторами.
type UsersHandler struct {
	backend UsersBackend
	loc     *time.Location
	logger  *slog.Logger
}

// NewUsersHandler создаёт новый UsersHandler.
func NewUsersHandler(backend UsersBackend, loc *time.Location, logger *slog.Logger) *UsersHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &UsersHandler{
		backend: backend,
		loc:     loc,
		logger:  logger.With(slog.String("component", "ui.users")),
	}
}

// HandleList обрабатывает GET /admin/users.
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	data := pages.UserListData{
		Layout: layoutData(r, "nav.admin_users", pathUsers),
	}

	users, err := h.backend.ListUsers(r.Context())
	if err != nil {
		if redirectIfUnauthorized(w, r, err) {
			return
		}
		h.logger.Error("Ошибка получения списка пользователей", slog.String("error", err.Error()))
		data.LoadError = gateway.UserMessage(err, tr(r, msgUsersLoad))
	}

	data.Rows = make([]pages.UserRow, 0, len(users))
	for _, u := range users {
		id := url.PathEscape(u.ID.String())
		row := pages.UserRow{
			Username:  u.Username,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: formatTimestamp(u.CreatedAt, h.loc),
			EditURL:   pathUsers + "/" + id + "/edit",
		}
		if u.Role != rbac.RoleSuperAdmin {
			row.DeleteURL = pathUsers + "/" + id + "/delete"
		}
		data.Rows = append(data.Rows, row)
	}
	render(w, r, h.logger, pages.UserList(data))
}

// HandleNew обрабатывает GET /admin/users/new. Роль по умолчанию — mygov_admin.
func (h *UsersHandler) HandleNew(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.logger, pages.UserForm(pages.UserFormData{
		Layout: layoutData(r, "users.new", pathUsers),
		Action: pathUsers,
		Role:   rbac.RoleMyGovAdmin,
	}))
}

// HandleCreate обрабатывает POST /admin/users.
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in := userInputFromForm(r)
	form := pages.UserFormData{
		Layout:   layoutData(r, "users.new", pathUsers),
		Action:   pathUsers,
		Username: in.Username,
		Email:    in.Email,
		Role:     in.Role,
	}

	if msg := validateUserInput(in, true); msg != "" {
		form.Error = tr(r, msg)
		h.renderForm(w, r, http.StatusBadRequest, form)
		return
	}

	if err := h.backend.CreateUser(r.Context(), in); err != nil {
		if redirectIfUnauthorized(w, r, err) {
			return
		}
		h.logger.Warn("Ошибка создания пользователя",
			slog.String("username", in.Username),
			slog.String("error", err.Error()),
		)
		form.Error = gateway.UserMessage(err, tr(r, msgUserSave))
		h.renderForm(w, r, http.StatusBadRequest, form)
		return
	}

	h.logger.Info("Пользователь создан",
		slog.String("username", in.Username),
		slog.String("role", in.Role),
	)
	uimiddleware.SetFlash(r.Context(), uimiddleware.FlashSuccess, tr(r, msgUserCreated))
	http.Redirect(w, r, pathUsers, http.StatusSeeOther)
}

// HandleEdit обрабатывает GET /admin/users/{id}/edit.
// Отдельного запроса пользователя у backend нет: запись ищется в списке.
func (h *UsersHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	u, ok := h.findUser(w, r, id)
	if !ok {
		return
	}
	render(w, r, h.logger, pages.UserForm(pages.UserFormData{
		Layout:   layoutData(r, "users.edit", pathUsers),
		Action:   pathUsers + "/" + url.PathEscape(id),
		Editing:  true,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}))
}

// HandleUpdate обрабатывает POST /admin/users/{id}. Пустой пароль не отправляется.
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	in := userInputFromForm(r)
	form := pages.UserFormData{
		Layout:   layoutData(r, "users.edit", pathUsers),
		Action:   pathUsers + "/" + url.PathEscape(id),
		Editing:  true,
		Username: in.Username,
		Email:    in.Email,
		Role:     in.Role,
	}

	if msg := validateUserInput(in, false); msg != "" {
		form.Error = tr(r, msg)
		h.renderForm(w, r, http.StatusBadRequest, form)
		return
	}

	if err := h.backend.UpdateUser(r.Context(), id, in); err != nil {
		if redirectIfUnauthorized(w, r, err) {
			return
		}
		h.logger.Warn("Ошибка обновления пользователя",
			slog.String("user_id", id),
			slog.String("error", err.Error()),
		)
		form.Error = gateway.UserMessage(err, tr(r, msgUserSave))
		h.renderForm(w, r, http.StatusBadRequest, form)
		return
	}

	h.logger.Info("Пользователь обновлён", slog.String("user_id", id))
	uimiddleware.SetFlash(r.Context(), uimiddleware.FlashSuccess, tr(r, msgUserUpdated))
	http.Redirect(w, r, pathUsers, http.StatusSeeOther)
}

// HandleDeleteConfirm обрабатывает GET /admin/users/{id}/delete.
func (h *UsersHandler) HandleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	render(w, r, h.logger, pages.Confirm(pages.ConfirmData{
		Layout:    layoutData(r, "nav.admin_users", pathUsers),
		Message:   tr(r, msgUserConfirm),
		Action:    pathUsers + "/" + url.PathEscape(id) + "/delete",
		CancelURL: pathUsers,
	}))
}

// HandleDelete обрабатывает POST /admin/users/{id}/delete.
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := urlParam(r, "id")

	u, ok := h.findUser(w, r, id)
	if !ok {
		return
	}
	if u.Role == rbac.RoleSuperAdmin {
		uimiddleware.SetFlash(ctx, uimiddleware.FlashError, tr(r, msgUserProtected))
		http.Redirect(w, r, pathUsers, http.StatusSeeOther)
		return
	}

	if err := h.backend.DeleteUser(ctx, id); err != nil {
		if redirectIfUnauthorized(w, r, err) {
			return
		}
		h.logger.Warn("Ошибка удаления пользователя",
			slog.String("user_id", id),
			slog.String("error", err.Error()),
		)
		uimiddleware.SetFlash(ctx, uimiddleware.FlashError, gateway.UserMessage(err, tr(r, msgUserDelete)))
		http.Redirect(w, r, pathUsers, http.StatusSeeOther)
		return
	}

	h.logger.Info("Пользователь удалён", slog.String("user_id", id))
	uimiddleware.SetFlash(ctx, uimiddleware.FlashSuccess, tr(r, msgUserDeleted))
	http.Redirect(w, r, pathUsers, http.StatusSeeOther)
}

// findUser ищет пользователя в списке backend. При неудаче отвечает сам
// (redirect на вход или в список с сообщением) и возвращает false.
func (h *UsersHandler) findUser(w http.ResponseWriter, r *http.Request, id string) (model.User, bool) {
	users, err := h.backend.ListUsers(r.Context())
	if err != nil {
		if redirectIfUnauthorized(w, r, err) {
			return model.User{}, false
		}
		uimiddleware.SetFlash(r.Context(), uimiddleware.FlashError, gateway.UserMessage(err, tr(r, msgUsersLoad)))
		http.Redirect(w, r, pathUsers, http.StatusSeeOther)
		return model.User{}, false
	}
	for _, u := range users {
		if u.ID.String() == id {
			return u, true
		}
	}
	uimiddleware.SetFlash(r.Context(), uimiddleware.FlashError, tr(r, msgUserNotFound))
	http.Redirect(w, r, pathUsers, http.StatusSeeOther)
	return model.User{}, false
}

func (h *UsersHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, data pages.UserFormData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.UserForm(data).Render(r.Context(), w); err != nil {
		h.logger.Error("Ошибка рендеринга формы пользователя", slog.String("error", err.Error()))
	}
}

// userInputFromForm читает форму администратора.
func userInputFromForm(r *http.Request) model.UserInput {
	in := model.UserInput{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Role:     strings.TrimSpace(r.PostFormValue("role")),
	}
	if in.Role == "" {
		in.Role = rbac.RoleMyGovAdmin
	}
	return in.Normalize()
}

// validateUserInput возвращает ключ сообщения об ошибке или "".
func validateUserInput(in model.UserInput, creating bool) string {
	switch {
	case in.Username == "" || in.Email == "":
		return msgUserRequired
	case creating && in.Password == "":
		return msgUserPassword
	case !rbac.IsValidRole(in.Role):
		return msgUserRole
	default:
		return ""
	}
}
