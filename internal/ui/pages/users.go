package pages

import (
	"github.com/a-h/templ"

	"github.com/bigkaa/mygov-admin/internal/domain/rbac"
)

// UserRow — строка таблицы администраторов.
type UserRow struct {
	Username  string
	Email     string
	Role      string
	CreatedAt string
	EditURL   string
	// DeleteURL — пусто для супер-администраторов
	DeleteURL string
}

// UserListData — страница списка администраторов.
type UserListData struct {
	Layout    LayoutData
	Rows      []UserRow
	LoadError string
}

// UserList — список администраторов.
func UserList(data UserListData) templ.Component {
	content := component(func(p *printer) {
		if data.LoadError != "" {
			alert(p, &Alert{Kind: "error", Message: data.LoadError})
		}
		p.raw(`<div class="toolbar"><a class="btn btn-primary" href="/admin/users/new">`)
		p.t("users.add")
		p.raw(`</a></div><table class="table"><thead><tr><th>`)
		p.t("users.username")
		p.raw(`</th><th>`)
		p.t("users.email")
		p.raw(`</th><th>`)
		p.t("users.role")
		p.raw(`</th><th>`)
		p.t("users.created_at")
		p.raw(`</th><th>`)
		p.t("common.actions")
		p.raw(`</th></tr></thead><tbody>`)

		if len(data.Rows) == 0 {
			emptyRow(p, 5)
		}
		for _, row := range data.Rows {
			p.raw(`<tr><td>`)
			p.text(row.Username)
			p.raw(`</td><td>`)
			p.text(row.Email)
			p.raw(`</td><td><span`)
			p.attr("class", "badge role-"+row.Role)
			p.raw(`>`)
			p.t(roleTitleKey(row.Role))
			p.raw(`</span></td><td>`)
			p.text(row.CreatedAt)
			p.raw(`</td><td class="actions"><a`)
			p.href("href", row.EditURL)
			p.raw(`>`)
			p.t("common.edit")
			p.raw(`</a>`)
			if row.DeleteURL != "" {
				p.raw(` <a class="danger"`)
				p.href("href", row.DeleteURL)
				p.raw(`>`)
				p.t("common.delete")
				p.raw(`</a>`)
			}
			p.raw(`</td></tr>`)
		}
		p.raw(`</tbody></table>`)
	})
	return Layout(data.Layout, content)
}

// UserFormData — форма создания или редактирования администратора.
type UserFormData struct {
	Layout LayoutData
	// Action — адрес отправки формы
	Action   string
	Editing  bool
	Username string
	Email    string
	Role     string
	Error    string
}

// userRoleOptions — роли в форме администратора.
var userRoleOptions = []string{rbac.RoleMyGovAdmin, rbac.RoleAdmin, rbac.RoleSuperAdmin}

// UserForm — форма администратора. Пароль при редактировании необязателен.
func UserForm(data UserFormData) templ.Component {
	content := component(func(p *printer) {
		if data.Error != "" {
			alert(p, &Alert{Kind: "error", Message: data.Error})
		}
		p.raw(`<form method="post" class="card form"`)
		p.href("action", data.Action)
		p.raw(`>`)
		input(p, "text", "username", "users.username", data.Username, true)
		input(p, "email", "email", "users.email", data.Email, true)
		input(p, "password", "password", "users.password", "", !data.Editing)
		if data.Editing {
			p.raw(`<p class="hint">`)
			p.t("users.password_hint")
			p.raw(`</p>`)
		}
		p.raw(`<label for="role">`)
		p.t("users.role")
		p.raw(` *</label><select id="role" name="role">`)
		for _, role := range userRoleOptions {
			p.raw(`<option`)
			p.attr("value", role)
			if role == data.Role {
				p.raw(` selected`)
			}
			p.raw(`>`)
			p.t(roleTitleKey(role))
			p.raw(`</option>`)
		}
		p.raw(`</select><button type="submit" class="btn btn-primary">`)
		p.t("common.save")
		p.raw(`</button> <a class="btn" href="/admin/users">`)
		p.t("common.cancel")
		p.raw(`</a></form>`)
	})
	return Layout(data.Layout, content)
}
