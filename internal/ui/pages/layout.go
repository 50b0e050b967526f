package pages

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/bigkaa/mygov-admin/internal/domain/rbac"
	"github.com/bigkaa/mygov-admin/internal/ui/i18n"
)

// Alert — сообщение вверху страницы.
type Alert struct {
	// Kind — "success" или "error"
	Kind    string
	Message string
}

// LayoutData — общие данные страниц с боковым меню.
type LayoutData struct {
	// TitleKey — ключ перевода заголовка страницы
	TitleKey string
	Username string
	Role     string
	// ActivePath — путь текущего раздела для подсветки меню
	ActivePath string
	Alert      *Alert
}

// roleTitleKey — ключ перевода названия роли.
func roleTitleKey(role string) string {
	switch role {
	case rbac.RoleSuperAdmin:
		return "role.super_admin"
	case rbac.RoleMyGovAdmin:
		return "role.mygov_admin"
	case rbac.RoleAdmin:
		return "role.admin"
	default:
		return "role.unknown"
	}
}

// document пишет обрамление HTML-документа.
func document(p *printer, titleKey string, body func()) {
	p.raw(`<!DOCTYPE html><html`)
	p.attr("lang", i18n.LangFromContext(p.ctx))
	p.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
	p.t(titleKey)
	p.raw(` · MyGov Admin</title><link rel="stylesheet" href="/static/css/app.css"></head><body>`)
	body()
	p.raw(`</body></html>`)
}

// alert пишет блок сообщения.
func alert(p *printer, a *Alert) {
	if a == nil || a.Message == "" {
		return
	}
	kind := "error"
	if a.Kind == "success" {
		kind = "success"
	}
	p.raw(`<div class="alert alert-`, kind, `" role="alert">`)
	p.text(a.Message)
	p.raw(`</div>`)
}

// Layout — страница панели: боковое меню по роли и содержимое.
func Layout(data LayoutData, content templ.Component) templ.Component {
	return component(func(p *printer) {
		document(p, data.TitleKey, func() {
			p.raw(`<div class="app"><aside class="sidebar"><div class="brand">MyGov Admin</div><nav>`)
			for _, item := range rbac.MenuFor(data.Role) {
				class := "nav-link"
				if data.ActivePath == item.Path || (item.Path != rbac.PathDocuments && strings.HasPrefix(data.ActivePath, item.Path+"/")) {
					class += " active"
				}
				p.raw(`<a`)
				p.attr("class", class)
				p.href("href", item.Path)
				p.raw(`>`)
				p.t(item.TitleKey)
				p.raw(`</a>`)
			}
			p.raw(`</nav><div class="user"><div class="user-name">`)
			p.text(data.Username)
			p.raw(`</div><div class="user-role">`)
			p.t(roleTitleKey(data.Role))
			p.raw(`</div>`)
			languageSwitch(p)
			p.raw(`<form method="post" action="/logout"><button type="submit" class="btn btn-link">`)
			p.t("nav.logout")
			p.raw(`</button></form></div></aside><main class="content"><h1>`)
			p.t(data.TitleKey)
			p.raw(`</h1>`)
			alert(p, data.Alert)
			p.component(content)
			p.raw(`</main></div>`)
		})
	})
}

// languageSwitch пишет переключатель языка.
func languageSwitch(p *printer) {
	current := i18n.LangFromContext(p.ctx)
	p.raw(`<form method="post" action="/language" class="lang-switch">`)
	for _, lang := range []string{"ru", "en"} {
		p.raw(`<button type="submit" name="lang"`)
		p.attr("value", lang)
		if lang == current {
			p.raw(` class="active" disabled`)
		}
		p.raw(`>`, strings.ToUpper(lang), `</button>`)
	}
	p.raw(`</form>`)
}
