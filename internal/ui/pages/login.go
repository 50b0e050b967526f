package pages

import "github.com/a-h/templ"

// LoginData — данные страницы входа.
type LoginData struct {
	Username string
	Error    string
}

// Login — страница входа.
func Login(data LoginData) templ.Component {
	return component(func(p *printer) {
		document(p, "login.title", func() {
			p.raw(`<div class="login"><form method="post" action="/login" class="card login-card"><h1>MyGov Admin</h1><p class="muted">`)
			p.t("login.subtitle")
			p.raw(`</p>`)
			if data.Error != "" {
				alert(p, &Alert{Kind: "error", Message: data.Error})
			}
			p.raw(`<label for="username">`)
			p.t("login.username")
			p.raw(`</label><input id="username" name="username" type="text" autocomplete="username" required`)
			p.attr("value", data.Username)
			p.raw(`><label for="password">`)
			p.t("login.password")
			p.raw(`</label><input id="password" name="password" type="password" autocomplete="current-password" required><button type="submit" class="btn btn-primary">`)
			p.t("login.submit")
			p.raw(`</button></form>`)
			languageSwitch(p)
			p.raw(`</div>`)
		})
	})
}
