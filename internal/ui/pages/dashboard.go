package pages

import "github.com/a-h/templ"

// DashboardData — данные главной страницы.
type DashboardData struct {
	Layout       LayoutData
	IsSuperAdmin bool
}

// dashboardCard — карточка перехода в раздел.
type dashboardCard struct {
	titleKey string
	textKey  string
	path     string
}

// Dashboard — главная страница с карточками разделов.
func Dashboard(data DashboardData) templ.Component {
	cards := []dashboardCard{
		{"dashboard.create.title", "dashboard.create.text", "/documents/create"},
		{"dashboard.documents.title", "dashboard.documents.text", "/documents"},
		{"dashboard.files.title", "dashboard.files.text", "/files"},
	}
	if data.IsSuperAdmin {
		cards = append(cards, dashboardCard{"dashboard.users.title", "dashboard.users.text", "/admin/users"})
	}

	content := component(func(p *printer) {
		p.raw(`<div class="cards">`)
		for _, c := range cards {
			p.raw(`<a class="card card-link"`)
			p.href("href", c.path)
			p.raw(`><h2>`)
			p.t(c.titleKey)
			p.raw(`</h2><p>`)
			p.t(c.textKey)
			p.raw(`</p></a>`)
		}
		p.raw(`</div>`)
	})
	return Layout(data.Layout, content)
}
