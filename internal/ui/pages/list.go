package pages

// SortLink — ссылка заголовка колонки на смену сортировки.
type SortLink struct {
	URL string
	// Dir — текущее направление, если колонка активна ("asc"/"desc")
	Dir string
}

// PageLink — ссылка на страницу списка.
type PageLink struct {
	Number  int
	URL     string
	Current bool
}

// PageSizeOption — вариант размера страницы.
type PageSizeOption struct {
	// Label — "10", "25", "50" или пусто для «все»
	Label   string
	URL     string
	Current bool
}

// ListNav — пагинация и выбор размера страницы.
type ListNav struct {
	// Total — записей после фильтров
	Total      int
	Page       int
	TotalPages int
	PrevURL    string
	NextURL    string
	Pages      []PageLink
	Sizes      []PageSizeOption
}

// HiddenField — скрытое поле формы фильтров (сохранение сортировки и размера страницы).
type HiddenField struct {
	Name  string
	Value string
}

// sortHeader пишет заголовок колонки; без ссылки — обычный текст.
func sortHeader(p *printer, titleKey string, link SortLink, sortable bool) {
	p.raw(`<th>`)
	if !sortable {
		p.t(titleKey)
		p.raw(`</th>`)
		return
	}
	p.raw(`<a class="sort"`)
	p.href("href", link.URL)
	p.raw(`>`)
	p.t(titleKey)
	switch link.Dir {
	case "asc":
		p.raw(` ▲`)
	case "desc":
		p.raw(` ▼`)
	}
	p.raw(`</a></th>`)
}

// listNav пишет пагинацию и выбор размера страницы.
func listNav(p *printer, nav ListNav) {
	p.raw(`<div class="list-nav"><span class="muted">`)
	p.tf("list.summary", nav.Total, nav.Page, nav.TotalPages)
	p.raw(`</span>`)

	if nav.TotalPages > 1 {
		p.raw(`<nav class="pagination">`)
		if nav.PrevURL != "" {
			p.raw(`<a`)
			p.href("href", nav.PrevURL)
			p.raw(`>`)
			p.t("list.prev")
			p.raw(`</a>`)
		}
		for _, pl := range nav.Pages {
			if pl.Current {
				p.raw(`<span class="current">`, itoa(pl.Number), `</span>`)
				continue
			}
			p.raw(`<a`)
			p.href("href", pl.URL)
			p.raw(`>`, itoa(pl.Number), `</a>`)
		}
		if nav.NextURL != "" {
			p.raw(`<a`)
			p.href("href", nav.NextURL)
			p.raw(`>`)
			p.t("list.next")
			p.raw(`</a>`)
		}
		p.raw(`</nav>`)
	}

	p.raw(`<div class="page-sizes"><span class="muted">`)
	p.t("list.per_page")
	p.raw(`</span>`)
	for _, s := range nav.Sizes {
		label := s.Label
		if label == "" {
			label = p.tr("list.all")
		}
		if s.Current {
			p.raw(`<span class="current">`)
			p.text(label)
			p.raw(`</span>`)
			continue
		}
		p.raw(`<a`)
		p.href("href", s.URL)
		p.raw(`>`)
		p.text(label)
		p.raw(`</a>`)
	}
	p.raw(`</div></div>`)
}

// hiddenFields пишет скрытые поля формы.
func hiddenFields(p *printer, fields []HiddenField) {
	for _, f := range fields {
		p.raw(`<input type="hidden"`)
		p.attr("name", f.Name)
		p.attr("value", f.Value)
		p.raw(`>`)
	}
}

// input пишет подпись и поле ввода.
func input(p *printer, typ, name, labelKey, value string, required bool) {
	p.raw(`<label`)
	p.attr("for", name)
	p.raw(`>`)
	p.t(labelKey)
	if required {
		p.raw(` *`)
	}
	p.raw(`</label><input`)
	p.attr("id", name)
	p.attr("name", name)
	p.attr("type", typ)
	p.attr("value", value)
	if required {
		p.raw(` required`)
	}
	p.raw(`>`)
}

// emptyRow пишет строку «нет записей».
func emptyRow(p *printer, cols int) {
	p.raw(`<tr><td class="empty"`)
	p.attr("colspan", itoa(cols))
	p.raw(`>`)
	p.t("list.empty")
	p.raw(`</td></tr>`)
}
