package pages

import "github.com/a-h/templ"

// FileRow — строка таблицы файлов.
type FileRow struct {
	Name        string
	Extension   string
	Size        string
	PatientName string
	DocNumber   string
	CreatedAt   string
	DownloadURL string
	DeleteURL   string
}

// FileStats — сводка по отфильтрованным файлам.
type FileStats struct {
	Total     int
	PDF       int
	DOCX      int
	TotalSize string
}

// FileFilters — значения формы фильтров файлов.
type FileFilters struct {
	Search   string
	DateFrom string
	DateTo   string
	Type     string
}

// FileListData — страница списка файлов.
type FileListData struct {
	Layout    LayoutData
	Rows      []FileRow
	Stats     FileStats
	Filters   FileFilters
	Hidden    []HiddenField
	Sort      map[string]SortLink
	Nav       ListNav
	ResetURL  string
	LoadError string
}

// FileList — список файлов хранилища со сводкой.
func FileList(data FileListData) templ.Component {
	content := component(func(p *printer) {
		if data.LoadError != "" {
			alert(p, &Alert{Kind: "error", Message: data.LoadError})
		}

		p.raw(`<div class="stats">`)
		stat(p, "files.stats.total", itoa(data.Stats.Total))
		stat(p, "files.stats.pdf", itoa(data.Stats.PDF))
		stat(p, "files.stats.docx", itoa(data.Stats.DOCX))
		stat(p, "files.stats.size", data.Stats.TotalSize)
		p.raw(`</div>`)

		p.raw(`<form method="get" action="/files" class="filters">`)
		input(p, "search", "q", "files.search", data.Filters.Search, false)
		input(p, "date", "date_from", "filters.date_from", data.Filters.DateFrom, false)
		input(p, "date", "date_to", "filters.date_to", data.Filters.DateTo, false)
		p.raw(`<label for="type">`)
		p.t("files.type")
		p.raw(`</label><select id="type" name="type">`)
		for _, opt := range []struct{ value, label string }{{"", p.tr("files.type_all")}, {"pdf", "PDF"}, {"docx", "DOCX"}} {
			p.raw(`<option`)
			p.attr("value", opt.value)
			if opt.value == data.Filters.Type {
				p.raw(` selected`)
			}
			p.raw(`>`)
			p.text(opt.label)
			p.raw(`</option>`)
		}
		p.raw(`</select>`)
		hiddenFields(p, data.Hidden)
		p.raw(`<button type="submit" class="btn btn-primary">`)
		p.t("filters.apply")
		p.raw(`</button> <a class="btn"`)
		p.href("href", data.ResetURL)
		p.raw(`>`)
		p.t("filters.reset")
		p.raw(`</a></form>`)

		p.raw(`<table class="table"><thead><tr>`)
		sortHeader(p, "files.name", SortLink{}, false)
		sortHeader(p, "files.patient_name", SortLink{}, false)
		sortHeader(p, "files.doc_number", SortLink{}, false)
		sortHeader(p, "files.size", SortLink{}, false)
		created, ok := data.Sort["created_at"]
		sortHeader(p, "files.created_at", created, ok)
		p.raw(`<th>`)
		p.t("common.actions")
		p.raw(`</th></tr></thead><tbody>`)

		if len(data.Rows) == 0 {
			emptyRow(p, 6)
		}
		for _, row := range data.Rows {
			p.raw(`<tr><td><span class="badge">`)
			p.text(row.Extension)
			p.raw(`</span> `)
			p.text(row.Name)
			p.raw(`</td><td>`)
			p.text(row.PatientName)
			p.raw(`</td><td>`)
			p.text(row.DocNumber)
			p.raw(`</td><td>`)
			p.text(row.Size)
			p.raw(`</td><td>`)
			p.text(row.CreatedAt)
			p.raw(`</td><td class="actions"><a target="_blank" rel="noopener"`)
			p.href("href", row.DownloadURL)
			p.raw(`>`)
			p.t("common.download")
			p.raw(`</a> <a class="danger"`)
			p.href("href", row.DeleteURL)
			p.raw(`>`)
			p.t("common.delete")
			p.raw(`</a></td></tr>`)
		}
		p.raw(`</tbody></table>`)
		listNav(p, data.Nav)
	})
	return Layout(data.Layout, content)
}

// stat пишет карточку показателя.
func stat(p *printer, labelKey, value string) {
	p.raw(`<div class="card stat"><div class="stat-label">`)
	p.t(labelKey)
	p.raw(`</div><div class="stat-value">`)
	p.text(value)
	p.raw(`</div></div>`)
}
