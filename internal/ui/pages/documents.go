package pages

import "github.com/a-h/templ"

// DocumentRow — строка таблицы документов.
type DocumentRow struct {
	DocNumber      string
	MyGovDocNumber string
	PatientName    string
	Diagnosis      string
	Organization   string
	CreatedAt      string
	PDFURL         string
	DOCXURL        string
	// Creator — создатель документа; выводится при ShowCreator
	Creator string
	// DeleteURL — пусто, если удаление недоступно роли
	DeleteURL string
}

// DocumentFilters — значения формы фильтров документов.
type DocumentFilters struct {
	Search       string
	DateFrom     string
	DateTo       string
	Organization string
}

// DocumentListData — страница списка документов.
type DocumentListData struct {
	Layout  LayoutData
	Rows    []DocumentRow
	Filters DocumentFilters
	Hidden  []HiddenField
	// Sort — ссылки сортировки по полю; поле без ссылки не сортируется
	Sort     map[string]SortLink
	Nav      ListNav
	ResetURL string
	// LoadError — сообщение об ошибке загрузки списка
	LoadError string
	// ShowCreator — колонка создателя для повышенной роли
	ShowCreator bool
}

// DocumentList — список документов с фильтрами и пагинацией.
func DocumentList(data DocumentListData) templ.Component {
	content := component(func(p *printer) {
		if data.LoadError != "" {
			alert(p, &Alert{Kind: "error", Message: data.LoadError})
		}

		p.raw(`<form method="get" action="/documents" class="filters">`)
		input(p, "search", "q", "documents.search", data.Filters.Search, false)
		input(p, "date", "date_from", "filters.date_from", data.Filters.DateFrom, false)
		input(p, "date", "date_to", "filters.date_to", data.Filters.DateTo, false)
		input(p, "text", "organization", "documents.organization", data.Filters.Organization, false)
		hiddenFields(p, data.Hidden)
		p.raw(`<button type="submit" class="btn btn-primary">`)
		p.t("filters.apply")
		p.raw(`</button> <a class="btn"`)
		p.href("href", data.ResetURL)
		p.raw(`>`)
		p.t("filters.reset")
		p.raw(`</a></form>`)

		p.raw(`<div class="toolbar"><a class="btn btn-primary" href="/documents/create">`)
		p.t("nav.create_document")
		p.raw(`</a></div>`)

		p.raw(`<table class="table"><thead><tr>`)
		sortHeader(p, "documents.doc_number", SortLink{}, false)
		sortHeader(p, "documents.mygov_doc_number", SortLink{}, false)
		patient, ok := data.Sort["patient_name"]
		sortHeader(p, "documents.patient_name", patient, ok)
		sortHeader(p, "documents.diagnosis", SortLink{}, false)
		sortHeader(p, "documents.organization", SortLink{}, false)
		created, ok := data.Sort["created_at"]
		sortHeader(p, "documents.created_at", created, ok)
		cols := 7
		if data.ShowCreator {
			sortHeader(p, "documents.creator", SortLink{}, false)
			cols++
		}
		p.raw(`<th>`)
		p.t("common.actions")
		p.raw(`</th></tr></thead><tbody>`)

		if len(data.Rows) == 0 {
			emptyRow(p, cols)
		}
		for _, row := range data.Rows {
			p.raw(`<tr><td>`)
			p.text(row.DocNumber)
			p.raw(`</td><td>`)
			p.text(row.MyGovDocNumber)
			p.raw(`</td><td>`)
			p.text(row.PatientName)
			p.raw(`</td><td>`)
			p.text(row.Diagnosis)
			p.raw(`</td><td>`)
			p.text(row.Organization)
			p.raw(`</td><td>`)
			p.text(row.CreatedAt)
			if data.ShowCreator {
				p.raw(`</td><td>`)
				p.text(row.Creator)
			}
			p.raw(`</td><td class="actions"><a target="_blank" rel="noopener"`)
			p.href("href", row.PDFURL)
			p.raw(`>PDF</a> <a target="_blank" rel="noopener"`)
			p.href("href", row.DOCXURL)
			p.raw(`>DOCX</a>`)
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
		listNav(p, data.Nav)
	})
	return Layout(data.Layout, content)
}
