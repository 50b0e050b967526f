package pages

import "github.com/a-h/templ"

// ConfirmData — страница подтверждения удаления.
type ConfirmData struct {
	Layout LayoutData
	// Message — вопрос пользователю
	Message string
	// Action — адрес POST-запроса удаления
	Action string
	// Return — состояние списка для возврата после удаления
	Return string
	// CancelURL — адрес кнопки отмены
	CancelURL string
}

// Confirm — подтверждение необратимого действия.
func Confirm(data ConfirmData) templ.Component {
	content := component(func(p *printer) {
		p.raw(`<div class="card confirm"><p>`)
		p.text(data.Message)
		p.raw(`</p><form method="post"`)
		p.href("action", data.Action)
		p.raw(`><input type="hidden" name="return"`)
		p.attr("value", data.Return)
		p.raw(`><button type="submit" class="btn btn-danger">`)
		p.t("common.delete")
		p.raw(`</button> <a class="btn"`)
		p.href("href", data.CancelURL)
		p.raw(`>`)
		p.t("common.cancel")
		p.raw(`</a></form></div>`)
	})
	return Layout(data.Layout, content)
}
