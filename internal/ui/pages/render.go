// Пакет pages — HTML-страницы панели MyGov Admin.
// Страницы собираются как templ.Component; весь пользовательский текст
// экранируется через templ.EscapeString, ссылки проходят templ.URL.
package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/bigkaa/mygov-admin/internal/ui/i18n"
)

// printer — последовательная запись HTML с запоминанием первой ошибки.
type printer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newPrinter(ctx context.Context, w io.Writer) *printer {
	return &printer{ctx: ctx, w: w}
}

// raw пишет разметку без экранирования.
func (p *printer) raw(parts ...string) {
	for _, s := range parts {
		if p.err != nil {
			return
		}
		_, p.err = io.WriteString(p.w, s)
	}
}

// text пишет экранированный текст.
func (p *printer) text(s string) {
	p.raw(templ.EscapeString(s))
}

// t пишет экранированный перевод ключа.
func (p *printer) t(key string) {
	p.text(i18n.T(p.ctx, key))
}

// tf пишет экранированный перевод с аргументами.
func (p *printer) tf(key string, args ...any) {
	p.text(i18n.Tf(p.ctx, key, args...))
}

// attr пишет атрибут name="value" с экранированием значения.
func (p *printer) attr(name, value string) {
	p.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// href пишет атрибут ссылки; небезопасные схемы отбрасываются templ.URL.
func (p *printer) href(name, url string) {
	p.attr(name, string(templ.URL(url)))
}

// component отрисовывает вложенный компонент.
func (p *printer) component(c templ.Component) {
	if p.err != nil || c == nil {
		return
	}
	p.err = c.Render(p.ctx, p.w)
}

// tr — перевод ключа для подстановки в атрибуты.
func (p *printer) tr(key string) string {
	return i18n.T(p.ctx, key)
}

// component создаёт templ.Component из функции записи.
func component(fn func(p *printer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(ctx, w)
		fn(p)
		return p.err
	})
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
