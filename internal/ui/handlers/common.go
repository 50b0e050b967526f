// Пакет handlers — HTTP-обработчики панели MyGov Admin.
// Обработчики не возвращают ошибки backend наружу: ошибки превращаются
// в сообщения на странице, ответ 401 — в redirect на страницу входа
// (сессия к этому моменту уже очищена клиентом backend).
package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/mygov-admin/internal/domain/model"
	"github.com/bigkaa/mygov-admin/internal/domain/rbac"
	"github.com/bigkaa/mygov-admin/internal/gateway"
	"github.com/bigkaa/mygov-admin/internal/listquery"
	"github.com/bigkaa/mygov-admin/internal/session"
	"github.com/bigkaa/mygov-admin/internal/ui/i18n"
	uimiddleware "github.com/bigkaa/mygov-admin/internal/ui/middleware"
	"github.com/bigkaa/mygov-admin/internal/ui/pages"
)

// displayLayout — формат даты и времени в таблицах.
const displayLayout = "02.01.2006 15:04"

// render отрисовывает страницу или отвечает 500 при ошибке шаблона.
func render(w http.ResponseWriter, r *http.Request, logger *slog.Logger, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		logger.Error("Ошибка рендеринга страницы",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Ошибка рендеринга страницы", http.StatusInternalServerError)
	}
}

// tr переводит сообщение на язык запроса.
func tr(r *http.Request, key string) string {
	return i18n.T(r.Context(), key)
}

// trf переводит сообщение с подстановкой аргументов.
func trf(r *http.Request, key string, args ...any) string {
	return i18n.Tf(r.Context(), key, args...)
}

// layoutData собирает общие данные страницы из сессии и flash-сообщения.
func layoutData(r *http.Request, titleKey, activePath string) pages.LayoutData {
	data := pages.LayoutData{
		TitleKey:   titleKey,
		ActivePath: activePath,
	}
	if sess := uimiddleware.SessionFromContext(r.Context()); sess != nil {
		data.Role = sess.Role
		if sess.Profile != nil {
			data.Username = sess.Profile.Username
		}
	}
	if flash, ok := uimiddleware.PopFlash(r.Context()); ok {
		data.Alert = &pages.Alert{Kind: flash.Kind, Message: flash.Message}
	}
	return data
}

// currentActor возвращает роль и участника для области видимости списков.
func currentActor(r *http.Request) (string, listquery.Actor) {
	sess := uimiddleware.SessionFromContext(r.Context())
	if sess == nil {
		return "", listquery.Actor{}
	}
	return sess.Role, listquery.ActorFromProfile(sess.Profile, sess.Role)
}

// redirectIfUnauthorized отправляет на страницу входа при ответе 401.
func redirectIfUnauthorized(w http.ResponseWriter, r *http.Request, err error) bool {
	if !gateway.IsUnauthorized(err) {
		return false
	}
	// Сессия уже очищена хуком клиента; повтор на случай клиента без хука.
	session.ClearFromContext(r.Context(), session.ReasonUnauthorized)
	http.Redirect(w, r, rbac.PathLogin, http.StatusFound)
	return true
}

// formatTimestamp приводит время из ответа backend к виду для таблиц.
// Неразборчивое значение показывается как есть.
func formatTimestamp(raw string, loc *time.Location) string {
	t, ok := model.ParseTime(raw, loc)
	if !ok {
		return raw
	}
	return t.In(loc).Format(displayLayout)
}

// urlParam возвращает параметр маршрута chi в декодированном виде.
// chi берёт значение из RawPath, если путь содержал экранированные символы.
func urlParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

// withQuery добавляет строку запроса к пути.
func withQuery(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + query
}

// safeReturn принимает только строку запроса для возврата в список.
func safeReturn(raw string) string {
	raw = strings.TrimPrefix(raw, "?")
	if strings.ContainsAny(raw, "/\\:") {
		return ""
	}
	return raw
}

// listView строит ссылки сортировки, пагинации и размера страницы.
type listView struct {
	path     string
	state    listquery.State
	elevated bool
	sizes    []int
}

// sortLink — ссылка на переключение сортировки по полю.
func (lv listView) sortLink(field string) pages.SortLink {
	link := pages.SortLink{URL: withQuery(lv.path, lv.state.ToggleSort(field, lv.elevated).Query())}
	if lv.state.Sort.Field == field {
		link.Dir = string(lv.state.Sort.Dir)
	}
	return link
}

// nav строит пагинацию для результата проекции.
func (lv listView) nav(total, page, totalPages int) pages.ListNav {
	st := lv.state.WithPage(page)
	nav := pages.ListNav{
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}
	if page > 1 {
		nav.PrevURL = withQuery(lv.path, st.WithPage(page-1).Query())
	}
	if page < totalPages {
		nav.NextURL = withQuery(lv.path, st.WithPage(page+1).Query())
	}
	for _, n := range pageWindow(page, totalPages) {
		nav.Pages = append(nav.Pages, pages.PageLink{
			Number:  n,
			URL:     withQuery(lv.path, st.WithPage(n).Query()),
			Current: n == page,
		})
	}
	for _, size := range lv.sizes {
		label := ""
		if size != listquery.All {
			label = listquery.PageSizeParam(size)
		}
		nav.Sizes = append(nav.Sizes, pages.PageSizeOption{
			Label:   label,
			URL:     withQuery(lv.path, st.WithPageSize(size).Query()),
			Current: size == st.PageSize,
		})
	}
	return nav
}

// hidden — скрытые поля формы фильтров: сортировка и размер страницы.
func (lv listView) hidden() []pages.HiddenField {
	fields := []pages.HiddenField{
		{Name: listquery.ParamSort, Value: lv.state.Sort.Field},
		{Name: listquery.ParamOrder, Value: string(lv.state.Sort.Dir)},
	}
	if pp := listquery.PageSizeParam(lv.state.PageSize); pp != "" {
		fields = append(fields, pages.HiddenField{Name: listquery.ParamPerPage, Value: pp})
	}
	return fields
}

// resetURL — список без поиска и фильтров с сохранением сортировки.
func (lv listView) resetURL() string {
	return withQuery(lv.path, lv.state.ResetFilters().Query())
}

// pageWindow возвращает номера страниц вокруг текущей (не более 7).
func pageWindow(page, total int) []int {
	const span = 3
	from, to := page-span, page+span
	if from < 1 {
		to += 1 - from
		from = 1
	}
	if to > total {
		from -= to - total
		to = total
	}
	if from < 1 {
		from = 1
	}
	nums := make([]int, 0, to-from+1)
	for n := from; n <= to; n++ {
		nums = append(nums, n)
	}
	return nums
}
