package listquery

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/bigkaa/mygov-admin/internal/domain/model"
)

// dateLayout — формат дат в фильтрах.
const dateLayout = "2006-01-02"

// Options — контекст проекции.
type Options struct {
	// Actor — текущий пользователь; nil — область видимости не применяется
	Actor *Actor
	// Location — часовой пояс границ дня в фильтрах по дате (nil — UTC)
	Location *time.Location
}

// Result — видимая страница и сведения о пагинации.
type Result[T any] struct {
	// Visible — записи текущей страницы
	Visible []T
	// Filtered — все записи после фильтров и сортировки (до пагинации)
	Filtered []T
	// TotalPages — число страниц, не меньше 1
	TotalPages int
	// Page — текущая страница после ограничения диапазоном
	Page int
}

// Project вычисляет видимую страницу: область видимости, поиск,
// фильтры, сортировку и пагинацию. Исходный срез не изменяется.
//
// Запись без времени создания считается созданной в начале эпохи Unix:
// при сортировке по возрастанию она первая, по убыванию последняя,
// фильтр «с даты» её исключает, фильтр «по дату» пропускает.
func Project[T any](items []T, st State, schema Schema[T], opts Options) Result[T] {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	scoped := items
	if opts.Actor != nil && schema.Creator != nil {
		scoped = Scope(items, *opts.Actor, schema.Creator)
	}

	filtered := Filter(scoped, st, schema, loc)
	SortItems(filtered, st.Sort, schema, loc)
	return Paginate(filtered, st.Page, st.PageSize)
}

// Filter применяет поиск и структурные фильтры (логическое И).
// Возвращает новый срез.
func Filter[T any](items []T, st State, schema Schema[T], loc *time.Location) []T {
	search := strings.ToLower(strings.TrimSpace(st.Search))
	f := st.Filters

	var from, to time.Time
	hasFrom, hasTo := false, false
	if d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(f.DateFrom), loc); err == nil {
		from, hasFrom = d, true
	}
	if d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(f.DateTo), loc); err == nil {
		// конец дня: 23:59:59.999
		to, hasTo = d.AddDate(0, 0, 1).Add(-time.Millisecond), true
	}

	org := strings.ToLower(strings.TrimSpace(f.Organization))
	suffix := ""
	if t := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(f.Type), ".")); t != "" {
		suffix = "." + t
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if search != "" && !matchesSearch(item, search, schema.Searchable) {
			continue
		}
		if (hasFrom || hasTo) && schema.Timestamp != nil {
			ts := timestampOf(schema.Timestamp(item), loc)
			if hasFrom && ts.Before(from) {
				continue
			}
			if hasTo && ts.After(to) {
				continue
			}
		}
		if org != "" && schema.Organization != nil &&
			!strings.Contains(strings.ToLower(schema.Organization(item)), org) {
			continue
		}
		if suffix != "" && schema.Name != nil &&
			!strings.HasSuffix(strings.ToLower(schema.Name(item)), suffix) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSearch[T any](item T, search string, fields []func(T) string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field(item)), search) {
			return true
		}
	}
	return false
}

// epoch — время записей без даты создания.
var epoch = time.Unix(0, 0)

// timestampOf разбирает время записи; пустое или неразборчивое — epoch.
func timestampOf(s string, loc *time.Location) time.Time {
	if t, ok := model.ParseTime(s, loc); ok {
		return t
	}
	return epoch
}

// SortItems сортирует срез на месте по одному ключу.
// Сортировка устойчивая: равные записи сохраняют исходный порядок.
// Неизвестное схеме поле оставляет порядок без изменений.
func SortItems[T any](items []T, s Sort, schema Schema[T], loc *time.Location) {
	order := 1
	if s.Dir == Desc {
		order = -1
	}

	switch {
	case s.Field == FieldCreatedAt && schema.Timestamp != nil:
		keys := make([]time.Time, len(items))
		idx := make([]int, len(items))
		for i := range items {
			idx[i] = i
			keys[i] = timestampOf(schema.Timestamp(items[i]), loc)
		}
		sort.SliceStable(idx, func(a, b int) bool {
			return keys[idx[a]].Compare(keys[idx[b]])*order < 0
		})
		permute(items, idx)

	case schema.TextFields[s.Field] != nil:
		field := schema.TextFields[s.Field]
		// Collator не потокобезопасен: отдельный экземпляр на вызов
		col := collate.New(language.Russian)
		sort.SliceStable(items, func(a, b int) bool {
			return col.CompareString(field(items[a]), field(items[b]))*order < 0
		})
	}
}

// permute переставляет items в порядке idx.
func permute[T any](items []T, idx []int) {
	sorted := make([]T, len(items))
	for i, j := range idx {
		sorted[i] = items[j]
	}
	copy(items, sorted)
}

// Paginate возвращает страницу page размера size.
// size == All — одна страница со всеми записями. Пустая коллекция —
// одна пустая страница. Номер страницы ограничивается диапазоном [1, TotalPages].
func Paginate[T any](items []T, page, size int) Result[T] {
	res := Result[T]{Filtered: items}

	if size == All || size <= 0 {
		res.Visible = items
		res.TotalPages = 1
		res.Page = 1
		return res
	}

	res.TotalPages = (len(items) + size - 1) / size
	if res.TotalPages < 1 {
		res.TotalPages = 1
	}

	res.Page = page
	if res.Page < 1 {
		res.Page = 1
	}
	if res.Page > res.TotalPages {
		res.Page = res.TotalPages
	}

	start := (res.Page - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	res.Visible = items[start:end]
	return res
}
