// Пакет listquery — вычисление видимой страницы списков документов и файлов:
// область видимости по владельцу, поиск, фильтры, сортировка, пагинация
// и сводная статистика. Все функции чистые и не обращаются к сети.
package listquery

// All — размер страницы «все записи».
const All = -1

// Поля сортировки.
const (
	// FieldCreatedAt — время создания; единственное поле, доступное всем ролям
	FieldCreatedAt = "created_at"
	// FieldPatientName — ФИО пациента, только для повышенной роли
	FieldPatientName = "patient_name"
)

// Direction — направление сортировки.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Filters — структурные фильтры. Пустое значение фильтр не применяет.
type Filters struct {
	// DateFrom, DateTo — даты в формате YYYY-MM-DD, границы включительно
	DateFrom string
	DateTo   string
	// Organization — подстрока названия организации (документы)
	Organization string
	// Type — расширение файла без точки (файлы)
	Type string
}

// IsZero — ни один фильтр не задан.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Sort — ключ и направление сортировки.
type Sort struct {
	Field string
	Dir   Direction
}

// State — состояние запроса одного списка.
type State struct {
	Search   string
	Filters  Filters
	Sort     Sort
	Page     int
	PageSize int
}

// NewState возвращает начальное состояние: первая страница, сортировка по умолчанию.
func NewState(sort Sort, pageSize int) State {
	if pageSize == 0 || pageSize < All {
		pageSize = 10
	}
	return State{Sort: sort, Page: 1, PageSize: pageSize}
}

// WithSearch меняет строку поиска и возвращает на первую страницу.
func (s State) WithSearch(q string) State {
	s.Search = q
	s.Page = 1
	return s
}

// WithFilters заменяет фильтры и возвращает на первую страницу.
func (s State) WithFilters(f Filters) State {
	s.Filters = f
	s.Page = 1
	return s
}

// ResetFilters сбрасывает поиск и фильтры.
func (s State) ResetFilters() State {
	s.Search = ""
	s.Filters = Filters{}
	s.Page = 1
	return s
}

// WithCollectionChanged — исходная коллекция изменилась (загрузка, удаление).
func (s State) WithCollectionChanged() State {
	s.Page = 1
	return s
}

// WithPage переходит на страницу. Поиск и фильтры не меняются;
// верхняя граница ограничивается при проекции.
func (s State) WithPage(page int) State {
	if page < 1 {
		page = 1
	}
	s.Page = page
	return s
}

// WithPageSize меняет размер страницы и возвращает на первую страницу.
func (s State) WithPageSize(size int) State {
	if size == 0 || size < All {
		return s
	}
	s.PageSize = size
	s.Page = 1
	return s
}

// ToggleSort выбирает поле сортировки.
// Повторный выбор того же поля меняет направление, новое поле начинается с asc.
// Без повышенной роли доступна только сортировка по времени создания:
// запрос на другое поле оставляет состояние без изменений.
func (s State) ToggleSort(field string, elevated bool) State {
	if !elevated && field != FieldCreatedAt {
		return s
	}
	if s.Sort.Field == field {
		if s.Sort.Dir == Asc {
			s.Sort.Dir = Desc
		} else {
			s.Sort.Dir = Asc
		}
	} else {
		s.Sort = Sort{Field: field, Dir: Asc}
	}
	s.Page = 1
	return s
}
