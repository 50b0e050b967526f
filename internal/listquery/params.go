package listquery

import (
	"net/url"
	"strconv"
	"strings"
)

// Имена параметров URL состояния списка.
const (
	ParamSearch       = "q"
	ParamDateFrom     = "date_from"
	ParamDateTo       = "date_to"
	ParamOrganization = "organization"
	ParamType         = "type"
	ParamSort         = "sort"
	ParamOrder        = "order"
	ParamPage         = "page"
	ParamPerPage      = "per_page"
)

// perPageAll — значение per_page для размера «все».
const perPageAll = "all"

// PageSizes — размеры страницы в селекторе списка.
var PageSizes = []int{10, 25, 50, All}

// ParseState читает состояние списка из параметров URL.
// Сортировка проверяется по схеме и по праву роли: недоступное поле
// заменяется сортировкой по умолчанию.
func ParseState[T any](values url.Values, schema Schema[T], defaultPageSize int, elevated bool) State {
	st := NewState(schema.DefaultSort, defaultPageSize)

	st.Search = strings.TrimSpace(values.Get(ParamSearch))
	st.Filters = Filters{
		DateFrom:     strings.TrimSpace(values.Get(ParamDateFrom)),
		DateTo:       strings.TrimSpace(values.Get(ParamDateTo)),
		Organization: strings.TrimSpace(values.Get(ParamOrganization)),
		Type:         strings.ToLower(strings.TrimSpace(values.Get(ParamType))),
	}

	field := values.Get(ParamSort)
	dir := Direction(values.Get(ParamOrder))
	switch {
	case field == "":
		if dir == Asc || dir == Desc {
			st.Sort.Dir = dir
		}
	case schema.SortField(field) && (elevated || field == FieldCreatedAt):
		st.Sort = Sort{Field: field, Dir: Asc}
		if dir == Desc {
			st.Sort.Dir = Desc
		}
	}

	if pp := values.Get(ParamPerPage); pp != "" {
		if pp == perPageAll {
			st.PageSize = All
		} else if n, err := strconv.Atoi(pp); err == nil && n > 0 {
			st.PageSize = n
		}
	}

	if p, err := strconv.Atoi(values.Get(ParamPage)); err == nil && p > 0 {
		st.Page = p
	}
	return st
}

// Values кодирует состояние в параметры URL. Пустые значения опускаются,
// первая страница не указывается.
func (s State) Values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}

	set(ParamSearch, s.Search)
	set(ParamDateFrom, s.Filters.DateFrom)
	set(ParamDateTo, s.Filters.DateTo)
	set(ParamOrganization, s.Filters.Organization)
	set(ParamType, s.Filters.Type)
	set(ParamSort, s.Sort.Field)
	set(ParamOrder, string(s.Sort.Dir))
	set(ParamPerPage, PageSizeParam(s.PageSize))
	if s.Page > 1 {
		v.Set(ParamPage, strconv.Itoa(s.Page))
	}
	return v
}

// Query — состояние в виде строки запроса.
func (s State) Query() string {
	return s.Values().Encode()
}

// PageSizeParam — значение per_page для размера страницы.
func PageSizeParam(size int) string {
	switch {
	case size == All:
		return perPageAll
	case size > 0:
		return strconv.Itoa(size)
	default:
		return ""
	}
}
