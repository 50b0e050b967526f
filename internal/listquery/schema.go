package listquery

import (
	"github.com/bigkaa/mygov-admin/internal/domain/model"
)

// Schema описывает, как проекция читает поля записи типа T.
type Schema[T any] struct {
	// Searchable — поля, по которым ищет строка поиска
	Searchable []func(T) string
	// Timestamp — время создания (строка из ответа backend)
	Timestamp func(T) string
	// Organization — поле для фильтра по организации; nil — фильтр не поддерживается
	Organization func(T) string
	// Name — имя файла для фильтра по типу; nil — фильтр не поддерживается
	Name func(T) string
	// TextFields — строковые поля сортировки с учётом русской локали
	TextFields map[string]func(T) string
	// Creator — идентичность создателя для области видимости
	Creator func(T) model.Identity
	// DefaultSort — сортировка при отсутствии параметров
	DefaultSort Sort
}

// SortField сообщает, поддерживает ли схема сортировку по полю.
func (s Schema[T]) SortField(field string) bool {
	if field == FieldCreatedAt {
		return s.Timestamp != nil
	}
	_, ok := s.TextFields[field]
	return ok
}

// DocumentSchema — схема списка документов.
var DocumentSchema = Schema[model.Document]{
	Searchable: []func(model.Document) string{
		func(d model.Document) string { return d.DocNumber },
		func(d model.Document) string { return d.MyGovDocNumber },
		func(d model.Document) string { return d.PatientName },
	},
	Timestamp:    func(d model.Document) string { return d.CreatedAt },
	Organization: func(d model.Document) string { return d.Organization },
	TextFields: map[string]func(model.Document) string{
		FieldPatientName: func(d model.Document) string { return d.PatientName },
	},
	Creator:     model.Document.Creator,
	DefaultSort: Sort{Field: FieldCreatedAt, Dir: Desc},
}

// FileSchema — схема списка файлов.
var FileSchema = Schema[model.File]{
	Searchable: []func(model.File) string{
		func(f model.File) string { return f.Name },
		func(f model.File) string { return f.PatientName },
		func(f model.File) string { return f.DocNumber },
	},
	Timestamp:   model.File.Timestamp,
	Name:        func(f model.File) string { return f.Name },
	Creator:     model.File.Creator,
	DefaultSort: Sort{Field: FieldCreatedAt, Dir: Desc},
}
