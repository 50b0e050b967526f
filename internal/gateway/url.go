package gateway

import (
	"net/url"
	"strings"
)

// DefaultBaseURL — адрес backend по умолчанию.
const DefaultBaseURL = "http://localhost:5001/api"

const apiSuffix = "/api"

// NormalizeBaseURL приводит адрес backend к виду «origin/api»:
// пустое значение заменяется адресом по умолчанию, завершающие «/» убираются,
// повторные «/api/api» схлопываются, суффикс «/api» добавляется при отсутствии.
// Повторное применение не меняет результат.
func NormalizeBaseURL(raw string) string {
	base := trimBase(raw)
	if base == "" {
		base = trimBase(DefaultBaseURL)
	}
	if !strings.HasSuffix(base, apiSuffix) {
		base += apiSuffix
	}
	return base
}

// trimBase убирает пробелы, завершающие «/» и дублирующиеся «/api».
func trimBase(raw string) string {
	base := strings.TrimSpace(raw)
	for {
		next := strings.TrimRight(base, "/")
		if strings.HasSuffix(next, apiSuffix+apiSuffix) {
			next = strings.TrimSuffix(next, apiSuffix)
		}
		if next == base {
			return base
		}
		base = next
	}
}

// ResolveBaseURL выбирает первое непустое значение переменных окружения
// (NEXT_PUBLIC_API_URL, затем API_URL) и нормализует его.
func ResolveBaseURL(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return NormalizeBaseURL(v)
		}
	}
	return NormalizeBaseURL("")
}

// DownloadOrigin возвращает адрес backend без суффикса «/api».
// Ссылки на скачивание собираются как origin + «/api/...», поэтому
// «/api/api» не возникает независимо от исходного значения.
func DownloadOrigin(raw string) string {
	return strings.TrimSuffix(NormalizeBaseURL(raw), apiSuffix)
}

// Форматы скачивания документа.
const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

// DocumentDownloadURL — ссылка на PDF или DOCX документа.
func DocumentDownloadURL(origin, id, format string) string {
	u := strings.TrimRight(origin, "/") + apiSuffix + "/documents/" + url.PathEscape(id) + "/download"
	if format == FormatDOCX {
		u += "/docx"
	}
	return u
}

// FileDownloadURL — ссылка на скачивание файла из хранилища.
func FileDownloadURL(origin, name string) string {
	return strings.TrimRight(origin, "/") + apiSuffix + "/files/download/" + url.PathEscape(name)
}

// AbsoluteURL делает относительную ссылку из ответа backend абсолютной.
// Абсолютные ссылки возвращаются без изменений.
func AbsoluteURL(origin, ref string) string {
	if ref == "" {
		return ""
	}
	if u, err := url.Parse(ref); err == nil && u.IsAbs() {
		return ref
	}
	origin = strings.TrimRight(origin, "/")
	ref = "/" + strings.TrimLeft(ref, "/")
	if strings.HasPrefix(ref, apiSuffix+apiSuffix+"/") {
		ref = strings.TrimPrefix(ref, apiSuffix)
	}
	return origin + ref
}
