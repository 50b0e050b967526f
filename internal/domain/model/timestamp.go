package model

import (
	"strings"
	"time"
)

// timeLayouts — форматы дат, которые встречаются в ответах backend.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// FirstPresent возвращает первое непустое значение из цепочки fallback-полей.
// Единая точка для правил вида «сначала A, потом B, потом C».
func FirstPresent(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// ParseTime разбирает дату из ответа backend.
// Значения без часового пояса интерпретируются в loc (nil — UTC).
func ParseTime(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
