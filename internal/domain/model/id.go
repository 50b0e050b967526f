package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexibleID — идентификатор, который backend отдаёт то числом, то строкой.
// Внутри всегда хранится как строка.
type FlexibleID string

// String возвращает строковое представление идентификатора.
func (id FlexibleID) String() string {
	return string(id)
}

// UnmarshalJSON принимает строку, число или null.
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = FlexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("некорректный идентификатор %s: %w", string(data), err)
	}
	*id = FlexibleID(n.String())
	return nil
}
