package model

import (
	"path"
	"strings"
)

// File — сгенерированный файл из хранилища backend (GET /files).
type File struct {
	// Name — имя файла с расширением
	Name string `json:"name"`
	// Size — размер в байтах
	Size int64 `json:"size"`
	// LastModified, CreatedAt, DateCreated — источники времени создания,
	// используется первый непустой
	LastModified string `json:"last_modified,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	DateCreated  string `json:"date_created,omitempty"`
	// CreatedBy — ключ корреляции с создателем (id, username или email)
	CreatedBy   FlexibleID `json:"created_by,omitempty"`
	PatientName string     `json:"patient_name,omitempty"`
	DocNumber   string     `json:"doc_number,omitempty"`
}

// Timestamp возвращает время создания: last_modified → created_at → date_created.
func (f File) Timestamp() string {
	return FirstPresent(f.LastModified, f.CreatedAt, f.DateCreated)
}

// Extension возвращает расширение файла в нижнем регистре без точки.
func (f File) Extension() string {
	ext := path.Ext(f.Name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Creator возвращает идентичность создателя файла.
// created_by не типизирован: backend кладёт туда id, username или email,
// поэтому значение сопоставляется по всем трём каналам.
func (f File) Creator() Identity {
	cb := f.CreatedBy.String()
	return Identity{ID: cb, Username: cb, Email: cb}
}

// FilesResponse — ответ GET /files.
type FilesResponse struct {
	Success bool   `json:"success"`
	Files   []File `json:"files"`
}
