// Пакет model — доменные модели MyGov Admin.
// Все записи — read-only проекции данных внешнего MyGov backend.
package model

import "strings"

// Profile — профиль пользователя из ответа POST /auth/login.
// Хранится в сессии в сериализованном виде (cookie user_data).
type Profile struct {
	// ID — идентификатор пользователя в backend
	ID FlexibleID `json:"id,omitempty"`
	// LegacyID — альтернативный идентификатор (_id), встречается в старых ответах
	LegacyID FlexibleID `json:"_id,omitempty"`
	// Username — имя пользователя
	Username string `json:"username"`
	// Email — адрес электронной почты
	Email string `json:"email"`
	// Role — роль (admin, mygov_admin, super_admin)
	Role string `json:"role"`
}

// Identity возвращает идентификатор пользователя: id, а при его отсутствии _id.
func (p *Profile) Identity() string {
	if p == nil {
		return ""
	}
	if p.ID != "" {
		return p.ID.String()
	}
	return p.LegacyID.String()
}

// Identity — идентичность создателя записи.
// Поля заполняются backend непоследовательно, любое из них может отсутствовать.
type Identity struct {
	ID       string
	Username string
	Email    string
}

// User — учётная запись администратора (GET /admin/users).
type User struct {
	ID        FlexibleID `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt string     `json:"created_at,omitempty"`
}

// UserInput — тело запросов POST /admin/users и PUT /admin/users/{id}.
// Пустой пароль не передаётся (при редактировании пароль не меняется).
type UserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
}

// Normalize убирает пробелы по краям username и email.
func (u UserInput) Normalize() UserInput {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.TrimSpace(u.Email)
	return u
}

// LoginRequest — тело запроса POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse — ответ POST /auth/login.
type LoginResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    *Profile `json:"user"`
	Message string   `json:"message,omitempty"`
}

// Valid проверяет формат ответа: success, непустой token и профиль пользователя.
func (r *LoginResponse) Valid() bool {
	return r != nil && r.Success && r.Token != "" && r.User != nil
}
